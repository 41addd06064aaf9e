package domain

import (
	"encoding/json"
	"fmt"
)

// Command is a single move token the AI process may emit.
type Command string

const (
	Left   Command = "left"
	Right  Command = "right"
	Up     Command = "up"
	Down   Command = "down"
	Rotate Command = "rotate"
)

// ValidCommand reports whether line is one of the five move tokens.
func ValidCommand(line string) bool {
	switch Command(line) {
	case Left, Right, Up, Down, Rotate:
		return true
	}
	return false
}

// Server fail codes. The server is the authority on these values.
const (
	CodeConcurrentMove = 409
	CodeGameOver       = 410
)

// GameSnapshot is the authoritative game state as returned by the server.
// The state payload is opaque to the client; only the AI process and the
// server interpret it.
type GameSnapshot struct {
	GameID           json.RawMessage
	State            json.RawMessage
	MovesMade        int
	SecondsRemaining float64
}

// FinalState is the game_state payload embedded in a game-over response.
// Score is the one field the client reads out of it.
type FinalState struct {
	Raw   json.RawMessage
	Score int
}

// ParseFinalState extracts the score from a raw final game_state payload.
func ParseFinalState(raw json.RawMessage) (*FinalState, error) {
	var scored struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal(raw, &scored); err != nil {
		return nil, fmt.Errorf("failed to parse final game state: %v", err)
	}
	return &FinalState{Raw: raw, Score: scored.Score}, nil
}

// SubmitResult is the outcome of one move submission. Exactly one of the
// fields is set: Next when the game continues, Final when it is over.
type SubmitResult struct {
	Next  *GameSnapshot
	Final *FinalState
}

// GameOver reports whether the submission ended the game.
func (r *SubmitResult) GameOver() bool {
	return r.Final != nil
}

// CompeteResult is the outcome of one matchmaking poll: either the server
// asks the client to wait, or it hands out a starting snapshot.
type CompeteResult struct {
	Wait     bool
	WaitTime float64
	Game     *GameSnapshot
}

// GameResult is a finished game as recorded in the local archive.
type GameResult struct {
	GameID          string
	Mode            string
	Score           int
	TotalMoves      int
	DurationSeconds int
	FinishedAtUnix  int64
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrAuthFailed Error = "authentication failed"
)

// RejectedMoveError is a submission the server refused for a reason other
// than game over or an already-applied duplicate.
type RejectedMoveError struct {
	Code   int
	Reason string
}

func (e *RejectedMoveError) Error() string {
	return fmt.Sprintf("move rejected (code %d): %s", e.Code, e.Reason)
}
