// Package game drives the per-turn loop: think, submit, repeat until the
// server calls the game over.
package game

import (
	"encoding/json"
	"log"
	"time"

	"github.com/iamasit07/dropblox-client/internal/domain"
	"github.com/iamasit07/dropblox-client/pkg/console"
)

// ServerChannel is the slice of the transport client the engine needs.
type ServerChannel interface {
	SubmitMove(game *domain.GameSnapshot, moves []domain.Command) (*domain.SubmitResult, error)
}

// MoveProducer computes one turn's move list within the given budget.
type MoveProducer interface {
	Run(state json.RawMessage, seconds float64) ([]domain.Command, error)
}

// ResultArchive records finished games locally.
type ResultArchive interface {
	SaveResult(result domain.GameResult) error
}

type Engine struct {
	Server  ServerChannel
	AI      MoveProducer
	Archive ResultArchive // optional
	Printer *console.Printer
}

func NewEngine(server ServerChannel, ai MoveProducer, archive ResultArchive, printer *console.Printer) *Engine {
	return &Engine{Server: server, AI: ai, Archive: archive, Printer: printer}
}

// Play runs the game to completion and returns its final state.
//
// Each turn the AI gets the opaque state payload and the total remaining
// competition time as its budget; whatever it emitted by the deadline is
// submitted, an empty list included. Submissions are strictly sequential;
// the only exit is the server's game-over signal. Any other submission
// failure aborts the run.
func (e *Engine) Play(game *domain.GameSnapshot, mode string) (*domain.FinalState, error) {
	started := time.Now()

	for {
		moves, err := e.AI.Run(game.State, game.SecondsRemaining)
		if err != nil {
			return nil, err
		}

		result, err := e.Server.SubmitMove(game, moves)
		if err != nil {
			return nil, err
		}

		if result.GameOver() {
			e.Printer.Good("Game over! Your score was: %d", result.Final.Score)
			e.archive(game, mode, result.Final, started)
			return result.Final, nil
		}
		game = result.Next
	}
}

// archive records the finished game. Best effort: the server already has
// the authoritative result, so a local write failure is only logged.
func (e *Engine) archive(game *domain.GameSnapshot, mode string, final *domain.FinalState, started time.Time) {
	if e.Archive == nil {
		return
	}
	err := e.Archive.SaveResult(domain.GameResult{
		GameID:          string(game.GameID),
		Mode:            mode,
		Score:           final.Score,
		TotalMoves:      game.MovesMade,
		DurationSeconds: int(time.Since(started).Seconds()),
		FinishedAtUnix:  time.Now().Unix(),
	})
	if err != nil {
		log.Printf("[ARCHIVE] failed to record finished game: %v", err)
	}
}
