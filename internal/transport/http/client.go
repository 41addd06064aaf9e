// Package http is the client side of the game server's JSON protocol. It
// owns credential attachment, retry policy and response classification;
// it holds no game-state authority.
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/iamasit07/dropblox-client/internal/config"
	"github.com/iamasit07/dropblox-client/internal/domain"
	"github.com/iamasit07/dropblox-client/pkg/console"
)

const (
	// Transient failures are retried this many times on top of the first
	// attempt, with a constant pause in between.
	maxRetries    = 2
	retryInterval = 500 * time.Millisecond

	requestTimeout = 30 * time.Second
)

type Client struct {
	BaseURL string
	Creds   config.Credentials

	// RetryInterval is overridable so tests do not sleep for real.
	RetryInterval time.Duration

	http    *http.Client
	printer *console.Printer
}

func NewClient(cfg *config.Config, printer *console.Printer) *Client {
	return &Client{
		BaseURL:       cfg.ServerURL,
		Creds:         cfg.Credentials,
		RetryInterval: retryInterval,
		http:          &http.Client{Timeout: requestTimeout},
		printer:       printer,
	}
}

// wire shapes

type wireGame struct {
	ID        json.RawMessage `json:"id"`
	MovesMade int             `json:"number_moves_made"`
	State     json.RawMessage `json:"game_state"`
}

type envelope struct {
	Ret      string    `json:"ret"`
	Code     int       `json:"code"`
	Reason   string    `json:"reason"`
	WaitTime *float64  `json:"wait_time"`
	Game     *wireGame `json:"game"`
	Seconds  *float64  `json:"competition_seconds_remaining"`
}

// snapshot builds a GameSnapshot from an envelope, falling back to prev for
// fields the server omitted (the fail-with-game shape carries no id and may
// carry no remaining-seconds field).
func (e *envelope) snapshot(prev *domain.GameSnapshot) *domain.GameSnapshot {
	snap := &domain.GameSnapshot{}
	if prev != nil {
		*snap = *prev
	}
	if e.Game != nil {
		if len(e.Game.ID) > 0 {
			snap.GameID = e.Game.ID
		}
		snap.MovesMade = e.Game.MovesMade
		snap.State = e.Game.State
	}
	if e.Seconds != nil {
		snap.SecondsRemaining = *e.Seconds
	}
	return snap
}

// CreatePracticeGame starts a fresh private game.
func (c *Client) CreatePracticeGame() (*domain.GameSnapshot, error) {
	env, err := c.request("/create_practice_game", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	if env.Game == nil {
		return nil, fmt.Errorf("create_practice_game returned no game payload")
	}
	return env.snapshot(nil), nil
}

// GetCompeteGame polls matchmaking once. The server answers either with a
// wait instruction or with the starting snapshot of an assigned match.
func (c *Client) GetCompeteGame() (*domain.CompeteResult, error) {
	env, err := c.request("/get_compete_game", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	if env.Ret == "wait" {
		wait := 0.5
		if env.WaitTime != nil {
			wait = *env.WaitTime
		}
		return &domain.CompeteResult{Wait: true, WaitTime: wait}, nil
	}
	if env.Game == nil {
		return nil, fmt.Errorf("get_compete_game returned no game payload")
	}
	return &domain.CompeteResult{Game: env.snapshot(nil)}, nil
}

// SubmitMove sends one turn's move list. The game argument is the snapshot
// the moves were computed against; its move counter is what the server
// checks the submission against.
//
// A concurrent-move failure whose recorded counter is exactly one ahead
// means an earlier attempt landed but its acknowledgment was lost, so it is
// resolved as success with the server's current snapshot.
func (c *Client) SubmitMove(game *domain.GameSnapshot, moves []domain.Command) (*domain.SubmitResult, error) {
	if moves == nil {
		moves = []domain.Command{} // a no-op turn is an empty list on the wire, not null
	}
	env, err := c.request("/submit_game_move", map[string]interface{}{
		"game_id":    game.GameID,
		"move_list":  moves,
		"moves_made": game.MovesMade,
	})
	if err != nil {
		return nil, err
	}

	switch env.Ret {
	case "ok":
		if env.Game == nil {
			return nil, fmt.Errorf("submit_game_move returned ok without a game payload")
		}
		return &domain.SubmitResult{Next: env.snapshot(game)}, nil

	case "fail":
		switch {
		case env.Code == domain.CodeGameOver:
			if env.Game == nil {
				return nil, fmt.Errorf("game over response carried no final state")
			}
			final, err := domain.ParseFinalState(env.Game.State)
			if err != nil {
				return nil, err
			}
			return &domain.SubmitResult{Final: final}, nil

		case env.Code == domain.CodeConcurrentMove && env.Game != nil && env.Game.MovesMade == game.MovesMade+1:
			// duplicate move; possible http error earlier - allow
			c.printer.Warn("Duplicate move sent; resolving")
			return &domain.SubmitResult{Next: env.snapshot(game)}, nil

		default:
			return nil, &domain.RejectedMoveError{Code: env.Code, Reason: env.Reason}
		}
	}

	return nil, fmt.Errorf("unexpected server response ret=%q", env.Ret)
}

// request performs one authenticated POST exchange, retrying transient
// failures (5xx, transport errors, undecodable bodies) up to maxRetries
// with a constant backoff. A 401 is an authentication failure and is never
// retried; any other 4xx propagates immediately.
func (c *Client) request(path string, body map[string]interface{}) (*envelope, error) {
	payload := make(map[string]interface{}, len(body)+2)
	for k, v := range body {
		payload[k] = v
	}
	payload["team_name"] = c.Creds.TeamName
	payload["password"] = c.Creds.TeamPassword

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %v", err)
	}

	var env envelope
	attempt := func() error {
		resp, err := c.http.Post(c.BaseURL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("request to %s failed: %v", path, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return backoff.Permanent(domain.ErrAuthFailed)
		case resp.StatusCode >= 500:
			return fmt.Errorf("server error on %s: %s", path, resp.Status)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("request to %s rejected: %s", path, resp.Status))
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response from %s: %v", path, err)
		}
		env = envelope{}
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("malformed response from %s: %v", path, err)
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(c.RetryInterval), maxRetries)
	err = backoff.RetryNotify(attempt, policy, func(err error, wait time.Duration) {
		log.Printf("[SERVER] %v, retrying in %s", err, wait)
	})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
