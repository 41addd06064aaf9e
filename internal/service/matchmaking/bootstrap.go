// Package matchmaking establishes a game to play: immediately in practice
// mode, or by polling until the server assigns a match in compete mode.
package matchmaking

import (
	"log"
	"time"

	"github.com/iamasit07/dropblox-client/internal/domain"
	"github.com/iamasit07/dropblox-client/pkg/console"
)

// Matchmaker is the slice of the transport client the bootstrap needs.
type Matchmaker interface {
	CreatePracticeGame() (*domain.GameSnapshot, error)
	GetCompeteGame() (*domain.CompeteResult, error)
}

type Bootstrap struct {
	Server  Matchmaker
	Printer *console.Printer

	// Sleep is overridable so tests do not wait for real.
	Sleep func(time.Duration)
}

func NewBootstrap(server Matchmaker, printer *console.Printer) *Bootstrap {
	return &Bootstrap{Server: server, Printer: printer, Sleep: time.Sleep}
}

// Practice creates a fresh private game, playable immediately.
func (b *Bootstrap) Practice() (*domain.GameSnapshot, error) {
	return b.Server.CreatePracticeGame()
}

// Compete polls matchmaking until the server hands out a game, sleeping
// for the server-suggested interval between attempts. There is no bound on
// the number of attempts; matchmaking takes as long as it takes.
func (b *Bootstrap) Compete() (*domain.GameSnapshot, error) {
	result, err := b.Server.GetCompeteGame()
	if err != nil {
		return nil, err
	}

	if result.Wait {
		b.Printer.Warn("Waiting to compete...")
	}
	for result.Wait {
		log.Printf("[MATCHMAKING] no match yet, polling again in %.1fs", result.WaitTime)
		b.Sleep(time.Duration(result.WaitTime * float64(time.Second)))

		result, err = b.Server.GetCompeteGame()
		if err != nil {
			return nil, err
		}
	}

	b.Printer.Warn("Fired up and ready to go!")
	return result.Game, nil
}
