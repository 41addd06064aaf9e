package main

import (
	"errors"
	"log"
	"os"

	"github.com/iamasit07/dropblox-client/internal/config"
	"github.com/iamasit07/dropblox-client/internal/domain"
	"github.com/iamasit07/dropblox-client/internal/repository/sqlite"
	"github.com/iamasit07/dropblox-client/internal/service/ai"
	"github.com/iamasit07/dropblox-client/internal/service/game"
	"github.com/iamasit07/dropblox-client/internal/service/matchmaking"
	transportHttp "github.com/iamasit07/dropblox-client/internal/transport/http"
	"github.com/iamasit07/dropblox-client/pkg/console"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	printer := console.New(os.Stdout)

	if len(os.Args) != 2 || (os.Args[1] != "practice" && os.Args[1] != "compete") {
		printer.Warn("Usage: client [compete|practice]")
		return 0
	}
	mode := os.Args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	if cfg.Credentials.IsPlaceholder() {
		printer.Warn("Please specify a team name and password in config.txt")
		return 0
	}

	// 1. Local archive (optional; the game runs fine without it)
	var archive game.ResultArchive
	if cfg.ArchivePath != "" {
		repo, err := sqlite.Open(cfg.ArchivePath)
		if err != nil {
			log.Printf("[ARCHIVE] disabled: %v", err)
		} else {
			defer repo.Close()
			if deleted, err := repo.CleanupOldResults(cfg.ArchiveKeepDay); err != nil {
				log.Printf("[ARCHIVE] cleanup failed: %v", err)
			} else if deleted > 0 {
				log.Printf("[ARCHIVE] removed %d expired game records", deleted)
			}
			archive = repo
		}
	}

	// 2. Server channel, AI runner, turn engine
	client := transportHttp.NewClient(cfg, printer)
	runner := ai.NewRunner(cfg.AIPath, printer)
	engine := game.NewEngine(client, runner, archive, printer)
	bootstrap := matchmaking.NewBootstrap(client, printer)

	// 3. Establish a game, then play it out
	var snapshot *domain.GameSnapshot
	switch mode {
	case "practice":
		snapshot, err = bootstrap.Practice()
	case "compete":
		snapshot, err = bootstrap.Compete()
	}
	if err != nil {
		return report(printer, err)
	}

	if _, err := engine.Play(snapshot, mode); err != nil {
		return report(printer, err)
	}
	return 0
}

// report maps a run-ending error to output and an exit code. An auth
// failure is surfaced as a diagnostic with a clean exit so the user fixes
// the credential file rather than a supervisor restarting the client.
func report(printer *console.Printer, err error) int {
	if errors.Is(err, domain.ErrAuthFailed) {
		printer.Warn("Cannot authenticate, please check config.txt")
		return 0
	}
	var rejected *domain.RejectedMoveError
	if errors.As(err, &rejected) {
		log.Printf("[GAME] %v", rejected)
		return 1
	}
	log.Printf("[GAME] aborted: %v", err)
	return 1
}
