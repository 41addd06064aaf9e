// Package ai runs the external decision process for one turn at a time.
package ai

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/iamasit07/dropblox-client/internal/domain"
	"github.com/iamasit07/dropblox-client/pkg/console"
)

// Grace period to wait for the output stream to close after the process is
// killed. Exceeding it means the drain goroutine is stuck on a pipe that
// never closed.
const killGracePeriod = 60 * time.Second

type Runner struct {
	ExecutablePath string

	printer *console.Printer
	grace   time.Duration
}

func NewRunner(executablePath string, printer *console.Printer) *Runner {
	return &Runner{
		ExecutablePath: executablePath,
		printer:        printer,
		grace:          killGracePeriod,
	}
}

// Run starts the AI process with the serialized game state and its time
// budget as the two positional arguments, then collects newline-terminated
// move tokens from its stdout until the budget elapses or the stream
// closes. The process never outlives the call.
//
// An empty move list is a legitimate no-op turn, not an error. Lines
// outside the move vocabulary are logged and dropped.
func (r *Runner) Run(state json.RawMessage, seconds float64) ([]domain.Command, error) {
	cmd := exec.Command(r.ExecutablePath,
		string(state),
		strconv.FormatFloat(seconds, 'f', -1, 64))
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ai stdout pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ai process %s: %v", r.ExecutablePath, err)
	}

	// Single writer: only the drain goroutine appends, and it is joined
	// before commands is read.
	var commands []domain.Command
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			if !domain.ValidCommand(line) {
				log.Printf("[AI] INVALID COMMAND: %s", line)
				continue
			}
			commands = append(commands, domain.Command(line))
		}
		if err := scanner.Err(); err != nil {
			log.Printf("[AI] output stream error: %v", err)
		}
	}()

	deadline := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer deadline.Stop()

	select {
	case <-done:
	case <-deadline.C:
	}

	r.printer.Warn("Terminating process")
	_ = cmd.Process.Kill()

	// Killing the child closes its end of the pipe, so the drain goroutine
	// sees EOF and exits.
	select {
	case <-done:
	case <-time.After(r.grace):
		return nil, fmt.Errorf("ai output stream did not close within %s of termination", r.grace)
	}
	_ = cmd.Wait()

	r.printer.Good("commands received: %v", commands)
	return commands, nil
}
