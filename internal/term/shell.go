// Package term provides the interactive terminal front end for the countdown.
package term

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/ui/presenter"

	"github.com/chzyer/readline"
)

// Actions is the presenter surface driven by shell commands.
type Actions interface {
	Fields() presenter.Fields
	Apply(fields presenter.Fields) error
	Start(fields presenter.Fields) error
	Toggle() error
	Pause()
	Reset()
	QuickSet(minutes int) error
}

// SnapshotSource reports the current engine state.
type SnapshotSource interface {
	Snapshot() countdown.Snapshot
}

// Shell is a readline prompt that renders the countdown in its prompt line.
type Shell struct {
	rl      *readline.Instance
	out     io.Writer
	source  SnapshotSource
	actions Actions

	mu     sync.Mutex
	clock  string
	prompt string
}

// New creates a shell reading from the controlling terminal.
func New() (*Shell, error) {
	return open(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

func open(config *readline.Config) (*Shell, error) {
	config.Prompt = promptFor(countdown.FormatClock(0), countdown.StateIdle)
	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	shell := newShell(rl.Stdout())
	shell.rl = rl
	return shell, nil
}

func newShell(out io.Writer) *Shell {
	return &Shell{
		out:   out,
		clock: countdown.FormatClock(0),
	}
}

// Bind attaches the engine state and the presenter that commands are
// forwarded to. It must be called before Run.
func (shell *Shell) Bind(source SnapshotSource, actions Actions) {
	shell.source = source
	shell.actions = actions
}

// Stdout returns a writer that coordinates with the readline input.
func (shell *Shell) Stdout() io.Writer {
	return shell.out
}

// Run reads commands until quit, EOF or ctx is done.
// Cancelling ctx interrupts a pending read.
func (shell *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer shell.rl.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = shell.rl.Close()
		case <-stop:
		}
	}()

	shell.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := shell.rl.Readline()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(shell.out, "Exiting...")
			cancel()
			return
		}

		if quit := shell.execute(line); quit {
			fmt.Fprintln(shell.out, "Exiting...")
			cancel()
			return
		}
	}
}

func (shell *Shell) execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		shell.printHelp()

	case "set", "s":
		shell.cmdSet(args)

	case "quick", "q":
		shell.cmdQuick(args)

	case "start", "resume":
		_ = shell.actions.Start(shell.actions.Fields())

	case "toggle", "t":
		_ = shell.actions.Toggle()

	case "pause", "p":
		shell.actions.Pause()

	case "reset", "r":
		shell.actions.Reset()

	case "status", "st":
		shell.cmdStatus()

	case "quit", "exit":
		return true

	default:
		fmt.Fprintf(shell.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (shell *Shell) cmdSet(args []string) {
	var fields presenter.Fields
	switch len(args) {
	case 1:
		duration, err := countdown.ParseClock(args[0])
		if err != nil {
			shell.ShowError(err)
			return
		}
		fields = presenter.FieldsFor(duration)
	case 3:
		fields = presenter.Fields{Hours: args[0], Minutes: args[1], Seconds: args[2]}
	default:
		fmt.Fprintln(shell.out, "Usage: set <HH:MM:SS> | set <hours> <minutes> <seconds>")
		return
	}
	_ = shell.actions.Apply(fields)
}

func (shell *Shell) cmdQuick(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(shell.out, "Usage: quick <minutes> (one of %s)\n", quickList())
		return
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes <= 0 {
		fmt.Fprintf(shell.out, "Invalid minutes: %s\n", args[0])
		return
	}
	_ = shell.actions.QuickSet(minutes)
}

func (shell *Shell) cmdStatus() {
	snapshot := shell.source.Snapshot()
	fields := shell.actions.Fields()
	fmt.Fprintf(shell.out, "Timer:     %s\n", snapshot.EngineID)
	fmt.Fprintf(shell.out, "State:     %s\n", snapshot.State)
	fmt.Fprintf(shell.out, "Remaining: %s\n", countdown.FormatClock(snapshot.RemainingSeconds))
	fmt.Fprintf(shell.out, "Next:      %s h %s m %s s\n", fields.Hours, fields.Minutes, fields.Seconds)
}

func (shell *Shell) printHelp() {
	fmt.Fprintf(shell.out, `
Countdown Commands:
  set <HH:MM:SS>        - Set the countdown length (also MM:SS or SS)
  set <h> <m> <s>       - Set the countdown length by field
  quick <minutes>       - Quick set (%s)
  start                 - Start, or resume a paused countdown
  pause                 - Pause the countdown
  toggle                - Start or pause
  reset                 - Stop and clear the countdown
  status                - Show timer status
  help                  - Show this help
  quit                  - Exit
`, quickList())
}

// SetClock implements presenter.View.
func (shell *Shell) SetClock(text string) {
	shell.mu.Lock()
	shell.clock = text
	shell.mu.Unlock()
	shell.updatePrompt()
}

// SetControls implements presenter.View.
func (shell *Shell) SetControls(presenter.Controls) {
	shell.updatePrompt()
}

// SetFields implements presenter.View.
func (shell *Shell) SetFields(fields presenter.Fields) {
	fmt.Fprintf(shell.out, "Next countdown: %s h %s m %s s\n", fields.Hours, fields.Minutes, fields.Seconds)
}

// ShowError implements presenter.View.
func (shell *Shell) ShowError(err error) {
	fmt.Fprintf(shell.out, "Error: %s\n", presenter.ErrorMessage(err))
}

// ShowCompleted implements presenter.View.
func (shell *Shell) ShowCompleted() {
	fmt.Fprint(shell.out, "\a*** Time is up! ***\n")
}

// Prompt returns the current prompt text.
func (shell *Shell) Prompt() string {
	shell.mu.Lock()
	defer shell.mu.Unlock()
	return shell.prompt
}

func (shell *Shell) updatePrompt() {
	state := countdown.StateIdle
	if shell.source != nil {
		state = shell.source.Snapshot().State
	}
	shell.mu.Lock()
	prompt := promptFor(shell.clock, state)
	changed := prompt != shell.prompt
	shell.prompt = prompt
	shell.mu.Unlock()

	if !changed || shell.rl == nil {
		return
	}
	shell.rl.SetPrompt(prompt)
	shell.rl.Refresh()
}

func promptFor(clock string, state countdown.State) string {
	return fmt.Sprintf("[%s %s] countdown> ", clock, state)
}

func quickList() string {
	values := make([]string, 0, len(model.QuickSetMinutes))
	for _, minutes := range model.QuickSetMinutes {
		values = append(values, strconv.Itoa(minutes))
	}
	return strings.Join(values, ", ")
}
