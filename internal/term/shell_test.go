package term

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/logging"
	"countdown/internal/ui/presenter"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*Shell, *countdown.Engine, *bytes.Buffer) {
	t.Helper()
	engine := countdown.New(model.TimerConfig{TickInterval: model.MaxTickInterval}, countdown.Options{
		Logger: logging.Discard(),
	})
	t.Cleanup(engine.Close)

	var out bytes.Buffer
	shell := newShell(&out)
	shell.Bind(engine, presenter.New(engine, shell, nil, logging.Discard()))
	return shell, engine, &out
}

func TestSetAcceptsClockAndFields(t *testing.T) {
	shell, engine, out := newTestShell(t)

	assert.False(t, shell.execute("set 1:02:03"))
	assert.Equal(t, 3723, engine.RemainingSeconds())

	assert.False(t, shell.execute("set 0 5 0"))
	assert.Equal(t, 300, engine.RemainingSeconds())
	assert.Empty(t, out.String())
}

func TestSetRejectsBadInput(t *testing.T) {
	shell, engine, out := newTestShell(t)
	require.False(t, shell.execute("set 0 75 0"))

	assert.Equal(t, 0, engine.RemainingSeconds())
	assert.Contains(t, out.String(), "Error: Please enter a valid countdown time")

	out.Reset()
	shell.execute("set 1 2")
	assert.Contains(t, out.String(), "Usage: set")
}

func TestStartPauseResetCommands(t *testing.T) {
	shell, engine, _ := newTestShell(t)

	shell.execute("quick 5")
	assert.Equal(t, 300, engine.RemainingSeconds())

	shell.execute("start")
	assert.Equal(t, countdown.StateRunning, engine.State())

	shell.execute("pause")
	assert.Equal(t, countdown.StatePaused, engine.State())

	shell.execute("toggle")
	assert.Equal(t, countdown.StateRunning, engine.State())

	shell.execute("reset")
	assert.Equal(t, countdown.StateIdle, engine.State())
	assert.Equal(t, 0, engine.RemainingSeconds())
}

func TestQuickSetWhileRunningIsDeferred(t *testing.T) {
	shell, engine, out := newTestShell(t)
	shell.execute("set 0:30")
	shell.execute("start")

	shell.execute("quick 10")

	assert.Equal(t, countdown.StateRunning, engine.State())
	assert.LessOrEqual(t, engine.RemainingSeconds(), 30)
	assert.Contains(t, out.String(), "Next countdown: 0 h 10 m 0 s")
}

func TestQuickRejectsBadMinutes(t *testing.T) {
	shell, _, out := newTestShell(t)

	shell.execute("quick soon")
	assert.Contains(t, out.String(), "Invalid minutes: soon")

	out.Reset()
	shell.execute("quick")
	assert.Contains(t, out.String(), "1, 2, 3, 5, 10, 15, 20, 25, 30")
}

func TestStatusAndUnknownCommands(t *testing.T) {
	shell, engine, out := newTestShell(t)
	shell.execute("set 0:0:42")

	shell.execute("status")
	assert.Contains(t, out.String(), "Timer:     "+engine.ID())
	assert.Contains(t, out.String(), "State:     idle")
	assert.Contains(t, out.String(), "Remaining: 00:00:42")

	shell.execute("bogus")
	assert.Contains(t, out.String(), "Unknown command: bogus")

	assert.True(t, shell.execute("quit"))
	assert.True(t, shell.execute("EXIT"))
}

func TestPromptTracksClockAndState(t *testing.T) {
	shell, _, _ := newTestShell(t)
	shell.execute("set 0:0:42")
	shell.execute("start")

	shell.SetClock("00:00:41")

	assert.Equal(t, "[00:00:41 running] countdown> ", shell.Prompt())
}

func TestShowCompletedRingsBell(t *testing.T) {
	shell, _, out := newTestShell(t)

	shell.ShowCompleted()

	assert.Equal(t, "\a*** Time is up! ***\n", out.String())
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	stdin, stdinWriter := io.Pipe()
	t.Cleanup(func() { _ = stdinWriter.Close() })
	shell, err := open(&readline.Config{
		Stdin:          stdin,
		Stdout:         io.Discard,
		Stderr:         io.Discard,
		FuncIsTerminal: func() bool { return false },
		FuncMakeRaw:    func() error { return nil },
		FuncExitRaw:    func() error { return nil },
		FuncGetWidth:   func() int { return 80 },
	})
	require.NoError(t, err)
	engine := countdown.New(model.TimerConfig{TickInterval: model.MaxTickInterval}, countdown.Options{
		Logger: logging.Discard(),
	})
	t.Cleanup(engine.Close)
	shell.Bind(engine, presenter.New(engine, shell, nil, logging.Discard()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		shell.Run(ctx, cancel)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting for input after cancel")
	}
}
