package testbed

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spaghettifunk/gyre/engine"
	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/platform"
	"github.com/spaghettifunk/gyre/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestbedEngine(t *testing.T, scheduler platform.Scheduler) (*TestGame, *engine.Engine) {
	t.Helper()
	config := engine.DefaultApplicationConfig()
	config.LogLevel = "error"
	config.Resolution = 10
	tg := NewTestGame(config)
	e, err := engine.New(tg.Game, scheduler)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	tg.Attach(e)
	return tg, e
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
		ok   bool
	}{
		{"sphere 5", Command{Name: "sphere", Args: []string{"5"}}, true},
		{"  REFLECT   x ", Command{Name: "reflect", Args: []string{"x"}}, true},
		{"start", Command{Name: "start", Args: []string{}}, true},
		{"", Command{}, false},
		{"   ", Command{}, false},
		{"# comment", Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseCommand(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecuteDrivesEngine(t *testing.T) {
	sched := platform.NewManualScheduler()
	tg, e := newTestbedEngine(t, sched)
	var out bytes.Buffer

	run := func(line string) error {
		cmd, ok := ParseCommand(line)
		require.True(t, ok)
		quit, err := Execute(e, cmd, &out)
		assert.False(t, quit)
		return err
	}

	require.NoError(t, run("cylinder 3"))
	require.NoError(t, run("project z"))
	assert.Equal(t, resources.Projection(math.AxisZ), e.Transformation())

	require.NoError(t, run("start"))
	sched.Advance(3 * 50 * time.Millisecond)
	require.NoError(t, run("stop"))
	assert.Equal(t, int64(3), e.Angle())
	assert.Equal(t, int64(3), tg.LastAngle())

	require.NoError(t, run("none"))
	assert.Equal(t, resources.NoTransformation(), e.Transformation())

	require.NoError(t, run("status"))
	assert.Contains(t, out.String(), "solid=cylinder(r=3, h=2)")
	assert.Contains(t, out.String(), "angle=3")

	require.NoError(t, run("clear"))
	_, ok := e.Solid()
	assert.False(t, ok)
	assert.ErrorIs(t, run("redraw"), core.ErrNoSolidSelected)
}

func TestExecuteErrors(t *testing.T) {
	_, e := newTestbedEngine(t, platform.NewManualScheduler())

	tests := []struct {
		line string
		want error
	}{
		{"sphere", ErrBadArguments},
		{"sphere big", ErrBadArguments},
		{"sphere 500", core.ErrInvalidRadius},
		{"reflect w", core.ErrInvalidAxis},
		{"project", ErrBadArguments},
		{"dance", ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, _ := ParseCommand(tt.line)
			_, err := Execute(e, cmd, &bytes.Buffer{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
	_, ok := e.Solid()
	assert.False(t, ok)
}

func TestExecuteQuit(t *testing.T) {
	_, e := newTestbedEngine(t, platform.NewManualScheduler())
	quit, err := Execute(e, Command{Name: "quit"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestReadCommandsStopsAtQuit(t *testing.T) {
	loop := platform.NewEventLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	tg, e := newTestbedEngine(t, loop)
	input := strings.NewReader("sphere 5\n\nbogus\nreflect y\nstatus\nquit\nsphere 6\n")
	var out bytes.Buffer
	quitCalls := 0

	ReadCommands(input, loop, e, &out, func() { quitCalls++ })

	assert.Equal(t, 1, quitCalls)
	assert.Contains(t, out.String(), "error: unknown command")
	assert.Contains(t, out.String(), "solid=sphere(r=5)")
	require.NoError(t, loop.Call(func() error {
		solid, ok := e.Solid()
		assert.True(t, ok)
		assert.Equal(t, 5.0, solid.Radius)
		assert.Equal(t, resources.Reflection(math.AxisY), e.Transformation())
		// sphere 5 and reflect y each drew one frame.
		assert.Equal(t, uint64(2), tg.Frames())
		return nil
	}))
}

func TestTestGameCountsEmptyFrames(t *testing.T) {
	tg, e := newTestbedEngine(t, platform.NewManualScheduler())
	assert.ErrorIs(t, e.Redraw(), core.ErrNoSolidSelected)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))

	state := tg.State.(*gameState)
	assert.Equal(t, uint64(2), state.frames)
	assert.Equal(t, uint64(1), state.emptyFrame)
	assert.Equal(t, 100, state.lastPoints)
	require.NoError(t, e.Shutdown())
}
