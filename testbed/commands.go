package testbed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spaghettifunk/gyre/engine"
	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/platform"
	"github.com/spaghettifunk/gyre/engine/resources"
)

var ErrUnknownCommand = errors.New("unknown command")

var ErrBadArguments = errors.New("bad arguments")

// Command is one parsed line of input, e.g. "sphere 5" or "reflect x".
type Command struct {
	Name string
	Args []string
}

const helpText = `commands:
  sphere R | cylinder R   select a solid with radius R
  reflect AXIS            reflect across the plane orthogonal to AXIS (x, y, z)
  project AXIS            project onto AXIS and show the complement
  none                    drop the transformation
  start | stop            control the animation
  clear                   stop and empty the scene
  redraw                  render the current state
  status                  print the current state
  quit                    exit`

// ParseCommand splits a line into a command name and its arguments. Blank
// lines and lines starting with # yield a zero Command and ok false.
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, false
	}
	fields := strings.Fields(line)
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// Execute runs cmd against e. It must be called on the engine's event
// context. quit reports whether the caller should stop reading commands.
func Execute(e *engine.Engine, cmd Command, out io.Writer) (quit bool, err error) {
	switch cmd.Name {
	case "sphere", "cylinder":
		kind, err := resources.ParseSolidKind(cmd.Name)
		if err != nil {
			return false, err
		}
		radius, err := singleFloat(cmd)
		if err != nil {
			return false, err
		}
		return false, e.SelectSolid(kind, radius)

	case "reflect", "project":
		if len(cmd.Args) != 1 {
			return false, fmt.Errorf("%w: %s expects an axis", ErrBadArguments, cmd.Name)
		}
		axis, ok := math.ParseAxis(cmd.Args[0])
		if !ok {
			return false, fmt.Errorf("%w: %q", core.ErrInvalidAxis, cmd.Args[0])
		}
		choice := resources.Reflection(axis)
		if cmd.Name == "project" {
			choice = resources.Projection(axis)
		}
		return false, e.SelectTransformation(choice)

	case "none":
		return false, e.SelectTransformation(resources.NoTransformation())

	case "start":
		return false, e.Start()

	case "stop":
		e.Stop()
		return false, nil

	case "clear":
		e.Clear()
		return false, nil

	case "redraw":
		return false, e.Redraw()

	case "status":
		printStatus(e, out)
		return false, nil

	case "help":
		fmt.Fprintln(out, helpText)
		return false, nil

	case "quit", "exit":
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
}

// ReadCommands reads lines from r and executes each one on loop until r is
// exhausted, a quit command is read or the loop stops. quit is called once
// on the way out.
func ReadCommands(r io.Reader, loop *platform.EventLoop, e *engine.Engine, out io.Writer, quit func()) {
	defer quit()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, ok := ParseCommand(scanner.Text())
		if !ok {
			continue
		}

		var done bool
		err := loop.Call(func() error {
			var err error
			done, err = Execute(e, cmd, out)
			return err
		})
		if errors.Is(err, core.ErrLoopStopped) {
			return
		}
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
		}
		if done {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		core.LogError("reading commands: %s", err)
	}
}

func singleFloat(cmd Command) (float64, error) {
	if len(cmd.Args) != 1 {
		return 0, fmt.Errorf("%w: %s expects a radius", ErrBadArguments, cmd.Name)
	}
	v, err := strconv.ParseFloat(cmd.Args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadArguments, err)
	}
	return v, nil
}

func printStatus(e *engine.Engine, out io.Writer) {
	solid := "none"
	if s, ok := e.Solid(); ok {
		solid = s.String()
	}
	bounds := e.RadiusBounds()
	fmt.Fprintf(out, "solid=%s transformation=%s angle=%d animation=%s frames=%d radius=[%g, %g] tps=%.1f\n",
		solid, e.Transformation(), e.Angle(), e.AnimationStage(), e.FrameNumber(),
		bounds.Min, bounds.Max, e.Metrics().TicksPerSecond())
}
