// Package console implements a line-oriented query console bound to a
// marker field. All coupling to the host entity model lives here; the geo
// package sees entities only through its structural interfaces.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dkriz/proximity/geo"
	"github.com/dkriz/proximity/internal/field"
)

// World provides the console with field snapshots. Decouples the console
// from the concrete Field implementation for testing.
type World interface {
	Snapshot() *field.Snapshot
}

// Options configures console output.
type Options struct {
	// CRLF terminates output lines with \r\n instead of \n. Raw PTYs
	// (SSH sessions) need this to keep columns aligned.
	CRLF bool
}

// Console reads query commands from a session and answers them against
// the current field snapshot.
type Console struct {
	world World
	in    *bufio.Reader
	out   io.Writer
	eol   string
}

// New creates a console reading commands from in and writing to out.
func New(world World, in io.Reader, out io.Writer, opts Options) *Console {
	eol := "\n"
	if opts.CRLF {
		eol = "\r\n"
	}
	return &Console{
		world: world,
		in:    bufio.NewReader(in),
		out:   out,
		eol:   eol,
	}
}

// Run processes commands until quit or EOF. Command errors are reported
// to the session, not returned.
func (c *Console) Run() error {
	c.printf("proximity console - 'help' lists commands")

	for {
		fmt.Fprint(c.out, "> ")

		line, err := c.in.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if quit := c.dispatch(trimmed); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
	}
}

// dispatch runs a single command line. Returns true when the session
// should end.
func (c *Console) dispatch(line string) bool {
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help":
		c.cmdHelp()
	case "list":
		c.cmdList()
	case "stats":
		c.cmdStats()
	case "range":
		c.cmdRange(args)
	case "near":
		c.cmdNear(args)
	case "at":
		c.cmdAt(args)
	case "hit":
		c.cmdHit(args)
	case "quit", "exit":
		c.printf("bye")
		return true
	default:
		c.printf("unknown command %q - try 'help'", cmd)
	}
	return false
}

func (c *Console) cmdHelp() {
	c.printf("commands:")
	c.printf("  list             all markers")
	c.printf("  range X Y R      markers whose circle touches the query circle")
	c.printf("  near X Y         marker closest to the point")
	c.printf("  at X Y           markers containing the point")
	c.printf("  hit ID ID        do two markers touch or overlap")
	c.printf("  stats            field tick and contact count")
	c.printf("  quit             leave")
}

func (c *Console) cmdList() {
	snap := c.world.Snapshot()
	if len(snap.Markers) == 0 {
		c.printf("no markers")
		return
	}
	c.printMarkerHeader()
	for _, m := range snap.Markers {
		c.printMarker(m)
	}
}

func (c *Console) cmdStats() {
	snap := c.world.Snapshot()
	c.printf("tick=%d markers=%d contacts=%d world=%.0fx%.0f",
		snap.Tick, len(snap.Markers), snap.Contacts, snap.Width, snap.Height)
}

func (c *Console) cmdRange(args []string) {
	nums, err := parseFloats(args, 3)
	if err != nil {
		c.printf("usage: range X Y R")
		return
	}

	snap := c.world.Snapshot()
	hits := geo.InRange(snap.Markers, nums[0], nums[1], nums[2])
	if len(hits) == 0 {
		c.printf("no markers in range")
		return
	}
	c.printMarkerHeader()
	for _, m := range hits {
		c.printMarker(m)
	}
}

func (c *Console) cmdNear(args []string) {
	nums, err := parseFloats(args, 2)
	if err != nil {
		c.printf("usage: near X Y")
		return
	}

	snap := c.world.Snapshot()
	m, ok := geo.Closest(snap.Markers, nums[0], nums[1])
	if !ok {
		c.printf("no markers")
		return
	}
	c.printf("marker %d at (%.2f, %.2f), distance %.2f",
		m.ID, m.X, m.Y, geo.Distance(nums[0], nums[1], m.X, m.Y))
}

func (c *Console) cmdAt(args []string) {
	nums, err := parseFloats(args, 2)
	if err != nil {
		c.printf("usage: at X Y")
		return
	}

	snap := c.world.Snapshot()
	found := false
	for _, m := range snap.Markers {
		if geo.PointInCircle(nums[0], nums[1], m.X, m.Y, m.R) {
			if !found {
				c.printMarkerHeader()
				found = true
			}
			c.printMarker(m)
		}
	}
	if !found {
		c.printf("no marker contains (%.2f, %.2f)", nums[0], nums[1])
	}
}

func (c *Console) cmdHit(args []string) {
	if len(args) != 2 {
		c.printf("usage: hit ID ID")
		return
	}

	snap := c.world.Snapshot()
	a, okA := findMarker(snap, args[0])
	b, okB := findMarker(snap, args[1])
	if !okA || !okB {
		c.printf("unknown marker id")
		return
	}

	if geo.Collide(a, b) {
		c.printf("markers %d and %d touch", a.ID, b.ID)
	} else {
		c.printf("markers %d and %d are apart", a.ID, b.ID)
	}
}

func (c *Console) printMarkerHeader() {
	c.printf("  id        x        y      r")
}

func (c *Console) printMarker(m field.Marker) {
	c.printf("%4d %8.2f %8.2f %6.2f", m.ID, m.X, m.Y, m.R)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+c.eol, args...)
}

// parseFloats parses exactly want float arguments.
func parseFloats(args []string, want int) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("want %d arguments, got %d", want, len(args))
	}
	nums := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", arg, err)
		}
		nums[i] = v
	}
	return nums, nil
}

// findMarker resolves a marker by its decimal ID.
func findMarker(snap *field.Snapshot, arg string) (field.Marker, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return field.Marker{}, false
	}
	for _, m := range snap.Markers {
		if m.ID == id {
			return m, true
		}
	}
	return field.Marker{}, false
}
