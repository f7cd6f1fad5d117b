package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkriz/proximity/internal/field"
)

// stubWorld serves a fixed snapshot.
type stubWorld struct {
	snap *field.Snapshot
}

func (w stubWorld) Snapshot() *field.Snapshot { return w.snap }

func testWorld() stubWorld {
	return stubWorld{snap: &field.Snapshot{
		Markers: []field.Marker{
			{ID: 1, X: 0, Y: 0, R: 1},
			{ID: 2, X: 5, Y: 0, R: 1},
			{ID: 3, X: 20, Y: 20, R: 2},
		},
		Tick:     7,
		Contacts: 0,
		Width:    100,
		Height:   100,
	}}
}

// run feeds the console a script and returns everything it wrote.
func run(t *testing.T, script string) string {
	t.Helper()
	var out strings.Builder
	c := New(testWorld(), strings.NewReader(script), &out, Options{})
	require.NoError(t, c.Run())
	return out.String()
}

func TestRunQuitsOnEOF(t *testing.T) {
	out := run(t, "")
	require.Contains(t, out, "proximity console")
}

func TestRunQuitCommand(t *testing.T) {
	out := run(t, "quit\nlist\n")
	require.Contains(t, out, "bye")
	require.NotContains(t, out, "id        x") // nothing after quit
}

func TestUnknownCommand(t *testing.T) {
	out := run(t, "frobnicate\n")
	require.Contains(t, out, `unknown command "frobnicate"`)
}

func TestListCommand(t *testing.T) {
	out := run(t, "list\n")
	require.Contains(t, out, "   1     0.00     0.00   1.00")
	require.Contains(t, out, "   3    20.00    20.00   2.00")
}

func TestRangeCommand(t *testing.T) {
	// Query circle r=4 at origin: marker 1 trivially, marker 2 via
	// sum-of-radii (5 <= 4+1), marker 3 far outside.
	out := run(t, "range 0 0 4\n")
	require.Contains(t, out, "   1 ")
	require.Contains(t, out, "   2 ")
	require.NotContains(t, out, "   3 ")
}

func TestRangeCommandUsage(t *testing.T) {
	out := run(t, "range 1 2\n")
	require.Contains(t, out, "usage: range X Y R")
}

func TestNearCommand(t *testing.T) {
	out := run(t, "near 4 0\n")
	require.Contains(t, out, "marker 2 at (5.00, 0.00), distance 1.00")
}

func TestNearCommandEmptyField(t *testing.T) {
	var out strings.Builder
	w := stubWorld{snap: &field.Snapshot{}}
	c := New(w, strings.NewReader("near 0 0\n"), &out, Options{})
	require.NoError(t, c.Run())
	require.Contains(t, out.String(), "no markers")
}

func TestAtCommand(t *testing.T) {
	out := run(t, "at 0.5 0\n")
	require.Contains(t, out, "   1 ")
	require.NotContains(t, out, "   2 ")

	out = run(t, "at 50 50\n")
	require.Contains(t, out, "no marker contains (50.00, 50.00)")
}

func TestHitCommand(t *testing.T) {
	out := run(t, "hit 1 2\n")
	require.Contains(t, out, "markers 1 and 2 are apart")

	out = run(t, "hit 2 2\n")
	require.Contains(t, out, "markers 2 and 2 touch")

	out = run(t, "hit 1 99\n")
	require.Contains(t, out, "unknown marker id")
}

func TestStatsCommand(t *testing.T) {
	out := run(t, "stats\n")
	require.Contains(t, out, "tick=7 markers=3 contacts=0 world=100x100")
}

func TestCRLFOption(t *testing.T) {
	var out strings.Builder
	c := New(testWorld(), strings.NewReader("stats\n"), &out, Options{CRLF: true})
	require.NoError(t, c.Run())
	require.Contains(t, out.String(), "\r\n")
}

func TestParseFloats(t *testing.T) {
	nums, err := parseFloats([]string{"1.5", "-2"}, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, -2}, nums)

	_, err = parseFloats([]string{"x"}, 1)
	require.Error(t, err)

	_, err = parseFloats([]string{"1"}, 2)
	require.Error(t, err)
}
