// Package field hosts a shared world of drifting circular markers used to
// exercise the geo queries. The field owns all marker state and lifecycle;
// the geometry package stays a stateless function library underneath it.
package field

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/dkriz/proximity/geo"
)

// Marker is a positioned, radius-bearing entity drifting through the
// field. Markers wrap around the world edges.
type Marker struct {
	ID     int
	X, Y   float64
	VX, VY float64
	R      float64
}

// Position implements geo.Positioned.
func (m Marker) Position() (float64, float64) { return m.X, m.Y }

// Radius implements geo.Collidable.
func (m Marker) Radius() float64 { return m.R }

// Config holds the world dimensions and spawn parameters.
type Config struct {
	Width     float64
	Height    float64
	Markers   int
	MinRadius float64
	MaxRadius float64
	MaxSpeed  float64       // units per second, per axis
	Tick      time.Duration // target frame time for Run
	Seed      int64         // spawn/velocity RNG seed
}

// DefaultConfig returns a small field suitable for an interactive session.
func DefaultConfig() Config {
	return Config{
		Width:     100,
		Height:    100,
		Markers:   24,
		MinRadius: 0.5,
		MaxRadius: 3.0,
		MaxSpeed:  4.0,
		Tick:      50 * time.Millisecond,
		Seed:      time.Now().UnixNano(),
	}
}

// Field manages marker state and advances it on a fixed tick.
// Run mutates state from a single goroutine; readers only ever see the
// immutable snapshots it publishes.
type Field struct {
	cfg      Config
	markers  []Marker
	tick     uint64
	snapshot atomic.Pointer[Snapshot]
}

// Snapshot is an immutable copy of the field for queries. Contacts is the
// number of touching marker pairs at the time of the snapshot.
type Snapshot struct {
	Markers  []Marker
	Tick     uint64
	Contacts int
	Width    float64
	Height   float64
}

// New creates a field with cfg.Markers markers at seeded random positions,
// radii, and velocities, and publishes the initial snapshot.
func New(cfg Config) *Field {
	if cfg.Markers < 0 {
		cfg.Markers = 0
	}
	if cfg.MaxRadius < cfg.MinRadius {
		cfg.MaxRadius = cfg.MinRadius
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 50 * time.Millisecond
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	markers := make([]Marker, cfg.Markers)
	for i := range markers {
		markers[i] = Marker{
			ID: i + 1,
			X:  rng.Float64() * cfg.Width,
			Y:  rng.Float64() * cfg.Height,
			VX: (rng.Float64()*2 - 1) * cfg.MaxSpeed,
			VY: (rng.Float64()*2 - 1) * cfg.MaxSpeed,
			R:  cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius),
		}
	}

	f := &Field{cfg: cfg, markers: markers}
	f.publish()
	return f
}

// Run advances the field until the context is cancelled. Blocks.
func (f *Field) Run(ctx context.Context) {
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		f.Advance(dt)

		elapsed := time.Since(frameStart)
		if elapsed < f.cfg.Tick {
			time.Sleep(f.cfg.Tick - elapsed)
		}
	}
}

// Advance moves every marker by dt seconds, wraps positions at the world
// edges, and publishes a new snapshot. Not safe for concurrent use with
// itself; Run is the only caller in normal operation.
func (f *Field) Advance(dt float64) {
	for i := range f.markers {
		m := &f.markers[i]
		m.X = wrap(m.X+m.VX*dt, f.cfg.Width)
		m.Y = wrap(m.Y+m.VY*dt, f.cfg.Height)
	}
	f.tick++
	f.publish()
}

// Snapshot returns the most recently published field state.
func (f *Field) Snapshot() *Snapshot {
	return f.snapshot.Load()
}

func (f *Field) publish() {
	markers := make([]Marker, len(f.markers))
	copy(markers, f.markers)

	f.snapshot.Store(&Snapshot{
		Markers:  markers,
		Tick:     f.tick,
		Contacts: contactPairs(markers),
		Width:    f.cfg.Width,
		Height:   f.cfg.Height,
	})
}

// contactPairs counts touching marker pairs with a plain pairwise scan.
func contactPairs(markers []Marker) int {
	contacts := 0
	for i := 0; i < len(markers); i++ {
		for j := i + 1; j < len(markers); j++ {
			if geo.Collide(markers[i], markers[j]) {
				contacts++
			}
		}
	}
	return contacts
}

// wrap folds v into [0, max) around the world edges.
func wrap(v, max float64) float64 {
	if max <= 0 {
		return v
	}
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	return v
}
