// Package bubble simulates the drifting genre bubbles on the onboarding
// screen: position/velocity integration with elastic wall reflection,
// pairwise collision resolution, and the pick-exactly-3 selection rules.
package bubble

import (
	"errors"
	"math"
	"math/rand"
)

const (
	baseRadius      = 40
	maxLengthFactor = 80
	maxSpeed        = 0.3
	maxSelected     = 3
)

var (
	ErrNotEnoughSelected = errors.New("exactly 3 genres must be selected")
	ErrUnknownLabel      = errors.New("unknown genre label")
)

// DefaultGenres matches the fixed onboarding genre list.
var DefaultGenres = []string{
	"Film Noir",
	"Art House",
	"Dark Comedy",
	"Coming-of-Age",
	"Thriller",
}

type Token struct {
	Label    string
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Selected bool
}

type Engine struct {
	width  float64
	height float64
	tokens []Token
}

// RadiusFor derives a bubble radius from its label length, clamped so
// long labels do not dominate the region.
func RadiusFor(label string) float64 {
	lengthFactor := math.Min(float64(len(label))*2, maxLengthFactor)
	return baseRadius + lengthFactor
}

// New seeds one token per label with random in-bounds positions and
// random velocities. rng is injected so tests can be deterministic.
func New(labels []string, width, height float64, rng *rand.Rand) *Engine {
	e := &Engine{
		width:  width,
		height: height,
		tokens: make([]Token, 0, len(labels)),
	}
	for _, label := range labels {
		r := RadiusFor(label)
		e.tokens = append(e.tokens, Token{
			Label:  label,
			X:      clamp(rng.Float64()*width, r, width-r),
			Y:      clamp(rng.Float64()*height, r, height-r),
			VX:     (rng.Float64() - 0.5) * maxSpeed,
			VY:     (rng.Float64() - 0.5) * maxSpeed,
			Radius: r,
		})
	}
	return e
}

// Step advances the simulation by one frame: integrate, reflect off the
// region walls, then resolve pairwise overlaps.
func (e *Engine) Step() {
	for i := range e.tokens {
		t := &e.tokens[i]
		t.X += t.VX
		t.Y += t.VY
		e.reflect(t)
	}

	for i := 0; i < len(e.tokens); i++ {
		for j := i + 1; j < len(e.tokens); j++ {
			e.collide(&e.tokens[i], &e.tokens[j])
		}
	}
}

// reflect clamps a token to the region and flips the velocity component
// so it points back inward. Elastic, no energy loss.
func (e *Engine) reflect(t *Token) {
	if t.X-t.Radius < 0 {
		t.X = t.Radius
		t.VX = math.Abs(t.VX)
	}
	if t.X+t.Radius > e.width {
		t.X = e.width - t.Radius
		t.VX = -math.Abs(t.VX)
	}
	if t.Y-t.Radius < 0 {
		t.Y = t.Radius
		t.VY = math.Abs(t.VY)
	}
	if t.Y+t.Radius > e.height {
		t.Y = e.height - t.Radius
		t.VY = -math.Abs(t.VY)
	}
}

// collide swaps the velocities of two overlapping tokens and separates
// them by half the overlap each along the line joining their centers.
func (e *Engine) collide(a, b *Token) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return
	}

	a.VX, b.VX = b.VX, a.VX
	a.VY, b.VY = b.VY, a.VY

	// Coincident centers have no separation axis; push apart on X.
	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}
	half := (minDist - dist) / 2
	a.X -= nx * half
	a.Y -= ny * half
	b.X += nx * half
	b.Y += ny * half

	e.reflect(a)
	e.reflect(b)
}

// Toggle flips the selection flag of the named token. Deselecting is
// always allowed; selecting a 4th token is a silent no-op.
func (e *Engine) Toggle(label string) error {
	for i := range e.tokens {
		t := &e.tokens[i]
		if t.Label != label {
			continue
		}
		if t.Selected {
			t.Selected = false
		} else if e.SelectedCount() < maxSelected {
			t.Selected = true
		}
		return nil
	}
	return ErrUnknownLabel
}

func (e *Engine) SelectedCount() int {
	n := 0
	for i := range e.tokens {
		if e.tokens[i].Selected {
			n++
		}
	}
	return n
}

// Selected returns the selected labels in token order.
func (e *Engine) Selected() []string {
	out := make([]string, 0, maxSelected)
	for i := range e.tokens {
		if e.tokens[i].Selected {
			out = append(out, e.tokens[i].Label)
		}
	}
	return out
}

func (e *Engine) CanConfirm() bool {
	return e.SelectedCount() == maxSelected
}

// Confirm returns the selected labels once exactly 3 are picked.
// Persisting them is the caller's job.
func (e *Engine) Confirm() ([]string, error) {
	if !e.CanConfirm() {
		return nil, ErrNotEnoughSelected
	}
	return e.Selected(), nil
}

// Tokens returns a snapshot safe for rendering.
func (e *Engine) Tokens() []Token {
	out := make([]Token, len(e.tokens))
	copy(out, e.tokens)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		// Region smaller than the bubble; park it at the low bound.
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
