// Package lines models the decorative background animation: a fixed set
// of angled lines revealed one at a time with a sine-eased sweep and a
// tapered lateral wiggle. Purely cosmetic; no state survives a scene.
package lines

import (
	"math"
	"math/rand"
)

const (
	totalLines   = 10
	segments     = 100
	amplitude    = 50.0
	frequency    = 0.1
	wiggleStep   = 0.02
	edgeOverhang = 20.0
	reachBeyond  = 200.0
)

// Palette cycled round-robin across the scene's lines.
var Palette = []string{
	"#FF5733", "#FFC300", "#28B463", "#2874A6",
	"#AF7AC5", "#E74C3C", "#F39C12", "#1ABC9C",
}

type Line struct {
	StartX, StartY float64
	EndX, EndY     float64
	Progress       float64
	WiggleOffset   float64
	Colour         string
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is one line sampled at the current frame, ready to stroke.
type Polyline struct {
	Colour string  `json:"colour"`
	Points []Point `json:"points"`
}

type Scene struct {
	width  float64
	height float64
	speed  float64
	lines  []Line
	active int
}

// New generates a scene for the given viewport. durationSec is the
// per-line reveal time at 60 frames per second.
func New(width, height, durationSec float64, rng *rand.Rand) *Scene {
	s := &Scene{
		width:  width,
		height: height,
		speed:  1 / (60 * durationSec),
	}
	s.generate(rng)
	return s
}

func (s *Scene) generate(rng *rand.Rand) {
	s.lines = make([]Line, 0, totalLines)
	s.active = 0

	segmentHeight := s.height / totalLines
	for i := 0; i < totalLines; i++ {
		startY := segmentHeight*float64(i) + rng.Float64()*segmentHeight*0.5
		angle := (rng.Float64() - 0.5) * math.Pi / 3
		distance := s.width + reachBeyond

		isLeft := i%2 == 0
		startX := -edgeOverhang
		dir := 1.0
		if !isLeft {
			startX = s.width + edgeOverhang
			dir = -1
		}

		s.lines = append(s.lines, Line{
			StartX:       startX,
			StartY:       startY,
			EndX:         startX + dir*distance*math.Cos(angle),
			EndY:         startY + distance*math.Sin(angle),
			WiggleOffset: rng.Float64() * 100,
			Colour:       Palette[i%len(Palette)],
		})
	}
}

// Resize regenerates the scene for new viewport dimensions. Progress
// does not carry over; the animation restarts.
func (s *Scene) Resize(width, height float64, rng *rand.Rand) {
	s.width = width
	s.height = height
	s.generate(rng)
}

// Step advances one frame: every line wiggles, only the active line's
// reveal progresses, and the active index moves on once the reveal
// completes. After the last line the scene holds its final frame.
func (s *Scene) Step() {
	for i := range s.lines {
		s.lines[i].WiggleOffset += wiggleStep
	}

	if s.active < len(s.lines) && s.lines[s.active].Progress < 1 {
		s.lines[s.active].Progress = math.Min(s.lines[s.active].Progress+s.speed, 1)
	}

	if s.active < len(s.lines)-1 && s.lines[s.active].Progress >= 1 {
		s.active++
	}
}

// Done reports whether the final line is fully revealed.
func (s *Scene) Done() bool {
	return s.active == len(s.lines)-1 && s.lines[s.active].Progress >= 1
}

func easeInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Frame samples every line at its current reveal and wiggle phase.
func (s *Scene) Frame() []Polyline {
	out := make([]Polyline, 0, len(s.lines))
	for i := range s.lines {
		out = append(out, s.sample(&s.lines[i]))
	}
	return out
}

func (s *Scene) sample(l *Line) Polyline {
	revealed := int(math.Round(segments * easeInOutSine(l.Progress)))
	points := make([]Point, 0, revealed+1)

	for i := 0; i <= revealed; i++ {
		t := float64(i) / segments
		taper := 1 - 2*math.Abs(t-0.5)
		points = append(points, Point{
			X: l.StartX + t*(l.EndX-l.StartX),
			Y: l.StartY + t*(l.EndY-l.StartY) +
				math.Sin(float64(i)*frequency+l.WiggleOffset)*amplitude*taper,
		})
	}

	return Polyline{Colour: l.Colour, Points: points}
}

// Lines exposes the raw line parameters, mostly for clients that want
// to run the reveal themselves.
func (s *Scene) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ActiveIndex returns which line is currently being revealed.
func (s *Scene) ActiveIndex() int {
	return s.active
}
