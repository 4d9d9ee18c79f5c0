package lines

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type LineSceneSuite struct {
	suite.Suite
}

const (
	width    = 1280.0
	height   = 720.0
	duration = 3.0
)

func newScene() *Scene {
	return New(width, height, duration, rand.New(rand.NewSource(7)))
}

func (s *LineSceneSuite) TestGeneration(t provider.T) {
	t.Parallel()

	sc := newScene()
	ls := sc.Lines()
	assert.Len(t, ls, totalLines)

	for i, l := range ls {
		if i%2 == 0 {
			assert.Equal(t, -edgeOverhang, l.StartX, "even lines start at the left edge")
			assert.Greater(t, l.EndX, l.StartX)
		} else {
			assert.Equal(t, width+edgeOverhang, l.StartX, "odd lines start at the right edge")
			assert.Less(t, l.EndX, l.StartX)
		}

		// Every line spans more than the viewport width.
		reach := math.Hypot(l.EndX-l.StartX, l.EndY-l.StartY)
		assert.InDelta(t, width+reachBeyond, reach, 1e-6)

		assert.Equal(t, Palette[i%len(Palette)], l.Colour)
		assert.Zero(t, l.Progress)
	}
}

func (s *LineSceneSuite) TestOnlyActiveLineProgresses(t provider.T) {
	t.Parallel()

	sc := newScene()
	sc.Step()

	ls := sc.Lines()
	assert.Greater(t, ls[0].Progress, 0.0)
	for _, l := range ls[1:] {
		assert.Zero(t, l.Progress)
	}
	assert.Equal(t, 0, sc.ActiveIndex())
}

func (s *LineSceneSuite) TestActiveIndexAdvancesAfterFullReveal(t provider.T) {
	t.Parallel()

	sc := newScene()
	framesPerLine := int(60 * duration)
	for i := 0; i < framesPerLine+1; i++ {
		sc.Step()
	}

	assert.Equal(t, 1.0, sc.Lines()[0].Progress)
	assert.Equal(t, 1, sc.ActiveIndex())
}

func (s *LineSceneSuite) TestHoldsOnFinalFrame(t provider.T) {
	t.Parallel()

	sc := newScene()
	framesPerLine := int(60 * duration)
	for i := 0; i < totalLines*(framesPerLine+2)+10; i++ {
		sc.Step()
	}

	assert.True(t, sc.Done())
	assert.Equal(t, totalLines-1, sc.ActiveIndex())

	// Extra frames keep wiggling but never advance past the last line.
	sc.Step()
	assert.Equal(t, totalLines-1, sc.ActiveIndex())
	assert.Equal(t, 1.0, sc.Lines()[totalLines-1].Progress)
}

func (s *LineSceneSuite) TestWiggleAdvancesEveryFrame(t provider.T) {
	t.Parallel()

	sc := newScene()
	before := sc.Lines()
	sc.Step()
	after := sc.Lines()

	for i := range after {
		assert.InDelta(t, before[i].WiggleOffset+wiggleStep, after[i].WiggleOffset, 1e-9)
	}
}

func (s *LineSceneSuite) TestWiggleTapersToZeroAtEndpoints(t provider.T) {
	t.Parallel()

	sc := newScene()
	// Fully reveal the first line so the sample covers every segment.
	sc.lines[0].Progress = 1
	pl := sc.Frame()[0]
	l := sc.Lines()[0]

	assert.Len(t, pl.Points, segments+1)

	// Endpoints carry no lateral displacement.
	assert.InDelta(t, l.StartY, pl.Points[0].Y, 1e-9)
	assert.InDelta(t, l.EndY, pl.Points[segments].Y, 1e-9)
}

func (s *LineSceneSuite) TestFrameRevealFollowsEasing(t provider.T) {
	t.Parallel()

	sc := newScene()
	sc.lines[0].Progress = 0.5
	pl := sc.Frame()[0]

	// easeInOutSine(0.5) == 0.5, so half the segments are revealed.
	assert.Len(t, pl.Points, segments/2+1)
}

func (s *LineSceneSuite) TestResizeRegeneratesScene(t provider.T) {
	t.Parallel()

	sc := newScene()
	for i := 0; i < 30; i++ {
		sc.Step()
	}

	sc.Resize(800, 600, rand.New(rand.NewSource(11)))

	assert.Equal(t, 0, sc.ActiveIndex())
	for _, l := range sc.Lines() {
		assert.Zero(t, l.Progress)
	}
}

func TestLineSceneSuite(t *testing.T) {
	suite.RunSuite(t, new(LineSceneSuite))
}
