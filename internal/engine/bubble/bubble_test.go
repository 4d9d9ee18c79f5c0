package bubble

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type BubbleEngineSuite struct {
	suite.Suite
}

const (
	width  = 400.0
	height = 600.0
)

func newEngine(labels ...string) *Engine {
	return New(labels, width, height, rand.New(rand.NewSource(42)))
}

func (s *BubbleEngineSuite) TestRadiusFor(t provider.T) {
	t.Parallel()

	assert.Equal(t, 40.0+2*8, RadiusFor("Thriller"))
	// Length factor is clamped at 80.
	assert.Equal(t, 120.0, RadiusFor("An Extremely Long Hypothetical Genre Label Name"))
}

func (s *BubbleEngineSuite) TestSeedingStaysInBounds(t provider.T) {
	t.Parallel()

	e := newEngine(DefaultGenres...)
	for _, tok := range e.Tokens() {
		assert.GreaterOrEqual(t, tok.X, tok.Radius)
		assert.LessOrEqual(t, tok.X, width-tok.Radius)
		assert.GreaterOrEqual(t, tok.Y, tok.Radius)
		assert.LessOrEqual(t, tok.Y, height-tok.Radius)
	}
}

func (s *BubbleEngineSuite) TestWallReflection(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		place  func(tok *Token)
		verify func(t provider.T, tok Token)
	}{
		{
			name: "Should reflect off the left wall",
			place: func(tok *Token) {
				tok.X = tok.Radius + 0.01
				tok.VX = -1
			},
			verify: func(t provider.T, tok Token) {
				assert.Equal(t, tok.Radius, tok.X)
				assert.Positive(t, tok.VX)
			},
		},
		{
			name: "Should reflect off the right wall",
			place: func(tok *Token) {
				tok.X = width - tok.Radius - 0.01
				tok.VX = 1
			},
			verify: func(t provider.T, tok Token) {
				assert.Equal(t, width-tok.Radius, tok.X)
				assert.Negative(t, tok.VX)
			},
		},
		{
			name: "Should reflect off the top wall",
			place: func(tok *Token) {
				tok.Y = tok.Radius + 0.01
				tok.VY = -1
			},
			verify: func(t provider.T, tok Token) {
				assert.Equal(t, tok.Radius, tok.Y)
				assert.Positive(t, tok.VY)
			},
		},
		{
			name: "Should reflect off the bottom wall",
			place: func(tok *Token) {
				tok.Y = height - tok.Radius - 0.01
				tok.VY = 1
			},
			verify: func(t provider.T, tok Token) {
				assert.Equal(t, height-tok.Radius, tok.Y)
				assert.Negative(t, tok.VY)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			e := newEngine("Thriller")
			tok := &e.tokens[0]
			tok.X, tok.Y = width/2, height/2
			tok.VX, tok.VY = 0, 0
			tc.place(tok)

			e.Step()

			got := e.Tokens()[0]
			tc.verify(t, got)
			assert.GreaterOrEqual(t, got.X, got.Radius)
			assert.LessOrEqual(t, got.X, width-got.Radius)
			assert.GreaterOrEqual(t, got.Y, got.Radius)
			assert.LessOrEqual(t, got.Y, height-got.Radius)
		})
	}
}

func (s *BubbleEngineSuite) TestCollisionSwapsVelocitiesAndSeparates(t provider.T) {
	t.Parallel()

	e := newEngine("Thriller", "Art House")
	a := &e.tokens[0]
	b := &e.tokens[1]

	// Deep overlap on a collision course.
	a.X, a.Y, a.VX, a.VY = width/2-10, height/2, 0.2, 0
	b.X, b.Y, b.VX, b.VY = width/2+10, height/2, -0.2, 0

	e.Step()

	got := e.Tokens()
	dist := math.Hypot(got[1].X-got[0].X, got[1].Y-got[0].Y)
	assert.GreaterOrEqual(t, dist, got[0].Radius+got[1].Radius-1e-9)

	// Velocities exchanged: each token now carries the other's vector.
	assert.Equal(t, -0.2, got[0].VX)
	assert.Equal(t, 0.2, got[1].VX)
}

func (s *BubbleEngineSuite) TestCollisionCourseConverges(t provider.T) {
	t.Parallel()

	e := newEngine("Thriller", "Film Noir")
	a := &e.tokens[0]
	b := &e.tokens[1]
	a.X, a.Y, a.VX, a.VY = a.Radius+10, height/2, 2, 0
	b.X, b.Y, b.VX, b.VY = width-b.Radius-10, height/2, -2, 0

	for i := 0; i < 200; i++ {
		e.Step()
		got := e.Tokens()
		dist := math.Hypot(got[1].X-got[0].X, got[1].Y-got[0].Y)
		assert.GreaterOrEqual(t, dist, got[0].Radius+got[1].Radius-1e-9)
	}
}

func (s *BubbleEngineSuite) TestCoincidentCentersStillSeparate(t provider.T) {
	t.Parallel()

	e := newEngine("Thriller", "Thriller II")
	a := &e.tokens[0]
	b := &e.tokens[1]
	a.X, a.Y = width/2, height/2
	b.X, b.Y = width/2, height/2
	a.VX, a.VY, b.VX, b.VY = 0, 0, 0, 0

	e.Step()

	got := e.Tokens()
	dist := math.Hypot(got[1].X-got[0].X, got[1].Y-got[0].Y)
	assert.GreaterOrEqual(t, dist, got[0].Radius+got[1].Radius-1e-9)
}

func (s *BubbleEngineSuite) TestSelectionRules(t provider.T) {
	t.Parallel()

	t.Run("Should cap selection at three", func(t provider.T) {
		e := newEngine(DefaultGenres...)

		for _, label := range DefaultGenres[:3] {
			assert.NoError(t, e.Toggle(label))
		}
		assert.True(t, e.CanConfirm())

		// A 4th pick is a silent no-op.
		assert.NoError(t, e.Toggle(DefaultGenres[3]))
		assert.ElementsMatch(t, DefaultGenres[:3], e.Selected())
	})

	t.Run("Should always allow deselection", func(t provider.T) {
		e := newEngine(DefaultGenres...)
		for _, label := range DefaultGenres[:3] {
			assert.NoError(t, e.Toggle(label))
		}

		assert.NoError(t, e.Toggle(DefaultGenres[0]))
		assert.Equal(t, 2, e.SelectedCount())
		assert.False(t, e.CanConfirm())
	})

	t.Run("Should reject unknown labels", func(t provider.T) {
		e := newEngine(DefaultGenres...)
		assert.ErrorIs(t, e.Toggle("Mockbuster"), ErrUnknownLabel)
	})
}

func (s *BubbleEngineSuite) TestConfirm(t provider.T) {
	t.Parallel()

	t.Run("Should refuse with fewer than three selected", func(t provider.T) {
		e := newEngine(DefaultGenres...)
		_ = e.Toggle("Thriller")

		_, err := e.Confirm()
		assert.ErrorIs(t, err, ErrNotEnoughSelected)
	})

	t.Run("Should return exactly the three selected labels", func(t provider.T) {
		e := newEngine(DefaultGenres...)
		picked := []string{"Film Noir", "Dark Comedy", "Thriller"}
		for _, label := range picked {
			assert.NoError(t, e.Toggle(label))
		}

		labels, err := e.Confirm()
		assert.NoError(t, err)
		assert.ElementsMatch(t, picked, labels)
	})
}

func TestBubbleEngineSuite(t *testing.T) {
	suite.RunSuite(t, new(BubbleEngineSuite))
}
