package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheBitDrifter/verlet/vmath"
)

func TestFrameCounterWindow(t *testing.T) {
	c := NewFrameCounter(0.25)
	for i := 0; i < 5; i++ {
		c.Frame(0.1)
	}

	assert.Equal(t, uint64(5), c.FrameCount())
	assert.InDelta(t, 0.5, c.Time(), 1e-9)
	assert.InDelta(t, 0.1, c.Frametime(), 1e-9)
	assert.InDelta(t, 12, c.Framerate(), 1e-9)
}

func TestFrameCounterSubFrames(t *testing.T) {
	c := NewFrameCounter(0)
	assert.Equal(t, float64(0), c.Frametime())

	c.BeginSubFrame()
	c.EndSubFrame()
	c.BeginSubFrame()
	c.EndSubFrame()
	first := c.EndFrame()
	assert.GreaterOrEqual(t, first, float64(0))

	assert.Equal(t, float64(0), c.EndFrame())
	assert.Equal(t, uint64(2), c.FrameCount())
}

func TestSolverStats(t *testing.T) {
	settings := quietSettings()
	settings.Substeps = 3
	w, s := newTestSolver(t, settings, bigBox())
	addParticle(t, w, vmath.Zero, 1, 1)

	s.Update(0.1)
	s.Update(0.1)

	stats := s.Stats()
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, uint64(2), stats.Groups)
	assert.Equal(t, uint64(6), stats.Substeps)
	assert.Equal(t, 1, stats.Particles)
	assert.Equal(t, uint64(2), s.broadPhase.FrameCount())
}
