package physics

import "time"

// DefaultStatsWindow is the rolling window, in seconds, of a FrameCounter.
const DefaultStatsWindow = 0.25

// FrameCounter keeps a rolling window of frame durations. Sub-frames started
// and ended within one frame are summed into that frame.
type FrameCounter struct {
	window     float64
	frames     []float64
	frameSum   float64
	time       float64
	frameCount uint64

	subStart time.Time
	pending  float64
}

func NewFrameCounter(window float64) *FrameCounter {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	return &FrameCounter{window: window}
}

func (c *FrameCounter) BeginSubFrame() {
	c.subStart = time.Now()
}

func (c *FrameCounter) EndSubFrame() {
	c.pending += time.Since(c.subStart).Seconds()
}

// EndFrame records the sub-frame time gathered since the previous EndFrame.
func (c *FrameCounter) EndFrame() float64 {
	dt := c.pending
	c.pending = 0
	c.Frame(dt)
	return dt
}

// Frame records one frame of dt seconds.
func (c *FrameCounter) Frame(dt float64) {
	c.time += dt
	c.frameCount++
	c.frameSum += dt
	c.frames = append(c.frames, dt)
	for len(c.frames) > 1 && c.frameSum-c.frames[0] > c.window {
		c.frameSum -= c.frames[0]
		c.frames = c.frames[1:]
	}
}

// Framerate is frames per second over the window.
func (c *FrameCounter) Framerate() float64 {
	return float64(len(c.frames)) / c.window
}

// Frametime is the mean frame duration over the window.
func (c *FrameCounter) Frametime() float64 {
	if len(c.frames) == 0 {
		return 0
	}
	return c.frameSum / float64(len(c.frames))
}

func (c *FrameCounter) FrameCount() uint64 {
	return c.frameCount
}

// Time is the total recorded time.
func (c *FrameCounter) Time() float64 {
	return c.time
}

// PhaseStats is a snapshot of one FrameCounter.
type PhaseStats struct {
	Frametime float64 `json:"frametime"`
	Framerate float64 `json:"framerate"`
	Total     float64 `json:"total"`
}

func (c *FrameCounter) snapshot() PhaseStats {
	return PhaseStats{
		Frametime: c.Frametime(),
		Framerate: c.Framerate(),
		Total:     c.Time(),
	}
}

// Stats summarizes the solver's work since it was created.
type Stats struct {
	Frames      uint64     `json:"frames"`
	Groups      uint64     `json:"groups"`
	Substeps    uint64     `json:"substeps"`
	Particles   int        `json:"particles"`
	BroadPhase  PhaseStats `json:"broad_phase"`
	NarrowPhase PhaseStats `json:"narrow_phase"`
	Integrate   PhaseStats `json:"integrate"`
	Links       PhaseStats `json:"links"`
}
