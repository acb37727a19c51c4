package warehouse

// Config holds global tuning for new worlds
var Config config = config{
	initialRows: 64,
}

type config struct {
	initialRows int
}

// SetInitialRows sets how many rows a new archetype column reserves before
// it first grows. Values below one are ignored.
func (c *config) SetInitialRows(n int) {
	if n < 1 {
		return
	}
	c.initialRows = n
}

func (c *config) InitialRows() int {
	return c.initialRows
}
