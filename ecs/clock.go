package ecs

// Clock tracks simulation time. Delta is the duration of the current tick
// in seconds.
type Clock struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

// Advance starts a new tick of length dt.
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.Delta = dt
	c.Elapsed += dt
	c.Frame++
}
