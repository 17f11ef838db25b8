package viz

import (
	"fmt"
	"io"

	"github.com/san-kum/boosterenv/internal/sim"
)

// Console implements the environment's render hook by printing a status
// line every Interval steps. It never returns errors to the simulation.
type Console struct {
	Out      io.Writer
	Interval int
}

func NewConsole(out io.Writer, interval int) *Console {
	if interval <= 0 {
		interval = 50
	}
	return &Console{Out: out, Interval: interval}
}

func (c *Console) Frame(s sim.State, step int, v sim.Verdict) {
	if v.Done() {
		fmt.Fprintf(c.Out, "step %4d  y=%8.1f vy=%7.2f alpha=%6.3f fuel=%.2f  [%s] %s\n",
			step, s.Y, s.VY, s.Alpha, s.FuelRatio, v.Outcome, v.Reason)
		return
	}
	if step%c.Interval != 0 {
		return
	}
	fmt.Fprintf(c.Out, "step %4d  y=%8.1f vy=%7.2f alpha=%6.3f fuel=%.2f\n",
		step, s.Y, s.VY, s.Alpha, s.FuelRatio)
}
