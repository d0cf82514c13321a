package milp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/optkit/bnb/pkg/bnb"
	milpinput "github.com/optkit/bnb/pkg/bnb/input/milp"
)

// demoObjective and demoConstraints describe the example instance
//
//	optimize x1 + 1.2 x2 + 3.2 x3
//	s.t.     0.5 x1 + 3.1 x2 + 4.2 x3 <= 6.1
//	         1.9 x1 + 0.7 x2 + 0.2 x3 <= 8.1
//	         2.9 x1 - 2.3 x2 + 4.2 x3 <= 10.5
//	         x >= 0, integer
//
// maximized as-is, or minimized with the constraint senses reversed.
var (
	demoObjective   = []float64{1, 1.2, 3.2}
	demoConstraints = []float64{
		0.5, 3.1, 4.2,
		1.9, 0.7, 0.2,
		2.9, -2.3, 4.2,
	}
	demoRHS = []float64{6.1, 8.1, 10.5}
)

// NewDemoProblem builds the demo instance in the requested sense. For
// Minimize the rows flip from Gx <= h to Gx >= h, expressed by negating
// both sides.
func NewDemoProblem(sense bnb.Sense) (*milpinput.Problem, error) {
	g := mat.NewDense(3, 3, append([]float64(nil), demoConstraints...))
	h := append([]float64(nil), demoRHS...)
	if sense == bnb.Minimize {
		g.Scale(-1, g)
		for i := range h {
			h[i] = -h[i]
		}
	}
	return milpinput.New(sense, demoObjective, g, h)
}
