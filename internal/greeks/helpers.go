package greeks

import (
	"math"

	"github.com/aristath/pricer-engine/internal/perrors"
)

var errUnknownModel = &perrors.InvalidInput{Msg: "unknown stochastic model kind in dual replay"}

func sqrtFloat(x float64) float64 { return math.Sqrt(x) }

func sqrt1MinusRho2(rho float64) float64 { return math.Sqrt(1 - rho*rho) }
