package rules

import (
	"math"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
)

// WeightDelta is the remaining distance to the desired weight. It is
// recomputed wherever it is displayed, never stored.
func WeightDelta(currentKG, desiredKG int) int {
	delta := currentKG - desiredKG
	if delta < 0 {
		delta = -delta
	}
	return delta
}

// WeeklyRateKG maps a pace choice to its weekly weight-change rate.
func WeeklyRateKG(pace enums.Pace) float64 {
	switch pace {
	case enums.PaceKoala:
		return 0.1
	case enums.PaceRabbit:
		return 0.8
	case enums.PacePuma:
		return 1.5
	default:
		return 0
	}
}

// WeeksToGoal estimates how many full weeks the chosen pace needs to
// cover the weight delta. Zero delta or an unknown pace yields zero.
func WeeksToGoal(currentKG, desiredKG int, pace enums.Pace) int {
	delta := WeightDelta(currentKG, desiredKG)
	rate := WeeklyRateKG(pace)
	if delta == 0 || rate <= 0 {
		return 0
	}
	return int(math.Ceil(float64(delta) / rate))
}
