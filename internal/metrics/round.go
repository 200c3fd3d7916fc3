package metrics

import "math"

const (
	dateLayout           = "2006-01-02"
	percentageMultiplier = 100
)

// roundHalfUp rounds halves toward +Inf, so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundInt(x float64) int {
	return int(roundHalfUp(x))
}

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
