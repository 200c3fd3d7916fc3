package metrics

import (
	"fmt"

	"github.com/saadjs/lifelog/internal/model"
)

type AlignmentStatus string

const (
	AlignmentOnTrack AlignmentStatus = "on-track"
	AlignmentOver    AlignmentStatus = "over"
	AlignmentUnder   AlignmentStatus = "under"
)

// Tolerance bands in kcal around the target, per goal type.
const (
	bulkUnderTolerance = -100
	cutOverTolerance   = 100
	maintainTolerance  = 150
)

type Alignment struct {
	Status       AlignmentStatus `json:"status"`
	Message      string          `json:"message"`
	ProteinPct   int             `json:"protein_pct"`
	CaloriesDiff int             `json:"calories_diff"`
}

// EvaluateAlignment classifies a weekly average against the active target.
// It returns nil when there is no target or nothing was logged.
func EvaluateAlignment(target *model.NutritionTarget, avg model.WeeklyAverage) *Alignment {
	if target == nil || avg.DaysLogged == 0 {
		return nil
	}

	diff := avg.Calories - target.TargetCalories
	out := &Alignment{CaloriesDiff: diff}
	if target.TargetProtein != 0 {
		out.ProteinPct = roundInt(float64(avg.Protein) / float64(target.TargetProtein) * percentageMultiplier)
	}

	switch target.GoalType {
	case model.GoalBulk:
		if diff >= bulkUnderTolerance {
			out.Status = AlignmentOnTrack
			out.Message = "Calorie surplus on track for bulking"
		} else {
			out.Status = AlignmentUnder
			out.Message = fmt.Sprintf("Eating %d kcal below bulk target", absInt(diff))
		}
	case model.GoalCut:
		if diff <= cutOverTolerance {
			out.Status = AlignmentOnTrack
			out.Message = "Calorie deficit on track for cutting"
		} else {
			out.Status = AlignmentOver
			out.Message = fmt.Sprintf("Eating %d kcal above cut target", diff)
		}
	default:
		switch {
		case absInt(diff) <= maintainTolerance:
			out.Status = AlignmentOnTrack
			out.Message = "Maintenance calories on track"
		case diff > 0:
			out.Status = AlignmentOver
			out.Message = fmt.Sprintf("%d kcal above maintenance", diff)
		default:
			out.Status = AlignmentUnder
			out.Message = fmt.Sprintf("%d kcal below maintenance", absInt(diff))
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
