package metrics

import "github.com/saadjs/lifelog/internal/model"

// CalculateProgress is current/target as a whole percentage capped at 100.
// A zero target reports 0.
func CalculateProgress(current, target float64) int {
	if target == 0 {
		return 0
	}
	pct := roundInt(current / target * percentageMultiplier)
	if pct > 100 {
		return 100
	}
	return pct
}

type MacroShare struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatsPct    int `json:"fats_pct"`
}

// MacroPercentages splits calories from each macro by kcal/g weighting.
func MacroPercentages(protein, carbs, fats float64) MacroShare {
	proteinCal := protein * KcalPerGramProtein
	carbsCal := carbs * KcalPerGramCarbs
	fatsCal := fats * KcalPerGramFat
	total := proteinCal + carbsCal + fatsCal
	if total == 0 {
		return MacroShare{}
	}
	return MacroShare{
		ProteinPct: roundInt(proteinCal / total * percentageMultiplier),
		CarbsPct:   roundInt(carbsCal / total * percentageMultiplier),
		FatsPct:    roundInt(fatsCal / total * percentageMultiplier),
	}
}

type TargetSet struct {
	Calories int  `json:"calories"`
	Protein  int  `json:"protein_g"`
	Carbs    int  `json:"carbs_g"`
	Fats     int  `json:"fats_g"`
	Derived  bool `json:"derived"`
}

// ResolveTargets prefers each nonzero field of the nutrition target and
// falls back to the weekly defaults field by field.
func ResolveTargets(target *model.NutritionTarget, defaults model.WeeklyGoalDefaults) TargetSet {
	out := TargetSet{
		Calories: defaults.CalorieTarget,
		Protein:  defaults.ProteinTarget,
		Carbs:    defaults.CarbsTarget,
		Fats:     defaults.FatsTarget,
	}
	if target == nil {
		return out
	}
	out.Derived = true
	out.Calories = firstNonZero(target.TargetCalories, out.Calories)
	out.Protein = firstNonZero(target.TargetProtein, out.Protein)
	out.Carbs = firstNonZero(target.TargetCarbs, out.Carbs)
	out.Fats = firstNonZero(target.TargetFats, out.Fats)
	return out
}

type Progress struct {
	Calories int `json:"calories_pct"`
	Protein  int `json:"protein_pct"`
	Carbs    int `json:"carbs_pct"`
	Fats     int `json:"fats_pct"`
}

func DailyProgress(day model.DailyTotals, targets TargetSet) Progress {
	return Progress{
		Calories: CalculateProgress(day.Calories, float64(targets.Calories)),
		Protein:  CalculateProgress(day.Protein, float64(targets.Protein)),
		Carbs:    CalculateProgress(day.Carbs, float64(targets.Carbs)),
		Fats:     CalculateProgress(day.Fats, float64(targets.Fats)),
	}
}

func firstNonZero(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
