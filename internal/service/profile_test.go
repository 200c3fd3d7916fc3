package service_test

import (
	"testing"

	"github.com/saadjs/lifelog/internal/model"
	"github.com/saadjs/lifelog/internal/service"
)

func TestSetProfileStoresTargetAndSyncsWeeklyGoals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	target, err := service.SetProfile(db, service.ProfileInput{
		HeightCm:      175,
		WeightKg:      70,
		Age:           25,
		Gender:        "male",
		ActivityLevel: "moderately-active",
		GoalType:      "maintain",
	})
	if err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if target.TargetCalories != 2594 || target.TargetProtein != 126 || target.TargetFats != 72 || target.TargetCarbs != 361 {
		t.Fatalf("unexpected target %+v", target)
	}

	stored, err := service.CurrentProfile(db)
	if err != nil {
		t.Fatalf("current profile: %v", err)
	}
	if stored == nil {
		t.Fatalf("expected stored profile")
	}
	if stored.ActivityLevel != model.ActivityModeratelyActive || stored.Gender != model.GenderMale || stored.TargetCalories != 2594 {
		t.Fatalf("unexpected stored profile %+v", stored)
	}

	goals, err := service.WeeklyGoals(db)
	if err != nil {
		t.Fatalf("weekly goals: %v", err)
	}
	if goals.CalorieTarget != 2594 || goals.ProteinTarget != 126 || goals.CarbsTarget != 361 || goals.FatsTarget != 72 {
		t.Fatalf("expected macro goals synced from profile, got %+v", goals)
	}
	if goals.StudyHours != 20 || goals.WorkoutDays != 5 || goals.TasksTarget != 15 {
		t.Fatalf("expected non-nutrition goals untouched, got %+v", goals)
	}
}

func TestSetProfileReplacesAndKeepsCreatedAt(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	in := service.ProfileInput{HeightCm: 165, WeightKg: 60, Age: 30, Gender: "FEMALE", ActivityLevel: "SEDENTARY", GoalType: "CUT"}
	first, err := service.SetProfile(db, in)
	if err != nil {
		t.Fatalf("set first profile: %v", err)
	}
	if first.TargetCalories != 1284 {
		t.Fatalf("expected 1284 kcal cut target, got %d", first.TargetCalories)
	}

	in.GoalType = "bulk"
	second, err := service.SetProfile(db, in)
	if err != nil {
		t.Fatalf("set second profile: %v", err)
	}
	if second.TargetCalories != 1884 {
		t.Fatalf("expected 1884 kcal bulk target, got %d", second.TargetCalories)
	}
	stored, err := service.CurrentProfile(db)
	if err != nil {
		t.Fatalf("current profile: %v", err)
	}
	if stored.GoalType != model.GoalBulk {
		t.Fatalf("expected bulk goal, got %s", stored.GoalType)
	}
	if !stored.CreatedAt.Equal(first.CreatedAt.UTC()) {
		t.Fatalf("expected created_at preserved: first=%s stored=%s", first.CreatedAt, stored.CreatedAt)
	}
}

func TestSetProfileValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	valid := service.ProfileInput{HeightCm: 175, WeightKg: 70, Age: 25, Gender: "male", ActivityLevel: "sedentary", GoalType: "cut"}
	cases := map[string]func(*service.ProfileInput){
		"zero height":     func(p *service.ProfileInput) { p.HeightCm = 0 },
		"negative weight": func(p *service.ProfileInput) { p.WeightKg = -1 },
		"zero age":        func(p *service.ProfileInput) { p.Age = 0 },
		"bad gender":      func(p *service.ProfileInput) { p.Gender = "other" },
		"bad activity":    func(p *service.ProfileInput) { p.ActivityLevel = "couch" },
		"bad goal":        func(p *service.ProfileInput) { p.GoalType = "recomp" },
	}
	for name, mutate := range cases {
		in := valid
		mutate(&in)
		if _, err := service.SetProfile(db, in); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	stored, err := service.CurrentProfile(db)
	if err != nil {
		t.Fatalf("current profile: %v", err)
	}
	if stored != nil {
		t.Fatalf("expected no profile after failed writes, got %+v", stored)
	}
}

func TestClearProfile(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.SetProfile(db, service.ProfileInput{HeightCm: 180, WeightKg: 80, Age: 30, Gender: "male", ActivityLevel: "lightly_active", GoalType: "bulk"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if err := service.ClearProfile(db); err != nil {
		t.Fatalf("clear profile: %v", err)
	}
	stored, err := service.CurrentProfile(db)
	if err != nil {
		t.Fatalf("current profile: %v", err)
	}
	if stored != nil {
		t.Fatalf("expected profile cleared, got %+v", stored)
	}
}
