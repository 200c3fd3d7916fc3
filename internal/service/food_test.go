package service_test

import (
	"testing"

	"github.com/saadjs/lifelog/internal/service"
)

func TestFoodCRUD(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	serving := 30.0
	created, err := service.CreateFood(db, service.FoodInput{
		Name:         "Paneer",
		Category:     "Dairy",
		Calories100g: 265,
		Protein100g:  18.3,
		Carbs100g:    1.2,
		Fats100g:     20.8,
		ServingSize:  &serving,
		ServingUnit:  "g",
	})
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if created.ID == "" || created.Category != "dairy" {
		t.Fatalf("unexpected created food %+v", created)
	}

	if _, err := service.CreateFood(db, service.FoodInput{Name: "  paneer ", Category: "dairy"}); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}

	found, err := service.FoodByName(db, "PANEER")
	if err != nil {
		t.Fatalf("food by name: %v", err)
	}
	if found == nil || found.ID != created.ID || found.ServingSize == nil || *found.ServingSize != 30 {
		t.Fatalf("unexpected lookup result %+v", found)
	}

	seedFood(t, db, "Moong dal", "legume", 347, 24, 63, 1.2)
	dairy, err := service.ListFoods(db, "dairy")
	if err != nil {
		t.Fatalf("list dairy foods: %v", err)
	}
	if len(dairy) != 1 {
		t.Fatalf("expected one dairy food, got %d", len(dairy))
	}
	all, err := service.ListFoods(db, "")
	if err != nil {
		t.Fatalf("list foods: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Moong dal" {
		t.Fatalf("expected foods ordered by name, got %+v", all)
	}

	updated, err := service.UpdateFood(db, "paneer", service.FoodInput{Calories100g: 296, Protein100g: 20, Carbs100g: 3, Fats100g: 22})
	if err != nil {
		t.Fatalf("update food: %v", err)
	}
	if updated.Name != "Paneer" || updated.Category != "dairy" || updated.Calories100g != 296 {
		t.Fatalf("unexpected updated food %+v", updated)
	}

	if err := service.DeleteFood(db, "paneer"); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	if err := service.DeleteFood(db, "paneer"); err == nil {
		t.Fatalf("expected deleting a missing food to fail")
	}
	gone, err := service.FoodByName(db, "paneer")
	if err != nil {
		t.Fatalf("food by name after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected food removed, got %+v", gone)
	}
}

func TestCreateFoodValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	zero := 0.0
	bad := []service.FoodInput{
		{Name: "", Category: "grain"},
		{Name: "Rice", Category: "cereal"},
		{Name: "Rice", Category: "grain", Protein100g: -1},
		{Name: "Rice", Category: "grain", ServingSize: &zero},
	}
	for i, in := range bad {
		if _, err := service.CreateFood(db, in); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, in)
		}
	}
}
