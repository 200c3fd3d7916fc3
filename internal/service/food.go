package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/lifelog/internal/model"
)

var foodCategories = map[string]bool{
	"grain":     true,
	"protein":   true,
	"vegetable": true,
	"fruit":     true,
	"dairy":     true,
	"legume":    true,
	"snack":     true,
	"beverage":  true,
	"sweet":     true,
	"oil":       true,
	"spice":     true,
}

type FoodInput struct {
	Name         string
	Category     string
	Calories100g float64
	Protein100g  float64
	Carbs100g    float64
	Fats100g     float64
	ServingSize  *float64
	ServingUnit  string
}

func validateFoodInput(in FoodInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("food name is required")
	}
	if !foodCategories[normalizeName(in.Category)] {
		return fmt.Errorf("invalid food category %q", in.Category)
	}
	if err := validateNonNegativeFloat("calories per 100g", in.Calories100g); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein per 100g", in.Protein100g); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs per 100g", in.Carbs100g); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fats per 100g", in.Fats100g); err != nil {
		return err
	}
	if in.ServingSize != nil {
		if err := validatePositiveFloat("serving size", *in.ServingSize); err != nil {
			return err
		}
	}
	return nil
}

func CreateFood(db *sql.DB, in FoodInput) (model.Food, error) {
	if err := validateFoodInput(in); err != nil {
		return model.Food{}, err
	}
	existing, err := FoodByName(db, in.Name)
	if err != nil {
		return model.Food{}, err
	}
	if existing != nil {
		return model.Food{}, fmt.Errorf("food %q already exists", existing.Name)
	}

	f := model.Food{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Category:     normalizeName(in.Category),
		Calories100g: in.Calories100g,
		Protein100g:  in.Protein100g,
		Carbs100g:    in.Carbs100g,
		Fats100g:     in.Fats100g,
		ServingSize:  in.ServingSize,
		ServingUnit:  strings.TrimSpace(in.ServingUnit),
		CreatedAt:    time.Now().UTC(),
	}
	if err := insertFood(db, f); err != nil {
		return model.Food{}, err
	}
	return f, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertFood(ex execer, f model.Food) error {
	_, err := ex.Exec(`
INSERT INTO foods(id, name, name_norm, category, calories_100g, protein_100g, carbs_100g, fats_100g, serving_size, serving_unit, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, f.ID, f.Name, normalizeName(f.Name), f.Category, f.Calories100g, f.Protein100g, f.Carbs100g, f.Fats100g, f.ServingSize, f.ServingUnit, formatTimestamp(f.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert food %q: %w", f.Name, err)
	}
	return nil
}

// UpdateFood overwrites the food's values. Logged meals keep their scaled items.
func UpdateFood(db *sql.DB, name string, in FoodInput) (model.Food, error) {
	existing, err := FoodByName(db, name)
	if err != nil {
		return model.Food{}, err
	}
	if existing == nil {
		return model.Food{}, fmt.Errorf("food %q not found", name)
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = existing.Name
	}
	if strings.TrimSpace(in.Category) == "" {
		in.Category = existing.Category
	}
	if err := validateFoodInput(in); err != nil {
		return model.Food{}, err
	}
	if normalizeName(in.Name) != normalizeName(existing.Name) {
		clash, err := FoodByName(db, in.Name)
		if err != nil {
			return model.Food{}, err
		}
		if clash != nil {
			return model.Food{}, fmt.Errorf("food %q already exists", clash.Name)
		}
	}

	_, err = db.Exec(`
UPDATE foods
SET name = ?, name_norm = ?, category = ?, calories_100g = ?, protein_100g = ?, carbs_100g = ?, fats_100g = ?, serving_size = ?, serving_unit = ?
WHERE id = ?
`, strings.TrimSpace(in.Name), normalizeName(in.Name), normalizeName(in.Category), in.Calories100g, in.Protein100g, in.Carbs100g, in.Fats100g, in.ServingSize, strings.TrimSpace(in.ServingUnit), existing.ID)
	if err != nil {
		return model.Food{}, fmt.Errorf("update food %q: %w", name, err)
	}
	updated, err := FoodByName(db, in.Name)
	if err != nil {
		return model.Food{}, err
	}
	return *updated, nil
}

// FoodByName matches case-insensitively and returns nil when absent.
func FoodByName(db *sql.DB, name string) (*model.Food, error) {
	norm := normalizeName(name)
	if norm == "" {
		return nil, fmt.Errorf("food name is required")
	}
	row := db.QueryRow(`
SELECT id, name, category, calories_100g, protein_100g, carbs_100g, fats_100g, serving_size, serving_unit, created_at
FROM foods
WHERE name_norm = ?
`, norm)
	f, err := scanFood(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup food %q: %w", name, err)
	}
	return &f, nil
}

func ListFoods(db *sql.DB, category string) ([]model.Food, error) {
	query := `
SELECT id, name, category, calories_100g, protein_100g, carbs_100g, fats_100g, serving_size, serving_unit, created_at
FROM foods`
	args := make([]any, 0)
	if c := normalizeName(category); c != "" {
		query += ` WHERE category = ?`
		args = append(args, c)
	}
	query += ` ORDER BY name_norm ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	foods := make([]model.Food, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}

func DeleteFood(db *sql.DB, name string) error {
	norm := normalizeName(name)
	if norm == "" {
		return fmt.Errorf("food name is required")
	}
	res, err := db.Exec(`DELETE FROM foods WHERE name_norm = ?`, norm)
	if err != nil {
		return fmt.Errorf("delete food %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete food rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("food %q not found", name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (model.Food, error) {
	var f model.Food
	var serving sql.NullFloat64
	var created string
	if err := row.Scan(&f.ID, &f.Name, &f.Category, &f.Calories100g, &f.Protein100g, &f.Carbs100g, &f.Fats100g, &serving, &f.ServingUnit, &created); err != nil {
		return model.Food{}, err
	}
	if serving.Valid {
		v := serving.Float64
		f.ServingSize = &v
	}
	f.CreatedAt = parseTimestamp(created)
	return f, nil
}
