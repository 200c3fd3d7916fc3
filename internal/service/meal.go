package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/lifelog/internal/metrics"
	"github.com/saadjs/lifelog/internal/model"
)

// MealItemInput references a saved food by name, or carries Manual macros
// already scaled to QuantityG.
type MealItemInput struct {
	FoodName  string
	QuantityG float64
	Manual    *metrics.MealTotals
}

type MealLogInput struct {
	Date     string
	MealType string
	Items    []MealItemInput
	// Totals is used only for quick entries without items.
	Totals *metrics.MealTotals
	Notes  string
}

// MealLogPatch leaves nil fields untouched. Setting Items recomputes the totals.
type MealLogPatch struct {
	Date     *string
	MealType *string
	Items    *[]MealItemInput
	Notes    *string
}

type MealLogFilter struct {
	FromDate string
	ToDate   string
	MealType string
	Limit    int
}

func ParseMealType(value string) (model.MealType, error) {
	mt := model.MealType(normalizeEnum(value))
	switch mt {
	case model.MealBreakfast, model.MealLunch, model.MealDinner, model.MealSnack:
		return mt, nil
	}
	return "", fmt.Errorf("invalid meal type %q (expected breakfast, lunch, dinner or snack)", value)
}

func resolveMealItems(db *sql.DB, inputs []MealItemInput) ([]model.MealItem, error) {
	items := make([]model.MealItem, 0, len(inputs))
	for i, in := range inputs {
		if err := validatePositiveFloat(fmt.Sprintf("item %d quantity", i+1), in.QuantityG); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(in.FoodName)
		if name == "" {
			return nil, fmt.Errorf("item %d food name is required", i+1)
		}
		if in.Manual != nil {
			if err := validateTotals(fmt.Sprintf("item %d", i+1), *in.Manual); err != nil {
				return nil, err
			}
			items = append(items, model.MealItem{
				FoodName:  name,
				QuantityG: in.QuantityG,
				Calories:  in.Manual.Calories,
				Protein:   in.Manual.Protein,
				Carbs:     in.Manual.Carbs,
				Fats:      in.Manual.Fats,
			})
			continue
		}
		food, err := FoodByName(db, name)
		if err != nil {
			return nil, err
		}
		if food == nil {
			return nil, fmt.Errorf("food %q not found; add it with `lifelog food add` or pass manual macros", name)
		}
		items = append(items, metrics.ScaleFood(*food, in.QuantityG))
	}
	return items, nil
}

func validateTotals(prefix string, t metrics.MealTotals) error {
	if err := validateNonNegativeFloat(prefix+" calories", t.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat(prefix+" protein", t.Protein); err != nil {
		return err
	}
	if err := validateNonNegativeFloat(prefix+" carbs", t.Carbs); err != nil {
		return err
	}
	return validateNonNegativeFloat(prefix+" fats", t.Fats)
}

func applyTotals(entry *model.MealLogEntry, t metrics.MealTotals) {
	entry.TotalCalories = t.Calories
	entry.TotalProtein = t.Protein
	entry.TotalCarbs = t.Carbs
	entry.TotalFats = t.Fats
}

func CreateMealLog(db *sql.DB, in MealLogInput) (model.MealLogEntry, error) {
	now := time.Now().UTC()
	date, err := normalizeMealDate(in.Date, time.Now())
	if err != nil {
		return model.MealLogEntry{}, err
	}
	mealType, err := ParseMealType(in.MealType)
	if err != nil {
		return model.MealLogEntry{}, err
	}

	entry := model.MealLogEntry{
		ID:        uuid.NewString(),
		Date:      date,
		MealType:  mealType,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch {
	case len(in.Items) > 0:
		items, err := resolveMealItems(db, in.Items)
		if err != nil {
			return model.MealLogEntry{}, err
		}
		entry.Items = items
		applyTotals(&entry, metrics.BuildMealTotals(items))
	case in.Totals != nil:
		if err := validateTotals("meal", *in.Totals); err != nil {
			return model.MealLogEntry{}, err
		}
		entry.Items = []model.MealItem{}
		applyTotals(&entry, *in.Totals)
	default:
		return model.MealLogEntry{}, fmt.Errorf("meal log needs at least one item or manual totals")
	}

	tx, err := db.Begin()
	if err != nil {
		return model.MealLogEntry{}, fmt.Errorf("begin meal log tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := insertMealLog(tx, entry); err != nil {
		return model.MealLogEntry{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.MealLogEntry{}, fmt.Errorf("commit meal log: %w", err)
	}
	return entry, nil
}

func insertMealLog(tx *sql.Tx, entry model.MealLogEntry) error {
	if _, err := tx.Exec(`
INSERT INTO meal_logs(id, date, meal_type, total_calories, total_protein, total_carbs, total_fats, notes, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, entry.ID, entry.Date, string(entry.MealType), entry.TotalCalories, entry.TotalProtein, entry.TotalCarbs, entry.TotalFats, entry.Notes,
		formatTimestamp(entry.CreatedAt), formatTimestamp(entry.UpdatedAt)); err != nil {
		return fmt.Errorf("insert meal log: %w", err)
	}
	return insertMealItems(tx, entry.ID, entry.Items)
}

func insertMealItems(tx *sql.Tx, mealLogID string, items []model.MealItem) error {
	for i, it := range items {
		if _, err := tx.Exec(`
INSERT INTO meal_items(meal_log_id, position, food_id, food_name, quantity_g, calories, protein, carbs, fats)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, mealLogID, i, it.FoodID, it.FoodName, it.QuantityG, it.Calories, it.Protein, it.Carbs, it.Fats); err != nil {
			return fmt.Errorf("insert meal item %d: %w", i+1, err)
		}
	}
	return nil
}

func UpdateMealLog(db *sql.DB, id string, patch MealLogPatch) (model.MealLogEntry, error) {
	entry, err := MealLogByID(db, id)
	if err != nil {
		return model.MealLogEntry{}, err
	}

	if patch.Date != nil {
		date, err := normalizeMealDate(*patch.Date, time.Now())
		if err != nil {
			return model.MealLogEntry{}, err
		}
		entry.Date = date
	}
	if patch.MealType != nil {
		mt, err := ParseMealType(*patch.MealType)
		if err != nil {
			return model.MealLogEntry{}, err
		}
		entry.MealType = mt
	}
	if patch.Notes != nil {
		entry.Notes = strings.TrimSpace(*patch.Notes)
	}
	replaceItems := patch.Items != nil
	if replaceItems {
		if len(*patch.Items) == 0 {
			return model.MealLogEntry{}, fmt.Errorf("meal log needs at least one item")
		}
		items, err := resolveMealItems(db, *patch.Items)
		if err != nil {
			return model.MealLogEntry{}, err
		}
		entry.Items = items
		applyTotals(&entry, metrics.BuildMealTotals(items))
	}
	entry.UpdatedAt = time.Now().UTC()

	tx, err := db.Begin()
	if err != nil {
		return model.MealLogEntry{}, fmt.Errorf("begin meal log update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
UPDATE meal_logs
SET date = ?, meal_type = ?, total_calories = ?, total_protein = ?, total_carbs = ?, total_fats = ?, notes = ?, updated_at = ?
WHERE id = ?
`, entry.Date, string(entry.MealType), entry.TotalCalories, entry.TotalProtein, entry.TotalCarbs, entry.TotalFats, entry.Notes,
		formatTimestamp(entry.UpdatedAt), entry.ID); err != nil {
		return model.MealLogEntry{}, fmt.Errorf("update meal log %s: %w", id, err)
	}
	if replaceItems {
		if _, err := tx.Exec(`DELETE FROM meal_items WHERE meal_log_id = ?`, entry.ID); err != nil {
			return model.MealLogEntry{}, fmt.Errorf("clear meal items: %w", err)
		}
		if err := insertMealItems(tx, entry.ID, entry.Items); err != nil {
			return model.MealLogEntry{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.MealLogEntry{}, fmt.Errorf("commit meal log update: %w", err)
	}
	return entry, nil
}

func DeleteMealLog(db *sql.DB, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("meal log id is required")
	}
	res, err := db.Exec(`DELETE FROM meal_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal log %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal log rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("meal log %s not found", id)
	}
	return nil
}

func MealLogByID(db *sql.DB, id string) (model.MealLogEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.MealLogEntry{}, fmt.Errorf("meal log id is required")
	}
	row := db.QueryRow(`
SELECT id, date, meal_type, total_calories, total_protein, total_carbs, total_fats, notes, created_at, updated_at
FROM meal_logs
WHERE id = ?
`, id)
	entry, err := scanMealLog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.MealLogEntry{}, fmt.Errorf("meal log %s not found", id)
		}
		return model.MealLogEntry{}, fmt.Errorf("read meal log %s: %w", id, err)
	}
	items, err := mealItemsFor(db, []string{entry.ID})
	if err != nil {
		return model.MealLogEntry{}, err
	}
	entry.Items = items[entry.ID]
	if entry.Items == nil {
		entry.Items = []model.MealItem{}
	}
	return entry, nil
}

// ListMealLogs returns logs oldest first. FromDate and ToDate bound the day key inclusively.
func ListMealLogs(db *sql.DB, f MealLogFilter) ([]model.MealLogEntry, error) {
	query := `
SELECT id, date, meal_type, total_calories, total_protein, total_carbs, total_fats, notes, created_at, updated_at
FROM meal_logs
WHERE 1=1`
	args := make([]any, 0)

	if from := strings.TrimSpace(f.FromDate); from != "" {
		if err := validateDay("from date", from); err != nil {
			return nil, err
		}
		query += ` AND substr(date, 1, 10) >= ?`
		args = append(args, from)
	}
	if to := strings.TrimSpace(f.ToDate); to != "" {
		if err := validateDay("to date", to); err != nil {
			return nil, err
		}
		query += ` AND substr(date, 1, 10) <= ?`
		args = append(args, to)
	}
	if strings.TrimSpace(f.MealType) != "" {
		mt, err := ParseMealType(f.MealType)
		if err != nil {
			return nil, err
		}
		query += ` AND meal_type = ?`
		args = append(args, string(mt))
	}
	query += ` ORDER BY date ASC, created_at ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	logs := make([]model.MealLogEntry, 0)
	for rows.Next() {
		entry, err := scanMealLog(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate meal logs: %w", err)
	}
	// The single pooled connection must be released before items are queried.
	_ = rows.Close()

	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	items, err := mealItemsFor(db, ids)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i].Items = items[logs[i].ID]
		if logs[i].Items == nil {
			logs[i].Items = []model.MealItem{}
		}
	}
	return logs, nil
}

func mealItemsFor(db *sql.DB, ids []string) (map[string][]model.MealItem, error) {
	out := make(map[string][]model.MealItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	rows, err := db.Query(`
SELECT meal_log_id, food_id, food_name, quantity_g, calories, protein, carbs, fats
FROM meal_items
ORDER BY meal_log_id ASC, position ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list meal items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var logID string
		var it model.MealItem
		if err := rows.Scan(&logID, &it.FoodID, &it.FoodName, &it.QuantityG, &it.Calories, &it.Protein, &it.Carbs, &it.Fats); err != nil {
			return nil, fmt.Errorf("scan meal item: %w", err)
		}
		if want[logID] {
			out[logID] = append(out[logID], it)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal items: %w", err)
	}
	return out, nil
}

func scanMealLog(row rowScanner) (model.MealLogEntry, error) {
	var e model.MealLogEntry
	var mealType, created, updated string
	if err := row.Scan(&e.ID, &e.Date, &mealType, &e.TotalCalories, &e.TotalProtein, &e.TotalCarbs, &e.TotalFats, &e.Notes, &created, &updated); err != nil {
		return model.MealLogEntry{}, err
	}
	e.MealType = model.MealType(mealType)
	e.CreatedAt = parseTimestamp(created)
	e.UpdatedAt = parseTimestamp(updated)
	return e, nil
}
