package metrics

import (
	"sort"
	"strings"

	"github.com/saadjs/lifelog/internal/model"
)

const (
	suggestionThreshold = 0.8
	maxSuggestions      = 5
)

var vegetarianProteinCategories = map[string]struct{}{
	"dairy":  {},
	"legume": {},
	"grain":  {},
}

var vegetarianProteinKeywords = []string{
	"paneer", "soy", "tofu", "curd", "milk", "dal", "chana", "rajma", "peanut", "sprout",
}

// ProteinSuggestions lists up to five vegetarian high-protein foods, richest
// first, when current protein is below 80% of the target.
func ProteinSuggestions(foods []model.Food, currentProtein, targetProtein float64) []model.Food {
	if currentProtein >= targetProtein*suggestionThreshold {
		return nil
	}

	picked := make([]model.Food, 0)
	for _, f := range foods {
		if isVegetarianProtein(f) {
			picked = append(picked, f)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Protein100g > picked[j].Protein100g
	})
	if len(picked) > maxSuggestions {
		picked = picked[:maxSuggestions]
	}
	return picked
}

func isVegetarianProtein(f model.Food) bool {
	if _, ok := vegetarianProteinCategories[strings.ToLower(f.Category)]; ok {
		return true
	}
	name := strings.ToLower(f.Name)
	for _, kw := range vegetarianProteinKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
