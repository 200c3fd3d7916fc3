package metrics

import (
	"math"
	"time"

	"github.com/saadjs/lifelog/internal/model"
)

const (
	DefaultSeriesDays = 7
	MaxSeriesDays     = 90

	trendThresholdKcal = 50
)

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

type Trend struct {
	Direction TrendDirection `json:"direction"`
	Value     int            `json:"value"`
}

// DailySeries returns one entry per calendar day for the `days` days ending on
// today, oldest first. Days without logs are zero-valued.
func DailySeries(logs []model.MealLogEntry, today time.Time, days int) []model.DailyTotals {
	if days <= 0 {
		days = DefaultSeriesDays
	}
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	out := make([]model.DailyTotals, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := base.AddDate(0, 0, -i)
		totals := AggregateDay(logs, day.Format(dateLayout))
		totals.Label = day.Format("Mon, Jan 2")
		out = append(out, totals)
	}
	return out
}

// CalorieTrend compares the first and second half of the days that have
// calories. It returns nil when fewer than two such days exist.
func CalorieTrend(series []model.DailyTotals) *Trend {
	withData := make([]float64, 0, len(series))
	for _, d := range series {
		if d.Calories > 0 {
			withData = append(withData, d.Calories)
		}
	}
	if len(withData) < 2 {
		return nil
	}

	split := (len(withData) + 1) / 2
	diff := mean(withData[split:]) - mean(withData[:split])

	direction := TrendStable
	switch {
	case diff > trendThresholdKcal:
		direction = TrendUp
	case diff < -trendThresholdKcal:
		direction = TrendDown
	}
	return &Trend{Direction: direction, Value: int(math.Abs(roundHalfUp(diff)))}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
