package service

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validatePositiveFloat(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// normalizeEnum turns user input like "lightly-active" into "LIGHTLY_ACTIVE".
func normalizeEnum(value string) string {
	value = strings.TrimSpace(strings.ToUpper(value))
	value = strings.ReplaceAll(value, "-", "_")
	return strings.ReplaceAll(value, " ", "_")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// normalizeMealDate accepts YYYY-MM-DD or an RFC3339 date-time and returns it trimmed.
func normalizeMealDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, value); err == nil {
		return value, nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return value, nil
	}
	return "", fmt.Errorf("invalid meal date %q (expected YYYY-MM-DD or RFC3339)", value)
}

func validateDay(name, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", name, value)
	}
	return nil
}
