package validation

import (
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveID(field string, val uint, v Violations) {
	if val == 0 {
		v[field] = "required"
	}
}

func RangeInt(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf flags a value not contained in the allowed set.
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// Date parses a YYYY-MM-DD value, recording a violation on failure.
func Date(field, value string, v Violations) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		v[field] = "invalid_date"
		return time.Time{}, false
	}
	return t, true
}

// TimeOfDay parses an HH:MM value, recording a violation on failure.
func TimeOfDay(field, value string, v Violations) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		v[field] = "invalid_time"
		return time.Time{}, false
	}
	return t, true
}
