// Package duration parses the shorthand recording lengths accepted on the
// command line ("90", "1m", "24h", "2.5d").
package duration

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"github.com/example/camrec/internal/models"
)

var (
	allDigits = regexp.MustCompile(`^[0-9]+$`)
	shorthand = regexp.MustCompile(`^(\d*\.?\d+)([smhd])$`)
)

var unitSeconds = map[string]float64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
}

// Parse converts s into whole seconds. Zero is a valid result; callers
// decide whether a zero-length recording makes sense.
func Parse(s string) (int, error) {
	if allDigits.MatchString(s) {
		n, err := strconv.Atoi(s)
		if errors.Is(err, strconv.ErrRange) {
			// Any integer is a valid count of seconds; values past int
			// saturate.
			return math.MaxInt, nil
		}
		if err != nil {
			return 0, &models.DurationFormatError{Input: s}
		}
		return n, nil
	}

	m := shorthand.FindStringSubmatch(s)
	if m == nil {
		return 0, &models.DurationFormatError{Input: s}
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &models.DurationFormatError{Input: s}
	}

	seconds := math.Floor(value * unitSeconds[m[2]])
	if seconds >= math.MaxInt {
		return math.MaxInt, nil
	}
	return int(seconds), nil
}
