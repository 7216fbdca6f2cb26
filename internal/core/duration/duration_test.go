package duration

import (
	"math"
	"testing"

	"github.com/example/camrec/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"90", 90},
		{"0", 0},
		{"0s", 0},
		{"45s", 45},
		{"1m", 60},
		{"2h", 7200},
		{"24h", 86400},
		{"1.5d", 129600},
		{".5m", 30},
		{"2.5d", 216000},
		{"1.9s", 1},
		{"99999999999999999999999", math.MaxInt},
		{"99999999999999999999d", math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	inputs := []string{"abc", "", "1w", "-5", "1.5", "h", "1 h", "1m30s", "1.2.3h"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", input)
			}
			if !models.IsInvalidDuration(err) {
				t.Errorf("Parse(%q) error = %v, want InvalidDurationFormat", input, err)
			}
			if got := err.Error(); got == "" {
				t.Error("expected error message")
			}
		})
	}
}
