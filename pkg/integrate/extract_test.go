package integrate

import (
	"testing"

	"github.com/benchlab/isoquant/pkg/core"
)

func TestMatchingIntensity(t *testing.T) {
	window := Window{Lower: 500.0, Target: 500.5, Upper: 501.0}

	tests := []struct {
		name  string
		peaks []core.Peak
		want  float64
	}{
		{
			name: "peaks inside window sum",
			peaks: []core.Peak{
				{MZ: 500.2, Intensity: 100},
				{MZ: 500.8, Intensity: 50},
			},
			want: 150,
		},
		{
			name: "boundary-exact peaks excluded",
			peaks: []core.Peak{
				{MZ: 500.0, Intensity: 100},
				{MZ: 501.0, Intensity: 100},
			},
			want: 0,
		},
		{
			name: "just inside boundaries counted",
			peaks: []core.Peak{
				{MZ: 500.0000001, Intensity: 10},
				{MZ: 500.9999999, Intensity: 20},
			},
			want: 30,
		},
		{
			name: "peaks outside window ignored",
			peaks: []core.Peak{
				{MZ: 499.9, Intensity: 100},
				{MZ: 501.1, Intensity: 100},
				{MZ: 500.5, Intensity: 42},
			},
			want: 42,
		},
		{
			name:  "empty peak list",
			peaks: nil,
			want:  0,
		},
		{
			name: "unsorted peak list",
			peaks: []core.Peak{
				{MZ: 500.9, Intensity: 5},
				{MZ: 500.1, Intensity: 7},
			},
			want: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchingIntensity(tt.peaks, window)
			if got != tt.want {
				t.Errorf("MatchingIntensity() = %v, want %v", got, tt.want)
			}
		})
	}
}
