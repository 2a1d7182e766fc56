package integrate

import (
	"math"
	"testing"
)

func TestIntegrateProfile(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    float64
	}{
		{
			name:    "no samples",
			samples: nil,
			want:    0,
		},
		{
			name:    "single sample",
			samples: []Sample{{RT: 10.0, Intensity: 500}},
			want:    0,
		},
		{
			name: "two samples",
			samples: []Sample{
				{RT: 10.0, Intensity: 100},
				{RT: 10.5, Intensity: 200},
			},
			want: (100 + 200) * 0.5 / 2,
		},
		{
			name: "three samples triangular",
			samples: []Sample{
				{RT: 9.5, Intensity: 100},
				{RT: 10.0, Intensity: 200},
				{RT: 10.5, Intensity: 100},
			},
			want: 150,
		},
		{
			name: "unsorted retention times are ordered before integrating",
			samples: []Sample{
				{RT: 10.5, Intensity: 100},
				{RT: 9.5, Intensity: 100},
				{RT: 10.0, Intensity: 200},
			},
			want: 150,
		},
		{
			name: "dip in the middle does not trigger the clamp",
			samples: []Sample{
				{RT: 9.5, Intensity: 100},
				{RT: 10.0, Intensity: 10},
				{RT: 10.5, Intensity: 100},
			},
			want: (100+10)*0.5/2 + (10+100)*0.5/2,
		},
		{
			name: "negative area clamps to zero",
			samples: []Sample{
				{RT: 9.5, Intensity: -100},
				{RT: 10.5, Intensity: -100},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntegrateProfile(tt.samples)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("IntegrateProfile() = %v, want %v", got, tt.want)
			}
		})
	}
}
