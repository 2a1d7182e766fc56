package core

import (
	"reflect"
	"testing"
)

func TestParseIsotopes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"default pair", "0,6", []int{0, 6}, false},
		{"full envelope", "0,1,2,3,4,5", []int{0, 1, 2, 3, 4, 5}, false},
		{"duplicates and out of range", "0,0,20,6", []int{0, 6}, false},
		{"unsorted input", "6,0,3", []int{0, 3, 6}, false},
		{"whitespace tolerated", " 0 , 6 ", []int{0, 6}, false},
		{"non-integer tokens skipped", "0,abc,1", []int{0, 1}, false},
		{"negative values dropped", "-1,0", []int{0}, false},
		{"cap is inclusive", "15", []int{15}, false},
		{"all out of range", "16,20", nil, true},
		{"nothing parseable", "abc", nil, true},
		{"empty string", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIsotopes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIsotopes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIsotopes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
