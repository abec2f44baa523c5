package services

import "testing"

func TestParseCompletedFilter(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"True", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"anything else", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := ParseCompletedFilter(tt.value); got != tt.want {
				t.Fatalf("ParseCompletedFilter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
