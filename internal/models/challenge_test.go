package models

import "testing"

func TestChallengePointValue(t *testing.T) {
	thirty := 30
	zero := 0
	negative := -5

	cases := []struct {
		name   string
		points *int
		want   int
		usable bool
	}{
		{"set", &thirty, 30, true},
		{"missing", nil, 0, false},
		{"zero", &zero, 0, false},
		{"negative", &negative, 0, false},
	}

	for _, tc := range cases {
		challenge := &Challenge{Points: tc.points}
		got, usable := challenge.PointValue()
		if got != tc.want || usable != tc.usable {
			t.Errorf("%s: PointValue() = %d, %v, want %d, %v", tc.name, got, usable, tc.want, tc.usable)
		}
	}
}
