package models

import "testing"

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		want   Level
	}{
		{0, LevelBeginner},
		{999, LevelBeginner},
		{1000, LevelIntermediate},
		{4999, LevelIntermediate},
		{5000, LevelAdvanced},
		{9999, LevelAdvanced},
		{10000, LevelExpert},
		{250000, LevelExpert},
	}

	for _, tc := range cases {
		if got := LevelForPoints(tc.points); got != tc.want {
			t.Errorf("LevelForPoints(%d) = %s, want %s", tc.points, got, tc.want)
		}
	}
}
