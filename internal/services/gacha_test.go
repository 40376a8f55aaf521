package services

import (
	"math/rand"
	"testing"

	"ecospin/internal/models"
)

func TestChooserForODDsRespectsWeights(t *testing.T) {
	odds := []*models.ODD{
		{ID: 1, Weight: 10},
		{ID: 2, Weight: 30},
		{ID: 3, Weight: 60},
		{ID: 4, Weight: 0}, // never drawable
	}

	gacha, err := chooserForODDs(odds)
	if err != nil {
		t.Fatalf("chooserForODDs: %v", err)
	}

	r := rand.New(rand.NewSource(42))
	counts := map[int]int{}
	draws := 100000
	for i := 0; i < draws; i++ {
		counts[gacha.PickSource(r).ID]++
	}

	if counts[4] != 0 {
		t.Fatalf("zero-weight entry drawn %d times", counts[4])
	}

	// each share should land within 2 points of its weight
	for id, weight := range map[int]int{1: 10, 2: 30, 3: 60} {
		share := float64(counts[id]) / float64(draws) * 100
		if share < float64(weight)-2 || share > float64(weight)+2 {
			t.Errorf("odd %d drawn %.1f%%, want ~%d%%", id, share, weight)
		}
	}
}

func TestChooserForODDsZeroTotalWeight(t *testing.T) {
	_, err := chooserForODDs([]*models.ODD{{ID: 1, Weight: 0}, {ID: 2, Weight: 0}})
	if err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestScenarioChooserRatio(t *testing.T) {
	gacha, err := scenarioChooser(67)
	if err != nil {
		t.Fatalf("scenarioChooser: %v", err)
	}

	r := rand.New(rand.NewSource(7))
	quiz := 0
	draws := 100000
	for i := 0; i < draws; i++ {
		if gacha.PickSource(r) == models.ScenarioQuiz {
			quiz++
		}
	}

	share := float64(quiz) / float64(draws) * 100
	if share < 65 || share > 69 {
		t.Errorf("quiz drawn %.1f%%, want ~67%%", share)
	}
}

func TestScenarioChooserClampsBadWeight(t *testing.T) {
	gacha, err := scenarioChooser(150)
	if err != nil {
		t.Fatalf("scenarioChooser: %v", err)
	}

	// falls back to the default split, both outcomes reachable
	r := rand.New(rand.NewSource(1))
	seen := map[models.ScenarioType]bool{}
	for i := 0; i < 1000; i++ {
		seen[gacha.PickSource(r)] = true
	}
	if !seen[models.ScenarioQuiz] || !seen[models.ScenarioChallenge] {
		t.Errorf("both scenarios should be drawable, got %v", seen)
	}
}
