package rules

import (
	"testing"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
)

func TestWeightDeltaIsAbsolute(t *testing.T) {
	if got := WeightDelta(90, 80); got != 10 {
		t.Fatalf("unexpected delta: got %d want 10", got)
	}
	if got := WeightDelta(60, 75); got != 15 {
		t.Fatalf("unexpected delta for gain goal: got %d want 15", got)
	}
	if got := WeightDelta(70, 70); got != 0 {
		t.Fatalf("unexpected delta at target: got %d want 0", got)
	}
}

func TestWeeksToGoalRoundsUp(t *testing.T) {
	if got := WeeksToGoal(90, 80, enums.PaceRabbit); got != 13 {
		t.Fatalf("unexpected weeks at rabbit pace: got %d want 13", got)
	}
	if got := WeeksToGoal(90, 80, enums.PacePuma); got != 7 {
		t.Fatalf("unexpected weeks at puma pace: got %d want 7", got)
	}
	if got := WeeksToGoal(70, 70, enums.PaceKoala); got != 0 {
		t.Fatalf("expected zero weeks at target, got %d", got)
	}
	if got := WeeksToGoal(90, 80, enums.Pace("")); got != 0 {
		t.Fatalf("expected zero weeks for unset pace, got %d", got)
	}
}

func TestCatalogMembership(t *testing.T) {
	if !AllowedObstacle("Busy schedule") {
		t.Fatalf("catalog obstacle rejected")
	}
	if AllowedObstacle("Too much gravity") {
		t.Fatalf("unknown obstacle accepted")
	}
	if !AllowedAccomplishment("Eat and live healthy") {
		t.Fatalf("catalog accomplishment rejected")
	}
	if AllowedAccomplishment("") {
		t.Fatalf("empty accomplishment accepted")
	}
}
