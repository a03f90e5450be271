package availability

import (
	"fmt"
	"testing"

	"github.com/winnstorm/reserva-teco/internal/models"
)

func window(minutes int, continuous bool) models.ContinuousWindow {
	return models.ContinuousWindow{
		Start:        "09:00",
		End:          "10:30",
		TotalMinutes: minutes,
		Continuous:   continuous,
	}
}

func TestScore_FullCoverageContinuous(t *testing.T) {
	// 90 continuous minutes against a 60-minute request: 20 + 100.
	got := Score(window(90, true), 60)
	if got != 120 {
		t.Fatalf("want 120, got %v", got)
	}
}

func TestScore_PartialCoverage(t *testing.T) {
	// 30 non-continuous minutes against 60: (30/60)*40.
	got := Score(window(30, false), 60)
	if got != 20 {
		t.Fatalf("want 20, got %v", got)
	}
}

func TestScore_PartialNeverBeatsFull(t *testing.T) {
	full := Score(window(60, false), 60)
	partial := Score(window(59, true), 60)
	if partial >= full {
		t.Fatalf("partial coverage %v must rank below full coverage %v", partial, full)
	}
}

func TestRank_OrdersByScore(t *testing.T) {
	windows := []SpaceWindow{
		{SpaceID: "b", Window: window(30, false)},
		{SpaceID: "a", Window: window(90, true)},
	}

	ranked := Rank(windows, 60)
	if len(ranked) != 2 {
		t.Fatalf("want 2 results, got %d", len(ranked))
	}
	if ranked[0].SpaceID != "a" || ranked[1].SpaceID != "b" {
		t.Fatalf("unexpected order: %s, %s", ranked[0].SpaceID, ranked[1].SpaceID)
	}
	if ranked[0].Score != 120 || ranked[1].Score != 20 {
		t.Fatalf("unexpected scores: %v, %v", ranked[0].Score, ranked[1].Score)
	}
}

func TestRank_CapsAtTenAndKeepsTiedDiscoveryOrder(t *testing.T) {
	windows := make([]SpaceWindow, 0, 50)
	for i := 0; i < 50; i++ {
		windows = append(windows, SpaceWindow{
			SpaceID: fmt.Sprintf("space-%02d", i),
			Window:  window(60, true),
		})
	}

	ranked := Rank(windows, 60)
	if len(ranked) != MaxResults {
		t.Fatalf("want %d results, got %d", MaxResults, len(ranked))
	}
	for i, r := range ranked {
		want := fmt.Sprintf("space-%02d", i)
		if r.SpaceID != want {
			t.Fatalf("tied scores must keep discovery order: position %d is %s, want %s", i, r.SpaceID, want)
		}
	}
}

func TestRank_EmptyInput(t *testing.T) {
	ranked := Rank(nil, 60)
	if len(ranked) != 0 {
		t.Fatalf("want empty result, got %d entries", len(ranked))
	}
}

func TestRank_ResultShape(t *testing.T) {
	ranked := Rank([]SpaceWindow{{
		SpaceID:   "p-12",
		SpaceName: "EHOBA-012",
		Floor:     "Piso 3",
		Window:    window(90, true),
	}}, 60)

	r := ranked[0]
	if r.SpaceName != "EHOBA-012" || r.Floor != "Piso 3" {
		t.Fatalf("identity not carried: %+v", r)
	}
	if len(r.AvailableSlots) != 1 {
		t.Fatalf("want one slot detail, got %d", len(r.AvailableSlots))
	}
	slot := r.AvailableSlots[0]
	if slot.StartTime != "09:00" || slot.EndTime != "10:30" || slot.Duration != 90 {
		t.Fatalf("unexpected slot detail: %+v", slot)
	}
	if !r.Availability.Continuous || r.Availability.TotalMinutes != 90 {
		t.Fatalf("unexpected availability: %+v", r.Availability)
	}
}
