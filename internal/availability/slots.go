package availability

import (
	"github.com/winnstorm/reserva-teco/internal/models"
)

// LongestWindow merges a space's free fragments into its single best
// continuous window. Fragments must already be sorted by start time; that is
// a precondition of the portal's results page, not something validated here.
//
// Two fragments belong to the same run when the gap between the current run's
// end and the next fragment's start is at most one granularity. Each merged
// fragment contributes one granularity to the run's total.
//
// The second return value is false when no run reaches at least one
// granularity, which callers must treat as "space not available".
func LongestWindow(fragments []models.TimeFragment) (models.ContinuousWindow, bool) {
	var current, longest models.ContinuousWindow

	for _, f := range fragments {
		switch {
		case current.TotalMinutes == 0:
			current = models.ContinuousWindow{Start: f.Start, End: f.End, TotalMinutes: models.SlotGranularity}
		case consecutive(current.End, f.Start):
			current.End = f.End
			current.TotalMinutes += models.SlotGranularity
		default:
			if current.TotalMinutes > longest.TotalMinutes {
				longest = current
			}
			current = models.ContinuousWindow{Start: f.Start, End: f.End, TotalMinutes: models.SlotGranularity}
		}
	}

	if current.TotalMinutes > longest.TotalMinutes {
		longest = current
	}

	if longest.TotalMinutes < models.SlotGranularity {
		return models.ContinuousWindow{}, false
	}

	longest.Continuous = longest.TotalMinutes >= models.ContinuousThreshold
	return longest, true
}

// consecutive reports whether a fragment starting at next continues a run
// ending at end: the gap must be at most one granularity. Unparseable clock
// values break the run.
func consecutive(end, next string) bool {
	endMin, err := models.ParseClock(end)
	if err != nil {
		return false
	}
	nextMin, err := models.ParseClock(next)
	if err != nil {
		return false
	}
	return nextMin-endMin <= models.SlotGranularity
}

// SpaceWindow pairs a space's identity with its best continuous window
type SpaceWindow struct {
	SpaceID   string
	SpaceName string
	Floor     string
	Window    models.ContinuousWindow
}

// ExtractWindows reduces raw per-space schedules to their best windows,
// dropping spaces without any usable run. Discovery order is preserved.
func ExtractWindows(schedules []models.SpaceSchedule) []SpaceWindow {
	windows := make([]SpaceWindow, 0, len(schedules))
	for _, s := range schedules {
		w, ok := LongestWindow(s.Fragments)
		if !ok {
			continue
		}
		windows = append(windows, SpaceWindow{
			SpaceID:   s.SpaceID,
			SpaceName: s.SpaceName,
			Floor:     s.Floor,
			Window:    w,
		})
	}
	return windows
}
