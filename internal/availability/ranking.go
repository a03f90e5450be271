package availability

import (
	"sort"

	"github.com/winnstorm/reserva-teco/internal/models"
)

// MaxResults caps how many ranked spaces a search returns
const MaxResults = 10

// Score rates a space's best window against the requested duration in
// minutes. Continuity is a small bonus; fully covering the request dominates,
// so a space that satisfies the whole window always outranks any partial one.
func Score(w models.ContinuousWindow, requestedMinutes int) float64 {
	score := 0.0

	if w.Continuous {
		score += 20
	}

	if w.TotalMinutes >= requestedMinutes {
		score += 100
	} else {
		score += float64(w.TotalMinutes) / float64(requestedMinutes) * 40
	}

	return score
}

// Rank scores each window and returns the top spaces in descending score
// order. Ties keep discovery order. An empty input yields an empty list.
func Rank(windows []SpaceWindow, requestedMinutes int) []models.RankedSpace {
	ranked := make([]models.RankedSpace, 0, len(windows))
	for _, sw := range windows {
		ranked = append(ranked, models.RankedSpace{
			SpaceID:   sw.SpaceID,
			SpaceName: sw.SpaceName,
			Floor:     sw.Floor,
			Score:     Score(sw.Window, requestedMinutes),
			AvailableSlots: []models.SlotDetail{{
				StartTime: sw.Window.Start,
				EndTime:   sw.Window.End,
				Duration:  sw.Window.TotalMinutes,
			}},
			Availability: sw.Window,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked
}
