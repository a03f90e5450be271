package models

// SlotGranularity is the size in minutes of the smallest free-time block the
// portal reports for a space.
const SlotGranularity = 30

// ContinuousThreshold is the minimum merged duration in minutes for a window
// to count as a continuous slot.
const ContinuousThreshold = 60

// TimeFragment is a single discrete free interval reported by the portal for
// one space. Start and End are HH:MM clock values one granularity apart.
type TimeFragment struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// SpaceSchedule is the raw availability of one space as collected from the
// portal: its identity plus the free fragments found on the results page.
type SpaceSchedule struct {
	SpaceID   string         `json:"space_id"`
	SpaceName string         `json:"space_name"`
	Floor     string         `json:"floor"`
	Page      int            `json:"page"`
	Fragments []TimeFragment `json:"fragments"`
}

// ContinuousWindow is the longest run of consecutive fragments for one space
type ContinuousWindow struct {
	Start        string `json:"start_time"`
	End          string `json:"end_time"`
	TotalMinutes int    `json:"available_minutes"`
	Continuous   bool   `json:"continuous_slot"`
}

// SlotDetail is one bookable slot of a ranked space
type SlotDetail struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`
}

// RankedSpace is the externally visible unit of a search result
type RankedSpace struct {
	SpaceID        string           `json:"space_id"`
	SpaceName      string           `json:"space_name"`
	Floor          string           `json:"floor"`
	Score          float64          `json:"score"`
	AvailableSlots []SlotDetail     `json:"available_slots"`
	Availability   ContinuousWindow `json:"availability"`
}
