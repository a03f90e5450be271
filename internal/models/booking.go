package models

import (
	"fmt"
	"time"
)

// Booking type constants
const (
	BookingTypeParking = "parking"
	BookingTypeDesk    = "desk"
)

// Layouts used by the scheduling portal
const (
	DateLayout  = "02/01/2006"
	ClockLayout = "15:04"
)

// SearchRequest describes the criteria of an availability search
type SearchRequest struct {
	BookingType string `json:"booking_type" binding:"required"` // parking or desk
	Date        string `json:"date" binding:"required"`         // DD/MM/YYYY
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Building    string `json:"building" binding:"required"`
}

// ApplyDefaults fills the default office-hours window
func (r *SearchRequest) ApplyDefaults() {
	if r.StartTime == "" {
		r.StartTime = "09:00"
	}
	if r.EndTime == "" {
		r.EndTime = "18:00"
	}
}

// Validate checks the request before a task is ever created
func (r *SearchRequest) Validate() error {
	if r.BookingType != BookingTypeParking && r.BookingType != BookingTypeDesk {
		return fmt.Errorf("invalid booking_type: %s", r.BookingType)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected DD/MM/YYYY", r.Date)
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time %q: expected HH:MM", r.StartTime)
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time %q: expected HH:MM", r.EndTime)
	}
	if start >= end {
		return fmt.Errorf("start_time %s must be before end_time %s", r.StartTime, r.EndTime)
	}
	return nil
}

// RequestedMinutes returns the duration of the requested window in minutes.
// Only valid after Validate has passed.
func (r *SearchRequest) RequestedMinutes() int {
	start, _ := ParseClock(r.StartTime)
	end, _ := ParseClock(r.EndTime)
	return end - start
}

// BaseType returns the portal base type code for the booking type
func (r *SearchRequest) BaseType() string {
	if r.BookingType == BookingTypeParking {
		return "4"
	}
	return "1"
}

// BookingRequest describes a reservation of a specific space
type BookingRequest struct {
	Title      string `json:"title" binding:"required"`
	SpaceID    string `json:"space_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // DD/MM/YYYY
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	LocationID string `json:"location_id"`
	BuildingID string `json:"building_id"`
	FloorID    string `json:"floor_id"`
	BaseType   string `json:"base_type"`
}

// ApplyDefaults fills the portal identifiers of the default site
func (r *BookingRequest) ApplyDefaults() {
	if r.LocationID == "" {
		r.LocationID = "973"
	}
	if r.BuildingID == "" {
		r.BuildingID = "965"
	}
	if r.FloorID == "" {
		r.FloorID = "3311"
	}
	if r.BaseType == "" {
		r.BaseType = "4"
	}
}

// Validate checks the request before a task is ever created
func (r *BookingRequest) Validate() error {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected DD/MM/YYYY", r.Date)
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time %q: expected HH:MM", r.StartTime)
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time %q: expected HH:MM", r.EndTime)
	}
	if start >= end {
		return fmt.Errorf("start_time %s must be before end_time %s", r.StartTime, r.EndTime)
	}
	return nil
}

// BookingOutcome is the result of a reservation attempt
type BookingOutcome struct {
	Status     string `json:"status"` // success or failure
	Message    string `json:"message"`
	BookingURL string `json:"booking_url,omitempty"`
}

// ParseClock converts an HH:MM string to minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
