package models

import (
	"strings"
	"testing"
)

func validSearch() SearchRequest {
	return SearchRequest{
		BookingType: BookingTypeParking,
		Date:        "02/09/2026",
		StartTime:   "09:00",
		EndTime:     "18:00",
		Building:    "EHO",
	}
}

func TestSearchRequest_Validate(t *testing.T) {
	req := validSearch()
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestSearchRequest_StartMustPrecedeEnd(t *testing.T) {
	req := validSearch()
	req.StartTime = "18:00"
	req.EndTime = "09:00"
	if err := req.Validate(); err == nil {
		t.Fatal("start after end must be rejected")
	}

	req.EndTime = "18:00"
	if err := req.Validate(); err == nil {
		t.Fatal("start equal to end must be rejected")
	}
}

func TestSearchRequest_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SearchRequest)
		want   string
	}{
		{"booking type", func(r *SearchRequest) { r.BookingType = "garage" }, "booking_type"},
		{"date format", func(r *SearchRequest) { r.Date = "2026-09-02" }, "date"},
		{"start format", func(r *SearchRequest) { r.StartTime = "9am" }, "start_time"},
		{"end format", func(r *SearchRequest) { r.EndTime = "25:00" }, "end_time"},
	}
	for _, c := range cases {
		req := validSearch()
		c.mutate(&req)
		err := req.Validate()
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}
}

func TestSearchRequest_DefaultsAndDuration(t *testing.T) {
	req := SearchRequest{BookingType: BookingTypeDesk, Date: "02/09/2026", Building: "EHO"}
	req.ApplyDefaults()

	if req.StartTime != "09:00" || req.EndTime != "18:00" {
		t.Fatalf("defaults not applied: %s-%s", req.StartTime, req.EndTime)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("defaulted request rejected: %v", err)
	}
	if got := req.RequestedMinutes(); got != 540 {
		t.Fatalf("want 540 minutes, got %d", got)
	}
}

func TestSearchRequest_BaseType(t *testing.T) {
	req := validSearch()
	if req.BaseType() != "4" {
		t.Fatalf("parking must map to base type 4, got %s", req.BaseType())
	}
	req.BookingType = BookingTypeDesk
	if req.BaseType() != "1" {
		t.Fatalf("desk must map to base type 1, got %s", req.BaseType())
	}
}

func TestBookingRequest_DefaultsAndValidation(t *testing.T) {
	req := BookingRequest{
		Title:     "Estacionamiento",
		SpaceID:   "18123",
		Date:      "02/09/2026",
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	req.ApplyDefaults()

	if req.LocationID != "973" || req.BuildingID != "965" || req.FloorID != "3311" || req.BaseType != "4" {
		t.Fatalf("portal defaults not applied: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req.StartTime = "10:00"
	if err := req.Validate(); err == nil {
		t.Fatal("zero-length window must be rejected")
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if got != 570 {
		t.Fatalf("want 570, got %d", got)
	}

	if _, err := ParseClock("24:00"); err == nil {
		t.Fatal("expected error for out-of-range clock")
	}
}
