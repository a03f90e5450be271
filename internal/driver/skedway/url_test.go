package skedway

import (
	"strings"
	"testing"

	"github.com/winnstorm/reserva-teco/internal/models"
)

func bookingRequest() models.BookingRequest {
	req := models.BookingRequest{
		Title:     "Estacionamiento",
		SpaceID:   "18123",
		Date:      "02/09/2026",
		StartTime: "09:00",
		EndTime:   "18:00",
	}
	req.ApplyDefaults()
	return req
}

func TestBuildBookingURL(t *testing.T) {
	url, err := BuildBookingURL("https://tecoxp.skedway.com", "America/Argentina/Buenos_Aires", bookingRequest())
	if err != nil {
		t.Fatalf("BuildBookingURL: %v", err)
	}

	if !strings.HasPrefix(url, "https://tecoxp.skedway.com/booking-form.php?baseType=4&") {
		t.Fatalf("unexpected prefix: %s", url)
	}

	for _, part := range []string{
		"startDate=2026-09-02+09%3A00",
		"endDate=2026-09-02+18%3A00",
		"day=02%2F09%2F2026",
		"startTime=09%3A00",
		"endTime=18%3A00",
		"companySiteId=973",
		"buildingId=965",
		"floorId=3311",
		"action=step1",
		"order=availabilityDesc",
		"spaceId[]=18123",
	} {
		if !strings.Contains(url, part) {
			t.Errorf("url missing %q: %s", part, url)
		}
	}

	// The portal's prefill depends on parameter order.
	if strings.Index(url, "startDate=") > strings.Index(url, "endDate=") {
		t.Fatalf("startDate must precede endDate: %s", url)
	}
	if !strings.HasSuffix(url, "spaceId[]=18123") {
		t.Fatalf("spaceId must be the last parameter: %s", url)
	}
}

func TestBuildBookingURL_InvalidDate(t *testing.T) {
	req := bookingRequest()
	req.Date = "2026-09-02"

	if _, err := BuildBookingURL("https://tecoxp.skedway.com", "UTC", req); err == nil {
		t.Fatal("expected error for non-portal date format")
	}
}

func TestFormatDateParam(t *testing.T) {
	got, err := formatDateParam("02/09/2026", "09:30")
	if err != nil {
		t.Fatalf("formatDateParam: %v", err)
	}
	if got != "2026-09-02+09%3A30" {
		t.Fatalf("unexpected value: %s", got)
	}
}
