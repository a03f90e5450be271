package skedway

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/winnstorm/reserva-teco/internal/models"
)

// BuildBookingURL assembles the step1 reservation URL the portal expects.
// Parameter order matters to the portal's form prefill, so the query string
// is built by hand instead of through url.Values (which sorts keys).
func BuildBookingURL(baseURL, timezone string, req models.BookingRequest) (string, error) {
	startDate, err := formatDateParam(req.Date, req.StartTime)
	if err != nil {
		return "", fmt.Errorf("format start date: %w", err)
	}
	endDate, err := formatDateParam(req.Date, req.EndTime)
	if err != nil {
		return "", fmt.Errorf("format end date: %w", err)
	}

	params := []struct{ key, value string }{
		{"baseType", req.BaseType},
		{"startDate", startDate},
		{"endDate", endDate},
		{"timezone", timezone},
		{"from", fmt.Sprintf("/booking.php?baseType=%s", req.BaseType)},
		{"action", "step1"},
		{"day", url.QueryEscape(req.Date)},
		{"startTime", url.QueryEscape(req.StartTime)},
		{"endTime", url.QueryEscape(req.EndTime)},
		{"companySiteId", req.LocationID},
		{"buildingId", req.BuildingID},
		{"floorId", req.FloorID},
		{"spaceType", "0"},
		{"order", "availabilityDesc"},
		{"page", "1"},
		{"spaceId[]", req.SpaceID},
	}

	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, p.key+"="+p.value)
	}
	return fmt.Sprintf("%s/booking-form.php?%s", baseURL, strings.Join(pairs, "&")), nil
}

// formatDateParam renders "DD/MM/YYYY" + "HH:MM" as the portal's
// "YYYY-MM-DD+HH%3AMM" timestamp parameter
func formatDateParam(date, clock string) (string, error) {
	t, err := time.Parse(models.DateLayout+" "+models.ClockLayout, date+" "+clock)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02") + "+" + url.QueryEscape(t.Format("15:04")), nil
}
