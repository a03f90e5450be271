package service

import (
	"context"

	"github.com/winnstorm/reserva-teco/internal/availability"
	"github.com/winnstorm/reserva-teco/internal/driver"
	"github.com/winnstorm/reserva-teco/internal/models"
)

// AvailabilityService runs availability searches: it drives the portal,
// merges each space's free fragments into its best window and ranks the
// spaces against the requested time window.
type AvailabilityService struct {
	driver driver.SiteDriver
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(d driver.SiteDriver) *AvailabilityService {
	return &AvailabilityService{driver: d}
}

// Search returns the top-ranked spaces for the criteria. An empty result
// means no space had a usable window; that is not an error.
func (s *AvailabilityService) Search(ctx context.Context, req models.SearchRequest) ([]models.RankedSpace, error) {
	schedules, err := s.driver.FindAvailability(ctx, req)
	if err != nil {
		return nil, err
	}

	windows := availability.ExtractWindows(schedules)
	return availability.Rank(windows, req.RequestedMinutes()), nil
}
