package service

import (
	"context"

	"github.com/winnstorm/reserva-teco/internal/driver"
	"github.com/winnstorm/reserva-teco/internal/models"
)

// BookingService runs reservations through the portal driver
type BookingService struct {
	driver driver.SiteDriver
}

// NewBookingService creates a new booking service
func NewBookingService(d driver.SiteDriver) *BookingService {
	return &BookingService{driver: d}
}

// Reserve books the requested space. The driver verifies the portal form
// reflects the request before confirming anything.
func (s *BookingService) Reserve(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error) {
	return s.driver.Book(ctx, req)
}
