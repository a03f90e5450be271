// Package driver defines the contract for the component that talks to the
// external scheduling portal. The orchestrator only depends on this contract;
// the chromedp-backed implementation lives in the skedway subpackage.
package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/winnstorm/reserva-teco/internal/models"
)

// SiteDriver performs the slow, failure-prone interaction with the portal.
// Both operations may block for tens of seconds and must honor ctx.
type SiteDriver interface {
	// FindAvailability collects the free time fragments of every space
	// matching the criteria, with policy-excluded spaces already removed.
	FindAvailability(ctx context.Context, req models.SearchRequest) ([]models.SpaceSchedule, error)

	// Book runs the reservation flow. It must verify the portal form
	// reflects the requested date, time and space before confirming, and
	// treat a mismatch as a failure.
	Book(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error)
}

// Kind classifies collaborator failures
type Kind string

const (
	KindTimeout      Kind = "timeout"
	KindNavigation   Kind = "navigation"
	KindFormMismatch Kind = "form_mismatch"
)

// Error is a failure of the portal interaction. The orchestrator maps every
// Error to the FAILED terminal state of the owning task.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err as a collaborator failure of the given kind. Context
// deadline errors are reclassified as timeouts regardless of kind.
func NewError(kind Kind, op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsTimeout reports whether err is a timeout-kind collaborator failure
func IsTimeout(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindTimeout
}

// Space name markers excluded by policy. The portal lists motorcycle-only
// parking under the same base type as car spaces.
var excludedSpaceMarkers = []string{"EHOBA-MOTO"}

// SpaceExcluded reports whether a space must be filtered from search results
func SpaceExcluded(name string) bool {
	for _, marker := range excludedSpaceMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
