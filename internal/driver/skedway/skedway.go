// Package skedway drives the Skedway scheduling portal through a headless
// Chrome session. It implements the driver.SiteDriver contract.
package skedway

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/winnstorm/reserva-teco/internal/driver"
	"github.com/winnstorm/reserva-teco/internal/models"
)

// Config holds the portal endpoints and browser knobs
type Config struct {
	BaseURL  string // e.g. https://tecoxp.skedway.com
	Headless bool
	MaxPages int // result pages walked per floor
	Timezone string
}

// Driver is a chromedp-backed SiteDriver. Each call opens its own browser
// session; sessions are never reused across tasks.
type Driver struct {
	cfg Config
}

// New creates a portal driver
func New(cfg Config) *Driver {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 2
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Argentina/Buenos_Aires"
	}
	return &Driver{cfg: cfg}
}

// pageSpace mirrors the JSON shape produced by the extraction script
type pageSpace struct {
	SpaceID   string                `json:"space_id"`
	SpaceName string                `json:"space_name"`
	Fragments []models.TimeFragment `json:"fragments"`
}

// extractSpacesJS collects every space card on the current results page with
// its free blocks. The h5 holds "NAME | extra" plus the favorite icon glyph.
const extractSpacesJS = `Array.from(document.querySelectorAll('.scheduler-space')).map(function(el) {
	var h5 = el.querySelector('h5');
	var name = h5 ? h5.innerText.split('|')[0].replace('favorite_border', '').trim() : '';
	return {
		space_id: el.getAttribute('data-space-id') || '',
		space_name: name,
		fragments: Array.from(el.querySelectorAll('.block-free')).map(function(b) {
			return {
				start_time: b.getAttribute('data-time-start') || '',
				end_time: b.getAttribute('data-time-end') || ''
			};
		})
	};
})`

// newSession creates a fresh browser context bound to ctx
func (d *Driver) newSession(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", d.cfg.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}
	return browserCtx, cancel
}

// FindAvailability walks every floor of the selected building and collects
// the free blocks of each listed space, up to MaxPages pages per floor.
func (d *Driver) FindAvailability(ctx context.Context, req models.SearchRequest) ([]models.SpaceSchedule, error) {
	browserCtx, cancel := d.newSession(ctx)
	defer cancel()

	if err := d.ensureSearchPage(browserCtx, req.BaseType()); err != nil {
		return nil, err
	}
	d.dismissWelcomeTour(browserCtx)

	var floors []string
	err := chromedp.Run(browserCtx,
		chromedp.Evaluate(`Array.from(document.querySelectorAll('#floorId option')).map(function(o) { return o.text; })`, &floors),
	)
	if err != nil {
		return nil, driver.NewError(driver.KindNavigation, "list floors", err)
	}

	var all []models.SpaceSchedule
	for _, floor := range floors {
		spaces, err := d.searchFloor(browserCtx, req, floor)
		if err != nil {
			return nil, err
		}
		all = append(all, spaces...)
	}
	return all, nil
}

// ensureSearchPage navigates to the booking page for the base type and waits
// for the filter form and list-view toggle to be usable
func (d *Driver) ensureSearchPage(ctx context.Context, baseType string) error {
	url := fmt.Sprintf("%s/booking.php?baseType=%s", d.cfg.BaseURL, baseType)
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`#day`, chromedp.ByID),
		chromedp.WaitVisible(`a[data-opt="list"]`, chromedp.ByQuery),
	)
	if err != nil {
		return driver.NewError(driver.KindNavigation, "load booking page", err)
	}
	return nil
}

// dismissWelcomeTour closes the first-visit tour popup when present. Its
// absence is not an error.
func (d *Driver) dismissWelcomeTour(ctx context.Context) {
	shortCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := chromedp.Run(shortCtx,
		chromedp.WaitVisible(`#buttonTourEnd`, chromedp.ByID),
		chromedp.Click(`#buttonTourEnd`, chromedp.ByID),
	)
	if err == nil {
		log.Printf("skedway: welcome tour dismissed")
	}
}

// searchFloor selects a floor, applies the filters and pages through results
func (d *Driver) searchFloor(ctx context.Context, req models.SearchRequest, floor string) ([]models.SpaceSchedule, error) {
	selectFloorJS := fmt.Sprintf(`(function() {
		var sel = document.querySelector('#floorId');
		var opt = Array.from(sel.options).find(function(o) { return o.text === %q; });
		if (!opt) { return false; }
		sel.value = opt.value;
		sel.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, floor)

	var selected bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(selectFloorJS, &selected)); err != nil || !selected {
		return nil, driver.NewError(driver.KindNavigation, fmt.Sprintf("select floor %s", floor), err)
	}

	if err := d.switchToListView(ctx); err != nil {
		return nil, err
	}
	if err := d.applyFilters(ctx, req); err != nil {
		return nil, err
	}

	var spaces []models.SpaceSchedule
	for page := 1; page <= d.cfg.MaxPages; page++ {
		var raw []pageSpace
		if err := chromedp.Run(ctx, chromedp.Evaluate(extractSpacesJS, &raw)); err != nil {
			return nil, driver.NewError(driver.KindNavigation, fmt.Sprintf("read spaces on page %d", page), err)
		}
		if len(raw) == 0 {
			break
		}

		for _, p := range raw {
			if driver.SpaceExcluded(p.SpaceName) {
				continue
			}
			if len(p.Fragments) == 0 {
				continue
			}
			spaces = append(spaces, models.SpaceSchedule{
				SpaceID:   p.SpaceID,
				SpaceName: p.SpaceName,
				Floor:     floor,
				Page:      page,
				Fragments: p.Fragments,
			})
		}

		if page >= d.cfg.MaxPages {
			break
		}
		more, err := d.nextPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return spaces, nil
}

// switchToListView toggles the results into list mode, where free blocks
// carry their time attributes
func (d *Driver) switchToListView(ctx context.Context) error {
	err := chromedp.Run(ctx,
		chromedp.ScrollIntoView(`a[data-opt="list"]`, chromedp.ByQuery),
		chromedp.Click(`a[data-opt="list"]`, chromedp.ByQuery),
		chromedp.WaitVisible(`.scheduler-space`, chromedp.ByQuery),
	)
	if err != nil {
		return driver.NewError(driver.KindNavigation, "switch to list view", err)
	}
	return nil
}

// applyFilters fills the date, time window and building, then triggers the
// filter and waits for the space list to refresh
func (d *Driver) applyFilters(ctx context.Context, req models.SearchRequest) error {
	selectBuildingJS := fmt.Sprintf(`(function() {
		var sel = document.querySelector('#companySiteId');
		if (!sel) { return false; }
		var opt = Array.from(sel.options).find(function(o) { return o.text.indexOf(%q) !== -1; });
		if (!opt) { return false; }
		sel.value = opt.value;
		sel.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, req.Building)

	var buildingFound bool
	err := chromedp.Run(ctx,
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.SetValue(`#day`, req.Date, chromedp.ByID),
		chromedp.SetValue(`#startTime`, req.StartTime, chromedp.ByID),
		chromedp.SetValue(`#endTime`, req.EndTime, chromedp.ByID),
		chromedp.Evaluate(selectBuildingJS, &buildingFound),
	)
	if err != nil {
		return driver.NewError(driver.KindNavigation, "fill filters", err)
	}
	if !buildingFound {
		return driver.NewError(driver.KindNavigation, fmt.Sprintf("building %q not offered by portal", req.Building), nil)
	}

	err = chromedp.Run(ctx,
		chromedp.Click(`#buttonFilter`, chromedp.ByID),
		chromedp.WaitVisible(`.scheduler-space`, chromedp.ByQuery),
	)
	if err != nil {
		return driver.NewError(driver.KindNavigation, "apply filters", err)
	}
	return nil
}

// nextPage advances the result pagination. Returns false when there is no
// further page.
func (d *Driver) nextPage(ctx context.Context, current int) (bool, error) {
	clickNextJS := fmt.Sprintf(`(function() {
		var link = document.querySelector('a.page-link[data-page="%d"]');
		if (!link) { return false; }
		link.scrollIntoView({ block: 'center' });
		link.click();
		return true;
	})()`, current+1)

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(clickNextJS, &clicked)); err != nil {
		return false, driver.NewError(driver.KindNavigation, "advance pagination", err)
	}
	if !clicked {
		return false, nil
	}

	activePageJS := fmt.Sprintf(`document.querySelector('li.page-item.active a') !== null &&
		document.querySelector('li.page-item.active a').getAttribute('data-page') === "%d"`, current+1)
	err := chromedp.Run(ctx,
		chromedp.Poll(activePageJS, nil, chromedp.WithPollingTimeout(10*time.Second)),
	)
	if err != nil {
		return false, driver.NewError(driver.KindNavigation, "wait for next page", err)
	}
	return true, nil
}

// Book loads the prefilled reservation form, sets the title, verifies the
// form matches the request and confirms the reservation
func (d *Driver) Book(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error) {
	browserCtx, cancel := d.newSession(ctx)
	defer cancel()

	bookingURL, err := BuildBookingURL(d.cfg.BaseURL, d.cfg.Timezone, req)
	if err != nil {
		return nil, driver.NewError(driver.KindNavigation, "build booking url", err)
	}
	log.Printf("skedway: booking via %s", bookingURL)

	err = chromedp.Run(browserCtx,
		chromedp.Navigate(bookingURL),
		chromedp.WaitVisible(`#subject`, chromedp.ByID),
		chromedp.SetValue(`#subject`, req.Title, chromedp.ByID),
	)
	if err != nil {
		return nil, driver.NewError(driver.KindNavigation, "load booking form", err)
	}

	if err := d.verifyForm(browserCtx, req); err != nil {
		return nil, err
	}

	var confirmation string
	err = chromedp.Run(browserCtx,
		chromedp.Click(`button.btn-submit`, chromedp.ByQuery),
		chromedp.WaitVisible(`[data-notify='message']`, chromedp.ByQuery),
		chromedp.Text(`[data-notify='message']`, &confirmation, chromedp.ByQuery),
	)
	if err != nil {
		return nil, driver.NewError(driver.KindTimeout, "await booking confirmation", err)
	}

	if !strings.Contains(confirmation, "e-mail de confirmaci") {
		return nil, driver.NewError(driver.KindNavigation, fmt.Sprintf("no confirmation received: %s", confirmation), nil)
	}

	return &models.BookingOutcome{
		Status:     "success",
		Message:    "Reserva realizada exitosamente",
		BookingURL: bookingURL,
	}, nil
}

// verifyForm checks that the prefilled form reflects the requested date,
// time window and space before anything is confirmed
func (d *Driver) verifyForm(ctx context.Context, req models.BookingRequest) error {
	checkJS := fmt.Sprintf(`(function() {
		var val = function(sel) { var el = document.querySelector(sel); return el ? el.value : ''; };
		if (val('#day') !== %q) { return 'date mismatch'; }
		if (val('#startTime') !== %q || val('#endTime') !== %q) { return 'time window mismatch'; }
		var chosen = Array.from(document.querySelectorAll('#space option:checked'));
		if (!chosen.some(function(o) { return o.value === %q; })) { return 'space mismatch'; }
		return '';
	})()`, req.Date, req.StartTime, req.EndTime, req.SpaceID)

	var mismatch string
	if err := chromedp.Run(ctx, chromedp.Evaluate(checkJS, &mismatch)); err != nil {
		return driver.NewError(driver.KindNavigation, "verify booking form", err)
	}
	if mismatch != "" {
		return driver.NewError(driver.KindFormMismatch, mismatch, nil)
	}
	return nil
}
