// Package media resolves image references against the configured media host
// and probes their availability.
//
// References are either absolute URLs or paths relative to the media host;
// the only validation is a string-prefix check to decide which. Each image
// slot on a view tracks its own availability as a tagged state, so one
// failed image never affects another.
package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/time/rate"
)

// Resolve maps an image reference to an absolute URL. Absolute references
// pass through untouched; relative ones are joined to the media host.
// An empty reference resolves to the empty string.
func Resolve(host, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(ref, "/")
}

// SlotState tags the availability of one image slot.
type SlotState int

const (
	SlotPending SlotState = iota
	SlotOK
	SlotFailed
)

// Slot is the per-image availability variant: pending while the probe is in
// flight, ok with the resolved URL, or failed with a placeholder label.
type Slot struct {
	State SlotState
	URL   string
	Label string
}

// PendingSlot returns a slot awaiting its probe result.
func PendingSlot(url string) Slot {
	return Slot{State: SlotPending, URL: url}
}

// OKSlot marks the slot's image as available.
func (s Slot) OK() Slot {
	return Slot{State: SlotOK, URL: s.URL}
}

// Failed replaces the slot with a textual placeholder.
func (s Slot) Failed(label string) Slot {
	return Slot{State: SlotFailed, Label: label}
}

// Prober checks image availability with a client-side rate limit so a
// detail view's slots do not burst against the media host.
type Prober struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewProber creates a Prober issuing at most rps probes per second.
func NewProber(client *http.Client, rps float64, logger *log.Logger) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = 4.0
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Prober{
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// Check reports whether the image at url is reachable. Any transport error
// or non-2xx status counts as unavailable.
func (p *Prober) Check(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("%w: empty image reference", shared.ErrInvalidInput)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Debug("image probe failed", "url", url, "error", err)
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Debug("image probe failed", "url", url, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return nil
}
