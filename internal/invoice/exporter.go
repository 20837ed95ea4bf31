// Package invoice turns a rendered invoice view into a downloadable PDF.
//
// The export is an explicit two-stage pipeline: a capture stage rasterizes
// the invoice layout into an image, then an encode stage embeds that image
// into a single-page PDF whose height preserves the source aspect ratio at
// A4 width. The context is checked between stages, and a second export while
// one is in flight is rejected rather than queued.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
)

// ErrExportInFlight is returned when an export is requested while a previous
// one has not finished.
var ErrExportInFlight = errors.New("invoice export already in flight")

// Filename names the generated artifact after the order it renders.
func Filename(orderID int64) string {
	return fmt.Sprintf("orden_%d.pdf", orderID)
}

type captureFunc func(view.InvoiceDetail, float64) (image.Image, error)

type Exporter struct {
	mu       sync.Mutex
	inFlight bool

	// scale multiplies the base capture resolution, like snapshotting the
	// source view at 2x.
	scale   float64
	capture captureFunc
}

func NewExporter() *Exporter {
	return &Exporter{scale: 2, capture: captureInvoice}
}

func (e *Exporter) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return ErrExportInFlight
	}
	e.inFlight = true
	return nil
}

func (e *Exporter) release() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

// Export runs capture then encode and writes the finished PDF to w.
func (e *Exporter) Export(ctx context.Context, inv view.InvoiceDetail, w io.Writer) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := e.capture(inv, e.scale)
	if err != nil {
		return fmt.Errorf("invoice: capture: %w", err)
	}

	// Cancellation point between the two stages.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := encode(img, w); err != nil {
		return fmt.Errorf("invoice: encode: %w", err)
	}
	return nil
}
