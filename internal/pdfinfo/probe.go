// Package pdfinfo reads the geometry the layout engine needs from uploaded
// PDF bytes: the page count and each page's native dimensions in PDF
// points. Rendering itself happens client-side; the server only needs the
// numbers.
package pdfinfo

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Page is one page's native size in PDF points.
type Page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info is the geometry summary of a probed document.
type Info struct {
	PageCount int    `json:"pageCount"`
	Pages     []Page `json:"pages"`
}

// Prober extracts geometry from PDF bytes.
type Prober interface {
	Probe(rs io.ReadSeeker) (*Info, error)
}

// PDFCPUProber implements Prober using the pdfcpu library with relaxed
// validation, so slightly malformed but renderable documents still upload.
type PDFCPUProber struct{}

// NewProber returns a pdfcpu-backed prober.
func NewProber() *PDFCPUProber {
	return &PDFCPUProber{}
}

var _ Prober = (*PDFCPUProber)(nil)

// Probe parses the document and returns its page count and per-page
// dimensions. The reader is left at an arbitrary offset; callers that need
// the bytes again must seek back themselves.
func (p *PDFCPUProber) Probe(rs io.ReadSeeker) (*Info, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolve page count: %w", err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("read page dimensions: %w", err)
	}

	info := &Info{PageCount: ctx.PageCount}
	for i, d := range dims {
		info.Pages = append(info.Pages, Page{
			Number: i + 1,
			Width:  d.Width,
			Height: d.Height,
		})
	}
	return info, nil
}
