// Package pdf implements statement rendering and password protection.
// Rendering draws the statement lines onto a single A4 page; protection
// wraps the result with AES encryption so the document only opens with
// the student's admission number.
package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
)

// Page layout. The first line is the statement title; every following line
// advances by lineStep points. Fixed positions keep the output
// byte-reproducible for identical input.
const (
	leftMargin = 50.0
	titleY     = 50.0
	bodyStartY = 100.0
	lineStep   = 20.0

	titleFontSize = 16.0
	bodyFontSize  = 12.0
)

// renderedAt is the fixed document creation date. PDF metadata embeds a
// timestamp; pinning it keeps two renders of the same record byte-identical.
var renderedAt = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Renderer draws statement lines onto one A4 page.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the unprotected PDF for the given lines. The first line is
// drawn as an enlarged title, the rest as body text at fixed vertical steps.
// Everything uses the one Helvetica face: registering a second font would
// embed two font objects, and gofpdf emits those in map order, which breaks
// reproducibility.
func (r *Renderer) Render(lines []string) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCreationDate(renderedAt)
	doc.SetTitle("AJA School - Fee Statement", false)
	doc.AddPage()

	y := bodyStartY
	for i, line := range lines {
		if i == 0 {
			doc.SetFont("Helvetica", "", titleFontSize)
			doc.Text(leftMargin, titleY, line)
			doc.SetFontSize(bodyFontSize)
			continue
		}
		doc.Text(leftMargin, y, line)
		y += lineStep
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, shared.WrapError("statement", "Render", shared.ErrIO, "failed to render statement page", err)
	}

	return buf.Bytes(), nil
}
