package extraction

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// cellGapFactor is the horizontal gap, in font sizes, that starts a new cell.
	cellGapFactor = 1.0
	// wordGapFactor is the gap, in font sizes, rendered as a space inside a cell.
	wordGapFactor = 0.2
)

// textRun is one positioned run of glyphs on a page row.
type textRun struct {
	X, W, FontSize float64
	S              string
}

func extractPDF(ctx context.Context, path string) (text string, err error) {
	// The pdf reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		for _, row := range rows {
			runs := make([]textRun, 0, len(row.Content))
			for _, t := range row.Content {
				runs = append(runs, textRun{X: t.X, W: t.W, FontSize: t.FontSize, S: t.S})
			}
			for _, cell := range splitCells(runs) {
				b.WriteString("\n")
				b.WriteString(cell)
			}
		}
	}
	b.WriteString("\n")
	return b.String(), nil
}

// splitCells groups the runs of one visual row into cells, left to right.
// Runs further apart than cellGapFactor font sizes start a new cell; smaller
// gaps above wordGapFactor become a single space.
func splitCells(runs []textRun) []string {
	if len(runs) == 0 {
		return nil
	}
	runs = slices.Clone(runs)
	slices.SortStableFunc(runs, func(a, b textRun) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})

	var cells []string
	var cur strings.Builder
	end := runs[0].X
	for i, run := range runs {
		size := run.FontSize
		if size <= 0 {
			size = 1
		}
		gap := run.X - end
		if i > 0 {
			switch {
			case gap > cellGapFactor*size:
				if s := strings.TrimSpace(cur.String()); s != "" {
					cells = append(cells, s)
				}
				cur.Reset()
			case gap > wordGapFactor*size:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(run.S)
		end = max(end, run.X+run.W)
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}
