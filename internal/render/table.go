package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"quotewatch/internal/quote"
)

// numericColumns are the table headers after Name, in display order.
var numericColumns = []string{"Price", "Open", "Low", "High", "UpDown", "UpDownRate"}

const (
	cellWidth    = 10
	minNameWidth = 8
	// missing marks every numeric cell of a security that produced no data
	missing = "_"
)

// Table renders the results as a fixed-width text table. The Name column is
// sized to the widest name, counting East Asian wide runes as two cells.
func Table(results []quote.Result) string {
	nameWidth := minNameWidth
	for _, r := range results {
		if w := displayWidth(r.Security.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(padRight("Name", nameWidth))
	for _, col := range numericColumns {
		fmt.Fprintf(&b, " %*s", cellWidth, col)
	}
	b.WriteByte('\n')

	for _, r := range results {
		b.WriteString(padRight(r.Security.Name, nameWidth))
		for _, cell := range rowCells(r.Data) {
			fmt.Fprintf(&b, " %*s", cellWidth, cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func rowCells(d *quote.Data) []string {
	if d == nil {
		return []string{missing, missing, missing, missing, missing, missing}
	}
	return []string{
		fmt.Sprintf("%.2f", d.Price),
		fmt.Sprintf("%.2f", d.Open),
		fmt.Sprintf("%.2f", d.Low),
		fmt.Sprintf("%.2f", d.High),
		fmt.Sprintf("%.2f", d.Change),
		fmt.Sprintf("%.2f%%", d.ChangeRate),
	}
}

// displayWidth counts terminal cells, not runes: CJK names occupy two cells
// per character.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

func padRight(s string, w int) string {
	if d := w - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
