package render

import (
	"strings"
	"testing"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

func sec(name string) security.Security {
	return security.Security{Name: name, ID: security.Identifier{Market: security.Shanghai, Code: "600000"}}
}

func TestTable_DataAndMissingRows(t *testing.T) {
	results := []quote.Result{
		{Security: sec("PuFa"), Data: &quote.Data{Price: 12.34, Open: 12, High: 12.5, Low: 11.8, Change: 0.34, ChangeRate: 2.91, TurnoverRatio: 1.5}},
		{Security: sec("Dead")},
	}
	out := Table(results)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines:\n%s", len(lines), out)
	}

	header := strings.Fields(lines[0])
	want := []string{"Name", "Price", "Open", "Low", "High", "UpDown", "UpDownRate"}
	if len(header) != len(want) {
		t.Fatalf("header %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}

	row := strings.Fields(lines[1])
	if row[1] != "12.34" || row[2] != "12.00" || row[3] != "11.80" || row[4] != "12.50" || row[5] != "0.34" {
		t.Fatalf("data row: %v", row)
	}
	if row[6] != "2.91%" {
		t.Fatalf("UpDownRate cell = %q, want %q", row[6], "2.91%")
	}

	missingRow := strings.Fields(lines[2])
	for i := 1; i < len(missingRow); i++ {
		if missingRow[i] != "_" {
			t.Fatalf("missing cell %d = %q, want _", i, missingRow[i])
		}
	}
}

func TestTable_ColumnsAligned(t *testing.T) {
	results := []quote.Result{
		{Security: sec("Short"), Data: &quote.Data{Price: 1}},
		{Security: sec("MuchLongerName")},
	}
	lines := strings.Split(strings.TrimRight(Table(results), "\n"), "\n")
	if len(lines[0]) != len(lines[1]) || len(lines[1]) != len(lines[2]) {
		t.Fatalf("rows not aligned: %d/%d/%d", len(lines[0]), len(lines[1]), len(lines[2]))
	}
}

func TestDisplayWidth_CJK(t *testing.T) {
	if w := displayWidth("浦发银行"); w != 8 {
		t.Fatalf("displayWidth(浦发银行) = %d, want 8", w)
	}
	if w := displayWidth("AAPL"); w != 4 {
		t.Fatalf("displayWidth(AAPL) = %d, want 4", w)
	}
}

func TestTable_CJKNamePadding(t *testing.T) {
	results := []quote.Result{
		{Security: sec("浦发银行")},
		{Security: sec("12345678")}, // same display width as the CJK name
	}
	lines := strings.Split(strings.TrimRight(Table(results), "\n"), "\n")
	cjk, ascii := lines[1], lines[2]
	// both rows must occupy the same display width, so the numeric cells
	// line up even though the byte lengths differ
	if displayWidth(cjk) != displayWidth(ascii) {
		t.Fatalf("CJK name not padded to display width:\n%q\n%q", cjk, ascii)
	}
	cells := cjk[len("浦发银行"):]
	if cells != ascii[len("12345678"):] {
		t.Fatalf("trailing cells differ:\n%q\n%q", cells, ascii[len("12345678"):])
	}
}
