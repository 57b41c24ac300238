package market

import (
	"strings"
	"testing"
)

func TestExportCSVHeader(t *testing.T) {
	data, err := ExportCSV(Comparables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header + 10 rows, got %d lines", len(lines))
	}
	want := "Borrower,Sponsor,Date,Size,Leverage,Margin,Industry,Tenor,CovenantLite,ESGLinked"
	if strings.TrimSpace(lines[0]) != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
}

func TestExportCSVBooleans(t *testing.T) {
	data, err := ExportCSV([]ComparableDeal{
		{Borrower: "Test Co", CovenantLite: true, ESGLinked: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	row := strings.TrimSpace(lines[1])
	if !strings.HasSuffix(row, "Yes,No") {
		t.Errorf("expected booleans rendered as Yes,No, got row %q", row)
	}
}
