package market

import (
	"fmt"
	"strconv"

	"github.com/gocarina/gocsv"
)

// comparableRow fixes the export column order. Booleans render as
// Yes/No, numbers as plain strings.
type comparableRow struct {
	Borrower    string `csv:"Borrower"`
	Sponsor     string `csv:"Sponsor"`
	Date        string `csv:"Date"`
	Size        string `csv:"Size"`
	Leverage    string `csv:"Leverage"`
	Margin      string `csv:"Margin"`
	Industry    string `csv:"Industry"`
	Tenor       string `csv:"Tenor"`
	CovLite     string `csv:"CovenantLite"`
	ESGLinked   string `csv:"ESGLinked"`
}

// ExportCSV renders the comparable-deal dataset as delimited rows for
// download.
func ExportCSV(deals []ComparableDeal) ([]byte, error) {
	rows := make([]*comparableRow, len(deals))
	for i, d := range deals {
		rows[i] = &comparableRow{
			Borrower:  d.Borrower,
			Sponsor:   d.Sponsor,
			Date:      d.Date,
			Size:      fmt.Sprintf("%.0f", d.DealSizeMM),
			Leverage:  fmt.Sprintf("%.1f", d.Leverage),
			Margin:    strconv.Itoa(d.MarginBps),
			Industry:  d.Industry,
			Tenor:     strconv.Itoa(d.TenorMonths),
			CovLite:   yesNo(d.CovenantLite),
			ESGLinked: yesNo(d.ESGLinked),
		}
	}
	return gocsv.MarshalBytes(rows)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
