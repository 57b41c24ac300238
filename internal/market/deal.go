package market

// ComparableDeal is a historical reference transaction used to benchmark
// the terms under negotiation. The dataset is read-only; nothing mutates
// it at runtime.
type ComparableDeal struct {
	Borrower     string
	Sponsor      string
	Date         string // year-quarter, e.g. "2025-Q2"
	DealSizeMM   float64
	Leverage     float64
	MarginBps    int
	Industry     string
	TenorMonths  int
	CovenantLite bool
	ESGLinked    bool
}

var comparables = []ComparableDeal{
	{Borrower: "Titanium Holdings", Sponsor: "Granite Peak Capital", Date: "2024-Q3", DealSizeMM: 850, Leverage: 4.8, MarginBps: 425, Industry: "Business Services", TenorMonths: 84, CovenantLite: true, ESGLinked: false},
	{Borrower: "Meridian Packaging", Sponsor: "Harborline Partners", Date: "2024-Q4", DealSizeMM: 1200, Leverage: 5.2, MarginBps: 450, Industry: "Industrials", TenorMonths: 84, CovenantLite: true, ESGLinked: true},
	{Borrower: "Cobalt Health Systems", Sponsor: "Westbrook Equity", Date: "2025-Q1", DealSizeMM: 675, Leverage: 4.5, MarginBps: 375, Industry: "Healthcare", TenorMonths: 72, CovenantLite: false, ESGLinked: false},
	{Borrower: "Atlas Foods Group", Sponsor: "Granite Peak Capital", Date: "2025-Q1", DealSizeMM: 940, Leverage: 5.0, MarginBps: 400, Industry: "Consumer", TenorMonths: 84, CovenantLite: true, ESGLinked: true},
	{Borrower: "Northwind Software", Sponsor: "Calder Growth Partners", Date: "2025-Q2", DealSizeMM: 1500, Leverage: 5.3, MarginBps: 475, Industry: "Technology", TenorMonths: 84, CovenantLite: true, ESGLinked: false},
	{Borrower: "Pinnacle Logistics", Sponsor: "Harborline Partners", Date: "2025-Q2", DealSizeMM: 780, Leverage: 4.7, MarginBps: 390, Industry: "Transportation", TenorMonths: 72, CovenantLite: false, ESGLinked: true},
	{Borrower: "Silverline Media", Sponsor: "Beacon Ridge Capital", Date: "2025-Q2", DealSizeMM: 620, Leverage: 4.6, MarginBps: 410, Industry: "Media", TenorMonths: 60, CovenantLite: true, ESGLinked: false},
	{Borrower: "Quarry Industrial", Sponsor: "Westbrook Equity", Date: "2025-Q3", DealSizeMM: 1050, Leverage: 4.9, MarginBps: 415, Industry: "Industrials", TenorMonths: 84, CovenantLite: true, ESGLinked: true},
	{Borrower: "Lakeshore Specialty Chem", Sponsor: "Calder Growth Partners", Date: "2025-Q3", DealSizeMM: 890, Leverage: 5.1, MarginBps: 440, Industry: "Chemicals", TenorMonths: 84, CovenantLite: true, ESGLinked: false},
	{Borrower: "Vantage Dental Partners", Sponsor: "Beacon Ridge Capital", Date: "2025-Q3", DealSizeMM: 540, Leverage: 5.0, MarginBps: 435, Industry: "Healthcare", TenorMonths: 72, CovenantLite: false, ESGLinked: true},
}

// Comparables returns a copy of the reference dataset so callers cannot
// mutate the canonical slice.
func Comparables() []ComparableDeal {
	out := make([]ComparableDeal, len(comparables))
	copy(out, comparables)
	return out
}
