package contracts

import "time"

// SchemaVersion identifies the canonical column set a table was parsed with.
const SchemaVersion = "fundamentus/v1"

// RawRecord holds one fund's scraped fields keyed by canonical column key,
// values still in source formatting ("3,25%", "1.234.567", "-").
// Discarded after normalization.
type RawRecord map[string]string

// FundRecord is the canonical unit after normalization.
// Yields and vacancy are fractions (0.085 = 8.5%), amounts are BRL.
type FundRecord struct {
	Ticker       string `json:"ticker"`
	Segment      string `json:"segment"`
	MacroSegment string `json:"macro_segment"`

	Price         Metric `json:"price"`
	FFOYield      Metric `json:"ffo_yield"`
	DividendYield Metric `json:"dividend_yield"`
	PVP           Metric `json:"pvp"`
	MarketValue   Metric `json:"market_value"`
	Liquidity     Metric `json:"liquidity"`
	PropertyCount Metric `json:"property_count"`
	CapRate       Metric `json:"cap_rate"`
	Vacancy       Metric `json:"vacancy"`
}

// CoreMetrics returns the five metrics the score and validation look at
func (f *FundRecord) CoreMetrics() []Metric {
	return []Metric{f.DividendYield, f.PVP, f.Liquidity, f.Vacancy, f.MarketValue}
}

// AllCoreMissing reports whether every scored metric is the missing sentinel
func (f *FundRecord) AllCoreMissing() bool {
	for _, m := range f.CoreMetrics() {
		if m.Valid {
			return false
		}
	}
	return true
}

// ScoreChecks holds the five boolean quality predicates behind a score,
// kept so the score is always auditable.
type ScoreChecks struct {
	GoodDividendYield bool `json:"good_dividend_yield"`
	GoodPVP           bool `json:"good_pvp"`
	EnoughLiquidity   bool `json:"enough_liquidity"`
	LowVacancy        bool `json:"low_vacancy"`
	EnoughMarketValue bool `json:"enough_market_value"`
}

// Count returns the number of satisfied predicates
func (c ScoreChecks) Count() int {
	n := 0
	for _, ok := range []bool{
		c.GoodDividendYield,
		c.GoodPVP,
		c.EnoughLiquidity,
		c.LowVacancy,
		c.EnoughMarketValue,
	} {
		if ok {
			n++
		}
	}
	return n
}

// ScoredRecord is a FundRecord plus its quality score in [0,5]
type ScoredRecord struct {
	FundRecord
	Checks ScoreChecks `json:"checks"`
	Score  int         `json:"score"`
}

// FundTable is an ordered snapshot of funds sharing one schema version and
// one fetch timestamp. It is the unit cached and invalidated as a whole.
type FundTable struct {
	Funds         []FundRecord `json:"funds"`
	Columns       []string     `json:"columns"` // canonical keys seen in the source table
	FetchedAt     time.Time    `json:"fetched_at"`
	SchemaVersion string       `json:"schema_version"`
}

// Len returns the number of funds in the table
func (t *FundTable) Len() int {
	return len(t.Funds)
}

// HasColumn reports whether the source table carried the given canonical key
func (t *FundTable) HasColumn(key string) bool {
	for _, c := range t.Columns {
		if c == key {
			return true
		}
	}
	return false
}

// ScoredTable is the validated and scored snapshot all consumers read.
// Stages never mutate it in place; each stage returns a new value.
type ScoredTable struct {
	Funds         []ScoredRecord `json:"funds"`
	FetchedAt     time.Time      `json:"fetched_at"`
	SchemaVersion string         `json:"schema_version"`
}

// Find returns the record for a ticker, or nil when absent
func (t *ScoredTable) Find(ticker string) *ScoredRecord {
	for i := range t.Funds {
		if t.Funds[i].Ticker == ticker {
			return &t.Funds[i]
		}
	}
	return nil
}

// Tickers returns all tickers in table order
func (t *ScoredTable) Tickers() []string {
	out := make([]string, len(t.Funds))
	for i := range t.Funds {
		out[i] = t.Funds[i].Ticker
	}
	return out
}
