// Package normalize converts raw scraped Fundamentus fields into typed
// records: locale numeric parsing, column canonicalization and
// macro-segment assignment. Everything here is pure; per-field parse
// failures degrade to the missing sentinel and are collected into a
// batch report instead of dropping records.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/brfin/fiiradar/internal/contracts"
)

// FieldError records one field that failed to parse.
type FieldError struct {
	Ticker string `json:"ticker"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Err    string `json:"error"`
}

// Report collects non-fatal normalization warnings for a whole batch.
type Report struct {
	Fields         []FieldError `json:"fields"`
	SkippedRecords int          `json:"skipped_records"`
}

// Warnings returns the number of per-field parse failures
func (r *Report) Warnings() int {
	return len(r.Fields)
}

func (r *Report) addField(ticker, column, value string, err error) {
	r.Fields = append(r.Fields, FieldError{
		Ticker: ticker,
		Column: column,
		Value:  value,
		Err:    err.Error(),
	})
}

// percentColumns come as "13,63%" strings and are stored as fractions.
var percentColumns = map[string]struct{}{
	ColFFOYield:      {},
	ColDividendYield: {},
	ColCapRate:       {},
	ColVacancy:       {},
}

// Normalizer turns RawRecords into FundRecords.
type Normalizer struct{}

// New creates a Normalizer
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a scraped batch into a FundTable. Pure function:
// no I/O, input is never mutated. Records missing a ticker are skipped
// (counted in the report); any other per-field failure leaves that one
// metric missing and keeps the record.
func (n *Normalizer) Normalize(raws []contracts.RawRecord, columns []string, fetchedAt time.Time) (*contracts.FundTable, *Report) {
	report := &Report{}
	funds := make([]contracts.FundRecord, 0, len(raws))

	for _, raw := range raws {
		ticker := strings.ToUpper(strings.TrimSpace(raw[ColTicker]))
		if ticker == "" {
			report.SkippedRecords++
			continue
		}

		segment := strings.TrimSpace(raw[ColSegment])

		fund := contracts.FundRecord{
			Ticker:       ticker,
			Segment:      segment,
			MacroSegment: MacroSegment(segment),
		}

		fund.Price = n.metric(raw, ColPrice, ticker, report)
		fund.FFOYield = n.metric(raw, ColFFOYield, ticker, report)
		fund.DividendYield = n.metric(raw, ColDividendYield, ticker, report)
		fund.PVP = n.metric(raw, ColPVP, ticker, report)
		fund.MarketValue = n.metric(raw, ColMarketValue, ticker, report)
		fund.Liquidity = n.metric(raw, ColLiquidity, ticker, report)
		fund.PropertyCount = n.metric(raw, ColPropertyCount, ticker, report)
		fund.CapRate = n.metric(raw, ColCapRate, ticker, report)
		fund.Vacancy = n.metric(raw, ColVacancy, ticker, report)

		funds = append(funds, fund)
	}

	table := &contracts.FundTable{
		Funds:         funds,
		Columns:       columns,
		FetchedAt:     fetchedAt,
		SchemaVersion: contracts.SchemaVersion,
	}

	return table, report
}

// metric parses one raw field into a Metric, reporting parse failures
func (n *Normalizer) metric(raw contracts.RawRecord, column, ticker string, report *Report) contracts.Metric {
	value, ok := raw[column]
	if !ok || IsMissingMarker(value) {
		return contracts.Missing()
	}

	var v float64
	var err error
	if _, percent := percentColumns[column]; percent {
		v, err = ParsePercent(value)
	} else {
		v, err = ParseDecimal(value)
	}

	if err != nil {
		report.addField(ticker, column, value, err)
		return contracts.Missing()
	}

	if v < 0 && column != ColFFOYield && column != ColDividendYield {
		// Negative liquidity or market value is a scrape artifact
		report.addField(ticker, column, value, fmt.Errorf("unexpected negative value"))
		return contracts.Missing()
	}

	return contracts.F(v)
}
