package contracts

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMetricJSON(t *testing.T) {
	type payload struct {
		DY  Metric `json:"dy"`
		PVP Metric `json:"pvp"`
	}

	original := payload{DY: F(0.085), PVP: Missing()}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if string(data) != `{"dy":0.085,"pvp":null}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var decoded payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if !decoded.DY.Valid || decoded.DY.Value != 0.085 {
		t.Errorf("DY mismatch: %+v", decoded.DY)
	}
	if decoded.PVP.Valid {
		t.Errorf("Expected PVP to stay missing, got %+v", decoded.PVP)
	}
}

func TestMetricOr(t *testing.T) {
	if got := F(0.1).Or(0.5); got != 0.1 {
		t.Errorf("Or() = %v, want 0.1", got)
	}
	if got := Missing().Or(0.5); got != 0.5 {
		t.Errorf("Or() = %v, want fallback 0.5", got)
	}
}

func TestFundRecord_AllCoreMissing(t *testing.T) {
	tests := []struct {
		name string
		fund FundRecord
		want bool
	}{
		{
			name: "all missing",
			fund: FundRecord{Ticker: "XXXX11"},
			want: true,
		},
		{
			name: "one metric present",
			fund: FundRecord{Ticker: "XXXX11", Liquidity: F(1000)},
			want: false,
		},
		{
			name: "zero is a value, not missing",
			fund: FundRecord{Ticker: "XXXX11", Vacancy: F(0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fund.AllCoreMissing(); got != tt.want {
				t.Errorf("AllCoreMissing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreChecks_Count(t *testing.T) {
	checks := ScoreChecks{
		GoodDividendYield: true,
		EnoughLiquidity:   true,
		EnoughMarketValue: true,
	}

	if got := checks.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}

	if got := (ScoreChecks{}).Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestScoredTable_Find(t *testing.T) {
	table := ScoredTable{
		Funds: []ScoredRecord{
			{FundRecord: FundRecord{Ticker: "HGLG11"}},
			{FundRecord: FundRecord{Ticker: "MXRF11"}},
		},
	}

	if got := table.Find("MXRF11"); got == nil || got.Ticker != "MXRF11" {
		t.Errorf("Find(MXRF11) = %v", got)
	}

	if got := table.Find("NOPE11"); got != nil {
		t.Errorf("Find(NOPE11) = %v, want nil", got)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Reasons: []ValidationReason{
		{Code: InsufficientRows, Detail: "only 3 rows"},
		{Code: DuplicateKeys, Detail: "MXRF11 appears twice"},
	}}

	if !err.Has(DuplicateKeys) {
		t.Error("Expected Has(DuplicateKeys) to be true")
	}
	if err.Has(MissingColumns) {
		t.Error("Expected Has(MissingColumns) to be false")
	}

	var verr *ValidationError
	if !errors.As(error(err), &verr) {
		t.Error("Expected errors.As to match ValidationError")
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewFetchError(FetchConnection, 3, inner)

	if !errors.Is(err, inner) {
		t.Error("Expected errors.Is to find the wrapped error")
	}

	if err.Kind != FetchConnection {
		t.Errorf("Kind = %s, want connection", err.Kind)
	}
}
