package contracts

// SimilarityQuery asks for funds close to a target fund.
// Nil tolerance pointers mean "suggest from the target's own metrics".
type SimilarityQuery struct {
	Ticker       string   `json:"ticker"`
	DYTolerance  *float64 `json:"dy_tolerance,omitempty"`  // fraction, e.g. 0.02 = 2pp
	PVPTolerance *float64 `json:"pvp_tolerance,omitempty"` // absolute P/VP gap
	MinLiquidity *float64 `json:"min_liquidity,omitempty"` // BRL/day
	SameSegment  bool     `json:"same_segment"`
	MaxResults   int      `json:"max_results"` // 0 = unlimited
}

// Tolerances are the resolved parameters a similarity search actually ran
// with, echoed back so auto-suggested values are visible to the caller.
type Tolerances struct {
	DYTolerance  float64 `json:"dy_tolerance"`
	PVPTolerance float64 `json:"pvp_tolerance"`
	MinLiquidity float64 `json:"min_liquidity"`
	Suggested    bool    `json:"suggested"`
}

// SimilarityMatch pairs a candidate fund with its distance to the target.
// Smaller distance means more similar.
type SimilarityMatch struct {
	Fund     ScoredRecord `json:"fund"`
	Distance float64      `json:"distance"`
}

// SimilarityResult is an ordered ranking, nearest first, never containing
// the target itself.
type SimilarityResult struct {
	Target     ScoredRecord      `json:"target"`
	Tolerances Tolerances        `json:"tolerances"`
	Matches    []SimilarityMatch `json:"matches"`
}
