package models

// DraftPick is a future draft asset included in a trade. Its value is a pure
// function of the round.
type DraftPick struct {
	Year        int     `json:"year"`
	Round       int     `json:"round"`
	OwnerTeamID string  `json:"owner_team_id"`
	Value       float64 `json:"value"`
}

// TradeSide is one half of a proposed trade.
type TradeSide struct {
	Athletes []Athlete   `json:"athletes"`
	Picks    []DraftPick `json:"picks,omitempty"`
}

// Trade is a proposed two-sided exchange of valued assets.
type Trade struct {
	SideA TradeSide `json:"side_a"`
	SideB TradeSide `json:"side_b"`
}

// SideAnalysis is the derived, read-only summary of one trade side.
type SideAnalysis struct {
	TotalValue      float64            `json:"total_value"`
	PositionalValue map[string]float64 `json:"positional_value"`
	ProjectedPoints float64            `json:"projected_points,omitempty"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
}

// Recommendation classifies the analyzer's verdict for side A.
type Recommendation string

const (
	RecommendAccept  Recommendation = "accept"
	RecommendCounter Recommendation = "counter"
	RecommendDecline Recommendation = "decline"
)

// TradeAnalysis is the full analyzer output.
type TradeAnalysis struct {
	SideA          SideAnalysis   `json:"side_a_analysis"`
	SideB          SideAnalysis   `json:"side_b_analysis"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	Reasoning      []string       `json:"reasoning"`
}
