package models

import "strings"

// Role distinguishes the two valuation formulas. It is resolved once at parse
// time; eligible position is the authoritative signal.
type Role string

const (
	RoleSkater     Role = "skater"
	RoleGoaltender Role = "goaltender"
)

// Status is the normalized health designation from the provider.
type Status string

const (
	StatusHealthy        Status = "healthy"
	StatusDayToDay       Status = "day-to-day"
	StatusInjuredReserve Status = "injured-reserve"
	StatusLongTermIR     Status = "long-term-ir"
	StatusOut            Status = "out"
)

// Athlete is a single rostered player. The roster parser fills identity and
// metadata; the stats attacher adds Stats; the value calculator adds Value.
type Athlete struct {
	Key          string             `json:"key"`
	DisplayName  string             `json:"display_name"`
	Positions    []string           `json:"positions"`
	Role         Role               `json:"role"`
	TeamAbbr     string             `json:"team_abbr"`
	Status       Status             `json:"status"`
	Rank         int                `json:"rank,omitempty"`
	PercentOwned float64            `json:"percent_owned,omitempty"`
	PercentStart float64            `json:"percent_start,omitempty"`
	Stats        map[string]float64 `json:"stats,omitempty"`
	HasStats     bool               `json:"has_stats"`
	Value        float64            `json:"value,omitempty"`
}

// HasPosition reports whether the athlete is eligible at the given position code.
func (a *Athlete) HasPosition(code string) bool {
	for _, p := range a.Positions {
		if strings.EqualFold(p, code) {
			return true
		}
	}
	return false
}

// PrimaryPosition returns the first eligible position code, or "" for none.
func (a *Athlete) PrimaryPosition() string {
	if len(a.Positions) == 0 {
		return ""
	}
	return a.Positions[0]
}

// PositionList renders the ordered eligible positions as "C,LW".
func (a *Athlete) PositionList() string {
	return strings.Join(a.Positions, ",")
}

// Stat returns the raw season total for the given stat id, and whether it was
// present in the attached season block.
func (a *Athlete) Stat(statID string) (float64, bool) {
	if a.Stats == nil {
		return 0, false
	}
	v, ok := a.Stats[statID]
	return v, ok
}
