package models

import "fmt"

// TeamRecord is a fully-resolved win/loss/tie triple. A record is either
// resolved in full or the owning sync fails; a zero record is never a default.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

func (r TeamRecord) String() string {
	return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
}

// Team is one fantasy team within a league, rebuilt wholesale on every sync.
type Team struct {
	Key      string     `json:"key"`
	Name     string     `json:"name"`
	Owner    string     `json:"owner,omitempty"`
	Athletes []Athlete  `json:"athletes"`
	Record   TeamRecord `json:"record"`
	Rank     int        `json:"rank,omitempty"`
}
