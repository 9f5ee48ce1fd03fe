package domain

import (
	"github.com/fundwit/go-commons/types"
)

// FilingHistoryEntry is one row of the append-only transition ledger.
// Entries are never updated or deleted; ordering by ChangedTime rebuilds the
// full stage history of a filing.
type FilingHistoryEntry struct {
	ID       types.ID `json:"id"`
	FilingID types.ID `json:"filingId"`

	// empty for the initial entry of a filing
	FromStage string `json:"fromStage"`
	ToStage   string `json:"toStage"`

	ChangedTime         types.Timestamp `json:"changedTime" sql:"type:DATETIME(6) NOT NULL"`
	DaysInPreviousStage int             `json:"daysInPreviousStage"`

	ActorID    types.ID `json:"actorId"`
	ActorName  string   `json:"actorName"`
	ActorEmail string   `json:"actorEmail"`
	ActorRole  string   `json:"actorRole"`

	Notes string `json:"notes" sql:"type:TEXT"`
}

func (r *FilingHistoryEntry) TableName() string {
	return "filing_history"
}

type FilingHistoryQuery struct {
	FilingID types.ID `json:"filingId" form:"filingId" binding:"required"`
}

// StageDuration is the read-side reconstruction of time spent per stage.
type StageDuration struct {
	Stage string `json:"stage"`
	Days  int    `json:"days"`
}
