package domain

import (
	"filingflow/domain/stage"

	"github.com/fundwit/go-commons/types"
)

// Filing is one obligation-period of one client: a single VAT-style return
// quarter or a single annual-accounts filing period.
type Filing struct {
	ID       types.ID         `json:"id"`
	ClientID types.ID         `json:"clientId"`
	Type     stage.FilingType `json:"type" gorm:"column:filing_type"`

	PeriodStart   types.Timestamp `json:"periodStart" sql:"type:DATETIME(6) NOT NULL"`
	PeriodEnd     types.Timestamp `json:"periodEnd" sql:"type:DATETIME(6) NOT NULL"`
	FilingDueTime types.Timestamp `json:"filingDueTime" sql:"type:DATETIME(6)"`
	// accounts only: statutory tax return due, periodEnd + 12 months
	TaxDueTime types.Timestamp `json:"taxDueTime" sql:"type:DATETIME(6)"`

	CurrentStage   string          `json:"currentStage"`
	StageBeginTime types.Timestamp `json:"stageBeginTime" sql:"type:DATETIME(6)"`
	Completed      bool            `json:"completed"`

	// zero means unassigned
	AssigneeID types.ID `json:"assigneeId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`

	ChaseStarted      MilestoneMark `json:"chaseStarted" gorm:"embedded;embedded_prefix:chase_started_"`
	PaperworkReceived MilestoneMark `json:"paperworkReceived" gorm:"embedded;embedded_prefix:paperwork_received_"`
	WorkStarted       MilestoneMark `json:"workStarted" gorm:"embedded;embedded_prefix:work_started_"`
	WorkFinished      MilestoneMark `json:"workFinished" gorm:"embedded;embedded_prefix:work_finished_"`
	SentToClient      MilestoneMark `json:"sentToClient" gorm:"embedded;embedded_prefix:sent_to_client_"`
	ClientApproved    MilestoneMark `json:"clientApproved" gorm:"embedded;embedded_prefix:client_approved_"`
	Filed             MilestoneMark `json:"filed" gorm:"embedded;embedded_prefix:filed_"`
}

// MilestoneMark records when a real-world event happened and who drove it,
// independent of the stage the filing sits in afterwards.
type MilestoneMark struct {
	Time      types.Timestamp `json:"time" sql:"type:DATETIME(6)"`
	ActorID   types.ID        `json:"actorId"`
	ActorName string          `json:"actorName"`
}

func (m *MilestoneMark) IsStamped() bool {
	return !m.Time.IsZero()
}

func (f *Filing) MilestoneMarkOf(category stage.MilestoneCategory) *MilestoneMark {
	switch category {
	case stage.MilestoneChaseStarted:
		return &f.ChaseStarted
	case stage.MilestonePaperworkReceived:
		return &f.PaperworkReceived
	case stage.MilestoneWorkStarted:
		return &f.WorkStarted
	case stage.MilestoneWorkFinished:
		return &f.WorkFinished
	case stage.MilestoneSentToClient:
		return &f.SentToClient
	case stage.MilestoneClientApproved:
		return &f.ClientApproved
	case stage.MilestoneFiled:
		return &f.Filed
	}
	return nil
}

// MilestoneColumnPrefix maps a milestone category to the column prefix of its
// embedded mark, for partial updates.
func MilestoneColumnPrefix(category stage.MilestoneCategory) string {
	switch category {
	case stage.MilestoneChaseStarted:
		return "chase_started_"
	case stage.MilestonePaperworkReceived:
		return "paperwork_received_"
	case stage.MilestoneWorkStarted:
		return "work_started_"
	case stage.MilestoneWorkFinished:
		return "work_finished_"
	case stage.MilestoneSentToClient:
		return "sent_to_client_"
	case stage.MilestoneClientApproved:
		return "client_approved_"
	case stage.MilestoneFiled:
		return "filed_"
	}
	return ""
}

// Client carries only what the engine needs of the client master data:
// the registry key and the per-type current assignee pointers.
type Client struct {
	ID            types.ID `json:"id"`
	Name          string   `json:"name"`
	CompanyNumber string   `json:"companyNumber"`

	VatAssigneeID      types.ID `json:"vatAssigneeId"`
	AccountsAssigneeID types.ID `json:"accountsAssigneeId"`

	TaxFiled   bool            `json:"taxFiled"`
	TaxDueTime types.Timestamp `json:"taxDueTime" sql:"type:DATETIME(6)"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6)"`
}

type FilingCreation struct {
	ClientID types.ID         `json:"clientId" binding:"required"`
	Type     stage.FilingType `json:"type" binding:"required"`

	PeriodStart   types.Timestamp `json:"periodStart" binding:"required"`
	PeriodEnd     types.Timestamp `json:"periodEnd" binding:"required"`
	FilingDueTime types.Timestamp `json:"filingDueTime" binding:"required"`

	AssigneeID types.ID `json:"assigneeId"`
}

type FilingQuery struct {
	ClientID         types.ID         `json:"clientId" form:"clientId"`
	Type             stage.FilingType `json:"type" form:"type"`
	IncludeCompleted bool             `json:"includeCompleted" form:"includeCompleted"`
}

type StageTransitionCreation struct {
	FilingID types.ID `json:"filingId" binding:"required"`
	ToStage  string   `json:"toStage" binding:"required"`
	Notes    string   `json:"notes"`

	// nil lets the engine auto-assign; a zero UserID unassigns explicitly
	Assignee *AssigneeOverride `json:"assignee"`
}

type AssigneeOverride struct {
	UserID types.ID `json:"userId"`
}
