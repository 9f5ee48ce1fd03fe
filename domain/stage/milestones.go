package stage

type MilestoneCategory string

const (
	MilestoneChaseStarted      MilestoneCategory = "CHASE_STARTED"
	MilestonePaperworkReceived MilestoneCategory = "PAPERWORK_RECEIVED"
	MilestoneWorkStarted       MilestoneCategory = "WORK_STARTED"
	MilestoneWorkFinished      MilestoneCategory = "WORK_FINISHED"
	MilestoneSentToClient      MilestoneCategory = "SENT_TO_CLIENT"
	MilestoneClientApproved    MilestoneCategory = "CLIENT_APPROVED"
	MilestoneFiled             MilestoneCategory = "FILED"
)

// The two tables are kept independent. They largely coincide today but each
// filing type changed its mapping on its own in the past; do not merge them.
var vatReturnMilestones = map[string]MilestoneCategory{
	AwaitingRecords: MilestoneChaseStarted,
	InProgress:      MilestoneWorkStarted,
	ManagerReview:   MilestoneWorkFinished,
	PartnerReview:   MilestoneWorkFinished,
	SentToClient:    MilestoneSentToClient,
	ClientApproved:  MilestoneClientApproved,
	Filed:           MilestoneFiled,
}

var annualAccountsMilestones = map[string]MilestoneCategory{
	AwaitingRecords:        MilestoneChaseStarted,
	InProgress:             MilestoneWorkStarted,
	QueriesSent:            MilestoneWorkStarted,
	ManagerReview:          MilestoneWorkFinished,
	SentToPartner:          MilestoneWorkFinished,
	SentToClient:           MilestoneSentToClient,
	ClientApproved:         MilestoneClientApproved,
	FiledCompaniesRegister: MilestoneFiled,
	FiledTaxAuthority:      MilestoneFiled,
}

// MilestoneOf returns the milestone category stamped on entering the given
// stage, when the filing type maps one.
func MilestoneOf(t FilingType, stage string) (MilestoneCategory, bool) {
	var table map[string]MilestoneCategory
	switch t {
	case TypeVatReturn:
		table = vatReturnMilestones
	case TypeAnnualAccounts:
		table = annualAccountsMilestones
	default:
		return "", false
	}
	category, found := table[stage]
	return category, found
}
