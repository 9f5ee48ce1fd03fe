package stage_test

import (
	"filingflow/domain/stage"
	"testing"

	. "github.com/onsi/gomega"
)

func TestMilestoneOf(t *testing.T) {
	RegisterTestingT(t)

	t.Run("vat return milestone mapping", func(t *testing.T) {
		expected := map[string]stage.MilestoneCategory{
			stage.AwaitingRecords: stage.MilestoneChaseStarted,
			stage.InProgress:      stage.MilestoneWorkStarted,
			stage.ManagerReview:   stage.MilestoneWorkFinished,
			stage.PartnerReview:   stage.MilestoneWorkFinished,
			stage.SentToClient:    stage.MilestoneSentToClient,
			stage.ClientApproved:  stage.MilestoneClientApproved,
			stage.Filed:           stage.MilestoneFiled,
		}
		for s, want := range expected {
			category, found := stage.MilestoneOf(stage.TypeVatReturn, s)
			Expect(found).To(BeTrue(), "stage "+s)
			Expect(category).To(Equal(want), "stage "+s)
		}

		// QUERIES_SENT carries no milestone for vat returns
		_, found := stage.MilestoneOf(stage.TypeVatReturn, stage.QueriesSent)
		Expect(found).To(BeFalse())
	})

	t.Run("annual accounts milestone mapping", func(t *testing.T) {
		expected := map[string]stage.MilestoneCategory{
			stage.AwaitingRecords:        stage.MilestoneChaseStarted,
			stage.InProgress:             stage.MilestoneWorkStarted,
			stage.QueriesSent:            stage.MilestoneWorkStarted,
			stage.ManagerReview:          stage.MilestoneWorkFinished,
			stage.SentToPartner:          stage.MilestoneWorkFinished,
			stage.SentToClient:           stage.MilestoneSentToClient,
			stage.ClientApproved:         stage.MilestoneClientApproved,
			stage.FiledCompaniesRegister: stage.MilestoneFiled,
			stage.FiledTaxAuthority:      stage.MilestoneFiled,
		}
		for s, want := range expected {
			category, found := stage.MilestoneOf(stage.TypeAnnualAccounts, s)
			Expect(found).To(BeTrue(), "stage "+s)
			Expect(category).To(Equal(want), "stage "+s)
		}
	})

	t.Run("unknown filing type maps nothing", func(t *testing.T) {
		_, found := stage.MilestoneOf("PAYROLL", stage.InProgress)
		Expect(found).To(BeFalse())
	})
}
