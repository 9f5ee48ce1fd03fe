package filing_test

import (
	"filingflow/account"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/domain/stage"
	"filingflow/testinfra"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestQueryHistory(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should return the ledger of one filing in change order", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := testinfra.BuildSecCtx(10, "ann", account.RoleBookkeeper)
		f, err := filing.CreateFiling(buildVatCreation(200), sec)
		Expect(err).To(BeNil())
		other, err := filing.CreateFiling(buildVatCreation(201), sec)
		Expect(err).To(BeNil())

		_, err = filing.CreateStageTransition(&domain.StageTransitionCreation{
			FilingID: f.ID, ToStage: stage.InProgress}, sec)
		Expect(err).To(BeNil())
		_, err = filing.CreateStageTransition(&domain.StageTransitionCreation{
			FilingID: f.ID, ToStage: stage.ManagerReview}, sec)
		Expect(err).To(BeNil())

		entries, err := filing.QueryHistory(&domain.FilingHistoryQuery{FilingID: f.ID}, sec)
		Expect(err).To(BeNil())
		Expect(*entries).To(HaveLen(3))
		Expect((*entries)[0].ToStage).To(Equal(stage.AwaitingRecords))
		Expect((*entries)[1].ToStage).To(Equal(stage.InProgress))
		Expect((*entries)[2].ToStage).To(Equal(stage.ManagerReview))

		otherEntries, err := filing.QueryHistory(&domain.FilingHistoryQuery{FilingID: other.ID}, sec)
		Expect(err).To(BeNil())
		Expect(*otherEntries).To(HaveLen(1))
	})
}

func TestStageDurations(t *testing.T) {
	RegisterTestingT(t)

	t.Run("durations aggregate by the stage that was left, in first-seen order", func(t *testing.T) {
		entries := []domain.FilingHistoryEntry{
			{ToStage: stage.AwaitingRecords},
			{FromStage: stage.AwaitingRecords, ToStage: stage.InProgress, DaysInPreviousStage: 3},
			{FromStage: stage.InProgress, ToStage: stage.QueriesSent, DaysInPreviousStage: 2},
			{FromStage: stage.QueriesSent, ToStage: stage.InProgress, DaysInPreviousStage: 5},
			{FromStage: stage.InProgress, ToStage: stage.ManagerReview, DaysInPreviousStage: 1},
		}
		Expect(filing.StageDurations(entries)).To(Equal([]domain.StageDuration{
			{Stage: stage.AwaitingRecords, Days: 3},
			{Stage: stage.InProgress, Days: 3},
			{Stage: stage.QueriesSent, Days: 5},
		}))
	})

	t.Run("empty ledger yields no durations", func(t *testing.T) {
		Expect(filing.StageDurations(nil)).To(BeEmpty())
	})
}

func TestTotalDaysToFile(t *testing.T) {
	RegisterTestingT(t)

	t.Run("spans from the first to the last ledger entry in whole days", func(t *testing.T) {
		start := types.TimestampOfDate(2021, 1, 1, 10, 0, 0, 0, time.Local)
		end := types.TimestampOfDate(2021, 1, 11, 9, 0, 0, 0, time.Local)
		entries := []domain.FilingHistoryEntry{
			{ToStage: stage.AwaitingRecords, ChangedTime: start},
			{FromStage: stage.AwaitingRecords, ToStage: stage.InProgress,
				ChangedTime: types.TimestampOfDate(2021, 1, 5, 0, 0, 0, 0, time.Local)},
			{FromStage: stage.InProgress, ToStage: stage.Filed, ChangedTime: end},
		}
		Expect(filing.TotalDaysToFile(entries)).To(Equal(9))
	})

	t.Run("fewer than two entries span zero days", func(t *testing.T) {
		Expect(filing.TotalDaysToFile(nil)).To(Equal(0))
		Expect(filing.TotalDaysToFile([]domain.FilingHistoryEntry{{ToStage: stage.AwaitingRecords}})).To(Equal(0))
	})
}
