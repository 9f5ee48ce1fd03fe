package filing

import (
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/persistence"
	"filingflow/session"

	"github.com/jinzhu/gorm"
)

var (
	QueryHistoryFunc = QueryHistory
)

// AppendHistoryEntry is the only write path of the ledger. Entries are never
// updated or deleted afterwards.
func AppendHistoryEntry(entry *domain.FilingHistoryEntry, tx *gorm.DB) error {
	return tx.Create(entry).Error
}

func QueryHistory(query *domain.FilingHistoryQuery, sec *session.Context) (*[]domain.FilingHistoryEntry, error) {
	if sec == nil {
		return nil, bizerror.ErrUnauthenticated
	}
	var entries []domain.FilingHistoryEntry
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.FilingHistoryEntry{FilingID: query.FilingID}).
		Order("changed_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return &entries, nil
}

// StageDurations rebuilds the whole days spent per stage from the ledger,
// in the order the stages were first left.
func StageDurations(entries []domain.FilingHistoryEntry) []domain.StageDuration {
	durations := []domain.StageDuration{}
	index := map[string]int{}
	for _, entry := range entries {
		if entry.FromStage == "" {
			continue
		}
		if i, found := index[entry.FromStage]; found {
			durations[i].Days += entry.DaysInPreviousStage
			continue
		}
		index[entry.FromStage] = len(durations)
		durations = append(durations, domain.StageDuration{Stage: entry.FromStage, Days: entry.DaysInPreviousStage})
	}
	return durations
}

// TotalDaysToFile is the whole-day span between the first and the last ledger
// entry of a filing.
func TotalDaysToFile(entries []domain.FilingHistoryEntry) int {
	if len(entries) < 2 {
		return 0
	}
	first := entries[0].ChangedTime.Time()
	last := entries[len(entries)-1].ChangedTime.Time()
	return int(last.Sub(first).Hours() / 24)
}
