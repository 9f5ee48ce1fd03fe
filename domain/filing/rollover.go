package filing

import (
	"filingflow/client/registry"
	"filingflow/domain"
	"filingflow/domain/stage"
	"filingflow/event"
	"filingflow/idgen"
	"filingflow/persistence"
	"filingflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var (
	MaybeRolloverFunc = MaybeRollover
)

// MaybeRollover creates the successor period of a completed filing from the
// authoritative dates of the companies register. It is idempotent: when the
// successor already exists it does nothing, so retries and the recovery
// endpoint cannot double-create periods. Concurrent runs for the same filing
// (async trigger racing the recovery endpoint) are serialized on the client
// row; the existence check is repeated under that lock.
//
// The two filing types inherit the assignee differently on purpose: annual
// accounts start the new period unassigned, VAT returns carry the last
// assignee forward.
func MaybeRollover(completed *domain.Filing) error {
	if !completed.Completed {
		return nil
	}
	catalog, found := stage.CatalogOf(completed.Type)
	if !found {
		return nil
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	successorStart := types.Timestamp(completed.PeriodEnd.Time().AddDate(0, 0, 1))

	// fast path only: the authoritative check happens again under the lock
	count, err := countSuccessors(db, completed, successorStart)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	client := domain.Client{}
	if err := db.Where(&domain.Client{ID: completed.ClientID}).First(&client).Error; err != nil {
		return err
	}

	period, err := registry.FetchNextPeriodFunc(client.CompanyNumber)
	if err != nil {
		return err
	}
	if period == nil {
		logrus.Warnf("registry has no next period for client %d (company %s), filing %d stays without successor",
			client.ID, client.CompanyNumber, completed.ID)
		return nil
	}

	now := types.CurrentTimestamp()
	successor := &domain.Filing{
		ID:       idgen.NextID(filingIdWorker),
		ClientID: completed.ClientID,
		Type:     completed.Type,

		PeriodStart:   successorStart,
		PeriodEnd:     period.PeriodEnd,
		FilingDueTime: period.FilingDueTime,

		CurrentStage:   catalog.Initial(),
		StageBeginTime: now,
		AssigneeID:     rolloverAssignee(completed),
		CreateTime:     now,
	}
	if completed.Type == stage.TypeAnnualAccounts {
		// the register may publish the statutory tax due outright; otherwise
		// it is the period end plus twelve months
		if !period.SecondaryDueTime.Time().IsZero() {
			successor.TaxDueTime = period.SecondaryDueTime
		} else {
			successor.TaxDueTime = types.Timestamp(period.PeriodEnd.Time().AddDate(1, 0, 0))
		}
	}

	var ev *event.EventRecord
	created := false
	err = db.Transaction(func(tx *gorm.DB) error {
		locked := domain.Client{}
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", client.ID).First(&locked).Error; err != nil {
			return err
		}
		count, err := countSuccessors(tx, completed, successorStart)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Create(successor).Error; err != nil {
			return err
		}

		initEntry := &domain.FilingHistoryEntry{
			ID:       idgen.NextID(filingIdWorker),
			FilingID: successor.ID,
			ToStage:  successor.CurrentStage, ChangedTime: now,
			ActorID: session.SystemIdentity.ID, ActorName: session.SystemIdentity.Name,
			ActorRole: session.SystemIdentity.Role,
		}
		if err := AppendHistoryEntry(initEntry, tx); err != nil {
			return err
		}

		if completed.Type == stage.TypeAnnualAccounts {
			// the tax obligation of the period just filed is settled; the
			// client-level pointer moves on to the successor's due date
			if err := tx.Model(&domain.Client{}).Where("id = ?", client.ID).
				Updates(map[string]interface{}{
					"tax_filed":    true,
					"tax_due_time": successor.TaxDueTime,
				}).Error; err != nil {
				return err
			}
		}

		if ev, err = CreateFilingCreatedEvent(successor, &session.SystemIdentity, now, tx); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	logrus.Infof("filing %d rolled over to %d (period %s ~ %s)", completed.ID, successor.ID,
		successor.PeriodStart.Time().Format("2006-01-02"), successor.PeriodEnd.Time().Format("2006-01-02"))
	return nil
}

func countSuccessors(db *gorm.DB, completed *domain.Filing, successorStart types.Timestamp) (int, error) {
	var count int
	err := db.Model(&domain.Filing{}).
		Where("client_id = ? AND filing_type = ? AND period_start = ?",
			completed.ClientID, completed.Type, successorStart).
		Count(&count).Error
	return count, err
}

func rolloverAssignee(completed *domain.Filing) types.ID {
	if completed.Type == stage.TypeVatReturn {
		return completed.AssigneeID
	}
	return 0
}
