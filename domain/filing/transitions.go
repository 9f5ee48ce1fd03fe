package filing

import (
	"filingflow/account"
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/domain/assign"
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
	CreateStageTransitionFunc = CreateStageTransition

	// OverwriteMilestones re-stamps a milestone every time its mapped stage is
	// entered again, instead of keeping the first stamp. Both behaviors exist
	// in the field; the default is set-once.
	OverwriteMilestones = false

	// RolloverTriggerFunc runs the rollover off the critical path of the
	// transition that completed the filing.
	RolloverTriggerFunc = triggerRolloverAsync
)

// CreateStageTransition moves a filing to another stage of its catalog.
//
// The write is conditioned on the stage the caller observed, so two
// concurrent transitions on one filing cannot both win: the loser gets
// ErrStageConflict and may retry against the fresh state.
func CreateStageTransition(c *domain.StageTransitionCreation, sec *session.Context) (*domain.Filing, error) {
	if sec == nil {
		return nil, bizerror.ErrUnauthenticated
	}

	filing := domain.Filing{}
	var ev *event.EventRecord
	assigneeChanged := false
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.Filing{ID: c.FilingID}).First(&filing).Error; err != nil {
			return err
		}
		catalog, found := stage.CatalogOf(filing.Type)
		if !found {
			return bizerror.ErrUnknownFilingType
		}
		if !catalog.Contains(c.ToStage) {
			return bizerror.ErrUnknownStage
		}
		// a completed filing only accepts an undo back to a non-terminal stage
		if filing.Completed && catalog.IsTerminal(c.ToStage) {
			return bizerror.ErrFilingCompleted
		}
		if c.ToStage == filing.CurrentStage {
			return bizerror.ErrSameStage
		}

		now := types.CurrentTimestamp()
		fromStage := filing.CurrentStage

		days, err := daysSinceLastTransition(tx, filing.ID, now)
		if err != nil {
			return err
		}

		assignee := filing.AssigneeID
		if c.Assignee != nil {
			assignee = c.Assignee.UserID
		} else {
			snapshot, err := account.ActiveOperatorSnapshotFunc()
			if err != nil {
				return err
			}
			assignee = assign.Resolve(c.ToStage, snapshot, filing.AssigneeID)
		}
		assigneeChanged = assignee != filing.AssigneeID

		updates := map[string]interface{}{
			"current_stage":    c.ToStage,
			"stage_begin_time": now,
			"completed":        catalog.IsTerminal(c.ToStage),
			"assignee_id":      assignee,
		}
		stampMilestones(&filing, catalog, c.ToStage, now, &sec.Identity, updates)

		query := tx.Model(&domain.Filing{}).
			Where("id = ? AND current_stage = ?", filing.ID, fromStage).
			Updates(updates)
		if query.Error != nil {
			return query.Error
		}
		if query.RowsAffected != 1 {
			return bizerror.ErrStageConflict
		}

		entry := &domain.FilingHistoryEntry{
			ID:       idgen.NextID(filingIdWorker),
			FilingID: filing.ID,

			FromStage: fromStage, ToStage: c.ToStage,
			ChangedTime: now, DaysInPreviousStage: days,

			ActorID: sec.Identity.ID, ActorName: sec.Identity.Name,
			ActorEmail: sec.Identity.Email, ActorRole: sec.Identity.Role,

			Notes: c.Notes,
		}
		if err := AppendHistoryEntry(entry, tx); err != nil {
			return err
		}

		ev, err = CreateFilingStageChangedEvent(&filing, fromStage, c.ToStage, &sec.Identity, now, tx)
		if err != nil {
			return err
		}

		return tx.Where(&domain.Filing{ID: filing.ID}).First(&filing).Error
	})
	if err != nil {
		return nil, err
	}

	// downstream of the committed transition everything is best-effort
	if assigneeChanged {
		if err := cascadeAssignment(&filing); err != nil {
			logrus.Warnf("assignment cascade for filing %d failed: %v", filing.ID, err)
		}
	}
	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	if filing.Completed && RolloverTriggerFunc != nil {
		RolloverTriggerFunc(filing)
	}
	return &filing, nil
}

// cascadeAssignment keeps the client-level assignee pointer in step and, for
// VAT returns, strips the assignee off every later period of the same client:
// only the active period carries one.
func cascadeAssignment(filing *domain.Filing) error {
	db := persistence.ActiveDataSourceManager.GormDB()

	pointerColumn := "accounts_assignee_id"
	if filing.Type == stage.TypeVatReturn {
		pointerColumn = "vat_assignee_id"
	}
	if err := db.Model(&domain.Client{}).Where("id = ?", filing.ClientID).
		Update(pointerColumn, filing.AssigneeID).Error; err != nil {
		return err
	}

	if filing.Type == stage.TypeVatReturn {
		if err := db.Model(&domain.Filing{}).
			Where("client_id = ? AND filing_type = ? AND period_end > ? AND id <> ?",
				filing.ClientID, filing.Type, filing.PeriodEnd, filing.ID).
			Update("assignee_id", 0).Error; err != nil {
			return err
		}
	}
	return nil
}

func stampMilestones(filing *domain.Filing, catalog *stage.Catalog, toStage string,
	now types.Timestamp, identity *session.Identity, updates map[string]interface{}) {

	if category, found := stage.MilestoneOf(filing.Type, toStage); found {
		stampMilestone(filing, category, now, identity, updates)
	}

	// leaving the initial chase stage for the first time records that the
	// client's paperwork arrived, whatever the target stage is
	if filing.CurrentStage == catalog.Initial() && !filing.PaperworkReceived.IsStamped() {
		stampMilestone(filing, stage.MilestonePaperworkReceived, now, identity, updates)
	}
}

func stampMilestone(filing *domain.Filing, category stage.MilestoneCategory,
	now types.Timestamp, identity *session.Identity, updates map[string]interface{}) {

	mark := filing.MilestoneMarkOf(category)
	if mark == nil {
		return
	}
	if mark.IsStamped() && !OverwriteMilestones {
		return
	}
	prefix := domain.MilestoneColumnPrefix(category)
	updates[prefix+"time"] = now
	updates[prefix+"actor_id"] = identity.ID
	updates[prefix+"actor_name"] = identity.Name
}

func daysSinceLastTransition(tx *gorm.DB, filingID types.ID, now types.Timestamp) (int, error) {
	last := domain.FilingHistoryEntry{}
	err := tx.Where(&domain.FilingHistoryEntry{FilingID: filingID}).
		Order("changed_time DESC").First(&last).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return 0, nil
		}
		return 0, err
	}
	return int(now.Time().Sub(last.ChangedTime.Time()).Hours() / 24), nil
}

func triggerRolloverAsync(f domain.Filing) {
	go func() {
		if err := MaybeRolloverFunc(&f); err != nil {
			logrus.Warnf("rollover for filing %d failed: %v", f.ID, err)
		}
	}()
}
