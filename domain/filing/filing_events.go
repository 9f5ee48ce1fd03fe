package filing

import (
	"filingflow/domain"
	"filingflow/domain/stage"
	"filingflow/event"
	"filingflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

func filingDesc(f *domain.Filing) string {
	return string(f.Type) + " " + f.PeriodEnd.Time().Format("2006-01-02")
}

func CreateFilingCreatedEvent(f *domain.Filing, identity *session.Identity, timestamp types.Timestamp, db *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent("FILING", f.ID, filingDesc(f), event.EventCategoryCreated, nil, identity, timestamp, db)
}

func CreateFilingStageChangedEvent(f *domain.Filing, fromStage, toStage string, identity *session.Identity, timestamp types.Timestamp, db *gorm.DB) (*event.EventRecord, error) {
	category := event.EventCategoryStageChanged
	if catalog, found := stage.CatalogOf(f.Type); found && catalog.IsTerminal(toStage) {
		category = event.EventCategoryCompleted
	}
	return event.CreateEvent("FILING", f.ID, filingDesc(f), category,
		[]event.UpdatedProperty{{
			PropertyName: "CurrentStage", PropertyDesc: "CurrentStage",
			OldValue: fromStage, OldValueDesc: fromStage,
			NewValue: toStage, NewValueDesc: toStage,
		}},
		identity, timestamp, db)
}
