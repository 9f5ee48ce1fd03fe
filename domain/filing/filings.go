package filing

import (
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/domain/stage"
	"filingflow/event"
	"filingflow/idgen"
	"filingflow/persistence"
	"filingflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	filingIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateFilingFunc = CreateFiling
	DetailFilingFunc = DetailFiling
	QueryFilingsFunc = QueryFilings
	LoadFilingsFunc  = LoadFilings
)

// CreateFiling records the first obligation-period of a client; later periods
// are generated by the rollover when the previous one is filed.
func CreateFiling(c *domain.FilingCreation, sec *session.Context) (*domain.Filing, error) {
	if sec == nil {
		return nil, bizerror.ErrUnauthenticated
	}
	catalog, found := stage.CatalogOf(c.Type)
	if !found {
		return nil, bizerror.ErrUnknownFilingType
	}

	now := types.CurrentTimestamp()
	filing := &domain.Filing{
		ID:       idgen.NextID(filingIdWorker),
		ClientID: c.ClientID,
		Type:     c.Type,

		PeriodStart:   c.PeriodStart,
		PeriodEnd:     c.PeriodEnd,
		FilingDueTime: c.FilingDueTime,

		CurrentStage:   catalog.Initial(),
		StageBeginTime: now,
		AssigneeID:     c.AssigneeID,
		CreateTime:     now,
	}
	if c.Type == stage.TypeAnnualAccounts {
		filing.TaxDueTime = types.Timestamp(c.PeriodEnd.Time().AddDate(1, 0, 0))
	}

	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(filing).Error; err != nil {
			return err
		}

		initEntry := &domain.FilingHistoryEntry{
			ID:       idgen.NextID(filingIdWorker),
			FilingID: filing.ID,
			ToStage:  filing.CurrentStage, ChangedTime: now,
			ActorID: sec.Identity.ID, ActorName: sec.Identity.Name,
			ActorEmail: sec.Identity.Email, ActorRole: sec.Identity.Role,
		}
		if err := AppendHistoryEntry(initEntry, tx); err != nil {
			return err
		}

		var err error
		ev, err = CreateFilingCreatedEvent(filing, &sec.Identity, now, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return filing, nil
}

func DetailFiling(id types.ID, sec *session.Context) (*domain.Filing, error) {
	if sec == nil {
		return nil, bizerror.ErrUnauthenticated
	}
	filing := domain.Filing{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.Filing{ID: id}).First(&filing).Error; err != nil {
		return nil, err
	}
	return &filing, nil
}

func QueryFilings(query *domain.FilingQuery, sec *session.Context) (*[]domain.Filing, error) {
	if sec == nil {
		return nil, bizerror.ErrUnauthenticated
	}
	var filings []domain.Filing
	db := persistence.ActiveDataSourceManager.GormDB()

	q := db.Where(domain.Filing{ClientID: query.ClientID, Type: query.Type})
	if !query.IncludeCompleted {
		q = q.Where("completed = ?", false)
	}
	if err := q.Order("period_start ASC").Find(&filings).Error; err != nil {
		return nil, err
	}
	return &filings, nil
}

// LoadFilings pages through all filings in id order, for batch jobs like the
// search index rebuild.
func LoadFilings(page, size int) ([]domain.Filing, error) {
	if page < 1 {
		page = 1
	}
	var filings []domain.Filing
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("id ASC").Offset((page - 1) * size).Limit(size).Find(&filings).Error; err != nil {
		return nil, err
	}
	return filings, nil
}
