package indices_test

import (
	"errors"
	"filingflow/account"
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/es"
	"filingflow/event"
	"filingflow/indices"
	"filingflow/session"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestScheduleNewSyncRun(t *testing.T) {
	RegisterTestingT(t)

	t.Run("only partners can schedule a sync run", func(t *testing.T) {
		sec := session.Context{Identity: session.Identity{ID: 10, Role: account.RoleBookkeeper}}
		success, err := indices.ScheduleNewSyncRun(&sec)
		Expect(err).To(Equal(bizerror.ErrForbidden))
		Expect(success).To(BeFalse())
	})

	t.Run("a second schedule is rejected while a run is in flight", func(t *testing.T) {
		indices.IndicesFullSyncFunc = func() error {
			time.Sleep(100 * time.Millisecond)
			return nil
		}
		defer func() {
			indices.IndicesFullSyncFunc = indices.IndicesFullSync
		}()

		sec := session.Context{Identity: session.Identity{ID: 10, Role: account.RolePartner}}
		success, err := indices.ScheduleNewSyncRun(&sec)
		Expect(err).To(BeNil())
		Expect(success).To(BeTrue())

		success, err = indices.ScheduleNewSyncRun(&sec)
		Expect(err).To(BeNil())
		Expect(success).To(BeFalse())

		time.Sleep(200 * time.Millisecond)

		success, err = indices.ScheduleNewSyncRun(&sec)
		Expect(err).To(BeNil())
		Expect(success).To(BeTrue())
	})
}

func TestIndexFilingEventHandle(t *testing.T) {
	RegisterTestingT(t)

	t.Run("only accept events of filings", func(t *testing.T) {
		Expect(indices.IndexFilingEventHandle(&event.EventRecord{Event: event.Event{SourceType: "NOT_FILING"}})).To(BeNil())
	})

	t.Run("filing event handle success", func(t *testing.T) {
		es.IndexFunc = func(index string, id types.ID, doc interface{}) error {
			return nil
		}
		filing.DetailFilingFunc = func(id types.ID, sec *session.Context) (*domain.Filing, error) {
			return &domain.Filing{ID: id}, nil
		}
		defer func() {
			es.IndexFunc = es.Index
			filing.DetailFilingFunc = filing.DetailFiling
		}()
		ev := event.EventRecord{Event: event.Event{SourceType: "FILING", SourceId: 100, EventCategory: event.EventCategoryCreated}}

		expectedResult := event.EventHandleResult{Success: true, HandlerIdentifier: indices.FilingIndexEventHandlerName}
		Expect(*indices.IndexFilingEventHandle(&ev)).To(Equal(expectedResult))
	})

	t.Run("failed to load the filing behind the event", func(t *testing.T) {
		filing.DetailFilingFunc = func(id types.ID, sec *session.Context) (*domain.Filing, error) {
			return nil, errors.New("error on detail filing")
		}
		defer func() {
			filing.DetailFilingFunc = filing.DetailFiling
		}()
		ev := event.EventRecord{Event: event.Event{SourceType: "FILING", SourceId: 100, EventCategory: event.EventCategoryStageChanged}}

		expectedResult := event.EventHandleResult{
			Success:           false,
			HandlerIdentifier: indices.FilingIndexEventHandlerName,
			Message:           "detail filing when indexing filing 100, error on detail filing",
		}
		Expect(*indices.IndexFilingEventHandle(&ev)).To(Equal(expectedResult))
	})

	t.Run("failed to write the filing document", func(t *testing.T) {
		es.IndexFunc = func(index string, id types.ID, doc interface{}) error {
			return errors.New("error on index document")
		}
		filing.DetailFilingFunc = func(id types.ID, sec *session.Context) (*domain.Filing, error) {
			return &domain.Filing{ID: id}, nil
		}
		defer func() {
			es.IndexFunc = es.Index
			filing.DetailFilingFunc = filing.DetailFiling
		}()
		ev := event.EventRecord{Event: event.Event{SourceType: "FILING", SourceId: 100, EventCategory: event.EventCategoryStageChanged}}

		result := indices.IndexFilingEventHandle(&ev)
		Expect(result.Success).To(BeFalse())
		Expect(result.HandlerIdentifier).To(Equal(indices.FilingIndexEventHandlerName))
		Expect(result.Message).To(ContainSubstring("index filing 100"))
	})
}
