package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"filingflow/client/s3"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/event"
	"filingflow/session"
	"fmt"
)

var (
	FilingArchiveEventHandlerName = "filingArchiver"

	archiveRobot = &session.Context{
		Identity: session.Identity{ID: 11, Name: "archive-robot", Role: "SYSTEM"},
	}
)

// FilingSnapshot is the immutable record written to object storage once a
// filing is done: the final state plus the full transition ledger.
type FilingSnapshot struct {
	Filing  domain.Filing               `json:"filing"`
	History []domain.FilingHistoryEntry `json:"history"`
}

func ArchiveObjectKey(f *domain.Filing) string {
	return fmt.Sprintf("filings/%d/%s.json", f.ClientID, f.ID.String())
}

// ArchiveFilingEventHandle writes a snapshot of every completed filing to the
// archive bucket. Failures are reported to the event dispatcher, never back to
// the transition that completed the filing.
func ArchiveFilingEventHandle(e *event.EventRecord) *event.EventHandleResult {
	if e.SourceType != "FILING" || e.EventCategory != event.EventCategoryCompleted {
		return nil
	}

	f, err := filing.DetailFilingFunc(e.Event.SourceId, archiveRobot)
	if err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("detail filing when archiving filing %d, %v", e.Event.SourceId, err),
			HandlerIdentifier: FilingArchiveEventHandlerName,
		}
	}
	entries, err := filing.QueryHistoryFunc(&domain.FilingHistoryQuery{FilingID: f.ID}, archiveRobot)
	if err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("query history when archiving filing %d, %v", e.Event.SourceId, err),
			HandlerIdentifier: FilingArchiveEventHandlerName,
		}
	}

	body, err := json.Marshal(FilingSnapshot{Filing: *f, History: *entries})
	if err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("marshal snapshot of filing %d, %v", e.Event.SourceId, err),
			HandlerIdentifier: FilingArchiveEventHandlerName,
		}
	}

	if err := s3.PutObjectFunc(context.Background(), ArchiveObjectKey(f), bytes.NewReader(body)); err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("put snapshot of filing %d, %v", e.Event.SourceId, err),
			HandlerIdentifier: FilingArchiveEventHandlerName,
		}
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: FilingArchiveEventHandlerName}
}
