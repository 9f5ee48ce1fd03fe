package indices

import (
	"filingflow/account"
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/event"
	"filingflow/session"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	FilingIndexEventHandlerName = "filingIndexer"

	indexRobot = &session.Context{
		Identity: session.Identity{ID: 10, Name: "index-robot", Role: "SYSTEM"},
	}

	lock    sync.Mutex
	running bool

	IndicesFullSyncFunc    = IndicesFullSync
	ScheduleNewSyncRunFunc = ScheduleNewSyncRun
)

func ScheduleNewSyncRun(sec *session.Context) (bool, error) {
	if sec == nil {
		return false, bizerror.ErrUnauthenticated
	}
	if sec.Identity.Role != account.RolePartner {
		return false, bizerror.ErrForbidden
	}

	lock.Lock()
	if running {
		lock.Unlock()
		return false, nil
	}
	running = true
	lock.Unlock()

	waitRunning := sync.WaitGroup{}
	waitRunning.Add(1)
	go func() {
		waitRunning.Done()
		defer func() {
			lock.Lock()
			running = false
			lock.Unlock()
		}()
		IndicesFullSyncFunc()
	}()
	waitRunning.Wait()
	return true, nil
}

var (
	SyncBatchSize = 500
)

func IndicesFullSync() (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			e, ok := ret.(error)
			if ok {
				err = e
			} else {
				err = fmt.Errorf("error on indices full sync: %v", ret)
			}
		}
	}()

	page := 1
	for {
		filings, err := filing.LoadFilingsFunc(page, SyncBatchSize)
		if err != nil {
			logrus.Warnf("indices full sync: error on loading filings(page = %d, pageSize = %d): %v", page, SyncBatchSize, err)
			page++
			continue
		}

		if len(filings) == 0 {
			logrus.Infof("indices full sync: there are no more filings to index")
			return nil // loop exit
		}

		if err := IndexFilings(filings); err != nil {
			logrus.Warnf("indices full sync: error on indexing filings(page = %d, pageSize = %d): %v", page, SyncBatchSize, err)
		}
		page++
	}
}

func IndexFilingEventHandle(e *event.EventRecord) *event.EventHandleResult {
	if e.SourceType != "FILING" {
		return nil
	}

	f, err := filing.DetailFilingFunc(e.Event.SourceId, indexRobot)
	if err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("detail filing when indexing filing %d, %v", e.Event.SourceId, err),
			HandlerIdentifier: FilingIndexEventHandlerName,
		}
	}
	if err := IndexFilings([]domain.Filing{*f}); err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("index filing %d, %v", e.Event.SourceId, err),
			HandlerIdentifier: FilingIndexEventHandlerName,
		}
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: FilingIndexEventHandlerName}
}
