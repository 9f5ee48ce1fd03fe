package indices

import (
	"filingflow/domain"
	"filingflow/es"
	"fmt"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var (
	FilingIndexName = "filings"
)

type FilingDocument struct {
	domain.Filing
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

func IndexFilings(filings []domain.Filing) error {
	docs := make([]FilingDocument, 0, len(filings))
	for _, f := range filings {
		docs = append(docs, FilingDocument{Filing: f})
	}

	if err := saveFilingDocuments(docs); err != nil {
		return err
	}
	return nil
}

func saveFilingDocuments(docs []FilingDocument) BatchActionError {
	errs := BatchActionError{}

	for _, doc := range docs {
		if err := es.IndexFunc(FilingIndexName, doc.ID, doc); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index filing %d %s\n", doc.ID, err)
		} else {
			logrus.Infof("index filing %d successfully\n", doc.ID)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
