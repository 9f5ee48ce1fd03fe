package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/fundwit/go-commons/types"
)

var (
	ActiveESClient *elasticsearch.Client

	IndexFunc              = Index
	DeleteDocumentByIdFunc = DeleteDocumentById
)

// StartESClient connects to the cluster named by ELASTICSEARCH_URL
// (the client library's own default applies when the variable is unset).
func StartESClient() error {
	if url := os.Getenv("ELASTICSEARCH_URL"); url != "" {
		client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
		if err != nil {
			return err
		}
		ActiveESClient = client
		return nil
	}
	client, err := elasticsearch.NewDefaultClient()
	if err != nil {
		return err
	}
	ActiveESClient = client
	return nil
}

func Index(index string, id types.ID, doc interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id.String(),
		Body:       bytes.NewReader(buf.Bytes()),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), ActiveESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index document %s into %s: %s", id.String(), index, res.Status())
	}
	return nil
}

func DeleteDocumentById(index string, id types.ID) error {
	res, err := ActiveESClient.Delete(index, id.String())
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete document %s from %s: %s", id.String(), index, res.Status())
	}
	return nil
}
