// Package esx wraps the Elasticsearch client: entry search and trash counts.
package esx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	es8 "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/lo"

	"creme-menu/internal/config"
	"creme-menu/internal/entry"
)

type Client = es8.Client

func Open(cfg *config.Config) (*Client, func(), error) {
	if strings.TrimSpace(cfg.ES.Addrs) == "" {
		return nil, func() {}, nil
	}
	raw := strings.Split(cfg.ES.Addrs, ",")
	addrs := lo.FilterMap(raw, func(s string, _ int) (string, bool) {
		t := strings.TrimSpace(s)
		return t, t != ""
	})
	es, err := es8.NewClient(es8.Config{Addresses: addrs, Username: cfg.ES.Username, Password: cfg.ES.Password})
	if err != nil {
		return nil, func() {}, err
	}
	return es, func() {}, nil
}

// EntryDoc is the indexed form of an entry class.
type EntryDoc struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Level    int    `json:"level"`
	Required bool   `json:"required"`
}

// EntryDocs converts classes to documents.
func EntryDocs(classes []*entry.Class) []EntryDoc {
	return lo.Map(classes, func(c *entry.Class, _ int) EntryDoc {
		return EntryDoc{ID: c.ID, Label: c.Label, Level: c.Level, Required: c.Required}
	})
}

// IndexEntries replaces the documents of index with docs, in one bulk request.
func IndexEntries(ctx context.Context, es *Client, index string, docs []EntryDoc) error {
	if es == nil || len(docs) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, d := range docs {
		meta := map[string]any{"index": map[string]any{"_index": index, "_id": d.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(d); err != nil {
			return err
		}
	}
	res, err := es.Bulk(bytes.NewReader(buf.Bytes()), es.Bulk.WithContext(ctx), es.Bulk.WithRefresh("true"))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return fmtError(res)
	}
	return nil
}

// SearchEntries searches entry classes by label or id.
func SearchEntries(ctx context.Context, es *Client, index, query string, size int) ([]EntryDoc, error) {
	if es == nil {
		return []EntryDoc{}, nil
	}
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"type":   "bool_prefix",
				"fields": []string{"label^2", "id"},
			},
		},
	}
	b, _ := json.Marshal(q)
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(bytes.NewReader(b)),
		es.Search.WithSize(size),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmtError(res)
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source EntryDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	docs := make([]EntryDoc, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}

// TrashCounter counts the deleted entities of an entity index.
type TrashCounter struct {
	ES    *Client
	Index string
}

func (t TrashCounter) CountDeleted(ctx context.Context) (int, error) {
	body := `{"query":{"term":{"is_deleted":true}}}`
	res, err := t.ES.Count(
		t.ES.Count.WithContext(ctx),
		t.ES.Count.WithIndex(t.Index),
		t.ES.Count.WithBody(strings.NewReader(body)),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	if res.StatusCode >= http.StatusBadRequest {
		return 0, fmtError(res)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return out.Count, nil
}

func fmtError(res *esapi.Response) error { return fmt.Errorf("es error: %s", res.String()) }
