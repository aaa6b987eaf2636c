package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

// RunIndexer publishes evaluation runs to an Elasticsearch index so
// score history can be charted and compared across suites.
type RunIndexer struct {
	client    *elasticsearch.TypedClient
	indexName string
	config    ClientConfig
}

type runDocument struct {
	ID             string             `json:"id"`
	SuiteName      string             `json:"suite_name"`
	SuiteVersion   string             `json:"suite_version,omitempty"`
	APMode         string             `json:"ap_mode"`
	Thresholds     []float64          `json:"thresholds"`
	SampleCount    int                `json:"sample_count"`
	Metrics        map[string]float64 `json:"metrics"`
	PerClass       []classDocument    `json:"per_class"`
	MeanDurationMs int64              `json:"mean_duration_ms"`
	StartedAt      time.Time          `json:"started_at"`
	IndexedAt      time.Time          `json:"indexed_at"`
}

type classDocument struct {
	ClassID int       `json:"class_id"`
	Name    string    `json:"name"`
	AP      []float64 `json:"ap"`
	AR      []float64 `json:"ar"`
}

func NewRunIndexer(ctx context.Context, config ClientConfig) (*RunIndexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &RunIndexer{
		client:    client,
		indexName: config.IndexName,
		config:    config,
	}

	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

func (e *RunIndexer) Save(ctx context.Context, run storage.Run) (uuid.UUID, error) {
	doc := runToDocument(run)

	res, err := e.client.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to index run: %w", err)
	}

	runID, err := uuid.Parse(doc.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse run ID: %w", err)
	}

	slog.Info("run indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	return runID, nil
}

func (e *RunIndexer) SaveBulk(ctx context.Context, runs []storage.Run) error {
	if len(runs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    2,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var failed int64

	for _, run := range runs {
		doc := runToDocument(run)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal run document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(docBytes),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed++
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed++
			slog.Error("failed to add run to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("failed to index %d out of %d runs", failed, len(runs))
	}
	return nil
}

func runToDocument(run storage.Run) runDocument {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	perClass := make([]classDocument, 0, len(run.PerClass))
	for _, cr := range run.PerClass {
		perClass = append(perClass, classDocument{
			ClassID: cr.ClassID,
			Name:    cr.Name,
			AP:      cr.AP,
			AR:      cr.AR,
		})
	}

	return runDocument{
		ID:             run.ID.String(),
		SuiteName:      run.SuiteName,
		SuiteVersion:   run.SuiteVersion,
		APMode:         run.APMode,
		Thresholds:     run.Thresholds,
		SampleCount:    run.SampleCount,
		Metrics:        run.Metrics,
		PerClass:       perClass,
		MeanDurationMs: run.MeanDuration.Milliseconds(),
		StartedAt:      run.StartedAt,
		IndexedAt:      time.Now(),
	}
}

func (e *RunIndexer) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("index already exists", "index", e.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewKeywordProperty(),
			"suite_name":       types.NewKeywordProperty(),
			"suite_version":    types.NewKeywordProperty(),
			"ap_mode":          types.NewKeywordProperty(),
			"thresholds":       types.NewFloatNumberProperty(),
			"sample_count":     types.NewIntegerNumberProperty(),
			"mean_duration_ms": types.NewLongNumberProperty(),
			"started_at":       types.NewDateProperty(),
			"indexed_at":       types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("index created", "index", e.indexName)
	return nil
}
