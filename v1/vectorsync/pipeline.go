package vectorsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// BatchResult summarizes one walk over an organization's catalog.
type BatchResult struct {
	TotalProducts      int      `json:"total_products"`
	SuccessfulRecords  int      `json:"successful_records"`
	FailedRecords      int      `json:"failed_records"`
	DenseIndexSuccess  bool     `json:"dense_index_success"`
	SparseIndexSuccess bool     `json:"sparse_index_success"`
	Errors             []string `json:"errors"`
	// ProcessingTime is in seconds.
	ProcessingTime float64 `json:"processing_time"`
}

// Pipeline pages through persisted products and writes every page to a
// dense and a sparse sink.
type Pipeline struct {
	store    catalog.Store
	dense    Sink
	sparse   Sink
	pageSize int
	delay    time.Duration
	log      logger.Logger
	metrics  metrics.Recorder
	tracer   *tracer.Tracer
}

func NewPipeline(cfg Config, store catalog.Store, dense, sparse Sink, log logger.Logger, rec metrics.Recorder, tr *tracer.Tracer) *Pipeline {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &Pipeline{
		store:    store,
		dense:    dense,
		sparse:   sparse,
		pageSize: cfg.PageSize,
		delay:    cfg.FetchRetryDelay,
		log:      log,
		metrics:  rec,
		tracer:   tr,
	}
}

// UpsertProducts indexes every product of the organization. A sink failure
// fails that page for that sink only; the walk always continues to the
// last page. A failed page fetch is retried once; when the retry fails too
// the walk ends since later offsets cannot be trusted.
func (p *Pipeline) UpsertProducts(ctx context.Context, organizationID uuid.UUID) BatchResult {
	start := time.Now()
	ctx, span := p.tracer.StartSpan(ctx, "vectorsync.UpsertProducts")
	defer span.End()

	res := BatchResult{DenseIndexSuccess: true, SparseIndexSuccess: true, Errors: []string{}}
	fields := map[string]interface{}{"organization_id": organizationID.String()}
	p.log.InfoWithContext(ctx, "vector upsert started", nil, fields)

	for offset := 0; ; offset += p.pageSize {
		views, err := p.fetch(ctx, organizationID, offset)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Product fetch error: %v", err))
			p.tracer.RecordErrorOnSpan(span, err)
			p.log.ErrorWithContext(ctx, "fetching products for vector upsert failed", err, map[string]interface{}{
				"organization_id": organizationID.String(),
				"offset":          offset,
			})
			break
		}
		if len(views) == 0 {
			break
		}

		records := make([]Record, len(views))
		for i, v := range views {
			records[i] = NewRecord(FromView(v))
		}
		res.TotalProducts += len(records)

		denseOK := p.commit(ctx, p.dense, records, &res)
		sparseOK := p.commit(ctx, p.sparse, records, &res)
		if !denseOK {
			res.DenseIndexSuccess = false
		}
		if !sparseOK {
			res.SparseIndexSuccess = false
		}
		if denseOK && sparseOK {
			res.SuccessfulRecords += len(records)
		}
	}

	res.ProcessingTime = time.Since(start).Seconds()
	p.tracer.SetAttributes(span, map[string]interface{}{
		"organization_id":    organizationID.String(),
		"total_products":     res.TotalProducts,
		"successful_records": res.SuccessfulRecords,
		"failed_records":     res.FailedRecords,
	})
	p.log.InfoWithContext(ctx, "vector upsert finished", nil, map[string]interface{}{
		"organization_id":    organizationID.String(),
		"total_products":     res.TotalProducts,
		"successful_records": res.SuccessfulRecords,
		"failed_records":     res.FailedRecords,
		"dense_ok":           res.DenseIndexSuccess,
		"sparse_ok":          res.SparseIndexSuccess,
		"duration_s":         res.ProcessingTime,
	})
	return res
}

const fetchAttempts = 2

// fetch reads one page, retrying the same offset after a failure.
func (p *Pipeline) fetch(ctx context.Context, organizationID uuid.UUID, offset int) ([]catalog.ProductView, error) {
	q := catalog.ProductQuery{OrganizationID: organizationID, Limit: p.pageSize, Offset: offset}
	for attempt := 1; ; attempt++ {
		views, err := p.store.Products(ctx, q)
		if err == nil || attempt == fetchAttempts {
			return views, err
		}
		p.log.WarnWithContext(ctx, "product page fetch failed, retrying", err, map[string]interface{}{
			"organization_id": organizationID.String(),
			"offset":          offset,
			"attempt":         attempt,
		})
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// commit sends one page to one sink and reports whether it succeeded.
func (p *Pipeline) commit(ctx context.Context, sink Sink, records []Record, res *BatchResult) bool {
	ctx, span := p.tracer.StartSpan(ctx, "vectorsync."+sink.Name())
	defer span.End()

	err := sink.Upsert(ctx, records)
	if err == nil {
		p.metrics.ObserveVectorRecords(sink.Name(), "success", len(records))
		return true
	}

	p.tracer.RecordErrorOnSpan(span, err)
	p.metrics.ObserveVectorRecords(sink.Name(), "error", len(records))
	p.log.ErrorWithContext(ctx, "index upsert failed", err, map[string]interface{}{
		"index":   sink.Name(),
		"records": len(records),
	})
	res.FailedRecords += len(records)
	res.Errors = append(res.Errors, fmt.Sprintf("%s index error: %v", sinkLabel(sink.Name()), err))
	return false
}

func sinkLabel(name string) string {
	switch name {
	case "dense":
		return "Dense"
	case "sparse":
		return "Sparse"
	default:
		return name
	}
}
