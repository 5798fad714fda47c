package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

const (
	StepRegistry = "registry"
	StepFeed     = "feed"
	StepVector   = "vector"
)

// Upserter applies one ItemList; *catalog.Service implements it.
type Upserter interface {
	UpsertItemList(ctx context.Context, body []byte) (*catalog.Ledger, error)
}

// Directory is the part of catalog.Store the registry step needs.
type Directory interface {
	OrganizationByURN(ctx context.Context, urn string) (*catalog.Organization, error)
	EnsureBrand(ctx context.Context, organizationID uuid.UUID, name string) (*catalog.Brand, error)
}

// Report is the outcome of one run of a source.
type Report struct {
	Source string `json:"source"`
	// Status is "success" or "error"; FailedStep names the step that gave up.
	Status     string       `json:"status"`
	FailedStep string       `json:"failed_step,omitempty"`
	Error      string       `json:"error,omitempty"`
	Registry   RegistryStat `json:"registry"`
	Feed       FeedStat     `json:"feed"`
	// VectorJobs counts the vector syncs requested.
	VectorJobs int `json:"vector_jobs"`
	// Duration is in seconds.
	Duration float64 `json:"duration"`
}

type RegistryStat struct {
	Organizations int `json:"organizations"`
	Brands        int `json:"brands"`
}

type FeedStat struct {
	Shards          int `json:"shards"`
	FailedShards    int `json:"failed_shards"`
	Requests        int `json:"requests"`
	ProductGroups   int `json:"product_groups"`
	Products        int `json:"products"`
	FailedProducts  int `json:"failed_products"`
	SkippedElements int `json:"skipped_elements"`
}

type organization struct {
	id      uuid.UUID
	urn     string
	feedURL string
}

// Pipeline runs the registry, feed and vector steps of a source.
type Pipeline struct {
	fetcher  Fetcher
	dir      Directory
	upserter Upserter
	jobs     catalog.JobPublisher
	attempts int
	delay    time.Duration
	log      logger.Logger
	tracer   *tracer.Tracer
}

// NewPipeline builds a pipeline. jobs may be nil, which makes the vector
// step a no-op.
func NewPipeline(cfg Config, fetcher Fetcher, dir Directory, upserter Upserter, jobs catalog.JobPublisher, log logger.Logger, tr *tracer.Tracer) *Pipeline {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &Pipeline{
		fetcher:  fetcher,
		dir:      dir,
		upserter: upserter,
		jobs:     jobs,
		attempts: cfg.MaxAttempts,
		delay:    cfg.RetryDelay,
		log:      log,
		tracer:   tr,
	}
}

// Run ingests src. Later steps are skipped once a step has failed on every
// attempt.
func (p *Pipeline) Run(ctx context.Context, src Source) Report {
	start := time.Now()
	ctx, span := p.tracer.StartSpan(ctx, "ingest.Run")
	defer span.End()

	rep := Report{Source: src.Name, Status: "success"}
	fields := map[string]interface{}{"source": src.Name, "registry": src.Registry}
	p.log.InfoWithContext(ctx, "ingestion started", nil, fields)

	var orgs []organization
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{StepRegistry, func(ctx context.Context) (err error) {
			orgs, rep.Registry, err = p.registry(ctx, src)
			return err
		}},
		{StepFeed, func(ctx context.Context) (err error) {
			rep.Feed, err = p.feed(ctx, orgs)
			return err
		}},
		{StepVector, func(ctx context.Context) (err error) {
			rep.VectorJobs, err = p.vector(ctx, orgs)
			return err
		}},
	}

	for _, step := range steps {
		if err := p.retry(ctx, src.Name, step.name, step.run); err != nil {
			p.tracer.RecordErrorOnSpan(span, err)
			rep.Status = "error"
			rep.FailedStep = step.name
			rep.Error = err.Error()
			p.log.ErrorWithContext(ctx, "ingestion stopped", err, map[string]interface{}{
				"source": src.Name,
				"step":   step.name,
			})
			break
		}
	}

	rep.Duration = time.Since(start).Seconds()
	p.log.InfoWithContext(ctx, "ingestion finished", nil, map[string]interface{}{
		"source":          src.Name,
		"status":          rep.Status,
		"organizations":   rep.Registry.Organizations,
		"products":        rep.Feed.Products,
		"failed_products": rep.Feed.FailedProducts,
		"duration_s":      rep.Duration,
	})
	return rep
}

func (p *Pipeline) retry(ctx context.Context, source, step string, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == p.attempts {
			break
		}
		p.log.WarnWithContext(ctx, "ingestion step failed, retrying", err, map[string]interface{}{
			"source":  source,
			"step":    step,
			"attempt": attempt,
		})
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(p.delay):
		}
	}
	return fmt.Errorf("%s: %w", step, err)
}

func (p *Pipeline) registry(ctx context.Context, src Source) ([]organization, RegistryStat, error) {
	var stat RegistryStat
	body, err := p.fetcher.Fetch(ctx, src.Registry)
	if err != nil {
		return nil, stat, fmt.Errorf("fetch registry: %w", err)
	}
	parsed, err := ParseRegistry(body)
	if err != nil {
		return nil, stat, err
	}

	var orgs []organization
	for _, ro := range FilterOrganizations(parsed, src.Organizations) {
		org, err := p.dir.OrganizationByURN(ctx, ro.URN())
		if errors.Is(err, catalog.ErrNotFound) {
			p.log.WarnWithContext(ctx, "registry organization is not in the catalog", nil, map[string]interface{}{
				"urn": ro.URN(),
			})
			continue
		}
		if err != nil {
			return nil, stat, fmt.Errorf("lookup organization %s: %w", ro.URN(), err)
		}
		for _, name := range ro.BrandNames() {
			if _, err := p.dir.EnsureBrand(ctx, org.ID, name); err != nil {
				return nil, stat, fmt.Errorf("ensure brand %q: %w", name, err)
			}
			stat.Brands++
		}

		feedURL := ""
		if ro.ProductFeed.URL != "" {
			if feedURL, err = Resolve(src.Registry, ro.ProductFeed.URL); err != nil {
				return nil, stat, err
			}
		}
		orgs = append(orgs, organization{id: org.ID, urn: org.URN, feedURL: feedURL})
	}
	if len(orgs) == 0 {
		return nil, stat, errors.New("no registry organization matches the catalog")
	}
	stat.Organizations = len(orgs)
	return orgs, stat, nil
}

// feed applies every shard of every organization. Vector syncs are deferred
// to the vector step.
func (p *Pipeline) feed(ctx context.Context, orgs []organization) (FeedStat, error) {
	var stat FeedStat
	ctx = catalog.DeferVectorSync(ctx)

	for _, org := range orgs {
		if org.feedURL == "" {
			p.log.WarnWithContext(ctx, "organization has no product feed", nil, map[string]interface{}{"urn": org.urn})
			continue
		}
		body, err := p.fetcher.Fetch(ctx, org.feedURL)
		if err != nil {
			return stat, fmt.Errorf("fetch feed index of %s: %w", org.urn, err)
		}
		indexes, err := ParseFeedIndexes(body)
		if err != nil {
			return stat, fmt.Errorf("feed index of %s: %w", org.urn, err)
		}
		for _, index := range indexes {
			shards, err := index.ShardURLs(org.feedURL)
			if err != nil {
				return stat, err
			}
			for _, shard := range shards {
				stat.Shards++
				if err := p.shard(ctx, org, shard, &stat); err != nil {
					stat.FailedShards++
					p.log.ErrorWithContext(ctx, "skipping feed shard", err, map[string]interface{}{
						"urn":   org.urn,
						"shard": shard,
					})
				}
			}
		}
	}
	return stat, nil
}

func (p *Pipeline) shard(ctx context.Context, org organization, location string, stat *FeedStat) error {
	body, err := p.fetcher.Fetch(ctx, location)
	if err != nil {
		return err
	}
	lists, skipped, err := SplitShard(org.urn, body)
	if err != nil {
		return err
	}
	stat.SkippedElements += skipped

	for _, list := range lists {
		stat.Requests++
		ledger, err := p.upserter.UpsertItemList(ctx, list)
		if err != nil {
			// One rejected list does not spoil the rest of the shard.
			p.log.WarnWithContext(ctx, "feed item list rejected", err, map[string]interface{}{
				"urn":   org.urn,
				"shard": location,
			})
			continue
		}
		if ledger.ProductGroupID != nil {
			stat.ProductGroups++
		}
		stat.Products += len(ledger.SuccessfulProducts)
		stat.FailedProducts += len(ledger.Errors)
	}
	return nil
}

func (p *Pipeline) vector(ctx context.Context, orgs []organization) (int, error) {
	if p.jobs == nil {
		return 0, nil
	}
	requested := 0
	for _, org := range orgs {
		if err := p.jobs.RequestVectorSync(ctx, org.id); err != nil {
			return requested, fmt.Errorf("request vector sync for %s: %w", org.urn, err)
		}
		requested++
	}
	return requested, nil
}
