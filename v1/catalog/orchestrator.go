package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
)

// Service is the catalog entry point used by the HTTP layer.
type Service struct {
	cfg      Config
	store    Store
	groups   *GroupReconciler
	products *ProductReconciler
	events   EventPublisher
	jobs     JobPublisher
	metrics  metrics.Recorder
	log      logger.Logger
	now      func() time.Time
}

// NewService wires the reconcilers. events and jobs may be nil, which
// disables publishing.
func NewService(cfg Config, store Store, log logger.Logger, rec metrics.Recorder, events EventPublisher, jobs JobPublisher) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		cfg:      cfg,
		store:    store,
		groups:   NewGroupReconciler(log),
		products: NewProductReconciler(log),
		events:   events,
		jobs:     jobs,
		metrics:  rec,
		log:      log,
		now:      time.Now,
	}
}

// UpsertItemList applies an ItemList envelope. Envelope, organization and
// group failures abort with *ValidationError or *FatalError; product failures
// are collected in the returned Ledger.
func (s *Service) UpsertItemList(ctx context.Context, body []byte) (*Ledger, error) {
	orgURN, elements, err := ParseItemList(body)
	if err != nil {
		return nil, err
	}

	org, err := NewResolver(s.store).Organization(ctx, orgURN)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, &FatalError{Status: http.StatusInternalServerError, Err: err}
	}

	var groupNodes []*ProductGroupNode
	var products, others []Element
	for _, el := range elements {
		switch node := el.Node.(type) {
		case *ProductGroupNode:
			groupNodes = append(groupNodes, node)
		case *ProductNode:
			products = append(products, el)
		default:
			others = append(others, el)
		}
	}
	if len(groupNodes) == 0 && len(products) == 0 {
		return nil, NewValidationError("at least one of ProductGroup or Product must be present")
	}
	if len(groupNodes) > 1 {
		return nil, NewValidationError("only one ProductGroup may be present per request")
	}

	ledger := newLedger()

	var batch *ResolvedGroup
	if len(groupNodes) == 1 {
		batch, err = s.upsertGroup(ctx, groupNodes[0], org)
		if err != nil {
			return nil, err
		}
		id := batch.Group.ID.String()
		ledger.ProductGroupID = &id
	}

	for _, r := range s.upsertProducts(ctx, products, batch) {
		if r.Success != nil {
			s.metrics.ObserveUpsertItem("success")
		} else {
			s.metrics.ObserveUpsertItem("error")
			s.log.WarnWithContext(ctx, "product rejected", nil, map[string]interface{}{
				"position": r.Err.Position,
				"urn":      r.Err.URN,
				"error":    r.Err.Message,
			})
		}
		ledger.record(r)
	}
	for _, el := range others {
		ledger.record(failure(el, unsupportedType(el.Node)))
		s.metrics.ObserveUpsertItem("error")
	}

	s.log.InfoWithContext(ctx, "item list processed", nil, map[string]interface{}{
		"organization": org.URN,
		"succeeded":    len(ledger.SuccessfulProducts),
		"failed":       len(ledger.Errors),
	})
	s.publish(ctx, org, ledger)
	return ledger, nil
}

func (s *Service) upsertGroup(ctx context.Context, node *ProductGroupNode, org *Organization) (*ResolvedGroup, error) {
	var batch *ResolvedGroup
	err := s.store.InTx(ctx, func(st Store) error {
		var err error
		batch, err = s.groups.Reconcile(ctx, st, node, org)
		return err
	})
	if err == nil {
		return batch, nil
	}

	s.log.ErrorWithContext(ctx, "product group rejected", err, map[string]interface{}{"urn": node.ID})
	var verr *ValidationError
	if errors.As(err, &verr) {
		return nil, err
	}
	return nil, &FatalError{Status: http.StatusInternalServerError, Err: err}
}

// upsertProducts runs every product in its own transaction so one failing
// item leaves the others applied. Large homogeneous batches try the bulk
// path first and fall back to this when it rolls back.
func (s *Service) upsertProducts(ctx context.Context, products []Element, batch *ResolvedGroup) []ItemResult {
	if bulkEligible(products, batch, s.cfg.BulkThreshold) {
		var results []ItemResult
		err := s.store.InTx(ctx, func(st Store) error {
			var err error
			results, err = s.products.ReconcileBulk(ctx, st, products, batch)
			return err
		})
		if err == nil {
			return results
		}
		s.log.WarnWithContext(ctx, "bulk upsert rolled back, retrying per product", err, map[string]interface{}{
			"group":    batch.Group.URN,
			"products": len(products),
		})
	}

	results := make([]ItemResult, 0, len(products))
	for _, el := range products {
		node := el.Node.(*ProductNode)
		var product *Product
		err := s.store.InTx(ctx, func(st Store) error {
			var err error
			product, err = s.products.Reconcile(ctx, st, node, batch)
			return err
		})
		if err != nil {
			results = append(results, failure(el, err))
			continue
		}
		results = append(results, success(el, product.ID.String()))
	}
	return results
}

func (s *Service) publish(ctx context.Context, org *Organization, ledger *Ledger) {
	if ledger.ProductGroupID == nil && len(ledger.SuccessfulProducts) == 0 {
		return
	}
	if s.events != nil {
		ids := make([]string, 0, len(ledger.SuccessfulProducts))
		for _, p := range ledger.SuccessfulProducts {
			ids = append(ids, p.ProductID)
		}
		event := CatalogEvent{
			Type:           EventCatalogUpserted,
			OrganizationID: org.ID.String(),
			ProductGroupID: ledger.ProductGroupID,
			ProductIDs:     ids,
			OccurredAt:     s.now().UTC(),
		}
		if err := s.events.PublishCatalogEvent(ctx, event); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish catalog event", err, map[string]interface{}{"organization": org.URN})
		}
	}
	if s.jobs != nil && !vectorSyncDeferred(ctx) {
		if err := s.jobs.RequestVectorSync(ctx, org.ID); err != nil {
			s.log.ErrorWithContext(ctx, "failed to request vector sync", err, map[string]interface{}{"organization": org.URN})
		}
	}
}

func success(el Element, productID string) ItemResult {
	return ItemResult{Success: &ItemSuccess{
		Position:  el.Position,
		Type:      el.Node.NodeType(),
		URN:       el.Node.URN(),
		ProductID: productID,
	}}
}

func failure(el Element, err error) ItemResult {
	return ItemResult{Err: &ItemError{
		Position: el.Position,
		Type:     el.Node.NodeType(),
		URN:      el.Node.URN(),
		Message:  err.Error(),
	}}
}

func unsupportedType(n Node) error {
	if n.NodeType() == TypeOffer {
		return errors.New("Offer must be nested in a Product")
	}
	if n.NodeType() == "" {
		return errors.New("item is missing @type")
	}
	return errors.New("unsupported @type " + n.NodeType())
}
