package vectorsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/rabbit"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// JobRequest is the body of a vector-sync message.
type JobRequest struct {
	OrganizationID string `json:"organization_id"`
}

// JobPublisher implements catalog.JobPublisher over RabbitMQ.
type JobPublisher struct {
	client rabbit.Client
	tracer *tracer.Tracer
}

func NewJobPublisher(client rabbit.Client, tr *tracer.Tracer) *JobPublisher {
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &JobPublisher{client: client, tracer: tr}
}

// RequestVectorSync enqueues a rebuild of the organization's vectors. The
// trace context travels in the message headers.
func (p *JobPublisher) RequestVectorSync(ctx context.Context, organizationID uuid.UUID) error {
	body, err := json.Marshal(JobRequest{OrganizationID: organizationID.String()})
	if err != nil {
		return err
	}

	headers := make(map[string]interface{})
	for k, v := range p.tracer.GetCarrier(ctx) {
		headers[k] = v
	}
	if err := p.client.Publish(ctx, body, headers); err != nil {
		return fmt.Errorf("publish vector sync job: %w", err)
	}
	return nil
}

// Runner runs one pipeline pass; *Pipeline implements it.
type Runner interface {
	UpsertProducts(ctx context.Context, organizationID uuid.UUID) BatchResult
}

// Worker consumes vector-sync jobs one at a time.
type Worker struct {
	client  rabbit.Client
	runner  Runner
	log     logger.Logger
	metrics metrics.Recorder
	tracer  *tracer.Tracer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(client rabbit.Client, runner Runner, log logger.Logger, rec metrics.Recorder, tr *tracer.Tracer) *Worker {
	if log == nil {
		log = logger.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &Worker{client: client, runner: runner, log: log, metrics: rec, tracer: tr}
}

// Start consumes in the background until Stop.
func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	msgs := w.client.Consume(ctx, &w.wg)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Run(ctx, msgs)
	}()
}

// Stop cancels consumption and waits for the current job to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// Run handles messages until msgs is closed or ctx is done.
func (w *Worker) Run(ctx context.Context, msgs <-chan rabbit.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			w.Handle(ctx, msg)
		}
	}
}

// Handle processes one job. Malformed jobs are rejected without requeue;
// any completed pipeline pass is acked, sink failures included.
func (w *Worker) Handle(ctx context.Context, msg rabbit.Message) {
	ctx = w.tracer.SetCarrierOnContext(ctx, carrierOf(msg.Header()))
	ctx, span := w.tracer.StartSpan(ctx, "vectorsync.job")
	defer span.End()

	orgID, err := parseJob(msg.Body())
	if err != nil {
		w.tracer.RecordErrorOnSpan(span, err)
		w.log.WarnWithContext(ctx, "rejecting malformed vector sync job", err, map[string]interface{}{
			"body": string(msg.Body()),
		})
		w.metrics.ObserveMessage("rabbit", "consume", "rejected")
		if nackErr := msg.NackMsg(false); nackErr != nil {
			w.log.ErrorWithContext(ctx, "failed to nack vector sync job", nackErr, nil)
		}
		return
	}

	res := w.runner.UpsertProducts(ctx, orgID)
	outcome := "success"
	if res.FailedRecords > 0 || len(res.Errors) > 0 {
		outcome = "partial"
	}
	w.metrics.ObserveMessage("rabbit", "consume", outcome)

	if err := msg.AckMsg(); err != nil {
		w.log.ErrorWithContext(ctx, "failed to ack vector sync job", err, map[string]interface{}{
			"organization_id": orgID.String(),
		})
	}
}

func parseJob(body []byte) (uuid.UUID, error) {
	var req JobRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return uuid.Nil, fmt.Errorf("decode job: %w", err)
	}
	if req.OrganizationID == "" {
		return uuid.Nil, errors.New("organization_id is required")
	}
	id, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("organization_id: %w", err)
	}
	return id, nil
}

func carrierOf(headers map[string]interface{}) map[string]string {
	carrier := make(map[string]string, len(headers))
	for k, v := range headers {
		if s, ok := v.(string); ok {
			carrier[k] = s
		}
	}
	return carrier
}
