package metrics

import "time"

// Recorder is the set of observations the service makes.
type Recorder interface {
	// ObserveUpsertItem counts one ledger entry; outcome is "success" or "error".
	ObserveUpsertItem(outcome string)

	// ObserveVectorRecords counts n records sent to an index; outcome is "success" or "error".
	ObserveVectorRecords(index, outcome string, n int)

	// ObserveHTTPRequest records one served request.
	ObserveHTTPRequest(route, method string, status int, elapsed time.Duration)

	// ObserveMessage counts one broker operation, e.g. ("rabbit", "consume", "success"),
	// or one scheduled ingestion run as ("ingest", "run", status).
	ObserveMessage(system, operation, outcome string)
}

var _ Recorder = (*Metrics)(nil)

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveUpsertItem(string)                              {}
func (Nop) ObserveVectorRecords(string, string, int)              {}
func (Nop) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (Nop) ObserveMessage(string, string, string)                 {}
