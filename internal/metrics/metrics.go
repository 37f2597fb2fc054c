// Package metrics keeps in-process counters for calls to the generation
// provider and the document renderer.
package metrics

import (
	"strings"
	"sync"
	"time"
)

type OperationMetrics struct {
	CallsTotal         int64 `json:"calls_total"`
	SuccessTotal       int64 `json:"success_total"`
	FailureTotal       int64 `json:"failure_total"`
	SkippedTotal       int64 `json:"skipped_total"`
	StaleTotal         int64 `json:"stale_total"`
	TotalLatencyMillis int64 `json:"total_latency_millis"`
}

type Snapshot struct {
	Operations  map[string]OperationMetrics `json:"operations"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

type registry struct {
	mu         sync.Mutex
	operations map[string]*OperationMetrics
}

var globalRegistry = newRegistry()

func newRegistry() *registry {
	return &registry{
		operations: make(map[string]*OperationMetrics),
	}
}

func ResetForTests() {
	globalRegistry = newRegistry()
}

// RecordCall counts an attempt before it is made.
func RecordCall(operation string) {
	globalRegistry.update(operation, func(m *OperationMetrics) {
		m.CallsTotal++
	})
}

func RecordSuccess(operation string, latency time.Duration) {
	globalRegistry.update(operation, func(m *OperationMetrics) {
		m.SuccessTotal++
		if latency > 0 {
			m.TotalLatencyMillis += latency.Milliseconds()
		}
	})
}

func RecordFailure(operation string, latency time.Duration) {
	globalRegistry.update(operation, func(m *OperationMetrics) {
		m.FailureTotal++
		if latency > 0 {
			m.TotalLatencyMillis += latency.Milliseconds()
		}
	})
}

// RecordSkipped counts calls answered locally without reaching the provider.
func RecordSkipped(operation string) {
	globalRegistry.update(operation, func(m *OperationMetrics) {
		m.SkippedTotal++
	})
}

// RecordStale counts results discarded because a newer request superseded them.
func RecordStale(operation string) {
	globalRegistry.update(operation, func(m *OperationMetrics) {
		m.StaleTotal++
	})
}

func SnapshotNow() Snapshot {
	r := globalRegistry
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := Snapshot{
		Operations:  make(map[string]OperationMetrics, len(r.operations)),
		GeneratedAt: time.Now().UTC(),
	}
	for key, m := range r.operations {
		snapshot.Operations[key] = *m
	}
	return snapshot
}

func (r *registry) update(operation string, fn func(*OperationMetrics)) {
	key := normalizeKey(operation)
	if key == "" {
		key = "unknown"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.operations[key]
	if !ok {
		m = &OperationMetrics{}
		r.operations[key] = m
	}
	fn(m)
}

func normalizeKey(raw string) string {
	return strings.TrimSpace(strings.ToLower(raw))
}
