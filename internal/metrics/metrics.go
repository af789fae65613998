package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesSeen       int64
	ItemsAccepted     int64
	EnrichOK          int64
	EnrichFailed      int64
	ImagesResolved    int64
	ImagesPlaceholder int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddEntriesSeen(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesSeen += int64(n)
}

func (m *Metrics) IncrementItemsAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsAccepted++
}

func (m *Metrics) IncrementEnrichOK() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichOK++
}

func (m *Metrics) IncrementEnrichFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichFailed++
}

func (m *Metrics) IncrementImagesResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImagesResolved++
}

func (m *Metrics) IncrementImagesPlaceholder() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImagesPlaceholder++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_seen":               m.EntriesSeen,
		"items_accepted":             m.ItemsAccepted,
		"enrich_ok":                  m.EnrichOK,
		"enrich_failed":              m.EnrichFailed,
		"images_resolved":            m.ImagesResolved,
		"images_placeholder":         m.ImagesPlaceholder,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
