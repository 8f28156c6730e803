package mocks

import (
	"sync"
	"time"

	"weatherdash.app/internal/ports"
)

// LogEntry is one message captured by Logger
type LogEntry struct {
	Level   string
	Message string
	Fields  []ports.Field
}

// Field returns the value logged under key, or nil
func (e LogEntry) Field(key string) interface{} {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Logger records log calls instead of asserting on them; variadic fields make
// strict expectations brittle.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(msg string, fields ...ports.Field) { l.record("DEBUG", msg, fields) }
func (l *Logger) Info(msg string, fields ...ports.Field)  { l.record("INFO", msg, fields) }
func (l *Logger) Warn(msg string, fields ...ports.Field)  { l.record("WARN", msg, fields) }
func (l *Logger) Error(msg string, fields ...ports.Field) { l.record("ERROR", msg, fields) }

func (l *Logger) record(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

// Entries returns a copy of every captured entry
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Messages returns the captured messages at the given level
func (l *Logger) Messages(level string) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// MetricsCollector counts recorded metrics in memory
type MetricsCollector struct {
	mu               sync.Mutex
	Classifications  map[string]int
	Unrecognized     int
	UnitConversions  map[string]int
	ProviderRequests map[string]int
	ProviderFailures map[string]int
	CacheHits        map[string]int
	CacheMisses      map[string]int
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		Classifications:  make(map[string]int),
		UnitConversions:  make(map[string]int),
		ProviderRequests: make(map[string]int),
		ProviderFailures: make(map[string]int),
		CacheHits:        make(map[string]int),
		CacheMisses:      make(map[string]int),
	}
}

func (m *MetricsCollector) RecordClassification(class string, recognized bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Classifications[class]++
	if !recognized {
		m.Unrecognized++
	}
}

func (m *MetricsCollector) RecordUnitConversion(unit string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnitConversions[unit]++
}

func (m *MetricsCollector) RecordProviderRequest(endpoint string, success bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderRequests[endpoint]++
	if !success {
		m.ProviderFailures[endpoint]++
	}
}

func (m *MetricsCollector) RecordCacheHit(cache string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits[cache]++
}

func (m *MetricsCollector) RecordCacheMiss(cache string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses[cache]++
}

// TotalClassifications sums classifications across classes
func (m *MetricsCollector) TotalClassifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.Classifications {
		total += n
	}
	return total
}

var (
	_ ports.Logger           = (*Logger)(nil)
	_ ports.MetricsCollector = (*MetricsCollector)(nil)
)
