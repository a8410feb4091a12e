// Package observer publishes document processing events to logging and metrics sinks.
package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType represents the type of processing event
type EventType string

const (
	// ExtractionStarted when a document enters the pipeline
	ExtractionStarted EventType = "extraction_started"
	// ExtractionCompleted when extraction finishes successfully
	ExtractionCompleted EventType = "extraction_completed"
	// ExtractionFailed when extraction fails
	ExtractionFailed EventType = "extraction_failed"
	// DocumentFetched when a remote document is downloaded
	DocumentFetched EventType = "document_fetched"
	// DocumentFetchFailed when a remote download fails
	DocumentFetchFailed EventType = "document_fetch_failed"
)

// Event describes one step of processing a document
type Event struct {
	Type           EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id,omitempty"`
	FileKind       string                 `json:"file_kind,omitempty"`
	ContentType    string                 `json:"content_type,omitempty"`
	Pages          int                    `json:"pages,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	ErrorType      string                 `json:"error_type,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// Observer receives published events
type Observer interface {
	OnEvent(ctx context.Context, event Event)
	Name() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(ctx context.Context, event Event)
}

// LoggingObserver logs events through logrus
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnEvent logs the event at a level matching its outcome
func (o *LoggingObserver) OnEvent(ctx context.Context, event Event) {
	fields := logrus.Fields{
		"event_type":      event.Type,
		"processing_time": event.ProcessingTime.String(),
	}
	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if event.FileKind != "" {
		fields["file_kind"] = event.FileKind
	}
	if event.ContentType != "" {
		fields["content_type"] = event.ContentType
	}
	if event.Pages > 0 {
		fields["pages"] = event.Pages
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
		fields["error_type"] = event.ErrorType
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.Type {
	case ExtractionStarted:
		entry.Debug("Extraction started")
	case ExtractionCompleted:
		entry.Info("Extraction completed")
	case ExtractionFailed:
		entry.Warn("Extraction failed")
	case DocumentFetched:
		entry.Debug("Document fetched")
	case DocumentFetchFailed:
		entry.Warn("Document fetch failed")
	default:
		entry.Info("Processing event")
	}
}

// Name returns the observer name
func (o *LoggingObserver) Name() string {
	return "logging_observer"
}

// Metrics is a point-in-time copy of the collected counters
type Metrics struct {
	TotalExtractions      int64            `json:"total_extractions"`
	SuccessfulExtractions int64            `json:"successful_extractions"`
	FailedExtractions     int64            `json:"failed_extractions"`
	PagesExtracted        int64            `json:"pages_extracted"`
	ByFileKind            map[string]int64 `json:"by_file_kind"`
	FailuresByType        map[string]int64 `json:"failures_by_type"`
	RemoteFetches         int64            `json:"remote_fetches"`
	RemoteFetchFailures   int64            `json:"remote_fetch_failures"`
	AvgProcessingTimeMs   float64          `json:"avg_processing_time_ms"`
}

// MetricsObserver aggregates counters from events
type MetricsObserver struct {
	mu                  sync.RWMutex
	total               int64
	successful          int64
	failed              int64
	pages               int64
	byKind              map[string]int64
	failuresByType      map[string]int64
	fetches             int64
	fetchFailures       int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		byKind:         make(map[string]int64),
		failuresByType: make(map[string]int64),
	}
}

// OnEvent updates the counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.Type {
	case ExtractionStarted:
		o.total++
	case ExtractionCompleted:
		o.successful++
		o.pages += int64(event.Pages)
		o.totalProcessingTime += event.ProcessingTime
		if event.FileKind != "" {
			o.byKind[event.FileKind]++
		}
	case ExtractionFailed:
		o.failed++
		if event.ErrorType != "" {
			o.failuresByType[event.ErrorType]++
		}
	case DocumentFetched:
		o.fetches++
	case DocumentFetchFailed:
		o.fetches++
		o.fetchFailures++
	}
}

// Name returns the observer name
func (o *MetricsObserver) Name() string {
	return "metrics_observer"
}

// Snapshot returns the current metrics
func (o *MetricsObserver) Snapshot() Metrics {
	o.mu.RLock()
	defer o.mu.RUnlock()

	m := Metrics{
		TotalExtractions:      o.total,
		SuccessfulExtractions: o.successful,
		FailedExtractions:     o.failed,
		PagesExtracted:        o.pages,
		ByFileKind:            make(map[string]int64, len(o.byKind)),
		FailuresByType:        make(map[string]int64, len(o.failuresByType)),
		RemoteFetches:         o.fetches,
		RemoteFetchFailures:   o.fetchFailures,
	}
	for k, v := range o.byKind {
		m.ByFileKind[k] = v
	}
	for k, v := range o.failuresByType {
		m.FailuresByType[k] = v
	}
	if o.successful > 0 {
		m.AvgProcessingTimeMs = float64(o.totalProcessingTime.Milliseconds()) / float64(o.successful)
	}
	return m
}

// EventPublisher implements Subject. Observers run synchronously in
// subscription order; a panicking observer is logged and skipped.
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer by name
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.Name() == observer.Name() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// Notify delivers the event to every observer
func (p *EventPublisher) Notify(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, obs := range observers {
		notifyOne(ctx, obs, event)
	}
}

func notifyOne(ctx context.Context, obs Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("observer", obs.Name()).
				WithField("panic", r).
				Error("Observer panicked while handling event")
		}
	}()
	obs.OnEvent(ctx, event)
}
