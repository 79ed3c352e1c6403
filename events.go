package wttp

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/wttp/store"
)

// Change event types.
const (
	EventHeaderDefined     = "header_defined"
	EventMetadataDescribed = "metadata_described"
	EventResourceDeleted   = "resource_deleted"
)

// ChangeEvent records one write to a Site.
type ChangeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Path      string    `json:"path"`
	Revision  uuid.UUID `json:"revision,omitzero"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	// Detail is the header or metadata in its short text form.
	Detail string `json:"detail,omitempty"`
}

type EventSink interface {
	Emit(ctx context.Context, event ChangeEvent)
}

type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, ChangeEvent) {}

// ChannelSink hands events to a consumer over a buffered channel.
type ChannelSink struct {
	events chan ChangeEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan ChangeEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event ChangeEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan ChangeEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event ChangeEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// emit is a no-op when the change feed is disabled.
func (s *Site) emit(ctx context.Context, eventType, path string, rec *store.Record, detail string, err error) {
	if s.events == nil {
		return
	}
	event := ChangeEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Path:      path,
		Success:   err == nil,
		Detail:    detail,
	}
	if p, perr := store.NormalizePath(path); perr == nil {
		event.Path = p
	}
	if rec != nil {
		event.Path = rec.Path
		event.Revision = rec.Revision
		event.Timestamp = rec.UpdatedAt
	}
	if err != nil {
		event.Error = err.Error()
	}
	s.events.Emit(ctx, event)
}
