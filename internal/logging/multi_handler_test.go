package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type countingHandler struct {
	handled int
	err     error
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.handled++
	return h.err
}
func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerDeliversPastFailure(t *testing.T) {
	sinkErr := errors.New("sink down")
	broken := &countingHandler{err: sinkErr}
	healthy := &countingHandler{}

	m := NewMultiHandler(broken, healthy)
	record := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)

	if err := m.Handle(context.Background(), record); !errors.Is(err, sinkErr) {
		t.Fatalf("want first error %v got %v", sinkErr, err)
	}
	if healthy.handled != 1 {
		t.Fatalf("healthy handler must still receive the record: handled=%d", healthy.handled)
	}
	if broken.handled != 1 {
		t.Fatalf("broken handler handled: want=1 got=%d", broken.handled)
	}
}
