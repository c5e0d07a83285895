package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger: JSON to stdout, tagged with the
// service name so aggregated logs stay attributable once other backends share
// the sink.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := slog.New(handler).With(slog.String("service", "ibdaily"))
	slog.SetDefault(logger)
}
