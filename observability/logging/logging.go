package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON slog.Logger tagged with the SDK name and network. The
// attribute names match the log pipeline conventions (timestamp/severity/
// message) so SDK lines collate with service logs.
func New(network string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			case slog.LevelKey:
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			case slog.MessageKey:
				return slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	})
	logger := slog.New(handler).With(slog.String("sdk", "nftfi"))
	if network = strings.TrimSpace(network); network != "" {
		logger = logger.With(slog.String("network", network))
	}
	return logger
}
