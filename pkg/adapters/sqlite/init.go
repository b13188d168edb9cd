package sqlite

import (
	"log/slog"

	"github.com/mathias-mike/arrow/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
