package safe

import (
	"context"
	"io"

	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// Close closes c and logs a failure instead of returning it. nil is ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", "error", err)
	}
}

// Write writes data to w and logs a failure. Used after response headers are
// committed, when nothing can be reported to the peer anymore.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write", "error", err, "bytes", len(data))
	}
}
