package cli

import (
	"context"
	"io"
)

func RunForTest(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	return run(ctx, args, "test", stdin, stdout, stderr)
}
