package tty

import (
	"context"
	"errors"
	"io"
	"os"
)

const inputBufferSize = 32 * 1024

// ReadKeys copies raw keyboard chunks from r to handle until r ends or ctx
// is cancelled. Each chunk passed to handle is a fresh slice.
func ReadKeys(ctx context.Context, r io.Reader, handle func([]byte)) error {
	buf := make([]byte, inputBufferSize)
	for {
		n, err := r.Read(buf)
		if ctx.Err() != nil {
			return nil
		}
		if n > 0 {
			handle(append([]byte(nil), buf[:n]...))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}
