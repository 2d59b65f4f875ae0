package streaming

import (
	"context"
	"errors"
	"io"
	"net/http"

	"coursecast/internal/core/domain"
	"coursecast/pkg/httprange"
	"coursecast/pkg/optimize"

	"go.uber.org/zap"
)

// Pipeline copies a negotiated byte window from a blob reader to a
// response sink. Copy buffers come from a shared pool; each concurrent
// transfer is independent and stops as soon as its context is done.
type Pipeline struct {
	buffers *optimize.BytePool
	log     *zap.SugaredLogger
}

func NewPipeline(bufferSize int, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		buffers: optimize.NewBytePool(bufferSize),
		log:     log,
	}
}

// Transfer streams the blob window to the sink and reports the terminal
// state. rng == nil means the whole blob. The caller has already written
// status and headers; failures here can only terminate the connection.
//
//   - StreamCompleted: the full window was written, err is nil.
//   - StreamAborted: the client went away mid-transfer, err is nil.
//   - StreamFailed: a read or write failed, err describes it.
//
// Transfer does not close src; ownership stays with the caller so the
// blob handle is released on every exit path by the same defer.
func (p *Pipeline) Transfer(ctx context.Context, src io.ReadSeeker, rng *httprange.Range, sink io.Writer) (int64, domain.StreamState, error) {
	var reader io.Reader = src
	if rng != nil {
		if _, err := src.Seek(rng.Start, io.SeekStart); err != nil {
			return 0, domain.StreamFailed, err
		}
		reader = io.LimitReader(src, rng.Length())
	}

	flusher, _ := sink.(http.Flusher)

	buf := p.buffers.Get()
	defer p.buffers.Put(buf)

	var written int64
	for {
		if ctx.Err() != nil {
			return written, domain.StreamAborted, nil
		}

		n, rerr := reader.Read(buf)
		if n > 0 {
			wn, werr := sink.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				// A write error with a done context is the client
				// closing the connection, not a server fault.
				if ctx.Err() != nil {
					return written, domain.StreamAborted, nil
				}
				return written, domain.StreamFailed, werr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return written, domain.StreamCompleted, nil
			}
			if ctx.Err() != nil {
				return written, domain.StreamAborted, nil
			}
			return written, domain.StreamFailed, rerr
		}
	}
}
