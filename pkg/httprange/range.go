package httprange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsatisfiable is returned for malformed, inverted or out-of-bounds
// Range headers. Callers answer 416 and never let the bad offsets reach
// the blob reader.
var ErrUnsatisfiable = errors.New("range not satisfiable")

// Range is an inclusive byte window [Start, End] over a blob of Total
// bytes. Invariant: 0 <= Start <= End <= Total-1.
type Range struct {
	Start int64
	End   int64
	Total int64
}

// Length returns the number of bytes in the window.
func (r Range) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the Content-Range header value for a 206 response.
func (r Range) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.Total)
}

// Unsatisfiable renders the Content-Range header value for a 416 response.
func Unsatisfiable(total int64) string {
	return fmt.Sprintf("bytes */%d", total)
}

// Negotiate parses an optional Range request header against the known
// total size. A nil Range with nil error means no range was requested
// and the full content should be served with status 200.
//
// Supported forms: "bytes=S-E", "bytes=S-" (to end of file) and
// "bytes=-N" (last N bytes). E is clamped to total-1. Multi-range
// requests are rejected: the pipeline streams a single window.
func Negotiate(header string, total int64) (*Range, error) {
	if header == "" {
		return nil, nil
	}
	if !strings.HasPrefix(header, "bytes=") {
		return nil, ErrUnsatisfiable
	}

	spec := strings.TrimSpace(strings.TrimPrefix(header, "bytes="))
	if spec == "" || strings.Contains(spec, ",") {
		return nil, ErrUnsatisfiable
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return nil, ErrUnsatisfiable
	}
	startPart := strings.TrimSpace(parts[0])
	endPart := strings.TrimSpace(parts[1])

	switch {
	case startPart == "":
		// suffix form: last N bytes
		n, err := strconv.ParseInt(endPart, 10, 64)
		if err != nil || n <= 0 {
			return nil, ErrUnsatisfiable
		}
		if n > total {
			n = total
		}
		if total == 0 {
			return nil, ErrUnsatisfiable
		}
		return &Range{Start: total - n, End: total - 1, Total: total}, nil

	case endPart == "":
		start, err := strconv.ParseInt(startPart, 10, 64)
		if err != nil || start < 0 || start >= total {
			return nil, ErrUnsatisfiable
		}
		return &Range{Start: start, End: total - 1, Total: total}, nil

	default:
		start, err1 := strconv.ParseInt(startPart, 10, 64)
		end, err2 := strconv.ParseInt(endPart, 10, 64)
		if err1 != nil || err2 != nil || start < 0 || end < start || start >= total {
			return nil, ErrUnsatisfiable
		}
		if end > total-1 {
			end = total - 1
		}
		return &Range{Start: start, End: end, Total: total}, nil
	}
}
