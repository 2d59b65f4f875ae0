package httprange

import "testing"

func TestNegotiate_NoHeader(t *testing.T) {
	rng, err := Negotiate("", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rng != nil {
		t.Fatalf("expected full-content result, got %+v", rng)
	}
}

func TestNegotiate_Windows(t *testing.T) {
	cases := []struct {
		name       string
		header     string
		total      int64
		wantStart  int64
		wantEnd    int64
		wantLength int64
		wantCR     string
	}{
		{
			name:       "bounded range",
			header:     "bytes=0-99",
			total:      1000,
			wantStart:  0,
			wantEnd:    99,
			wantLength: 100,
			wantCR:     "bytes 0-99/1000",
		},
		{
			name:       "end clamped to total",
			header:     "bytes=900-2000",
			total:      1000,
			wantStart:  900,
			wantEnd:    999,
			wantLength: 100,
			wantCR:     "bytes 900-999/1000",
		},
		{
			name:       "open ended",
			header:     "bytes=500-",
			total:      1000,
			wantStart:  500,
			wantEnd:    999,
			wantLength: 500,
			wantCR:     "bytes 500-999/1000",
		},
		{
			name:       "suffix form",
			header:     "bytes=-100",
			total:      1000,
			wantStart:  900,
			wantEnd:    999,
			wantLength: 100,
			wantCR:     "bytes 900-999/1000",
		},
		{
			name:       "suffix larger than file",
			header:     "bytes=-5000",
			total:      1000,
			wantStart:  0,
			wantEnd:    999,
			wantLength: 1000,
			wantCR:     "bytes 0-999/1000",
		},
		{
			name:       "single byte",
			header:     "bytes=0-0",
			total:      1000,
			wantStart:  0,
			wantEnd:    0,
			wantLength: 1,
			wantCR:     "bytes 0-0/1000",
		},
		{
			name:       "last byte",
			header:     "bytes=999-999",
			total:      1000,
			wantStart:  999,
			wantEnd:    999,
			wantLength: 1,
			wantCR:     "bytes 999-999/1000",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := Negotiate(tc.header, tc.total)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rng == nil {
				t.Fatal("expected a range, got full content")
			}
			if rng.Start != tc.wantStart || rng.End != tc.wantEnd {
				t.Errorf("window = [%d, %d], want [%d, %d]", rng.Start, rng.End, tc.wantStart, tc.wantEnd)
			}
			if rng.Length() != tc.wantLength {
				t.Errorf("Length() = %d, want %d", rng.Length(), tc.wantLength)
			}
			if rng.ContentRange() != tc.wantCR {
				t.Errorf("ContentRange() = %q, want %q", rng.ContentRange(), tc.wantCR)
			}
		})
	}
}

func TestNegotiate_Unsatisfiable(t *testing.T) {
	cases := []struct {
		name   string
		header string
		total  int64
	}{
		{name: "wrong unit", header: "items=0-10", total: 1000},
		{name: "missing prefix", header: "0-10", total: 1000},
		{name: "empty spec", header: "bytes=", total: 1000},
		{name: "no dash", header: "bytes=100", total: 1000},
		{name: "garbage start", header: "bytes=abc-100", total: 1000},
		{name: "garbage end", header: "bytes=0-xyz", total: 1000},
		{name: "negative start", header: "bytes=-5-10", total: 1000},
		{name: "inverted window", header: "bytes=500-100", total: 1000},
		{name: "start past end of file", header: "bytes=1000-", total: 1000},
		{name: "start past end bounded", header: "bytes=2000-3000", total: 1000},
		{name: "multi range", header: "bytes=0-10,20-30", total: 1000},
		{name: "zero suffix", header: "bytes=-0", total: 1000},
		{name: "suffix on empty file", header: "bytes=-10", total: 0},
		{name: "any range on empty file", header: "bytes=0-10", total: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := Negotiate(tc.header, tc.total)
			if err != ErrUnsatisfiable {
				t.Fatalf("err = %v, want ErrUnsatisfiable", err)
			}
			if rng != nil {
				t.Fatalf("expected nil range on error, got %+v", rng)
			}
		})
	}
}

func TestUnsatisfiable_Header(t *testing.T) {
	if got := Unsatisfiable(1000); got != "bytes */1000" {
		t.Errorf("Unsatisfiable(1000) = %q, want %q", got, "bytes */1000")
	}
}
