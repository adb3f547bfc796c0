//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"testing"
)

func TestMaxChunkFitsRequest(t *testing.T) {
	// 65535 units is the core protocol limit without BIG-REQUESTS.
	if got := maxChunk(65535); got != 262116 {
		t.Fatalf("maxChunk(65535) = %d", got)
	}
	if got := maxChunk(65535); got+24 > 65535*4 {
		t.Fatalf("chunk %d exceeds the request limit", got)
	}
	if got := maxChunk(4); got != 1024 {
		t.Fatalf("maxChunk(4) = %d, want floor of 1024", got)
	}
}

func TestIncrTransferChunksThenTerminates(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 25)
	tr := &incrTransfer{data: data}

	var got []byte
	chunks := 0
	for {
		chunk, done := tr.next(100)
		if done {
			if len(chunk) != 0 {
				t.Fatalf("terminator carried %d bytes", len(chunk))
			}
			break
		}
		if len(chunk) == 0 || len(chunk) > 100 {
			t.Fatalf("chunk %d has %d bytes", chunks, len(chunk))
		}
		got = append(got, chunk...)
		chunks++
	}
	if chunks != 3 {
		t.Fatalf("expected 3 chunks, got %d", chunks)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("reassembled data differs")
	}
}
