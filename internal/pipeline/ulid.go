package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Dependency-free ULID generator for job IDs: 26-character Crockford
// Base32 strings with a 48-bit millisecond timestamp prefix, so IDs
// sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeULID(b)
}

// encodeULID renders 128 bits as 26 Crockford Base32 characters. The
// leading character carries only the top 3 bits so the remaining 125
// bits divide evenly into 5-bit groups.
func encodeULID(b [16]byte) string {
	var out [26]byte
	var acc uint
	nbits := 0
	pos := 0
	want := 3
	for _, by := range b {
		acc = acc<<8 | uint(by)
		nbits += 8
		for nbits >= want {
			nbits -= want
			out[pos] = crockford[(acc>>uint(nbits))&(1<<uint(want)-1)]
			pos++
			want = 5
		}
	}
	return string(out[:])
}
