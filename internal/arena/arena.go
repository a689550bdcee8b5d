// Package arena interns object and symbol names into a single growing
// byte buffer, handing callers a small integer Name handle instead of
// a string copy. Names live for the lifetime of the Arena; nothing is
// ever freed or reallocated out from under a previously returned Name.
package arena

import (
	"github.com/cespare/xxhash/v2"
)

// Name is a handle to an interned string. The zero Name is never
// returned by Intern and may be used as a sentinel "no name".
type Name int32

// Arena interns strings by content, deduplicating on append. Lookup
// hashes the candidate with xxhash and only falls back to a byte
// compare against the stored bytes at each bucket entry on a hash hit,
// mirroring the fast-hash-then-verify shape used elsewhere in the pack
// for content deduplication.
type Arena struct {
	buf     []byte
	offsets []int32 // offsets[i] is the start of Name(i+1) in buf
	lengths []int32
	byHash  map[uint64][]Name
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{
		byHash: make(map[uint64][]Name),
	}
}

// Intern returns the Name for s, reusing an existing handle if s was
// already interned.
func (a *Arena) Intern(s string) Name {
	if s == "" {
		return a.internBytes(nil)
	}
	return a.internBytes([]byte(s))
}

func (a *Arena) internBytes(b []byte) Name {
	h := xxhash.Sum64(b)
	for _, n := range a.byHash[h] {
		if a.stringAt(n) == string(b) {
			return n
		}
	}

	off := int32(len(a.buf))
	a.buf = append(a.buf, b...)
	a.offsets = append(a.offsets, off)
	a.lengths = append(a.lengths, int32(len(b)))
	n := Name(len(a.offsets))
	a.byHash[h] = append(a.byHash[h], n)
	return n
}

func (a *Arena) stringAt(n Name) string {
	i := int(n) - 1
	off := a.offsets[i]
	ln := a.lengths[i]
	return string(a.buf[off : off+ln])
}

// String returns the interned text for n. The zero Name returns "".
func (a *Arena) String(n Name) string {
	if n == 0 {
		return ""
	}
	return a.stringAt(n)
}

// Len returns the number of distinct names interned so far.
func (a *Arena) Len() int {
	return len(a.offsets)
}
