// Package random provides the seed strategies that drive every stochastic
// part of the engine.
//
// # Determinism
//
// A Source hands out independent *rand.Rand streams addressed by a name and
// an index. For SessionSource the stream depends only on the session id, the
// name and the index, so repeating a request with the same session id
// reproduces every draw. Callers that need fresh randomness pass a fresh
// session id.
package random

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// Source produces named, indexed random streams.
type Source interface {
	Stream(name string, index int) *rand.Rand
}

// Factory builds the Source for one request.
type Factory func(sessionID string) Source

// SessionSource derives streams from a caller supplied session id.
type SessionSource struct {
	SessionID string
}

// SessionFactory is the production Factory.
func SessionFactory(sessionID string) Source {
	return SessionSource{SessionID: sessionID}
}

func (s SessionSource) Stream(name string, index int) *rand.Rand {
	return newStream(Seed(s.SessionID, name, index))
}

// Fixed ignores the session id and derives streams from a constant seed.
type Fixed uint64

// FixedFactory returns a Factory that always yields Fixed(seed).
func FixedFactory(seed uint64) Factory {
	return func(string) Source { return Fixed(seed) }
}

func (f Fixed) Stream(name string, index int) *rand.Rand {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(f))
	return newStream(Seed(string(b[:]), name, index))
}

// Seed hashes (key, name, index) with FNV-1a into a 64-bit seed.
func Seed(key, name string, index int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{0})
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(index))
	_, _ = h.Write(b[:])
	return h.Sum64()
}

func newStream(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
