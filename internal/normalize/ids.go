package normalize

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDSource produces identifiers for newly normalized PLC records. Injecting
// the source keeps normalization deterministic under test.
type IDSource interface {
	NewID() string
}

// UUIDSource derives short identifiers from random UUIDs.
type UUIDSource struct{}

// NewID returns the first segment of a fresh UUID. Uniqueness is not
// guaranteed globally; records are scoped to a single dashboard instance.
func (UUIDSource) NewID() string {
	return uuid.NewString()[:8]
}

// SequenceSource hands out prefixed sequential identifiers. Used by tests and
// anywhere reproducible ids matter.
type SequenceSource struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceSource creates a SequenceSource starting at 1.
func NewSequenceSource(prefix string) *SequenceSource {
	return &SequenceSource{prefix: prefix, next: 1}
}

func (s *SequenceSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return id
}
