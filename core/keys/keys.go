package keys

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/codewandler/tcache-go/internal/codec"
)

const separator = ":"

// Builder composes a cache key from ordered parts. A builder produces
// exactly one key: Build consumes the parts, and the builder holds no
// state afterwards.
type Builder struct {
	parts []string
}

// New creates an empty Builder.
func New() *Builder { return &Builder{} }

// Add appends the string form of part and returns the builder for chaining.
func (b *Builder) Add(part any) *Builder {
	b.parts = append(b.parts, fmt.Sprint(part))
	return b
}

// AddHash appends a hash of v's canonical serialization. Structurally
// equal values always hash to the same output within one process and
// module version; there is no stability guarantee beyond that.
func (b *Builder) AddHash(v any) *Builder {
	b.parts = append(b.parts, Hash(v))
	return b
}

// Build joins the appended parts with ":" in the order added.
func (b *Builder) Build() string {
	key := strings.Join(b.parts, separator)
	b.parts = nil
	return key
}

// Join builds a key from parts in a single call.
func Join(parts ...any) string {
	b := New()
	for _, p := range parts {
		b.Add(p)
	}
	return b.Build()
}

// Hash returns the hex-encoded 8-byte blake2b digest of v's canonical
// JSON serialization.
func Hash(v any) string {
	data, err := codec.JSON.Marshal(v)
	if err != nil {
		// Unserializable values (channels, funcs). Fall back to the
		// Go-syntax representation, which is still deterministic
		// within one process.
		data = []byte(fmt.Sprintf("%#v", v))
	}

	h, _ := blake2b.New(8, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
