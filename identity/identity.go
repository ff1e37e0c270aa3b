// Package identity mints the locally generated identities agents carry.
// Identities are opaque: nothing is registered or resolved externally.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheme tags the identifier format an Identity was generated with.
type Scheme string

const (
	SchemeDID   Scheme = "did"
	SchemeNostr Scheme = "nostr"
)

// DIDPrefix is the method prefix of generated DID identifiers.
const DIDPrefix = "did:example:"

// Identity is a unique identifier paired with a public-key-like string.
// Values are immutable once generated.
type Identity struct {
	ID        string    `json:"id"`
	PublicKey string    `json:"public_key"`
	Scheme    Scheme    `json:"scheme"`
	CreatedAt time.Time `json:"created_at"`
}

// Generate returns a DID identity with a fresh random UUIDv4 identifier and
// an independent UUIDv4 public key.
func Generate() Identity {
	return Identity{
		ID:        DIDPrefix + uuid.NewString(),
		PublicKey: uuid.NewString(),
		Scheme:    SchemeDID,
		CreatedAt: time.Now(),
	}
}

// New generates an identity using the given scheme. An empty scheme selects
// SchemeDID.
func New(scheme Scheme) (Identity, error) {
	switch scheme {
	case "", SchemeDID:
		return Generate(), nil
	case SchemeNostr:
		return GenerateNostr()
	default:
		return Identity{}, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}
}

// ParseScheme converts a configuration string into a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeDID:
		return SchemeDID, nil
	case SchemeNostr:
		return SchemeNostr, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownScheme, s)
	}
}

// Sender returns the value used in the "from" field of outbound payloads.
func (i Identity) Sender() string {
	return i.ID
}

// IsZero reports whether i was never generated.
func (i Identity) IsZero() bool {
	return i.ID == ""
}

func (i Identity) String() string {
	return fmt.Sprintf("%s (public key %s)", i.ID, i.PublicKey)
}
