package identity

import (
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// GenerateNostr returns an identity whose ID is the bech32 npub of a freshly
// generated secp256k1 key. The private key is discarded.
func GenerateNostr() (Identity, error) {
	sk := nostr.GeneratePrivateKey()

	pk, err := nostr.GetPublicKey(sk)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: derive public key: %v", ErrGeneration, err)
	}

	npub, err := nip19.EncodePublicKey(pk)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: encode npub: %v", ErrGeneration, err)
	}

	return Identity{
		ID:        npub,
		PublicKey: pk,
		Scheme:    SchemeNostr,
		CreatedAt: time.Now(),
	}, nil
}
