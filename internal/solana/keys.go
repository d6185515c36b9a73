package solana

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// Pubkey is a 32-byte ed25519 public key identifying an account on the ledger.
type Pubkey [32]byte

var ZeroPubkey Pubkey

var (
	ErrInvalidPubkey = errors.New("invalid public key")
)

func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pk Pubkey
	if len(b) != ed25519.PublicKeySize {
		return pk, ErrInvalidPubkey
	}
	copy(pk[:], b)
	return pk, nil
}

func PubkeyFromBase58(s string) (Pubkey, error) {
	decoded := base58.Decode(s)
	if len(decoded) != ed25519.PublicKeySize {
		return ZeroPubkey, fmt.Errorf("%w: %q", ErrInvalidPubkey, s)
	}
	return PubkeyFromBytes(decoded)
}

// MustPubkey parses a base58 key and panics on failure. Used for the
// well-known program identities fixed at startup.
func MustPubkey(s string) Pubkey {
	pk, err := PubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (p Pubkey) Bytes() []byte {
	return p[:]
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == ZeroPubkey
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	pk, err := PubkeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*p = pk
	return nil
}
