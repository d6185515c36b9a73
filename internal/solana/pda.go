package solana

import (
	"crypto/sha256"
	"errors"

	"filippo.io/edwards25519"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds   = errors.New("too many derivation seeds")
	ErrSeedTooLong    = errors.New("derivation seed exceeds 32 bytes")
	ErrInvalidAddress = errors.New("derived address lands on the ed25519 curve")
	ErrNoBumpFound    = errors.New("no valid bump found for seeds")
)

// pdaMarker separates program-derived addresses from regular key material in
// the hash preimage.
var pdaMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress hashes the seed material with the owning program id and
// returns the resulting address. It fails if the result is a valid curve
// point, since a derived address must never have a corresponding private key.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	if len(seeds) > maxSeeds {
		return ZeroPubkey, ErrTooManySeeds
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return ZeroPubkey, ErrSeedTooLong
		}
		h.Write(seed)
	}
	h.Write(programID.Bytes())
	h.Write(pdaMarker)

	digest := h.Sum(nil)
	if isOnCurve(digest) {
		return ZeroPubkey, ErrInvalidAddress
	}
	return PubkeyFromBytes(digest)
}

// FindProgramAddress scans bump values from 255 downward and returns the
// first address that falls off the curve, together with the canonical bump.
// The result is a pure function of (seeds, programID): any holder of the same
// inputs re-derives the identical pair.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		candidate := append(append([][]byte{}, seeds...), []byte{uint8(bump)})
		addr, err := CreateProgramAddress(candidate, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidAddress) {
			return ZeroPubkey, 0, err
		}
	}
	return ZeroPubkey, 0, ErrNoBumpFound
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
