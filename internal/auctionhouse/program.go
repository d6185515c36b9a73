// Package auctionhouse holds the fixed call surface of the external auction
// engine: its program identity, derived-address finders, account layouts and
// the delegated instruction builders. Everything here must match the engine
// bit for bit; none of these accounts are under this service's control.
package auctionhouse

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"reward-center/internal/solana"
)

// ProgramID is the well-known identity of the external auction engine.
// Process-wide configuration, fixed at startup.
var ProgramID = solana.MustPubkey("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")

// Seed tags used by the auction engine's derivations.
const (
	PrefixSeed     = "auction_house"
	FeePayerSeed   = "fee_payer"
	TreasurySeed   = "treasury"
	SignerSeed     = "signer"
	AuctioneerSeed = "auctioneer"
)

const accountDiscriminatorLength = 8

var ErrInvalidAccountData = errors.New("unexpected account data")

// AuctionHouse mirrors the engine's configuration account. The rewards layer
// reads it for authority checks and treasury mint resolution; it never
// mutates it.
type AuctionHouse struct {
	FeeAccount                   solana.Pubkey
	Treasury                     solana.Pubkey
	TreasuryWithdrawalDestination solana.Pubkey
	FeeWithdrawalDestination     solana.Pubkey
	TreasuryMint                 solana.Pubkey
	Authority                    solana.Pubkey
	Creator                      solana.Pubkey
	Bump                         uint8
	TreasuryBump                 uint8
	FeePayerBump                 uint8
	SellerFeeBasisPoints         uint16
	RequiresSignOff              bool
	CanChangeSalePrice           bool
	EscrowPaymentBump            uint8
	HasAuctioneer                bool
	AuctioneerAddress            solana.Pubkey
}

const auctionHouseDataLength = accountDiscriminatorLength + 7*32 + 3 + 2 + 2 + 1 + 1 + 32

// DecodeAuctionHouse parses the engine's configuration account from its raw
// little-endian layout.
func DecodeAuctionHouse(data []byte) (*AuctionHouse, error) {
	if len(data) < auctionHouseDataLength {
		return nil, ErrInvalidAccountData
	}
	offset := accountDiscriminatorLength

	readKey := func() solana.Pubkey {
		pk, _ := solana.PubkeyFromBytes(data[offset : offset+32])
		offset += 32
		return pk
	}
	readByte := func() uint8 {
		b := data[offset]
		offset++
		return b
	}

	ah := &AuctionHouse{}
	ah.FeeAccount = readKey()
	ah.Treasury = readKey()
	ah.TreasuryWithdrawalDestination = readKey()
	ah.FeeWithdrawalDestination = readKey()
	ah.TreasuryMint = readKey()
	ah.Authority = readKey()
	ah.Creator = readKey()
	ah.Bump = readByte()
	ah.TreasuryBump = readByte()
	ah.FeePayerBump = readByte()
	ah.SellerFeeBasisPoints = binary.LittleEndian.Uint16(data[offset : offset+2])
	offset += 2
	ah.RequiresSignOff = readByte() != 0
	ah.CanChangeSalePrice = readByte() != 0
	ah.EscrowPaymentBump = readByte()
	ah.HasAuctioneer = readByte() != 0
	ah.AuctioneerAddress = readKey()
	return ah, nil
}

// methodDiscriminator tags instruction data with the engine's 8-byte method
// selector.
func methodDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:8]
}

func uint64LE(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}
