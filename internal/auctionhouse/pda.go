package auctionhouse

import (
	"math"

	"reward-center/internal/solana"
)

// FindAuctionHouseAddress locates the engine configuration account for a
// (creator, treasury mint) pair.
func FindAuctionHouseAddress(creator, treasuryMint solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(PrefixSeed), creator.Bytes(), treasuryMint.Bytes()},
		ProgramID,
	)
}

// FindFeeAccountAddress locates the engine's fee payer account for one
// auction house instance.
func FindFeeAccountAddress(auctionHouse solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(PrefixSeed), auctionHouse.Bytes(), []byte(FeePayerSeed)},
		ProgramID,
	)
}

// FindTreasuryAddress locates the engine's treasury for one auction house
// instance.
func FindTreasuryAddress(auctionHouse solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(PrefixSeed), auctionHouse.Bytes(), []byte(TreasurySeed)},
		ProgramID,
	)
}

// FindAuctioneerAddress locates the scope account the engine keeps for a
// delegated auctioneer authority.
func FindAuctioneerAddress(auctionHouse, auctioneerAuthority solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(AuctioneerSeed), auctionHouse.Bytes(), auctioneerAuthority.Bytes()},
		ProgramID,
	)
}

// FindProgramAsSignerAddress locates the engine's own derived signer, used as
// the token delegate on listed assets.
func FindProgramAsSignerAddress() (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(PrefixSeed), []byte(SignerSeed)},
		ProgramID,
	)
}

// FindEscrowPaymentAddress locates the per-wallet escrow account holding a
// buyer's committed funds.
func FindEscrowPaymentAddress(auctionHouse, wallet solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(PrefixSeed), auctionHouse.Bytes(), wallet.Bytes()},
		ProgramID,
	)
}

// FindTradeStateAddress locates the trade state recording an order at an
// exact (price, size). Distinct price/size pairs yield distinct addresses,
// which is what lets concurrent orders on one asset coexist.
func FindTradeStateAddress(wallet, auctionHouse, tokenAccount, treasuryMint, tokenMint solana.Pubkey, price, tokenSize uint64) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(PrefixSeed),
			wallet.Bytes(),
			auctionHouse.Bytes(),
			tokenAccount.Bytes(),
			treasuryMint.Bytes(),
			tokenMint.Bytes(),
			uint64LE(price),
			uint64LE(tokenSize),
		},
		ProgramID,
	)
}

// FindAuctioneerTradeStateAddress locates the seller trade state for a
// delegated listing. Delegated listings are recorded at the maximum price
// sentinel; the effective price lives with the auctioneer.
func FindAuctioneerTradeStateAddress(wallet, auctionHouse, tokenAccount, treasuryMint, tokenMint solana.Pubkey, tokenSize uint64) (solana.Pubkey, uint8, error) {
	return FindTradeStateAddress(wallet, auctionHouse, tokenAccount, treasuryMint, tokenMint, math.MaxUint64, tokenSize)
}

// FindPublicBidTradeStateAddress locates the trade state for a public bid,
// which is not tied to any specific token account.
func FindPublicBidTradeStateAddress(wallet, auctionHouse, treasuryMint, tokenMint solana.Pubkey, buyerPrice, tokenSize uint64) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(PrefixSeed),
			wallet.Bytes(),
			auctionHouse.Bytes(),
			treasuryMint.Bytes(),
			tokenMint.Bytes(),
			uint64LE(buyerPrice),
			uint64LE(tokenSize),
		},
		ProgramID,
	)
}
