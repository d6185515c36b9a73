// Package membership defines the derived identities of the membership-token
// registry: stores, selling resources, markets and their vault/treasury
// owners.
package membership

import (
	"reward-center/internal/solana"
)

// ProgramID identifies the membership-token registry on the ledger.
var ProgramID = solana.MustPubkey("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

const (
	HolderSeed     = "holder"
	HistorySeed    = "history"
	VaultOwnerSeed = "mt_vault"
)

// FindTreasuryOwnerAddress derives the treasury owner for a
// (treasury mint, selling resource) pair.
func FindTreasuryOwnerAddress(treasuryMint, sellingResource solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(HolderSeed), treasuryMint.Bytes(), sellingResource.Bytes()},
		ProgramID,
	)
}

// FindVaultOwnerAddress derives the vault owner for a (resource mint, store)
// pair.
func FindVaultOwnerAddress(resourceMint, store solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(VaultOwnerSeed), resourceMint.Bytes(), store.Bytes()},
		ProgramID,
	)
}

// FindTradeHistoryAddress derives the per-wallet purchase history record for
// a market.
func FindTradeHistoryAddress(wallet, market solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(HistorySeed), wallet.Bytes(), market.Bytes()},
		ProgramID,
	)
}
