// Package rewards defines the reward layer's own derived identities: the
// reward center, its rewardable collections, and the listing/offer records
// keyed under them.
package rewards

import (
	"reward-center/internal/solana"
)

// ProgramID identifies the rewards layer itself on the ledger. Process-wide
// configuration, fixed at startup.
var ProgramID = solana.MustPubkey("A4XAoyv3qtQdi5cHeEDaPnpdXjDZ5BZAgP5hVGgsFJSt")

// Seed tags, one per entity role.
const (
	RewardCenterSeed         = "reward_center"
	RewardableCollectionSeed = "rewardable_collection"
	ListingSeed              = "listing"
	OfferSeed                = "offer"
)

// FindRewardCenterAddress derives the single reward center for an auction
// house. The auction house address is the sole seed, which is what enforces
// one center per engine instance.
func FindRewardCenterAddress(auctionHouse solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(RewardCenterSeed), auctionHouse.Bytes()},
		ProgramID,
	)
}

// FindRewardableCollectionAddress derives the membership record marking a
// collection rewardable within one center.
func FindRewardableCollectionAddress(rewardCenter, collection solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(RewardableCollectionSeed), rewardCenter.Bytes(), collection.Bytes()},
		ProgramID,
	)
}

// FindListingAddress derives the listing record binding seller, asset and
// collection.
func FindListingAddress(wallet, metadata, rewardableCollection solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(ListingSeed), wallet.Bytes(), metadata.Bytes(), rewardableCollection.Bytes()},
		ProgramID,
	)
}

// FindOfferAddress derives the offer record binding buyer, asset and
// collection.
func FindOfferAddress(wallet, metadata, rewardableCollection solana.Pubkey) (solana.Pubkey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{[]byte(OfferSeed), wallet.Bytes(), metadata.Bytes(), rewardableCollection.Bytes()},
		ProgramID,
	)
}
