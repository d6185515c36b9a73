package rewards

import (
	"reward-center/internal/solana"
)

// CenterSigner builds the signing context under which the reward center acts
// as the delegated auctioneer authority. The context is the full seed tuple,
// bump included; it proves entitlement to sign as the derived identity and is
// scoped to the one auction house the center was created against.
func CenterSigner(auctionHouse solana.Pubkey, bump uint8) solana.SigningContext {
	return solana.SigningContext{
		Seeds: [][]byte{
			[]byte(RewardCenterSeed),
			auctionHouse.Bytes(),
			{bump},
		},
	}
}
