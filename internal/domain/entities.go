package domain

import (
	"time"

	"reward-center/internal/rewards"
	"reward-center/internal/solana"
)

// RewardCenter augments exactly one auction house instance. Its address is
// derived from the auction house address alone, so at most one center can
// exist per engine instance.
type RewardCenter struct {
	Address          solana.Pubkey
	AuctionHouse     solana.Pubkey
	TokenMint        solana.Pubkey
	CollectionOracle *solana.Pubkey
	Rule             rewards.Rule
	Bump             uint8
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RewardableCollection marks one NFT collection as reward-eligible within a
// center. Uniqueness of the (center, collection) pair is carried by the
// derived address being the primary key.
type RewardableCollection struct {
	Address      solana.Pubkey
	RewardCenter solana.Pubkey
	Collection   solana.Pubkey
	Bump         uint8
	CreatedAt    time.Time
}

// Listing is the local record of an active sell order created through the
// reward center. The value-bearing trade state lives with the external
// engine; this record tracks existence plus the bumps needed to address it
// again.
type Listing struct {
	Address              solana.Pubkey
	RewardCenter         solana.Pubkey
	RewardableCollection solana.Pubkey
	Seller               solana.Pubkey
	Metadata             solana.Pubkey
	TokenMint            solana.Pubkey
	TokenAccount         solana.Pubkey
	TradeState           solana.Pubkey
	Price                uint64
	TokenSize            uint64
	Bump                 uint8
	TradeStateBump       uint8
	FreeTradeStateBump   uint8
	CreatedAt            time.Time
	RewardMaturesAt      time.Time
}

// Offer is the local record of a buyer's open public bid.
type Offer struct {
	Address              solana.Pubkey
	RewardCenter         solana.Pubkey
	RewardableCollection solana.Pubkey
	Buyer                solana.Pubkey
	Metadata             solana.Pubkey
	TokenMint            solana.Pubkey
	TokenAccount         solana.Pubkey
	TradeState           solana.Pubkey
	BuyerPrice           uint64
	TokenSize            uint64
	Bump                 uint8
	TradeStateBump       uint8
	EscrowPaymentBump    uint8
	CreatedAt            time.Time
}

// CollectionStats is the supply bookkeeping kept per rewardable collection.
type CollectionStats struct {
	ActiveListings int64
	OpenOffers     int64
}

type ScheduledJob struct {
	ID        string
	Subject   string
	JobType   JobType
	RunAt     time.Time
	Status    JobStatus
	CreatedAt time.Time
}

type JobType string

const (
	JobRewardMaturity JobType = "reward_maturity"
)

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobExecuted  JobStatus = "executed"
	JobCancelled JobStatus = "cancelled"
)

// Membership registry entities. A plain CRUD registry with no delegated
// engine coupling beyond the initial vault transfer.

const MembershipStringLimit = 20

type Store struct {
	Address     solana.Pubkey
	Admin       solana.Pubkey
	Name        string
	Description string
	CreatedAt   time.Time
}

type SellingResourceState int

const (
	SellingResourceUninitialized SellingResourceState = iota
	SellingResourceCreated
	SellingResourceInUse
	SellingResourceExhausted
	SellingResourceStopped
)

func (s SellingResourceState) String() string {
	switch s {
	case SellingResourceCreated:
		return "created"
	case SellingResourceInUse:
		return "in_use"
	case SellingResourceExhausted:
		return "exhausted"
	case SellingResourceStopped:
		return "stopped"
	default:
		return "uninitialized"
	}
}

type SellingResource struct {
	Address    solana.Pubkey
	Store      solana.Pubkey
	Owner      solana.Pubkey
	Resource   solana.Pubkey
	Vault      solana.Pubkey
	VaultOwner solana.Pubkey
	Supply     uint64
	MaxSupply  *uint64
	State      SellingResourceState
	CreatedAt  time.Time
}

type MarketState int

const (
	MarketUninitialized MarketState = iota
	MarketCreated
	MarketActive
	MarketEnded
)

type Market struct {
	Address           solana.Pubkey
	Store             solana.Pubkey
	SellingResource   solana.Pubkey
	TreasuryMint      solana.Pubkey
	TreasuryHolder    solana.Pubkey
	TreasuryOwner     solana.Pubkey
	Owner             solana.Pubkey
	Name              string
	Description       string
	Mutable           bool
	Price             uint64
	PiecesInOneWallet *uint64
	StartDate         time.Time
	EndDate           *time.Time
	State             MarketState
	CreatedAt         time.Time
}
