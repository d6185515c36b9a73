package domain

import (
	"context"
	"time"

	"reward-center/internal/auctionhouse"
	"reward-center/internal/rewards"
	"reward-center/internal/solana"
)

// Repository interfaces
type RewardCenterRepository interface {
	Create(ctx context.Context, center *RewardCenter) error
	Get(ctx context.Context, address solana.Pubkey) (*RewardCenter, error)
	UpdateRule(ctx context.Context, address solana.Pubkey, rule rewards.Rule) error
}

type CollectionRepository interface {
	Create(ctx context.Context, collection *RewardableCollection) error
	Get(ctx context.Context, address solana.Pubkey) (*RewardableCollection, error)
	Delete(ctx context.Context, address solana.Pubkey) error
}

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Get(ctx context.Context, address solana.Pubkey) (*Listing, error)
	Delete(ctx context.Context, address solana.Pubkey) error
	ListActive(ctx context.Context) ([]*Listing, error)
}

// OfferRepository keys offers by their buyer trade state rather than the
// offer record address: the trade state folds price and size into the
// derivation, so multiple offers from one wallet on one asset stay distinct
// and independently closable.
type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByTradeState(ctx context.Context, tradeState solana.Pubkey) (*Offer, error)
	Delete(ctx context.Context, tradeState solana.Pubkey) error
	ListOpen(ctx context.Context) ([]*Offer, error)
}

type MembershipRepository interface {
	CreateStore(ctx context.Context, store *Store) error
	GetStore(ctx context.Context, address solana.Pubkey) (*Store, error)
	CreateSellingResource(ctx context.Context, resource *SellingResource) error
	GetSellingResource(ctx context.Context, address solana.Pubkey) (*SellingResource, error)
	UpdateSellingResource(ctx context.Context, address solana.Pubkey, supply uint64, state SellingResourceState) error
	CreateMarket(ctx context.Context, market *Market) error
	GetMarket(ctx context.Context, address solana.Pubkey) (*Market, error)
}

type SchedulerRepository interface {
	CreateJob(ctx context.Context, job *ScheduledJob) error
	GetPendingJobs(ctx context.Context, before time.Time) ([]*ScheduledJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus) error
	CancelJobsForSubject(ctx context.Context, subject string) error
}

// Cache interfaces
type CollectionStatsCache interface {
	AddActiveListings(ctx context.Context, collection solana.Pubkey, delta int64) error
	AddOpenOffers(ctx context.Context, collection solana.Pubkey, delta int64) error
	GetStats(ctx context.Context, collection solana.Pubkey) (*CollectionStats, error)
}

// Event interfaces
type EventPublisher interface {
	PublishMarketplaceEvent(ctx context.Context, event *MarketplaceEvent) error
}

type EventHandler func(event *MarketplaceEvent) error

type EventSubscriber interface {
	SubscribeToMarketplaceEvents(ctx context.Context, handler EventHandler) error
}

// AuctionEngine is the delegated call surface of the external auction house
// program. Every mutating method issues exactly one instruction signed by the
// provided derived-identity signing context; the engine's rejection reasons
// are propagated verbatim.
type AuctionEngine interface {
	GetAuctionHouse(ctx context.Context, address solana.Pubkey) (*auctionhouse.AuctionHouse, error)
	AccountExists(ctx context.Context, address solana.Pubkey) (bool, error)

	AuctioneerSell(ctx context.Context, accounts auctionhouse.SellAccounts, params auctionhouse.SellParams, signer solana.SigningContext) error
	AuctioneerCancel(ctx context.Context, accounts auctionhouse.CancelAccounts, params auctionhouse.CancelParams, signer solana.SigningContext) error
	AuctioneerPublicBuy(ctx context.Context, accounts auctionhouse.PublicBuyAccounts, params auctionhouse.PublicBuyParams, signer solana.SigningContext) error
	AuctioneerCloseEscrow(ctx context.Context, accounts auctionhouse.CloseEscrowAccounts, params auctionhouse.PublicBuyParams, signer solana.SigningContext) error

	CreateTokenAccount(ctx context.Context, payer, owner, mint, ata solana.Pubkey) error
	TransferTokens(ctx context.Context, source, destination, owner solana.Pubkey, amount uint64) error
}

// Notification interfaces
type CollectionBroadcaster interface {
	BroadcastToCollection(ctx context.Context, collection string, message interface{}) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	Wallet() string
	Collection() string
}

type ConnectionManager interface {
	RegisterConnection(wallet, collection string, conn WebSocketConnection) error
	UnregisterConnection(wallet, collection string) error
	BroadcastToCollection(collection string, message interface{}) error
	NotifyWallet(wallet string, message interface{}) error
}

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}

// Scheduler interface
type RewardScheduler interface {
	ScheduleRewardMaturity(ctx context.Context, listing solana.Pubkey, at time.Time) error
	CancelSchedule(ctx context.Context, listing solana.Pubkey) error
	Start(ctx context.Context) error
	Stop() error
}
