package services

import (
	"context"
	"errors"
	"time"

	"reward-center/internal/auctionhouse"
	"reward-center/internal/domain"
	"reward-center/internal/rewards"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"
)

// ListingService drives the listing lifecycle: every address it is handed is
// re-derived and compared before the one delegated sell or cancel call goes
// out, and the local record is only ever written after that call succeeds.
type ListingService struct {
	centerRepo     domain.RewardCenterRepository
	collectionRepo domain.CollectionRepository
	listingRepo    domain.ListingRepository
	engine         domain.AuctionEngine
	statsCache     domain.CollectionStatsCache
	eventPub       domain.EventPublisher
	scheduler      domain.RewardScheduler
	log            logger.Logger
}

func NewListingService(
	centerRepo domain.RewardCenterRepository,
	collectionRepo domain.CollectionRepository,
	listingRepo domain.ListingRepository,
	engine domain.AuctionEngine,
	statsCache domain.CollectionStatsCache,
	eventPub domain.EventPublisher,
	scheduler domain.RewardScheduler,
	log logger.Logger,
) *ListingService {
	return &ListingService{
		centerRepo:     centerRepo,
		collectionRepo: collectionRepo,
		listingRepo:    listingRepo,
		engine:         engine,
		statsCache:     statsCache,
		eventPub:       eventPub,
		scheduler:      scheduler,
		log:            log,
	}
}

type CreateListingRequest struct {
	Wallet       solana.Pubkey
	AuctionHouse solana.Pubkey
	Collection   solana.Pubkey
	Metadata     solana.Pubkey
	TokenMint    solana.Pubkey
	TokenAccount solana.Pubkey
	Price        uint64
	TokenSize    uint64

	TradeStateBump      uint8
	FreeTradeStateBump  uint8
	ProgramAsSignerBump uint8
}

func (s *ListingService) CreateListing(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	center, house, err := s.resolveCenter(ctx, req.AuctionHouse)
	if err != nil {
		return nil, err
	}

	collection, err := s.resolveCollection(ctx, center.Address, req.Collection)
	if err != nil {
		return nil, err
	}

	// Re-derive every account the caller named. A bump that does not match
	// the canonical derivation rejects the whole operation before any
	// delegated call is attempted.
	sellerTradeState, tradeStateBump, err := auctionhouse.FindAuctioneerTradeStateAddress(
		req.Wallet, req.AuctionHouse, req.TokenAccount, house.TreasuryMint, req.TokenMint, req.TokenSize)
	if err != nil {
		return nil, err
	}
	if tradeStateBump != req.TradeStateBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	freeTradeState, freeBump, err := auctionhouse.FindTradeStateAddress(
		req.Wallet, req.AuctionHouse, req.TokenAccount, house.TreasuryMint, req.TokenMint, 0, req.TokenSize)
	if err != nil {
		return nil, err
	}
	if freeBump != req.FreeTradeStateBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	programAsSigner, signerBump, err := auctionhouse.FindProgramAsSignerAddress()
	if err != nil {
		return nil, err
	}
	if signerBump != req.ProgramAsSignerBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	feeAccount, _, err := auctionhouse.FindFeeAccountAddress(req.AuctionHouse)
	if err != nil {
		return nil, err
	}
	auctioneerScope, _, err := auctionhouse.FindAuctioneerAddress(req.AuctionHouse, center.Address)
	if err != nil {
		return nil, err
	}

	listingAddress, listingBump, err := rewards.FindListingAddress(req.Wallet, req.Metadata, collection.Address)
	if err != nil {
		return nil, err
	}
	if existing, err := s.listingRepo.Get(ctx, listingAddress); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEntity
	}

	now := time.Now().UTC()
	maturesAt, err := center.Rule.MaturesAt(now)
	if err != nil {
		return nil, err
	}

	err = s.engine.AuctioneerSell(ctx,
		auctionhouse.SellAccounts{
			Wallet:               req.Wallet,
			TokenAccount:         req.TokenAccount,
			Metadata:             req.Metadata,
			Authority:            house.Authority,
			AuctioneerAuthority:  center.Address,
			AuctionHouse:         req.AuctionHouse,
			FeeAccount:           feeAccount,
			SellerTradeState:     sellerTradeState,
			FreeSellerTradeState: freeTradeState,
			AuctioneerScope:      auctioneerScope,
			ProgramAsSigner:      programAsSigner,
		},
		auctionhouse.SellParams{
			Price:               req.Price,
			TokenSize:           req.TokenSize,
			TradeStateBump:      tradeStateBump,
			FreeTradeStateBump:  freeBump,
			ProgramAsSignerBump: signerBump,
		},
		rewards.CenterSigner(req.AuctionHouse, center.Bump),
	)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		Address:              listingAddress,
		RewardCenter:         center.Address,
		RewardableCollection: collection.Address,
		Seller:               req.Wallet,
		Metadata:             req.Metadata,
		TokenMint:            req.TokenMint,
		TokenAccount:         req.TokenAccount,
		TradeState:           sellerTradeState,
		Price:                req.Price,
		TokenSize:            req.TokenSize,
		Bump:                 listingBump,
		TradeStateBump:       tradeStateBump,
		FreeTradeStateBump:   freeBump,
		CreatedAt:            now,
		RewardMaturesAt:      maturesAt,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	if err := s.statsCache.AddActiveListings(ctx, collection.Address, 1); err != nil {
		s.log.Warn("Failed to bump listing count", "collection", collection.Address.String(), "error", err)
	}
	if err := s.scheduler.ScheduleRewardMaturity(ctx, listingAddress, maturesAt); err != nil {
		s.log.Warn("Failed to schedule reward maturity", "listing", listingAddress.String(), "error", err)
	}
	s.publish(ctx, &domain.MarketplaceEvent{
		Type:       domain.ListingCreated,
		Collection: collection.Address,
		Wallet:     req.Wallet,
		Address:    listingAddress,
		Price:      req.Price,
		TokenSize:  req.TokenSize,
		Timestamp:  now,
	})

	s.log.Info("Listing created", "address", listingAddress.String(), "seller", req.Wallet.String(), "price", req.Price)
	return listing, nil
}

type CancelListingRequest struct {
	Wallet       solana.Pubkey
	AuctionHouse solana.Pubkey
	Collection   solana.Pubkey
	Metadata     solana.Pubkey
	TokenMint    solana.Pubkey
	TokenAccount solana.Pubkey
}

func (s *ListingService) CancelListing(ctx context.Context, req CancelListingRequest) error {
	center, house, err := s.resolveCenter(ctx, req.AuctionHouse)
	if err != nil {
		return err
	}

	collection, err := s.resolveCollection(ctx, center.Address, req.Collection)
	if err != nil {
		return err
	}

	listingAddress, _, err := rewards.FindListingAddress(req.Wallet, req.Metadata, collection.Address)
	if err != nil {
		return err
	}
	listing, err := s.listingRepo.Get(ctx, listingAddress)
	if err != nil {
		return err
	}

	// Cancellation addresses the trade state at quantity one.
	tradeState, _, err := auctionhouse.FindAuctioneerTradeStateAddress(
		req.Wallet, req.AuctionHouse, req.TokenAccount, house.TreasuryMint, req.TokenMint, 1)
	if err != nil {
		return err
	}

	feeAccount, _, err := auctionhouse.FindFeeAccountAddress(req.AuctionHouse)
	if err != nil {
		return err
	}
	auctioneerScope, _, err := auctionhouse.FindAuctioneerAddress(req.AuctionHouse, center.Address)
	if err != nil {
		return err
	}

	err = s.engine.AuctioneerCancel(ctx,
		auctionhouse.CancelAccounts{
			Wallet:              req.Wallet,
			TokenAccount:        req.TokenAccount,
			TokenMint:           req.TokenMint,
			Authority:           house.Authority,
			AuctioneerAuthority: center.Address,
			AuctionHouse:        req.AuctionHouse,
			FeeAccount:          feeAccount,
			TradeState:          tradeState,
			AuctioneerScope:     auctioneerScope,
		},
		auctionhouse.CancelParams{
			Price:     listing.Price,
			TokenSize: listing.TokenSize,
		},
		rewards.CenterSigner(req.AuctionHouse, center.Bump),
	)
	if err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listingAddress); err != nil {
		return err
	}

	if err := s.statsCache.AddActiveListings(ctx, collection.Address, -1); err != nil {
		s.log.Warn("Failed to drop listing count", "collection", collection.Address.String(), "error", err)
	}
	if err := s.scheduler.CancelSchedule(ctx, listingAddress); err != nil {
		s.log.Warn("Failed to cancel maturity schedule", "listing", listingAddress.String(), "error", err)
	}
	s.publish(ctx, &domain.MarketplaceEvent{
		Type:       domain.ListingCancelled,
		Collection: collection.Address,
		Wallet:     req.Wallet,
		Address:    listingAddress,
		Price:      listing.Price,
		TokenSize:  listing.TokenSize,
		Timestamp:  time.Now().UTC(),
	})

	s.log.Info("Listing cancelled", "address", listingAddress.String(), "seller", req.Wallet.String())
	return nil
}

func (s *ListingService) resolveCenter(ctx context.Context, auctionHouse solana.Pubkey) (*domain.RewardCenter, *auctionhouse.AuctionHouse, error) {
	address, _, err := rewards.FindRewardCenterAddress(auctionHouse)
	if err != nil {
		return nil, nil, err
	}
	center, err := s.centerRepo.Get(ctx, address)
	if err != nil {
		return nil, nil, err
	}
	house, err := s.engine.GetAuctionHouse(ctx, auctionHouse)
	if err != nil {
		return nil, nil, err
	}
	return center, house, nil
}

func (s *ListingService) resolveCollection(ctx context.Context, center, collection solana.Pubkey) (*domain.RewardableCollection, error) {
	address, _, err := rewards.FindRewardableCollectionAddress(center, collection)
	if err != nil {
		return nil, err
	}
	return s.collectionRepo.Get(ctx, address)
}

func (s *ListingService) publish(ctx context.Context, event *domain.MarketplaceEvent) {
	if err := s.eventPub.PublishMarketplaceEvent(ctx, event); err != nil {
		s.log.Warn("Failed to publish event", "type", string(event.Type), "error", err)
	}
}
