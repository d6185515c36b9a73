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

// OfferService drives the offer lifecycle. Offers are keyed locally by their
// buyer trade state, so bids at different prices on the same asset coexist
// and close independently; a price or size that differs from creation simply
// derives a trade state the engine has never seen.
type OfferService struct {
	centerRepo     domain.RewardCenterRepository
	collectionRepo domain.CollectionRepository
	offerRepo      domain.OfferRepository
	engine         domain.AuctionEngine
	statsCache     domain.CollectionStatsCache
	eventPub       domain.EventPublisher
	log            logger.Logger
}

func NewOfferService(
	centerRepo domain.RewardCenterRepository,
	collectionRepo domain.CollectionRepository,
	offerRepo domain.OfferRepository,
	engine domain.AuctionEngine,
	statsCache domain.CollectionStatsCache,
	eventPub domain.EventPublisher,
	log logger.Logger,
) *OfferService {
	return &OfferService{
		centerRepo:     centerRepo,
		collectionRepo: collectionRepo,
		offerRepo:      offerRepo,
		engine:         engine,
		statsCache:     statsCache,
		eventPub:       eventPub,
		log:            log,
	}
}

type CreateOfferRequest struct {
	Wallet            solana.Pubkey
	AuctionHouse      solana.Pubkey
	Collection        solana.Pubkey
	Metadata          solana.Pubkey
	TokenMint         solana.Pubkey
	TokenAccount      solana.Pubkey
	PaymentAccount    solana.Pubkey
	TransferAuthority solana.Pubkey
	BuyerPrice        uint64
	TokenSize         uint64

	TradeStateBump    uint8
	EscrowPaymentBump uint8
}

func (s *OfferService) CreateOffer(ctx context.Context, req CreateOfferRequest) (*domain.Offer, error) {
	center, house, err := s.resolveCenter(ctx, req.AuctionHouse)
	if err != nil {
		return nil, err
	}

	collection, err := s.resolveCollection(ctx, center.Address, req.Collection)
	if err != nil {
		return nil, err
	}

	escrowPayment, escrowBump, err := auctionhouse.FindEscrowPaymentAddress(req.AuctionHouse, req.Wallet)
	if err != nil {
		return nil, err
	}
	if escrowBump != req.EscrowPaymentBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	buyerTradeState, tradeStateBump, err := auctionhouse.FindPublicBidTradeStateAddress(
		req.Wallet, req.AuctionHouse, house.TreasuryMint, req.TokenMint, req.BuyerPrice, req.TokenSize)
	if err != nil {
		return nil, err
	}
	if tradeStateBump != req.TradeStateBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	offerAddress, offerBump, err := rewards.FindOfferAddress(req.Wallet, req.Metadata, collection.Address)
	if err != nil {
		return nil, err
	}

	if existing, err := s.offerRepo.GetByTradeState(ctx, buyerTradeState); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEntity
	}

	feeAccount, _, err := auctionhouse.FindFeeAccountAddress(req.AuctionHouse)
	if err != nil {
		return nil, err
	}
	auctioneerScope, _, err := auctionhouse.FindAuctioneerAddress(req.AuctionHouse, center.Address)
	if err != nil {
		return nil, err
	}

	err = s.engine.AuctioneerPublicBuy(ctx,
		s.publicBuyAccounts(req.Wallet, req.PaymentAccount, req.TransferAuthority, req.TokenAccount, req.Metadata,
			house, center.Address, req.AuctionHouse, feeAccount, escrowPayment, buyerTradeState, auctioneerScope),
		auctionhouse.PublicBuyParams{
			TradeStateBump:    tradeStateBump,
			EscrowPaymentBump: escrowBump,
			BuyerPrice:        req.BuyerPrice,
			TokenSize:         req.TokenSize,
		},
		rewards.CenterSigner(req.AuctionHouse, center.Bump),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	offer := &domain.Offer{
		Address:              offerAddress,
		RewardCenter:         center.Address,
		RewardableCollection: collection.Address,
		Buyer:                req.Wallet,
		Metadata:             req.Metadata,
		TokenMint:            req.TokenMint,
		TokenAccount:         req.TokenAccount,
		TradeState:           buyerTradeState,
		BuyerPrice:           req.BuyerPrice,
		TokenSize:            req.TokenSize,
		Bump:                 offerBump,
		TradeStateBump:       tradeStateBump,
		EscrowPaymentBump:    escrowBump,
		CreatedAt:            now,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	if err := s.statsCache.AddOpenOffers(ctx, collection.Address, 1); err != nil {
		s.log.Warn("Failed to bump offer count", "collection", collection.Address.String(), "error", err)
	}
	s.publish(ctx, &domain.MarketplaceEvent{
		Type:       domain.OfferCreated,
		Collection: collection.Address,
		Wallet:     req.Wallet,
		Address:    offerAddress,
		Price:      req.BuyerPrice,
		TokenSize:  req.TokenSize,
		Timestamp:  now,
	})

	s.log.Info("Offer created", "address", offerAddress.String(), "buyer", req.Wallet.String(), "price", req.BuyerPrice)
	return offer, nil
}

type CloseOfferRequest struct {
	Wallet            solana.Pubkey
	AuctionHouse      solana.Pubkey
	Collection        solana.Pubkey
	Metadata          solana.Pubkey
	TokenMint         solana.Pubkey
	TokenAccount      solana.Pubkey
	PaymentAccount    solana.Pubkey
	TransferAuthority solana.Pubkey
	ReceiptAccount    solana.Pubkey
	BuyerPrice        uint64
	TokenSize         uint64
}

func (s *OfferService) CloseOffer(ctx context.Context, req CloseOfferRequest) error {
	center, house, err := s.resolveCenter(ctx, req.AuctionHouse)
	if err != nil {
		return err
	}

	collection, err := s.resolveCollection(ctx, center.Address, req.Collection)
	if err != nil {
		return err
	}

	buyerTradeState, tradeStateBump, err := auctionhouse.FindPublicBidTradeStateAddress(
		req.Wallet, req.AuctionHouse, house.TreasuryMint, req.TokenMint, req.BuyerPrice, req.TokenSize)
	if err != nil {
		return err
	}

	offer, err := s.offerRepo.GetByTradeState(ctx, buyerTradeState)
	if err != nil {
		return err
	}

	escrowPayment, escrowBump, err := auctionhouse.FindEscrowPaymentAddress(req.AuctionHouse, req.Wallet)
	if err != nil {
		return err
	}

	// The receipt's associated token account takes any unspent escrow back.
	receiptTokenAccount, _, err := solana.FindAssociatedTokenAddress(req.ReceiptAccount, house.TreasuryMint)
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

	err = s.engine.AuctioneerCloseEscrow(ctx,
		auctionhouse.CloseEscrowAccounts{
			PublicBuyAccounts: s.publicBuyAccounts(req.Wallet, req.PaymentAccount, req.TransferAuthority, req.TokenAccount, req.Metadata,
				house, center.Address, req.AuctionHouse, feeAccount, escrowPayment, buyerTradeState, auctioneerScope),
			ReceiptAccount:      req.ReceiptAccount,
			ReceiptTokenAccount: receiptTokenAccount,
		},
		auctionhouse.PublicBuyParams{
			TradeStateBump:    tradeStateBump,
			EscrowPaymentBump: escrowBump,
			BuyerPrice:        req.BuyerPrice,
			TokenSize:         req.TokenSize,
		},
		rewards.CenterSigner(req.AuctionHouse, center.Bump),
	)
	if err != nil {
		return err
	}

	if err := s.offerRepo.Delete(ctx, buyerTradeState); err != nil {
		return err
	}

	if err := s.statsCache.AddOpenOffers(ctx, collection.Address, -1); err != nil {
		s.log.Warn("Failed to drop offer count", "collection", collection.Address.String(), "error", err)
	}
	s.publish(ctx, &domain.MarketplaceEvent{
		Type:       domain.OfferClosed,
		Collection: collection.Address,
		Wallet:     req.Wallet,
		Address:    offer.Address,
		Price:      req.BuyerPrice,
		TokenSize:  req.TokenSize,
		Timestamp:  time.Now().UTC(),
	})

	s.log.Info("Offer closed", "address", offer.Address.String(), "buyer", req.Wallet.String())
	return nil
}

func (s *OfferService) publicBuyAccounts(
	wallet, paymentAccount, transferAuthority, tokenAccount, metadata solana.Pubkey,
	house *auctionhouse.AuctionHouse,
	rewardCenter, auctionHouse, feeAccount, escrowPayment, buyerTradeState, auctioneerScope solana.Pubkey,
) auctionhouse.PublicBuyAccounts {
	return auctionhouse.PublicBuyAccounts{
		Wallet:               wallet,
		PaymentAccount:       paymentAccount,
		TransferAuthority:    transferAuthority,
		TreasuryMint:         house.TreasuryMint,
		TokenAccount:         tokenAccount,
		Metadata:             metadata,
		EscrowPaymentAccount: escrowPayment,
		Authority:            house.Authority,
		AuctioneerAuthority:  rewardCenter,
		AuctionHouse:         auctionHouse,
		FeeAccount:           feeAccount,
		BuyerTradeState:      buyerTradeState,
		AuctioneerScope:      auctioneerScope,
	}
}

func (s *OfferService) resolveCenter(ctx context.Context, auctionHouse solana.Pubkey) (*domain.RewardCenter, *auctionhouse.AuctionHouse, error) {
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

func (s *OfferService) resolveCollection(ctx context.Context, center, collection solana.Pubkey) (*domain.RewardableCollection, error) {
	address, _, err := rewards.FindRewardableCollectionAddress(center, collection)
	if err != nil {
		return nil, err
	}
	return s.collectionRepo.Get(ctx, address)
}

func (s *OfferService) publish(ctx context.Context, event *domain.MarketplaceEvent) {
	if err := s.eventPub.PublishMarketplaceEvent(ctx, event); err != nil {
		s.log.Warn("Failed to publish event", "type", string(event.Type), "error", err)
	}
}
