package services

import (
	"context"
	"errors"
	"time"

	"reward-center/internal/domain"
	"reward-center/internal/rewards"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"
)

// RewardCenterService owns the registry surface: reward centers and the
// rewardable collections underneath them. Registry operations never call the
// external engine, except for reward-token account provisioning on create.
type RewardCenterService struct {
	centerRepo     domain.RewardCenterRepository
	collectionRepo domain.CollectionRepository
	engine         domain.AuctionEngine
	log            logger.Logger
}

func NewRewardCenterService(
	centerRepo domain.RewardCenterRepository,
	collectionRepo domain.CollectionRepository,
	engine domain.AuctionEngine,
	log logger.Logger,
) *RewardCenterService {
	return &RewardCenterService{
		centerRepo:     centerRepo,
		collectionRepo: collectionRepo,
		engine:         engine,
		log:            log,
	}
}

type CreateRewardCenterRequest struct {
	Wallet           solana.Pubkey
	AuctionHouse     solana.Pubkey
	TokenMint        solana.Pubkey
	CollectionOracle *solana.Pubkey
	Rule             rewards.Rule
}

func (s *RewardCenterService) CreateRewardCenter(ctx context.Context, req CreateRewardCenterRequest) (*domain.RewardCenter, error) {
	address, bump, err := rewards.FindRewardCenterAddress(req.AuctionHouse)
	if err != nil {
		return nil, err
	}

	if existing, err := s.centerRepo.Get(ctx, address); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEntity
	}

	// The auction house must exist before a center can augment it.
	if _, err := s.engine.GetAuctionHouse(ctx, req.AuctionHouse); err != nil {
		return nil, err
	}

	// Provision reward token custody for the center itself.
	ata, _, err := solana.FindAssociatedTokenAddress(address, req.TokenMint)
	if err != nil {
		return nil, err
	}
	if err := s.engine.CreateTokenAccount(ctx, req.Wallet, address, req.TokenMint, ata); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	center := &domain.RewardCenter{
		Address:          address,
		AuctionHouse:     req.AuctionHouse,
		TokenMint:        req.TokenMint,
		CollectionOracle: req.CollectionOracle,
		Rule:             req.Rule,
		Bump:             bump,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.centerRepo.Create(ctx, center); err != nil {
		return nil, err
	}

	s.log.Info("Reward center created", "address", address.String(), "auction_house", req.AuctionHouse.String())
	return center, nil
}

func (s *RewardCenterService) EditRewardCenter(ctx context.Context, wallet, auctionHouse solana.Pubkey, rule rewards.Rule) (*domain.RewardCenter, error) {
	center, err := s.getCenter(ctx, auctionHouse)
	if err != nil {
		return nil, err
	}

	if err := s.requireAuthority(ctx, wallet, auctionHouse); err != nil {
		return nil, err
	}

	if err := s.centerRepo.UpdateRule(ctx, center.Address, rule); err != nil {
		return nil, err
	}
	center.Rule = rule
	center.UpdatedAt = time.Now().UTC()

	s.log.Info("Reward center rule updated", "address", center.Address.String())
	return center, nil
}

func (s *RewardCenterService) CreateRewardableCollection(ctx context.Context, wallet, auctionHouse, collection solana.Pubkey) (*domain.RewardableCollection, error) {
	center, err := s.getCenter(ctx, auctionHouse)
	if err != nil {
		return nil, err
	}

	if err := s.requireAuthority(ctx, wallet, auctionHouse); err != nil {
		return nil, err
	}

	address, bump, err := rewards.FindRewardableCollectionAddress(center.Address, collection)
	if err != nil {
		return nil, err
	}

	if existing, err := s.collectionRepo.Get(ctx, address); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEntity
	}

	record := &domain.RewardableCollection{
		Address:      address,
		RewardCenter: center.Address,
		Collection:   collection,
		Bump:         bump,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.collectionRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("Rewardable collection created", "address", address.String(), "collection", collection.String())
	return record, nil
}

func (s *RewardCenterService) DeleteRewardableCollection(ctx context.Context, wallet, auctionHouse, collection solana.Pubkey) error {
	center, err := s.getCenter(ctx, auctionHouse)
	if err != nil {
		return err
	}

	// Only the auction house authority may delete; there is no
	// owner-of-listing override.
	if err := s.requireAuthority(ctx, wallet, auctionHouse); err != nil {
		return err
	}

	address, _, err := rewards.FindRewardableCollectionAddress(center.Address, collection)
	if err != nil {
		return err
	}

	if _, err := s.collectionRepo.Get(ctx, address); err != nil {
		return err
	}

	if err := s.collectionRepo.Delete(ctx, address); err != nil {
		return err
	}

	s.log.Info("Rewardable collection deleted", "address", address.String())
	return nil
}

func (s *RewardCenterService) GetRewardCenter(ctx context.Context, auctionHouse solana.Pubkey) (*domain.RewardCenter, error) {
	return s.getCenter(ctx, auctionHouse)
}

func (s *RewardCenterService) getCenter(ctx context.Context, auctionHouse solana.Pubkey) (*domain.RewardCenter, error) {
	address, _, err := rewards.FindRewardCenterAddress(auctionHouse)
	if err != nil {
		return nil, err
	}
	return s.centerRepo.Get(ctx, address)
}

// requireAuthority checks the caller against the auction house's configured
// authority, read from the engine rather than from any locally stored value.
func (s *RewardCenterService) requireAuthority(ctx context.Context, wallet, auctionHouse solana.Pubkey) error {
	house, err := s.engine.GetAuctionHouse(ctx, auctionHouse)
	if err != nil {
		return err
	}
	if house.Authority != wallet {
		return domain.ErrAuthorityMismatch
	}
	return nil
}
