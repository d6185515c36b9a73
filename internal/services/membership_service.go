package services

import (
	"context"
	"errors"
	"time"

	"reward-center/internal/domain"
	"reward-center/internal/membership"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"
)

// MembershipService is the membership-token registry: stores, selling
// resources and markets. A simpler CRUD surface than the reward lifecycle,
// with the single delegated vault transfer on resource initialization.
type MembershipService struct {
	repo   domain.MembershipRepository
	engine domain.AuctionEngine
	log    logger.Logger
}

func NewMembershipService(repo domain.MembershipRepository, engine domain.AuctionEngine, log logger.Logger) *MembershipService {
	return &MembershipService{repo: repo, engine: engine, log: log}
}

func (s *MembershipService) CreateStore(ctx context.Context, address, admin solana.Pubkey, name, description string) (*domain.Store, error) {
	if len(name) > domain.MembershipStringLimit || len(description) > domain.MembershipStringLimit {
		return nil, domain.ErrStringTooLong
	}

	if existing, err := s.repo.GetStore(ctx, address); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEntity
	}

	store := &domain.Store{
		Address:     address,
		Admin:       admin,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}

	s.log.Info("Store created", "address", address.String(), "admin", admin.String())
	return store, nil
}

type InitSellingResourceRequest struct {
	Store          solana.Pubkey
	Admin          solana.Pubkey
	Address        solana.Pubkey
	Owner          solana.Pubkey
	ResourceMint   solana.Pubkey
	ResourceToken  solana.Pubkey
	Vault          solana.Pubkey
	VaultOwnerBump uint8

	// Edition bounds of the underlying resource.
	EditionSupply    uint64
	EditionMaxSupply *uint64

	MaxSupply *uint64
}

func (s *MembershipService) InitSellingResource(ctx context.Context, req InitSellingResourceRequest) (*domain.SellingResource, error) {
	store, err := s.repo.GetStore(ctx, req.Store)
	if err != nil {
		return nil, err
	}
	if store.Admin != req.Admin {
		return nil, domain.ErrAuthorityMismatch
	}

	vaultOwner, vaultOwnerBump, err := membership.FindVaultOwnerAddress(req.ResourceMint, req.Store)
	if err != nil {
		return nil, err
	}
	if vaultOwnerBump != req.VaultOwnerBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	maxSupply := req.MaxSupply
	if req.EditionMaxSupply != nil {
		if req.MaxSupply == nil {
			return nil, domain.ErrSupplyNotProvided
		}
		// Caller-supplied edition bounds; an oversupplied edition must not
		// wrap the subtraction into a huge available count.
		if req.EditionSupply > *req.EditionMaxSupply {
			return nil, domain.ErrSupplyExceedsAvailable
		}
		available := *req.EditionMaxSupply - req.EditionSupply
		if *req.MaxSupply > available {
			return nil, domain.ErrSupplyExceedsAvailable
		}
	}

	// Move the resource edition into the vault before the record exists.
	if err := s.engine.TransferTokens(ctx, req.ResourceToken, req.Vault, req.Admin, 1); err != nil {
		return nil, err
	}

	resource := &domain.SellingResource{
		Address:    req.Address,
		Store:      req.Store,
		Owner:      req.Owner,
		Resource:   req.ResourceMint,
		Vault:      req.Vault,
		VaultOwner: vaultOwner,
		Supply:     0,
		MaxSupply:  maxSupply,
		State:      domain.SellingResourceCreated,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateSellingResource(ctx, resource); err != nil {
		return nil, err
	}

	s.log.Info("Selling resource initialized", "address", req.Address.String(), "store", req.Store.String())
	return resource, nil
}

type CreateMarketRequest struct {
	Address           solana.Pubkey
	Owner             solana.Pubkey
	SellingResource   solana.Pubkey
	TreasuryMint      solana.Pubkey
	TreasuryHolder    solana.Pubkey
	TreasuryOwnerBump uint8
	Name              string
	Description       string
	Mutable           bool
	Price             uint64
	PiecesInOneWallet *uint64
	StartDate         time.Time
	EndDate           *time.Time
}

func (s *MembershipService) CreateMarket(ctx context.Context, req CreateMarketRequest) (*domain.Market, error) {
	if len(req.Name) > domain.MembershipStringLimit || len(req.Description) > domain.MembershipStringLimit {
		return nil, domain.ErrStringTooLong
	}

	resource, err := s.repo.GetSellingResource(ctx, req.SellingResource)
	if err != nil {
		return nil, err
	}
	if resource.Owner != req.Owner {
		return nil, domain.ErrAuthorityMismatch
	}

	treasuryOwner, treasuryOwnerBump, err := membership.FindTreasuryOwnerAddress(req.TreasuryMint, req.SellingResource)
	if err != nil {
		return nil, err
	}
	if treasuryOwnerBump != req.TreasuryOwnerBump {
		return nil, domain.ErrDerivedKeyInvalid
	}

	market := &domain.Market{
		Address:           req.Address,
		Store:             resource.Store,
		SellingResource:   req.SellingResource,
		TreasuryMint:      req.TreasuryMint,
		TreasuryHolder:    req.TreasuryHolder,
		TreasuryOwner:     treasuryOwner,
		Owner:             req.Owner,
		Name:              req.Name,
		Description:       req.Description,
		Mutable:           req.Mutable,
		Price:             req.Price,
		PiecesInOneWallet: req.PiecesInOneWallet,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		State:             domain.MarketCreated,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.CreateMarket(ctx, market); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSellingResource(ctx, resource.Address, resource.Supply, domain.SellingResourceInUse); err != nil {
		return nil, err
	}

	s.log.Info("Market created", "address", req.Address.String(), "selling_resource", req.SellingResource.String())
	return market, nil
}
