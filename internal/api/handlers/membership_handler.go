package handlers

import (
	"net/http"
	"time"

	"reward-center/internal/api/middleware"
	"reward-center/internal/services"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"

	"github.com/labstack/echo/v4"
)

type MembershipHandler struct {
	membershipService *services.MembershipService
	log               logger.Logger
}

func NewMembershipHandler(membershipService *services.MembershipService, log logger.Logger) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		log:               log,
	}
}

type CreateStoreRequest struct {
	Address     solana.Pubkey `json:"address"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

func (h *MembershipHandler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	store, err := h.membershipService.CreateStore(c.Request().Context(), req.Address, wallet, req.Name, req.Description)
	if err != nil {
		h.log.Error("Failed to create store", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"address":     store.Address,
		"admin":       store.Admin,
		"name":        store.Name,
		"description": store.Description,
		"created_at":  store.CreatedAt,
	})
}

type InitSellingResourceRequest struct {
	Store          solana.Pubkey `json:"store"`
	Address        solana.Pubkey `json:"address"`
	Owner          solana.Pubkey `json:"owner"`
	ResourceMint   solana.Pubkey `json:"resource_mint"`
	ResourceToken  solana.Pubkey `json:"resource_token"`
	Vault          solana.Pubkey `json:"vault"`
	VaultOwnerBump uint8         `json:"vault_owner_bump"`

	EditionSupply    uint64  `json:"edition_supply"`
	EditionMaxSupply *uint64 `json:"edition_max_supply,omitempty"`
	MaxSupply        *uint64 `json:"max_supply,omitempty"`
}

func (h *MembershipHandler) InitSellingResource(c echo.Context) error {
	var req InitSellingResourceRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	resource, err := h.membershipService.InitSellingResource(c.Request().Context(), services.InitSellingResourceRequest{
		Store:            req.Store,
		Admin:            wallet,
		Address:          req.Address,
		Owner:            req.Owner,
		ResourceMint:     req.ResourceMint,
		ResourceToken:    req.ResourceToken,
		Vault:            req.Vault,
		VaultOwnerBump:   req.VaultOwnerBump,
		EditionSupply:    req.EditionSupply,
		EditionMaxSupply: req.EditionMaxSupply,
		MaxSupply:        req.MaxSupply,
	})
	if err != nil {
		h.log.Error("Failed to init selling resource", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"address":     resource.Address,
		"store":       resource.Store,
		"owner":       resource.Owner,
		"resource":    resource.Resource,
		"vault":       resource.Vault,
		"vault_owner": resource.VaultOwner,
		"supply":      resource.Supply,
		"max_supply":  resource.MaxSupply,
		"state":       resource.State.String(),
		"created_at":  resource.CreatedAt,
	})
}

type CreateMarketRequest struct {
	Address           solana.Pubkey `json:"address"`
	SellingResource   solana.Pubkey `json:"selling_resource"`
	TreasuryMint      solana.Pubkey `json:"treasury_mint"`
	TreasuryHolder    solana.Pubkey `json:"treasury_holder"`
	TreasuryOwnerBump uint8         `json:"treasury_owner_bump"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Mutable           bool          `json:"mutable"`
	Price             uint64        `json:"price"`
	PiecesInOneWallet *uint64       `json:"pieces_in_one_wallet,omitempty"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           *time.Time    `json:"end_date,omitempty"`
}

func (h *MembershipHandler) CreateMarket(c echo.Context) error {
	var req CreateMarketRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Price == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "price must be positive"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	market, err := h.membershipService.CreateMarket(c.Request().Context(), services.CreateMarketRequest{
		Address:           req.Address,
		Owner:             wallet,
		SellingResource:   req.SellingResource,
		TreasuryMint:      req.TreasuryMint,
		TreasuryHolder:    req.TreasuryHolder,
		TreasuryOwnerBump: req.TreasuryOwnerBump,
		Name:              req.Name,
		Description:       req.Description,
		Mutable:           req.Mutable,
		Price:             req.Price,
		PiecesInOneWallet: req.PiecesInOneWallet,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	})
	if err != nil {
		h.log.Error("Failed to create market", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"address":          market.Address,
		"store":            market.Store,
		"selling_resource": market.SellingResource,
		"treasury_owner":   market.TreasuryOwner,
		"name":             market.Name,
		"price":            market.Price,
		"start_date":       market.StartDate,
		"end_date":         market.EndDate,
		"created_at":       market.CreatedAt,
	})
}
