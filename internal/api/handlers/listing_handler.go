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

type ListingHandler struct {
	listingService *services.ListingService
	log            logger.Logger
}

func NewListingHandler(listingService *services.ListingService, log logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		log:            log,
	}
}

type CreateListingRequest struct {
	AuctionHouse solana.Pubkey `json:"auction_house"`
	Collection   solana.Pubkey `json:"collection"`
	Metadata     solana.Pubkey `json:"metadata"`
	TokenMint    solana.Pubkey `json:"token_mint"`
	TokenAccount solana.Pubkey `json:"token_account"`
	Price        uint64        `json:"price"`
	TokenSize    uint64        `json:"token_size"`

	TradeStateBump      uint8 `json:"trade_state_bump"`
	FreeTradeStateBump  uint8 `json:"free_trade_state_bump"`
	ProgramAsSignerBump uint8 `json:"program_as_signer_bump"`
}

type ListingResponse struct {
	Address         solana.Pubkey `json:"address"`
	TradeState      solana.Pubkey `json:"trade_state"`
	Seller          solana.Pubkey `json:"seller"`
	Price           uint64        `json:"price"`
	TokenSize       uint64        `json:"token_size"`
	CreatedAt       time.Time     `json:"created_at"`
	RewardMaturesAt time.Time     `json:"reward_matures_at"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Price == 0 || req.TokenSize == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "price and token_size must be positive"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	listing, err := h.listingService.CreateListing(c.Request().Context(), services.CreateListingRequest{
		Wallet:              wallet,
		AuctionHouse:        req.AuctionHouse,
		Collection:          req.Collection,
		Metadata:            req.Metadata,
		TokenMint:           req.TokenMint,
		TokenAccount:        req.TokenAccount,
		Price:               req.Price,
		TokenSize:           req.TokenSize,
		TradeStateBump:      req.TradeStateBump,
		FreeTradeStateBump:  req.FreeTradeStateBump,
		ProgramAsSignerBump: req.ProgramAsSignerBump,
	})
	if err != nil {
		h.log.Error("Failed to create listing", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, ListingResponse{
		Address:         listing.Address,
		TradeState:      listing.TradeState,
		Seller:          listing.Seller,
		Price:           listing.Price,
		TokenSize:       listing.TokenSize,
		CreatedAt:       listing.CreatedAt,
		RewardMaturesAt: listing.RewardMaturesAt,
	})
}

type CancelListingRequest struct {
	AuctionHouse solana.Pubkey `json:"auction_house"`
	Collection   solana.Pubkey `json:"collection"`
	Metadata     solana.Pubkey `json:"metadata"`
	TokenMint    solana.Pubkey `json:"token_mint"`
	TokenAccount solana.Pubkey `json:"token_account"`
}

func (h *ListingHandler) CancelListing(c echo.Context) error {
	var req CancelListingRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	if err := h.listingService.CancelListing(c.Request().Context(), services.CancelListingRequest{
		Wallet:       wallet,
		AuctionHouse: req.AuctionHouse,
		Collection:   req.Collection,
		Metadata:     req.Metadata,
		TokenMint:    req.TokenMint,
		TokenAccount: req.TokenAccount,
	}); err != nil {
		h.log.Error("Failed to cancel listing", "error", err)
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
