package handlers

import (
	"net/http"
	"time"

	"reward-center/internal/api/middleware"
	"reward-center/internal/rewards"
	"reward-center/internal/services"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"

	"github.com/labstack/echo/v4"
)

type RewardCenterHandler struct {
	centerService *services.RewardCenterService
	log           logger.Logger
}

func NewRewardCenterHandler(centerService *services.RewardCenterService, log logger.Logger) *RewardCenterHandler {
	return &RewardCenterHandler{
		centerService: centerService,
		log:           log,
	}
}

type CreateRewardCenterRequest struct {
	AuctionHouse     solana.Pubkey  `json:"auction_house"`
	TokenMint        solana.Pubkey  `json:"token_mint"`
	CollectionOracle *solana.Pubkey `json:"collection_oracle,omitempty"`
	WarmupSeconds    int64          `json:"warmup_seconds"`
	RewardPayout     uint64         `json:"reward_payout"`
}

type RewardCenterResponse struct {
	Address          solana.Pubkey  `json:"address"`
	AuctionHouse     solana.Pubkey  `json:"auction_house"`
	TokenMint        solana.Pubkey  `json:"token_mint"`
	CollectionOracle *solana.Pubkey `json:"collection_oracle,omitempty"`
	WarmupSeconds    int64          `json:"warmup_seconds"`
	RewardPayout     uint64         `json:"reward_payout"`
	Bump             uint8          `json:"bump"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (h *RewardCenterHandler) CreateRewardCenter(c echo.Context) error {
	var req CreateRewardCenterRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	center, err := h.centerService.CreateRewardCenter(c.Request().Context(), services.CreateRewardCenterRequest{
		Wallet:           wallet,
		AuctionHouse:     req.AuctionHouse,
		TokenMint:        req.TokenMint,
		CollectionOracle: req.CollectionOracle,
		Rule: rewards.Rule{
			WarmupSeconds: req.WarmupSeconds,
			RewardPayout:  req.RewardPayout,
		},
	})
	if err != nil {
		h.log.Error("Failed to create reward center", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, RewardCenterResponse{
		Address:          center.Address,
		AuctionHouse:     center.AuctionHouse,
		TokenMint:        center.TokenMint,
		CollectionOracle: center.CollectionOracle,
		WarmupSeconds:    center.Rule.WarmupSeconds,
		RewardPayout:     center.Rule.RewardPayout,
		Bump:             center.Bump,
		CreatedAt:        center.CreatedAt,
		UpdatedAt:        center.UpdatedAt,
	})
}

type EditRewardCenterRequest struct {
	WarmupSeconds int64  `json:"warmup_seconds"`
	RewardPayout  uint64 `json:"reward_payout"`
}

func (h *RewardCenterHandler) EditRewardCenter(c echo.Context) error {
	auctionHouse, err := solana.PubkeyFromBase58(c.Param("auctionHouse"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid auction house address"})
	}

	var req EditRewardCenterRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	center, err := h.centerService.EditRewardCenter(c.Request().Context(), wallet, auctionHouse, rewards.Rule{
		WarmupSeconds: req.WarmupSeconds,
		RewardPayout:  req.RewardPayout,
	})
	if err != nil {
		h.log.Error("Failed to edit reward center", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, RewardCenterResponse{
		Address:          center.Address,
		AuctionHouse:     center.AuctionHouse,
		TokenMint:        center.TokenMint,
		CollectionOracle: center.CollectionOracle,
		WarmupSeconds:    center.Rule.WarmupSeconds,
		RewardPayout:     center.Rule.RewardPayout,
		Bump:             center.Bump,
		CreatedAt:        center.CreatedAt,
		UpdatedAt:        center.UpdatedAt,
	})
}

func (h *RewardCenterHandler) GetRewardCenter(c echo.Context) error {
	auctionHouse, err := solana.PubkeyFromBase58(c.Param("auctionHouse"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid auction house address"})
	}

	center, err := h.centerService.GetRewardCenter(c.Request().Context(), auctionHouse)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, RewardCenterResponse{
		Address:          center.Address,
		AuctionHouse:     center.AuctionHouse,
		TokenMint:        center.TokenMint,
		CollectionOracle: center.CollectionOracle,
		WarmupSeconds:    center.Rule.WarmupSeconds,
		RewardPayout:     center.Rule.RewardPayout,
		Bump:             center.Bump,
		CreatedAt:        center.CreatedAt,
		UpdatedAt:        center.UpdatedAt,
	})
}

type CreateCollectionRequest struct {
	Collection solana.Pubkey `json:"collection"`
}

func (h *RewardCenterHandler) CreateRewardableCollection(c echo.Context) error {
	auctionHouse, err := solana.PubkeyFromBase58(c.Param("auctionHouse"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid auction house address"})
	}

	var req CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	record, err := h.centerService.CreateRewardableCollection(c.Request().Context(), wallet, auctionHouse, req.Collection)
	if err != nil {
		h.log.Error("Failed to create rewardable collection", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"address":       record.Address,
		"reward_center": record.RewardCenter,
		"collection":    record.Collection,
		"bump":          record.Bump,
		"created_at":    record.CreatedAt,
	})
}

func (h *RewardCenterHandler) DeleteRewardableCollection(c echo.Context) error {
	auctionHouse, err := solana.PubkeyFromBase58(c.Param("auctionHouse"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid auction house address"})
	}
	collection, err := solana.PubkeyFromBase58(c.Param("collection"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid collection address"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	if err := h.centerService.DeleteRewardableCollection(c.Request().Context(), wallet, auctionHouse, collection); err != nil {
		h.log.Error("Failed to delete rewardable collection", "error", err)
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
