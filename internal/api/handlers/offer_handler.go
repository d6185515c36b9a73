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

type OfferHandler struct {
	offerService *services.OfferService
	log          logger.Logger
}

func NewOfferHandler(offerService *services.OfferService, log logger.Logger) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		log:          log,
	}
}

type CreateOfferRequest struct {
	AuctionHouse      solana.Pubkey `json:"auction_house"`
	Collection        solana.Pubkey `json:"collection"`
	Metadata          solana.Pubkey `json:"metadata"`
	TokenMint         solana.Pubkey `json:"token_mint"`
	TokenAccount      solana.Pubkey `json:"token_account"`
	PaymentAccount    solana.Pubkey `json:"payment_account"`
	TransferAuthority solana.Pubkey `json:"transfer_authority"`
	BuyerPrice        uint64        `json:"buyer_price"`
	TokenSize         uint64        `json:"token_size"`

	TradeStateBump    uint8 `json:"trade_state_bump"`
	EscrowPaymentBump uint8 `json:"escrow_payment_bump"`
}

type OfferResponse struct {
	Address    solana.Pubkey `json:"address"`
	TradeState solana.Pubkey `json:"trade_state"`
	Buyer      solana.Pubkey `json:"buyer"`
	BuyerPrice uint64        `json:"buyer_price"`
	TokenSize  uint64        `json:"token_size"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.BuyerPrice == 0 || req.TokenSize == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "buyer_price and token_size must be positive"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	offer, err := h.offerService.CreateOffer(c.Request().Context(), services.CreateOfferRequest{
		Wallet:            wallet,
		AuctionHouse:      req.AuctionHouse,
		Collection:        req.Collection,
		Metadata:          req.Metadata,
		TokenMint:         req.TokenMint,
		TokenAccount:      req.TokenAccount,
		PaymentAccount:    req.PaymentAccount,
		TransferAuthority: req.TransferAuthority,
		BuyerPrice:        req.BuyerPrice,
		TokenSize:         req.TokenSize,
		TradeStateBump:    req.TradeStateBump,
		EscrowPaymentBump: req.EscrowPaymentBump,
	})
	if err != nil {
		h.log.Error("Failed to create offer", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, OfferResponse{
		Address:    offer.Address,
		TradeState: offer.TradeState,
		Buyer:      offer.Buyer,
		BuyerPrice: offer.BuyerPrice,
		TokenSize:  offer.TokenSize,
		CreatedAt:  offer.CreatedAt,
	})
}

type CloseOfferRequest struct {
	AuctionHouse      solana.Pubkey `json:"auction_house"`
	Collection        solana.Pubkey `json:"collection"`
	Metadata          solana.Pubkey `json:"metadata"`
	TokenMint         solana.Pubkey `json:"token_mint"`
	TokenAccount      solana.Pubkey `json:"token_account"`
	PaymentAccount    solana.Pubkey `json:"payment_account"`
	TransferAuthority solana.Pubkey `json:"transfer_authority"`
	ReceiptAccount    solana.Pubkey `json:"receipt_account"`
	BuyerPrice        uint64        `json:"buyer_price"`
	TokenSize         uint64        `json:"token_size"`
}

func (h *OfferHandler) CloseOffer(c echo.Context) error {
	var req CloseOfferRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	wallet, err := solana.PubkeyFromBase58(middleware.WalletFromContext(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid wallet"})
	}

	if err := h.offerService.CloseOffer(c.Request().Context(), services.CloseOfferRequest{
		Wallet:            wallet,
		AuctionHouse:      req.AuctionHouse,
		Collection:        req.Collection,
		Metadata:          req.Metadata,
		TokenMint:         req.TokenMint,
		TokenAccount:      req.TokenAccount,
		PaymentAccount:    req.PaymentAccount,
		TransferAuthority: req.TransferAuthority,
		ReceiptAccount:    req.ReceiptAccount,
		BuyerPrice:        req.BuyerPrice,
		TokenSize:         req.TokenSize,
	}); err != nil {
		h.log.Error("Failed to close offer", "error", err)
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
