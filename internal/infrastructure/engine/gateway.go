// Package engine is the HTTP client for the transaction gateway fronting the
// external auction program. It turns instruction values into gateway
// submissions and account fetches into decoded layouts.
package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"reward-center/internal/auctionhouse"
	"reward-center/internal/domain"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"
)

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

func NewGateway(baseURL string, timeout time.Duration, log logger.Logger) *Gateway {
	return &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type accountResponse struct {
	Exists bool   `json:"exists"`
	Data   string `json:"data"`
}

type submitRequest struct {
	ProgramID   string           `json:"program_id"`
	Accounts    []accountMetaDTO `json:"accounts"`
	Data        string           `json:"data"`
	SignerSeeds []string         `json:"signer_seeds,omitempty"`
}

type accountMetaDTO struct {
	Pubkey     string `json:"pubkey"`
	IsWritable bool   `json:"is_writable"`
	IsSigner   bool   `json:"is_signer"`
}

type submitResponse struct {
	Signature string `json:"signature"`
	Error     string `json:"error,omitempty"`
}

func (g *Gateway) GetAuctionHouse(ctx context.Context, address solana.Pubkey) (*auctionhouse.AuctionHouse, error) {
	account, err := g.fetchAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if !account.Exists {
		return nil, domain.ErrNotFound
	}

	raw, err := base64.StdEncoding.DecodeString(account.Data)
	if err != nil {
		return nil, fmt.Errorf("decode account data: %w", err)
	}
	return auctionhouse.DecodeAuctionHouse(raw)
}

func (g *Gateway) AccountExists(ctx context.Context, address solana.Pubkey) (bool, error) {
	account, err := g.fetchAccount(ctx, address)
	if err != nil {
		return false, err
	}
	return account.Exists, nil
}

func (g *Gateway) AuctioneerSell(ctx context.Context, accounts auctionhouse.SellAccounts, params auctionhouse.SellParams, signer solana.SigningContext) error {
	ix := auctionhouse.NewAuctioneerSellInstruction(accounts, params)
	return g.submit(ctx, "auctioneer_sell", ix, signer.Seeds)
}

func (g *Gateway) AuctioneerCancel(ctx context.Context, accounts auctionhouse.CancelAccounts, params auctionhouse.CancelParams, signer solana.SigningContext) error {
	ix := auctionhouse.NewAuctioneerCancelInstruction(accounts, params)
	return g.submit(ctx, "auctioneer_cancel", ix, signer.Seeds)
}

func (g *Gateway) AuctioneerPublicBuy(ctx context.Context, accounts auctionhouse.PublicBuyAccounts, params auctionhouse.PublicBuyParams, signer solana.SigningContext) error {
	ix := auctionhouse.NewAuctioneerPublicBuyInstruction(accounts, params)
	return g.submit(ctx, "auctioneer_public_buy", ix, signer.Seeds)
}

func (g *Gateway) AuctioneerCloseEscrow(ctx context.Context, accounts auctionhouse.CloseEscrowAccounts, params auctionhouse.PublicBuyParams, signer solana.SigningContext) error {
	ix := auctionhouse.NewAuctioneerCloseEscrowInstruction(accounts, params)
	return g.submit(ctx, "auctioneer_close_escrow", ix, signer.Seeds)
}

func (g *Gateway) CreateTokenAccount(ctx context.Context, payer, owner, mint, ata solana.Pubkey) error {
	ix := solana.NewCreateAssociatedTokenAccountInstruction(payer, owner, mint, ata)
	return g.submit(ctx, "create_token_account", ix, nil)
}

func (g *Gateway) TransferTokens(ctx context.Context, source, destination, owner solana.Pubkey, amount uint64) error {
	ix := solana.NewTokenTransferInstruction(source, destination, owner, amount)
	return g.submit(ctx, "transfer_tokens", ix, nil)
}

func (g *Gateway) fetchAccount(ctx context.Context, address solana.Pubkey) (*accountResponse, error) {
	url := fmt.Sprintf("%s/v1/accounts/%s", g.baseURL, address.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &accountResponse{Exists: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("gateway account fetch: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (g *Gateway) submit(ctx context.Context, call string, ix solana.Instruction, signerSeeds [][]byte) error {
	payload := submitRequest{
		ProgramID: ix.ProgramID.String(),
		Data:      base64.StdEncoding.EncodeToString(ix.Data),
	}
	for _, meta := range ix.Accounts {
		payload.Accounts = append(payload.Accounts, accountMetaDTO{
			Pubkey:     meta.Pubkey.String(),
			IsWritable: meta.IsWritable,
			IsSigner:   meta.IsSigner,
		})
	}
	for _, seed := range signerSeeds {
		payload.SignerSeeds = append(payload.SignerSeeds, base64.StdEncoding.EncodeToString(seed))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := g.baseURL + "/v1/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &domain.DelegatedCallError{Call: call, Err: err}
	}
	defer resp.Body.Close()

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &domain.DelegatedCallError{Call: call, Err: err}
	}

	if resp.StatusCode != http.StatusOK || result.Error != "" {
		reason := result.Error
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &domain.DelegatedCallError{Call: call, Err: errors.New(reason)}
	}

	g.log.Debug("Delegated call accepted", "call", call, "signature", result.Signature)
	return nil
}
