package auctionhouse

import (
	"reward-center/internal/solana"
)

// SellAccounts is the account set for a delegated sell. The auctioneer
// authority signs through a derived-identity signing context, never a key.
type SellAccounts struct {
	Wallet               solana.Pubkey
	TokenAccount         solana.Pubkey
	Metadata             solana.Pubkey
	Authority            solana.Pubkey
	AuctioneerAuthority  solana.Pubkey
	AuctionHouse         solana.Pubkey
	FeeAccount           solana.Pubkey
	SellerTradeState     solana.Pubkey
	FreeSellerTradeState solana.Pubkey
	AuctioneerScope      solana.Pubkey
	ProgramAsSigner      solana.Pubkey
}

type SellParams struct {
	Price               uint64
	TokenSize           uint64
	TradeStateBump      uint8
	FreeTradeStateBump  uint8
	ProgramAsSignerBump uint8
}

// NewAuctioneerSellInstruction builds the delegated sell call. Account order
// and data layout are fixed by the engine.
func NewAuctioneerSellInstruction(accounts SellAccounts, params SellParams) solana.Instruction {
	data := methodDiscriminator("auctioneer_sell")
	data = append(data, uint64LE(params.Price)...)
	data = append(data, uint64LE(params.TokenSize)...)
	data = append(data, params.TradeStateBump, params.FreeTradeStateBump, params.ProgramAsSignerBump)

	return solana.Instruction{
		ProgramID: ProgramID,
		Accounts: []solana.AccountMeta{
			solana.Meta(accounts.Wallet).Writable().Signer(),
			solana.Meta(accounts.TokenAccount).Writable(),
			solana.Meta(accounts.Metadata),
			solana.Meta(accounts.Authority),
			solana.Meta(accounts.AuctioneerAuthority).Signer(),
			solana.Meta(accounts.AuctionHouse),
			solana.Meta(accounts.FeeAccount).Writable(),
			solana.Meta(accounts.SellerTradeState).Writable(),
			solana.Meta(accounts.FreeSellerTradeState).Writable(),
			solana.Meta(accounts.AuctioneerScope),
			solana.Meta(accounts.ProgramAsSigner),
			solana.Meta(solana.TokenProgramID),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(solana.SysvarRentID),
		},
		Data: data,
	}
}

// CancelAccounts is the account set for a delegated order cancellation.
type CancelAccounts struct {
	Wallet              solana.Pubkey
	TokenAccount        solana.Pubkey
	TokenMint           solana.Pubkey
	Authority           solana.Pubkey
	AuctioneerAuthority solana.Pubkey
	AuctionHouse        solana.Pubkey
	FeeAccount          solana.Pubkey
	TradeState          solana.Pubkey
	AuctioneerScope     solana.Pubkey
}

type CancelParams struct {
	Price     uint64
	TokenSize uint64
}

func NewAuctioneerCancelInstruction(accounts CancelAccounts, params CancelParams) solana.Instruction {
	data := methodDiscriminator("auctioneer_cancel")
	data = append(data, uint64LE(params.Price)...)
	data = append(data, uint64LE(params.TokenSize)...)

	return solana.Instruction{
		ProgramID: ProgramID,
		Accounts: []solana.AccountMeta{
			solana.Meta(accounts.Wallet).Writable(),
			solana.Meta(accounts.TokenAccount).Writable(),
			solana.Meta(accounts.TokenMint),
			solana.Meta(accounts.Authority),
			solana.Meta(accounts.AuctioneerAuthority).Signer(),
			solana.Meta(accounts.AuctionHouse),
			solana.Meta(accounts.FeeAccount).Writable(),
			solana.Meta(accounts.TradeState).Writable(),
			solana.Meta(accounts.AuctioneerScope),
			solana.Meta(solana.TokenProgramID),
		},
		Data: data,
	}
}

// PublicBuyAccounts is the account set for a delegated public bid.
type PublicBuyAccounts struct {
	Wallet               solana.Pubkey
	PaymentAccount       solana.Pubkey
	TransferAuthority    solana.Pubkey
	TreasuryMint         solana.Pubkey
	TokenAccount         solana.Pubkey
	Metadata             solana.Pubkey
	EscrowPaymentAccount solana.Pubkey
	Authority            solana.Pubkey
	AuctioneerAuthority  solana.Pubkey
	AuctionHouse         solana.Pubkey
	FeeAccount           solana.Pubkey
	BuyerTradeState      solana.Pubkey
	AuctioneerScope      solana.Pubkey
}

type PublicBuyParams struct {
	TradeStateBump    uint8
	EscrowPaymentBump uint8
	BuyerPrice        uint64
	TokenSize         uint64
}

func NewAuctioneerPublicBuyInstruction(accounts PublicBuyAccounts, params PublicBuyParams) solana.Instruction {
	data := methodDiscriminator("auctioneer_public_buy")
	data = append(data, params.TradeStateBump, params.EscrowPaymentBump)
	data = append(data, uint64LE(params.BuyerPrice)...)
	data = append(data, uint64LE(params.TokenSize)...)

	return solana.Instruction{
		ProgramID: ProgramID,
		Accounts: []solana.AccountMeta{
			solana.Meta(accounts.Wallet).Writable().Signer(),
			solana.Meta(accounts.PaymentAccount).Writable(),
			solana.Meta(accounts.TransferAuthority),
			solana.Meta(accounts.TreasuryMint),
			solana.Meta(accounts.TokenAccount),
			solana.Meta(accounts.Metadata),
			solana.Meta(accounts.EscrowPaymentAccount).Writable(),
			solana.Meta(accounts.Authority),
			solana.Meta(accounts.AuctioneerAuthority).Signer(),
			solana.Meta(accounts.AuctionHouse),
			solana.Meta(accounts.FeeAccount).Writable(),
			solana.Meta(accounts.BuyerTradeState).Writable(),
			solana.Meta(accounts.AuctioneerScope),
			solana.Meta(solana.TokenProgramID),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(solana.SysvarRentID),
		},
		Data: data,
	}
}

// CloseEscrowAccounts is the public-buy account set plus the receipt account
// and its associated token account, which receive any unspent escrow on
// close.
type CloseEscrowAccounts struct {
	PublicBuyAccounts
	ReceiptAccount      solana.Pubkey
	ReceiptTokenAccount solana.Pubkey
}

func NewAuctioneerCloseEscrowInstruction(accounts CloseEscrowAccounts, params PublicBuyParams) solana.Instruction {
	data := methodDiscriminator("auctioneer_close_escrow")
	data = append(data, params.TradeStateBump, params.EscrowPaymentBump)
	data = append(data, uint64LE(params.BuyerPrice)...)
	data = append(data, uint64LE(params.TokenSize)...)

	return solana.Instruction{
		ProgramID: ProgramID,
		Accounts: []solana.AccountMeta{
			solana.Meta(accounts.Wallet).Writable(),
			solana.Meta(accounts.PaymentAccount).Writable(),
			solana.Meta(accounts.TransferAuthority),
			solana.Meta(accounts.TreasuryMint),
			solana.Meta(accounts.TokenAccount),
			solana.Meta(accounts.Metadata),
			solana.Meta(accounts.EscrowPaymentAccount).Writable(),
			solana.Meta(accounts.ReceiptAccount).Writable(),
			solana.Meta(accounts.ReceiptTokenAccount).Writable(),
			solana.Meta(accounts.Authority),
			solana.Meta(accounts.AuctioneerAuthority).Signer(),
			solana.Meta(accounts.AuctionHouse),
			solana.Meta(accounts.FeeAccount).Writable(),
			solana.Meta(accounts.BuyerTradeState).Writable(),
			solana.Meta(accounts.AuctioneerScope),
			solana.Meta(solana.AssociatedTokenProgramID),
			solana.Meta(solana.TokenProgramID),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(solana.SysvarRentID),
		},
		Data: data,
	}
}
