package auctionhouse

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"reward-center/internal/solana"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuctioneerSellInstruction(t *testing.T) {
	accounts := SellAccounts{
		Wallet:               testWallet,
		TokenAccount:         testTokenAccount,
		Metadata:             testTokenMint,
		Authority:            testAuctionHouse,
		AuctioneerAuthority:  testTreasuryMint,
		AuctionHouse:         testAuctionHouse,
		FeeAccount:           testTokenAccount,
		SellerTradeState:     testTokenMint,
		FreeSellerTradeState: testTokenAccount,
		AuctioneerScope:      testWallet,
		ProgramAsSigner:      testTokenMint,
	}
	params := SellParams{
		Price:               1_000_000,
		TokenSize:           1,
		TradeStateBump:      254,
		FreeTradeStateBump:  253,
		ProgramAsSignerBump: 252,
	}

	ix := NewAuctioneerSellInstruction(accounts, params)

	assert.Equal(t, ProgramID, ix.ProgramID)
	require.Len(t, ix.Accounts, 14)

	// Wallet signs and is written; the auctioneer authority signs through the
	// derived identity.
	assert.True(t, ix.Accounts[0].IsSigner)
	assert.True(t, ix.Accounts[0].IsWritable)
	assert.Equal(t, accounts.AuctioneerAuthority, ix.Accounts[4].Pubkey)
	assert.True(t, ix.Accounts[4].IsSigner)
	assert.False(t, ix.Accounts[4].IsWritable)

	// Trailing program accounts.
	assert.Equal(t, solana.TokenProgramID, ix.Accounts[11].Pubkey)
	assert.Equal(t, solana.SystemProgramID, ix.Accounts[12].Pubkey)
	assert.Equal(t, solana.SysvarRentID, ix.Accounts[13].Pubkey)

	// Data: discriminator, price, size, three bumps.
	require.Len(t, ix.Data, 8+8+8+3)
	expected := sha256.Sum256([]byte("global:auctioneer_sell"))
	assert.Equal(t, expected[:8], ix.Data[:8])
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(ix.Data[8:16]))
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(ix.Data[16:24]))
	assert.Equal(t, []byte{254, 253, 252}, ix.Data[24:27])
}

func TestAuctioneerCancelInstruction(t *testing.T) {
	ix := NewAuctioneerCancelInstruction(CancelAccounts{
		Wallet:              testWallet,
		TokenAccount:        testTokenAccount,
		TokenMint:           testTokenMint,
		Authority:           testAuctionHouse,
		AuctioneerAuthority: testTreasuryMint,
		AuctionHouse:        testAuctionHouse,
		FeeAccount:          testTokenAccount,
		TradeState:          testTokenMint,
		AuctioneerScope:     testWallet,
	}, CancelParams{Price: 77, TokenSize: 2})

	require.Len(t, ix.Accounts, 10)
	assert.True(t, ix.Accounts[4].IsSigner)
	assert.Equal(t, solana.TokenProgramID, ix.Accounts[9].Pubkey)

	require.Len(t, ix.Data, 8+8+8)
	expected := sha256.Sum256([]byte("global:auctioneer_cancel"))
	assert.Equal(t, expected[:8], ix.Data[:8])
	assert.Equal(t, uint64(77), binary.LittleEndian.Uint64(ix.Data[8:16]))
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(ix.Data[16:24]))
}

func TestAuctioneerPublicBuyInstruction(t *testing.T) {
	ix := NewAuctioneerPublicBuyInstruction(publicBuyFixture(), PublicBuyParams{
		TradeStateBump:    251,
		EscrowPaymentBump: 250,
		BuyerPrice:        500,
		TokenSize:         1,
	})

	require.Len(t, ix.Accounts, 16)
	assert.True(t, ix.Accounts[0].IsSigner)
	assert.True(t, ix.Accounts[8].IsSigner)

	// Data: discriminator, two bumps, then price and size.
	require.Len(t, ix.Data, 8+2+8+8)
	expected := sha256.Sum256([]byte("global:auctioneer_public_buy"))
	assert.Equal(t, expected[:8], ix.Data[:8])
	assert.Equal(t, []byte{251, 250}, ix.Data[8:10])
	assert.Equal(t, uint64(500), binary.LittleEndian.Uint64(ix.Data[10:18]))
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(ix.Data[18:26]))
}

func TestAuctioneerCloseEscrowInstruction(t *testing.T) {
	ix := NewAuctioneerCloseEscrowInstruction(CloseEscrowAccounts{
		PublicBuyAccounts:   publicBuyFixture(),
		ReceiptAccount:      testWallet,
		ReceiptTokenAccount: testTokenAccount,
	}, PublicBuyParams{TradeStateBump: 249, EscrowPaymentBump: 248, BuyerPrice: 500, TokenSize: 1})

	require.Len(t, ix.Accounts, 19)
	assert.Equal(t, testWallet, ix.Accounts[7].Pubkey)
	assert.True(t, ix.Accounts[7].IsWritable)
	assert.Equal(t, testTokenAccount, ix.Accounts[8].Pubkey)
	assert.Equal(t, solana.AssociatedTokenProgramID, ix.Accounts[15].Pubkey)

	expected := sha256.Sum256([]byte("global:auctioneer_close_escrow"))
	assert.Equal(t, expected[:8], ix.Data[:8])
}

func publicBuyFixture() PublicBuyAccounts {
	return PublicBuyAccounts{
		Wallet:               testWallet,
		PaymentAccount:       testTokenAccount,
		TransferAuthority:    testWallet,
		TreasuryMint:         testTreasuryMint,
		TokenAccount:         testTokenAccount,
		Metadata:             testTokenMint,
		EscrowPaymentAccount: testTokenMint,
		Authority:            testAuctionHouse,
		AuctioneerAuthority:  testTreasuryMint,
		AuctionHouse:         testAuctionHouse,
		FeeAccount:           testTokenAccount,
		BuyerTradeState:      testTokenMint,
		AuctioneerScope:      testWallet,
	}
}
