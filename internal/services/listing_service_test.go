package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"reward-center/internal/auctionhouse"
	"reward-center/internal/domain"
	"reward-center/internal/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) listingService() *ListingService {
	return NewListingService(f.centerRepo, f.collectionRepo, f.listingRepo,
		f.engine, f.statsCache, f.publisher, f.scheduler, nopLogger{})
}

func (f *fixture) listingRequest(t *testing.T) CreateListingRequest {
	t.Helper()

	wallet := testKey("seller")
	tokenMint := testKey("token-mint")
	tokenAccount := testKey("token-account")

	_, tradeStateBump, err := auctionhouse.FindAuctioneerTradeStateAddress(
		wallet, f.auctionHouse, tokenAccount, f.treasuryMint, tokenMint, 1)
	require.NoError(t, err)
	_, freeBump, err := auctionhouse.FindTradeStateAddress(
		wallet, f.auctionHouse, tokenAccount, f.treasuryMint, tokenMint, 0, 1)
	require.NoError(t, err)
	_, signerBump, err := auctionhouse.FindProgramAsSignerAddress()
	require.NoError(t, err)

	return CreateListingRequest{
		Wallet:              wallet,
		AuctionHouse:        f.auctionHouse,
		Collection:          f.collectionMint,
		Metadata:            testKey("metadata"),
		TokenMint:           tokenMint,
		TokenAccount:        tokenAccount,
		Price:               1_000_000,
		TokenSize:           1,
		TradeStateBump:      tradeStateBump,
		FreeTradeStateBump:  freeBump,
		ProgramAsSignerBump: signerBump,
	}
}

func TestCreateListing(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()
	req := f.listingRequest(t)

	listing, err := svc.CreateListing(context.Background(), req)
	require.NoError(t, err)

	expectedAddr, _, err := rewards.FindListingAddress(req.Wallet, req.Metadata, f.collection.Address)
	require.NoError(t, err)
	assert.Equal(t, expectedAddr, listing.Address)
	assert.Equal(t, req.Price, listing.Price)

	// The delegated call was signed by the center's derived identity.
	assert.Equal(t, []string{"auctioneer_sell"}, f.engine.calls)
	assert.Equal(t, rewards.CenterSigner(f.auctionHouse, f.center.Bump), f.engine.lastSigner)
	assert.Equal(t, req.Price, f.engine.sellParams.Price)

	// Local bookkeeping follows the successful call.
	assert.Equal(t, int64(1), f.statsCache.listings[f.collection.Address])
	assert.Equal(t, listing.RewardMaturesAt, f.scheduler.scheduled[listing.Address])
	assert.Equal(t, listing.CreatedAt.Truncate(time.Second).Add(time.Hour), listing.RewardMaturesAt)

	event := f.publisher.lastEvent()
	require.NotNil(t, event)
	assert.Equal(t, domain.ListingCreated, event.Type)
	assert.Equal(t, f.collection.Address, event.Collection)
}

func TestCreateListingRejectsWrongBump(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()

	req := f.listingRequest(t)
	req.TradeStateBump--

	_, err := svc.CreateListing(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDerivedKeyInvalid)

	// Rejected before any delegated call; nothing was recorded.
	assert.Empty(t, f.engine.calls)
	assert.Empty(t, f.listingRepo.listings)
	assert.Empty(t, f.scheduler.scheduled)
}

func TestCreateListingEngineRejectionLeavesNoRecord(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()
	f.engine.failWith = errors.New("insufficient funds")

	_, err := svc.CreateListing(context.Background(), f.listingRequest(t))

	var delegated *domain.DelegatedCallError
	require.ErrorAs(t, err, &delegated)
	assert.Equal(t, "auctioneer_sell", delegated.Call)

	assert.Empty(t, f.listingRepo.listings)
	assert.Zero(t, f.statsCache.listings[f.collection.Address])
	assert.Empty(t, f.scheduler.scheduled)
	assert.Empty(t, f.publisher.events)
}

func TestCreateListingDuplicate(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()
	req := f.listingRequest(t)

	_, err := svc.CreateListing(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateListing(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
	assert.Len(t, f.engine.calls, 1)
}

func TestCreateListingUnknownCollection(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()

	req := f.listingRequest(t)
	req.Collection = testKey("unregistered-collection")

	_, err := svc.CreateListing(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.engine.calls)
}

func TestCancelListing(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()
	req := f.listingRequest(t)

	listing, err := svc.CreateListing(context.Background(), req)
	require.NoError(t, err)

	err = svc.CancelListing(context.Background(), CancelListingRequest{
		Wallet:       req.Wallet,
		AuctionHouse: req.AuctionHouse,
		Collection:   req.Collection,
		Metadata:     req.Metadata,
		TokenMint:    req.TokenMint,
		TokenAccount: req.TokenAccount,
	})
	require.NoError(t, err)

	// Cancellation replays the stored terms to the engine.
	assert.Equal(t, []string{"auctioneer_sell", "auctioneer_cancel"}, f.engine.calls)
	assert.Equal(t, auctionhouse.CancelParams{Price: req.Price, TokenSize: req.TokenSize}, f.engine.cancelParams)

	assert.Empty(t, f.listingRepo.listings)
	assert.Zero(t, f.statsCache.listings[f.collection.Address])
	assert.Contains(t, f.scheduler.cancelled, listing.Address)

	event := f.publisher.lastEvent()
	require.NotNil(t, event)
	assert.Equal(t, domain.ListingCancelled, event.Type)
}

func TestCancelListingUnknown(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.listingService()
	req := f.listingRequest(t)

	err := svc.CancelListing(context.Background(), CancelListingRequest{
		Wallet:       req.Wallet,
		AuctionHouse: req.AuctionHouse,
		Collection:   req.Collection,
		Metadata:     req.Metadata,
		TokenMint:    req.TokenMint,
		TokenAccount: req.TokenAccount,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.engine.calls)
}
