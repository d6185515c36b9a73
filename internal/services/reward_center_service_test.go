package services

import (
	"context"
	"crypto/sha256"
	"testing"

	"reward-center/internal/auctionhouse"
	"reward-center/internal/domain"
	"reward-center/internal/rewards"
	"reward-center/internal/solana"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(tag string) solana.Pubkey {
	sum := sha256.Sum256([]byte(tag))
	pk, _ := solana.PubkeyFromBytes(sum[:])
	return pk
}

type fixture struct {
	centerRepo     *fakeCenterRepo
	collectionRepo *fakeCollectionRepo
	listingRepo    *fakeListingRepo
	offerRepo      *fakeOfferRepo
	engine         *fakeEngine
	statsCache     *fakeStatsCache
	publisher      *fakePublisher
	scheduler      *fakeRewardScheduler

	authority      solana.Pubkey
	treasuryMint   solana.Pubkey
	auctionHouse   solana.Pubkey
	collectionMint solana.Pubkey
	center         *domain.RewardCenter
	collection     *domain.RewardableCollection
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		centerRepo:     newFakeCenterRepo(),
		collectionRepo: newFakeCollectionRepo(),
		listingRepo:    newFakeListingRepo(),
		offerRepo:      newFakeOfferRepo(),
		engine:         newFakeEngine(),
		statsCache:     newFakeStatsCache(),
		publisher:      &fakePublisher{},
		scheduler:      newFakeRewardScheduler(),

		authority:      testKey("authority"),
		treasuryMint:   testKey("treasury-mint"),
		auctionHouse:   testKey("auction-house"),
		collectionMint: testKey("collection-mint"),
	}

	f.engine.houses[f.auctionHouse] = &auctionhouse.AuctionHouse{
		Authority:    f.authority,
		TreasuryMint: f.treasuryMint,
	}
	return f
}

// withCenter seeds an existing reward center and rewardable collection.
func (f *fixture) withCenter(t *testing.T) *fixture {
	t.Helper()

	centerAddr, centerBump, err := rewards.FindRewardCenterAddress(f.auctionHouse)
	require.NoError(t, err)
	f.center = &domain.RewardCenter{
		Address:      centerAddr,
		AuctionHouse: f.auctionHouse,
		TokenMint:    testKey("reward-mint"),
		Rule:         rewards.Rule{WarmupSeconds: 3600, RewardPayout: 10},
		Bump:         centerBump,
	}
	f.centerRepo.centers[centerAddr] = f.center

	collectionAddr, collectionBump, err := rewards.FindRewardableCollectionAddress(centerAddr, f.collectionMint)
	require.NoError(t, err)
	f.collection = &domain.RewardableCollection{
		Address:      collectionAddr,
		RewardCenter: centerAddr,
		Collection:   f.collectionMint,
		Bump:         collectionBump,
	}
	f.collectionRepo.collections[collectionAddr] = f.collection
	return f
}

func (f *fixture) centerService() *RewardCenterService {
	return NewRewardCenterService(f.centerRepo, f.collectionRepo, f.engine, nopLogger{})
}

func TestCreateRewardCenter(t *testing.T) {
	f := newFixture(t)
	svc := f.centerService()

	center, err := svc.CreateRewardCenter(context.Background(), CreateRewardCenterRequest{
		Wallet:       f.authority,
		AuctionHouse: f.auctionHouse,
		TokenMint:    testKey("reward-mint"),
		Rule:         rewards.Rule{WarmupSeconds: 60, RewardPayout: 5},
	})
	require.NoError(t, err)

	expectedAddr, expectedBump, err := rewards.FindRewardCenterAddress(f.auctionHouse)
	require.NoError(t, err)
	assert.Equal(t, expectedAddr, center.Address)
	assert.Equal(t, expectedBump, center.Bump)

	// Reward token custody was provisioned through the engine.
	assert.Contains(t, f.engine.calls, "create_token_account")

	stored, err := f.centerRepo.Get(context.Background(), expectedAddr)
	require.NoError(t, err)
	assert.Equal(t, center, stored)
}

func TestCreateRewardCenterDuplicate(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.centerService()

	_, err := svc.CreateRewardCenter(context.Background(), CreateRewardCenterRequest{
		Wallet:       f.authority,
		AuctionHouse: f.auctionHouse,
		TokenMint:    testKey("reward-mint"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
}

func TestCreateRewardCenterUnknownHouse(t *testing.T) {
	f := newFixture(t)
	svc := f.centerService()

	_, err := svc.CreateRewardCenter(context.Background(), CreateRewardCenterRequest{
		Wallet:       f.authority,
		AuctionHouse: testKey("no-such-house"),
		TokenMint:    testKey("reward-mint"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.engine.calls)
}

func TestEditRewardCenterAuthorityGate(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.centerService()

	newRule := rewards.Rule{WarmupSeconds: 7200, RewardPayout: 20}

	_, err := svc.EditRewardCenter(context.Background(), testKey("stranger"), f.auctionHouse, newRule)
	assert.ErrorIs(t, err, domain.ErrAuthorityMismatch)

	center, err := svc.EditRewardCenter(context.Background(), f.authority, f.auctionHouse, newRule)
	require.NoError(t, err)
	assert.Equal(t, newRule, center.Rule)
}

func TestCreateRewardableCollection(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.centerService()

	mint := testKey("second-collection")
	record, err := svc.CreateRewardableCollection(context.Background(), f.authority, f.auctionHouse, mint)
	require.NoError(t, err)

	expectedAddr, _, err := rewards.FindRewardableCollectionAddress(f.center.Address, mint)
	require.NoError(t, err)
	assert.Equal(t, expectedAddr, record.Address)

	// Same pair again collides on the derived address.
	_, err = svc.CreateRewardableCollection(context.Background(), f.authority, f.auctionHouse, mint)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)

	// Non-authority cannot register collections.
	_, err = svc.CreateRewardableCollection(context.Background(), testKey("stranger"), f.auctionHouse, testKey("third"))
	assert.ErrorIs(t, err, domain.ErrAuthorityMismatch)
}

func TestDeleteRewardableCollection(t *testing.T) {
	f := newFixture(t).withCenter(t)
	svc := f.centerService()

	err := svc.DeleteRewardableCollection(context.Background(), testKey("stranger"), f.auctionHouse, f.collectionMint)
	assert.ErrorIs(t, err, domain.ErrAuthorityMismatch)

	err = svc.DeleteRewardableCollection(context.Background(), f.authority, f.auctionHouse, f.collectionMint)
	require.NoError(t, err)

	_, err = f.collectionRepo.Get(context.Background(), f.collection.Address)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteRewardableCollection(context.Background(), f.authority, f.auctionHouse, f.collectionMint)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
