package services

import (
	"context"
	"testing"
	"time"

	"reward-center/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) reconciler(leader *fakeLeaderElection) *Reconciler {
	return NewReconciler(f.listingRepo, f.offerRepo, f.engine, f.statsCache, f.publisher,
		leader, "instance-1", time.Minute, nopLogger{})
}

func TestReconcilerPrunesDeadTradeStates(t *testing.T) {
	f := newFixture(t).withCenter(t)

	listing, err := f.listingService().CreateListing(context.Background(), f.listingRequest(t))
	require.NoError(t, err)
	offer, err := f.offerService().CreateOffer(context.Background(), f.offerRequest(t, 500))
	require.NoError(t, err)
	f.publisher.events = nil

	// The listing's trade state is live on the engine; the offer's is gone.
	f.engine.accounts[listing.TradeState] = true

	reconciler := f.reconciler(&fakeLeaderElection{leader: true})
	reconciler.Run(context.Background())

	_, err = f.listingRepo.Get(context.Background(), listing.Address)
	assert.NoError(t, err)
	_, err = f.offerRepo.GetByTradeState(context.Background(), offer.TradeState)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(1), f.statsCache.listings[f.collection.Address])
	assert.Zero(t, f.statsCache.offers[f.collection.Address])

	event := f.publisher.lastEvent()
	require.NotNil(t, event)
	assert.Equal(t, domain.OfferReconciled, event.Type)
	assert.Equal(t, offer.Address, event.Address)
}

func TestReconcilerOnlyRunsOnLeader(t *testing.T) {
	f := newFixture(t).withCenter(t)

	listing, err := f.listingService().CreateListing(context.Background(), f.listingRequest(t))
	require.NoError(t, err)
	// Trade state is dead, but this instance is not the leader.

	reconciler := f.reconciler(&fakeLeaderElection{leader: false})
	reconciler.Run(context.Background())

	_, err = f.listingRepo.Get(context.Background(), listing.Address)
	assert.NoError(t, err)
}
