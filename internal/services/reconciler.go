package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"reward-center/internal/domain"
	"reward-center/pkg/logger"
)

// Reconciler closes the gap between local records and the engine's accounts.
// A trade state consumed by a direct call into the engine, bypassing this
// service, leaves a stale local Listing or Offer behind; the reconciler
// periodically checks each record's trade state for liveness and prunes the
// dead ones. Only the leader instance reconciles.
type Reconciler struct {
	listingRepo    domain.ListingRepository
	offerRepo      domain.OfferRepository
	engine         domain.AuctionEngine
	statsCache     domain.CollectionStatsCache
	eventPub       domain.EventPublisher
	leaderElection domain.LeaderElection
	instanceID     string
	interval       time.Duration
	cron           *cron.Cron
	log            logger.Logger
}

func NewReconciler(
	listingRepo domain.ListingRepository,
	offerRepo domain.OfferRepository,
	engine domain.AuctionEngine,
	statsCache domain.CollectionStatsCache,
	eventPub domain.EventPublisher,
	leaderElection domain.LeaderElection,
	instanceID string,
	interval time.Duration,
	log logger.Logger,
) *Reconciler {
	return &Reconciler{
		listingRepo:    listingRepo,
		offerRepo:      offerRepo,
		engine:         engine,
		statsCache:     statsCache,
		eventPub:       eventPub,
		leaderElection: leaderElection,
		instanceID:     instanceID,
		interval:       interval,
		cron:           cron.New(),
		log:            log,
	}
}

func (r *Reconciler) Start(ctx context.Context) error {
	r.log.Info("Starting reconciler", "interval", r.interval.String())

	_, err := r.cron.AddFunc("@every "+r.interval.String(), func() {
		r.Run(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

func (r *Reconciler) Stop() error {
	r.log.Info("Stopping reconciler")
	r.cron.Stop()
	return nil
}

// Run performs one reconciliation pass.
func (r *Reconciler) Run(ctx context.Context) {
	isLeader, err := r.leaderElection.IsLeader(ctx, r.instanceID)
	if err != nil {
		r.log.Error("Leader check failed", "error", err)
		return
	}
	if !isLeader {
		return
	}

	r.reconcileListings(ctx)
	r.reconcileOffers(ctx)
}

func (r *Reconciler) reconcileListings(ctx context.Context) {
	listings, err := r.listingRepo.ListActive(ctx)
	if err != nil {
		r.log.Error("Failed to list active listings", "error", err)
		return
	}

	for _, listing := range listings {
		live, err := r.engine.AccountExists(ctx, listing.TradeState)
		if err != nil {
			r.log.Error("Trade state liveness check failed", "listing", listing.Address.String(), "error", err)
			continue
		}
		if live {
			continue
		}

		if err := r.listingRepo.Delete(ctx, listing.Address); err != nil {
			r.log.Error("Failed to prune stale listing", "listing", listing.Address.String(), "error", err)
			continue
		}
		if err := r.statsCache.AddActiveListings(ctx, listing.RewardableCollection, -1); err != nil {
			r.log.Warn("Failed to drop listing count", "error", err)
		}
		if err := r.eventPub.PublishMarketplaceEvent(ctx, &domain.MarketplaceEvent{
			Type:       domain.ListingReconciled,
			Collection: listing.RewardableCollection,
			Wallet:     listing.Seller,
			Address:    listing.Address,
			Price:      listing.Price,
			TokenSize:  listing.TokenSize,
			Timestamp:  time.Now().UTC(),
		}); err != nil {
			r.log.Warn("Failed to publish reconcile event", "error", err)
		}

		r.log.Info("Pruned stale listing", "listing", listing.Address.String())
	}
}

func (r *Reconciler) reconcileOffers(ctx context.Context) {
	offers, err := r.offerRepo.ListOpen(ctx)
	if err != nil {
		r.log.Error("Failed to list open offers", "error", err)
		return
	}

	for _, offer := range offers {
		live, err := r.engine.AccountExists(ctx, offer.TradeState)
		if err != nil {
			r.log.Error("Trade state liveness check failed", "offer", offer.Address.String(), "error", err)
			continue
		}
		if live {
			continue
		}

		if err := r.offerRepo.Delete(ctx, offer.TradeState); err != nil {
			r.log.Error("Failed to prune stale offer", "offer", offer.Address.String(), "error", err)
			continue
		}
		if err := r.statsCache.AddOpenOffers(ctx, offer.RewardableCollection, -1); err != nil {
			r.log.Warn("Failed to drop offer count", "error", err)
		}
		if err := r.eventPub.PublishMarketplaceEvent(ctx, &domain.MarketplaceEvent{
			Type:       domain.OfferReconciled,
			Collection: offer.RewardableCollection,
			Wallet:     offer.Buyer,
			Address:    offer.Address,
			Price:      offer.BuyerPrice,
			TokenSize:  offer.TokenSize,
			Timestamp:  time.Now().UTC(),
		}); err != nil {
			r.log.Warn("Failed to publish reconcile event", "error", err)
		}

		r.log.Info("Pruned stale offer", "offer", offer.Address.String())
	}
}
