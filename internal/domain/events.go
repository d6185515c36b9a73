package domain

import (
	"time"

	"reward-center/internal/solana"
)

type MarketplaceEvent struct {
	Type       MarketplaceEventType `json:"type"`
	Collection solana.Pubkey        `json:"collection"`
	Wallet     solana.Pubkey        `json:"wallet"`
	Address    solana.Pubkey        `json:"address"`
	Price      uint64               `json:"price"`
	TokenSize  uint64               `json:"token_size"`
	Payout     uint64               `json:"payout,omitempty"`
	Timestamp  time.Time            `json:"timestamp"`
}

type MarketplaceEventType string

const (
	ListingCreated       MarketplaceEventType = "listing_created"
	ListingCancelled     MarketplaceEventType = "listing_cancelled"
	ListingRewardMatured MarketplaceEventType = "listing_reward_matured"
	ListingReconciled    MarketplaceEventType = "listing_reconciled"
	OfferCreated         MarketplaceEventType = "offer_created"
	OfferClosed          MarketplaceEventType = "offer_closed"
	OfferReconciled      MarketplaceEventType = "offer_reconciled"
)
