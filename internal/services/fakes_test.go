package services

import (
	"context"
	"time"

	"reward-center/internal/auctionhouse"
	"reward-center/internal/domain"
	"reward-center/internal/rewards"
	"reward-center/internal/solana"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeCenterRepo struct {
	centers map[solana.Pubkey]*domain.RewardCenter
}

func newFakeCenterRepo() *fakeCenterRepo {
	return &fakeCenterRepo{centers: make(map[solana.Pubkey]*domain.RewardCenter)}
}

func (r *fakeCenterRepo) Create(_ context.Context, center *domain.RewardCenter) error {
	if _, ok := r.centers[center.Address]; ok {
		return domain.ErrDuplicateEntity
	}
	r.centers[center.Address] = center
	return nil
}

func (r *fakeCenterRepo) Get(_ context.Context, address solana.Pubkey) (*domain.RewardCenter, error) {
	center, ok := r.centers[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return center, nil
}

func (r *fakeCenterRepo) UpdateRule(_ context.Context, address solana.Pubkey, rule rewards.Rule) error {
	center, ok := r.centers[address]
	if !ok {
		return domain.ErrNotFound
	}
	center.Rule = rule
	return nil
}

type fakeCollectionRepo struct {
	collections map[solana.Pubkey]*domain.RewardableCollection
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{collections: make(map[solana.Pubkey]*domain.RewardableCollection)}
}

func (r *fakeCollectionRepo) Create(_ context.Context, collection *domain.RewardableCollection) error {
	if _, ok := r.collections[collection.Address]; ok {
		return domain.ErrDuplicateEntity
	}
	r.collections[collection.Address] = collection
	return nil
}

func (r *fakeCollectionRepo) Get(_ context.Context, address solana.Pubkey) (*domain.RewardableCollection, error) {
	collection, ok := r.collections[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return collection, nil
}

func (r *fakeCollectionRepo) Delete(_ context.Context, address solana.Pubkey) error {
	if _, ok := r.collections[address]; !ok {
		return domain.ErrNotFound
	}
	delete(r.collections, address)
	return nil
}

type fakeListingRepo struct {
	listings map[solana.Pubkey]*domain.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[solana.Pubkey]*domain.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	if _, ok := r.listings[listing.Address]; ok {
		return domain.ErrDuplicateEntity
	}
	r.listings[listing.Address] = listing
	return nil
}

func (r *fakeListingRepo) Get(_ context.Context, address solana.Pubkey) (*domain.Listing, error) {
	listing, ok := r.listings[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return listing, nil
}

func (r *fakeListingRepo) Delete(_ context.Context, address solana.Pubkey) error {
	if _, ok := r.listings[address]; !ok {
		return domain.ErrNotFound
	}
	delete(r.listings, address)
	return nil
}

func (r *fakeListingRepo) ListActive(_ context.Context) ([]*domain.Listing, error) {
	var listings []*domain.Listing
	for _, listing := range r.listings {
		listings = append(listings, listing)
	}
	return listings, nil
}

type fakeOfferRepo struct {
	offers map[solana.Pubkey]*domain.Offer // keyed by trade state
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[solana.Pubkey]*domain.Offer)}
}

func (r *fakeOfferRepo) Create(_ context.Context, offer *domain.Offer) error {
	if _, ok := r.offers[offer.TradeState]; ok {
		return domain.ErrDuplicateEntity
	}
	r.offers[offer.TradeState] = offer
	return nil
}

func (r *fakeOfferRepo) GetByTradeState(_ context.Context, tradeState solana.Pubkey) (*domain.Offer, error) {
	offer, ok := r.offers[tradeState]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return offer, nil
}

func (r *fakeOfferRepo) Delete(_ context.Context, tradeState solana.Pubkey) error {
	if _, ok := r.offers[tradeState]; !ok {
		return domain.ErrNotFound
	}
	delete(r.offers, tradeState)
	return nil
}

func (r *fakeOfferRepo) ListOpen(_ context.Context) ([]*domain.Offer, error) {
	var offers []*domain.Offer
	for _, offer := range r.offers {
		offers = append(offers, offer)
	}
	return offers, nil
}

// fakeEngine records every delegated call and can be primed to reject the
// next one.
type fakeEngine struct {
	houses   map[solana.Pubkey]*auctionhouse.AuctionHouse
	accounts map[solana.Pubkey]bool
	failWith error

	calls        []string
	lastSigner   solana.SigningContext
	sellParams   auctionhouse.SellParams
	cancelParams auctionhouse.CancelParams
	buyParams    auctionhouse.PublicBuyParams
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		houses:   make(map[solana.Pubkey]*auctionhouse.AuctionHouse),
		accounts: make(map[solana.Pubkey]bool),
	}
}

func (e *fakeEngine) GetAuctionHouse(_ context.Context, address solana.Pubkey) (*auctionhouse.AuctionHouse, error) {
	house, ok := e.houses[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return house, nil
}

func (e *fakeEngine) AccountExists(_ context.Context, address solana.Pubkey) (bool, error) {
	return e.accounts[address], nil
}

func (e *fakeEngine) call(name string, signer solana.SigningContext) error {
	if e.failWith != nil {
		err := e.failWith
		return &domain.DelegatedCallError{Call: name, Err: err}
	}
	e.calls = append(e.calls, name)
	e.lastSigner = signer
	return nil
}

func (e *fakeEngine) AuctioneerSell(_ context.Context, _ auctionhouse.SellAccounts, params auctionhouse.SellParams, signer solana.SigningContext) error {
	e.sellParams = params
	return e.call("auctioneer_sell", signer)
}

func (e *fakeEngine) AuctioneerCancel(_ context.Context, _ auctionhouse.CancelAccounts, params auctionhouse.CancelParams, signer solana.SigningContext) error {
	e.cancelParams = params
	return e.call("auctioneer_cancel", signer)
}

func (e *fakeEngine) AuctioneerPublicBuy(_ context.Context, _ auctionhouse.PublicBuyAccounts, params auctionhouse.PublicBuyParams, signer solana.SigningContext) error {
	e.buyParams = params
	return e.call("auctioneer_public_buy", signer)
}

func (e *fakeEngine) AuctioneerCloseEscrow(_ context.Context, _ auctionhouse.CloseEscrowAccounts, params auctionhouse.PublicBuyParams, signer solana.SigningContext) error {
	e.buyParams = params
	return e.call("auctioneer_close_escrow", signer)
}

func (e *fakeEngine) CreateTokenAccount(_ context.Context, _, _, _, _ solana.Pubkey) error {
	return e.call("create_token_account", solana.SigningContext{})
}

func (e *fakeEngine) TransferTokens(_ context.Context, _, _, _ solana.Pubkey, _ uint64) error {
	return e.call("transfer_tokens", solana.SigningContext{})
}

type fakeStatsCache struct {
	listings map[solana.Pubkey]int64
	offers   map[solana.Pubkey]int64
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{
		listings: make(map[solana.Pubkey]int64),
		offers:   make(map[solana.Pubkey]int64),
	}
}

func (c *fakeStatsCache) AddActiveListings(_ context.Context, collection solana.Pubkey, delta int64) error {
	c.listings[collection] += delta
	return nil
}

func (c *fakeStatsCache) AddOpenOffers(_ context.Context, collection solana.Pubkey, delta int64) error {
	c.offers[collection] += delta
	return nil
}

func (c *fakeStatsCache) GetStats(_ context.Context, collection solana.Pubkey) (*domain.CollectionStats, error) {
	return &domain.CollectionStats{
		ActiveListings: c.listings[collection],
		OpenOffers:     c.offers[collection],
	}, nil
}

type fakePublisher struct {
	events []*domain.MarketplaceEvent
}

func (p *fakePublisher) PublishMarketplaceEvent(_ context.Context, event *domain.MarketplaceEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) lastEvent() *domain.MarketplaceEvent {
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

type fakeRewardScheduler struct {
	scheduled map[solana.Pubkey]time.Time
	cancelled []solana.Pubkey
}

func newFakeRewardScheduler() *fakeRewardScheduler {
	return &fakeRewardScheduler{scheduled: make(map[solana.Pubkey]time.Time)}
}

func (s *fakeRewardScheduler) ScheduleRewardMaturity(_ context.Context, listing solana.Pubkey, at time.Time) error {
	s.scheduled[listing] = at
	return nil
}

func (s *fakeRewardScheduler) CancelSchedule(_ context.Context, listing solana.Pubkey) error {
	s.cancelled = append(s.cancelled, listing)
	delete(s.scheduled, listing)
	return nil
}

func (s *fakeRewardScheduler) Start(context.Context) error { return nil }
func (s *fakeRewardScheduler) Stop() error                 { return nil }

type fakeLeaderElection struct {
	leader bool
}

func (l *fakeLeaderElection) BecomeLeader(context.Context, string) (bool, error) {
	return l.leader, nil
}

func (l *fakeLeaderElection) IsLeader(context.Context, string) (bool, error) {
	return l.leader, nil
}

func (l *fakeLeaderElection) ReleaseLeadership(context.Context, string) error {
	l.leader = false
	return nil
}

type fakeMembershipRepo struct {
	stores    map[solana.Pubkey]*domain.Store
	resources map[solana.Pubkey]*domain.SellingResource
	markets   map[solana.Pubkey]*domain.Market
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		stores:    make(map[solana.Pubkey]*domain.Store),
		resources: make(map[solana.Pubkey]*domain.SellingResource),
		markets:   make(map[solana.Pubkey]*domain.Market),
	}
}

func (r *fakeMembershipRepo) CreateStore(_ context.Context, store *domain.Store) error {
	if _, ok := r.stores[store.Address]; ok {
		return domain.ErrDuplicateEntity
	}
	r.stores[store.Address] = store
	return nil
}

func (r *fakeMembershipRepo) GetStore(_ context.Context, address solana.Pubkey) (*domain.Store, error) {
	store, ok := r.stores[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return store, nil
}

func (r *fakeMembershipRepo) CreateSellingResource(_ context.Context, resource *domain.SellingResource) error {
	if _, ok := r.resources[resource.Address]; ok {
		return domain.ErrDuplicateEntity
	}
	r.resources[resource.Address] = resource
	return nil
}

func (r *fakeMembershipRepo) GetSellingResource(_ context.Context, address solana.Pubkey) (*domain.SellingResource, error) {
	resource, ok := r.resources[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return resource, nil
}

func (r *fakeMembershipRepo) UpdateSellingResource(_ context.Context, address solana.Pubkey, supply uint64, state domain.SellingResourceState) error {
	resource, ok := r.resources[address]
	if !ok {
		return domain.ErrNotFound
	}
	resource.Supply = supply
	resource.State = state
	return nil
}

func (r *fakeMembershipRepo) CreateMarket(_ context.Context, market *domain.Market) error {
	if _, ok := r.markets[market.Address]; ok {
		return domain.ErrDuplicateEntity
	}
	r.markets[market.Address] = market
	return nil
}

func (r *fakeMembershipRepo) GetMarket(_ context.Context, address solana.Pubkey) (*domain.Market, error) {
	market, ok := r.markets[address]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return market, nil
}

type fakeSchedulerRepo struct {
	jobs map[string]*domain.ScheduledJob
}

func newFakeSchedulerRepo() *fakeSchedulerRepo {
	return &fakeSchedulerRepo{jobs: make(map[string]*domain.ScheduledJob)}
}

func (r *fakeSchedulerRepo) CreateJob(_ context.Context, job *domain.ScheduledJob) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeSchedulerRepo) GetPendingJobs(_ context.Context, before time.Time) ([]*domain.ScheduledJob, error) {
	var pending []*domain.ScheduledJob
	for _, job := range r.jobs {
		if job.Status == domain.JobPending && !job.RunAt.After(before) {
			pending = append(pending, job)
		}
	}
	return pending, nil
}

func (r *fakeSchedulerRepo) UpdateJobStatus(_ context.Context, jobID string, status domain.JobStatus) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = status
	return nil
}

func (r *fakeSchedulerRepo) CancelJobsForSubject(_ context.Context, subject string) error {
	for _, job := range r.jobs {
		if job.Subject == subject && job.Status == domain.JobPending {
			job.Status = domain.JobCancelled
		}
	}
	return nil
}
