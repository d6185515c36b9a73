package services

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"reward-center/internal/domain"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"
	"reward-center/pkg/utils"
)

// CronRewardScheduler persists reward-maturity jobs and executes the due ones
// on a cron tick. A listing's reward matures once its warm-up elapses; the
// scheduler publishes the maturity event with the payout computed under the
// center's rule at execution time.
type CronRewardScheduler struct {
	cron        *cron.Cron
	repo        domain.SchedulerRepository
	listingRepo domain.ListingRepository
	centerRepo  domain.RewardCenterRepository
	eventPub    domain.EventPublisher
	log         logger.Logger
}

func NewCronRewardScheduler(
	repo domain.SchedulerRepository,
	listingRepo domain.ListingRepository,
	centerRepo domain.RewardCenterRepository,
	eventPub domain.EventPublisher,
	log logger.Logger,
) *CronRewardScheduler {
	return &CronRewardScheduler{
		cron:        cron.New(cron.WithSeconds()),
		repo:        repo,
		listingRepo: listingRepo,
		centerRepo:  centerRepo,
		eventPub:    eventPub,
		log:         log,
	}
}

func (s *CronRewardScheduler) Start(ctx context.Context) error {
	s.log.Info("Starting reward scheduler")

	_, err := s.cron.AddFunc("@every 1m", func() {
		s.processPendingJobs(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *CronRewardScheduler) Stop() error {
	s.log.Info("Stopping reward scheduler")
	s.cron.Stop()
	return nil
}

func (s *CronRewardScheduler) ScheduleRewardMaturity(ctx context.Context, listing solana.Pubkey, at time.Time) error {
	job := &domain.ScheduledJob{
		ID:        utils.GenerateID("job"),
		Subject:   listing.String(),
		JobType:   domain.JobRewardMaturity,
		RunAt:     at,
		Status:    domain.JobPending,
		CreatedAt: time.Now().UTC(),
	}

	return s.repo.CreateJob(ctx, job)
}

func (s *CronRewardScheduler) CancelSchedule(ctx context.Context, listing solana.Pubkey) error {
	return s.repo.CancelJobsForSubject(ctx, listing.String())
}

func (s *CronRewardScheduler) processPendingJobs(ctx context.Context) {
	jobs, err := s.repo.GetPendingJobs(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("Failed to get pending jobs", "error", err)
		return
	}

	for _, job := range jobs {
		s.log.Info("Processing job", "job_id", job.ID, "type", string(job.JobType), "subject", job.Subject)

		var execErr error
		switch job.JobType {
		case domain.JobRewardMaturity:
			execErr = s.executeRewardMaturity(ctx, job)
		}

		if execErr != nil {
			s.log.Error("Failed to execute job", "job_id", job.ID, "error", execErr)
			// Left pending, retried on the next tick.
			continue
		}

		if err := s.repo.UpdateJobStatus(ctx, job.ID, domain.JobExecuted); err != nil {
			s.log.Error("Failed to mark job executed", "job_id", job.ID, "error", err)
		}
	}
}

func (s *CronRewardScheduler) executeRewardMaturity(ctx context.Context, job *domain.ScheduledJob) error {
	address, err := solana.PubkeyFromBase58(job.Subject)
	if err != nil {
		return err
	}

	listing, err := s.listingRepo.Get(ctx, address)
	if errors.Is(err, domain.ErrNotFound) {
		// Listing cancelled between scheduling and execution; nothing matures.
		return nil
	}
	if err != nil {
		return err
	}

	center, err := s.centerRepo.Get(ctx, listing.RewardCenter)
	if err != nil {
		return err
	}

	payout, err := center.Rule.Payout(listing.TokenSize)
	if err != nil {
		return err
	}

	return s.eventPub.PublishMarketplaceEvent(ctx, &domain.MarketplaceEvent{
		Type:       domain.ListingRewardMatured,
		Collection: listing.RewardableCollection,
		Wallet:     listing.Seller,
		Address:    listing.Address,
		Price:      listing.Price,
		TokenSize:  listing.TokenSize,
		Payout:     payout,
		Timestamp:  time.Now().UTC(),
	})
}
