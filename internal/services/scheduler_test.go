package services

import (
	"context"
	"testing"
	"time"

	"reward-center/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) rewardScheduler(repo *fakeSchedulerRepo) *CronRewardScheduler {
	return NewCronRewardScheduler(repo, f.listingRepo, f.centerRepo, f.publisher, nopLogger{})
}

func TestScheduleAndCancelRewardMaturity(t *testing.T) {
	f := newFixture(t).withCenter(t)
	repo := newFakeSchedulerRepo()
	scheduler := f.rewardScheduler(repo)

	listing := testKey("listing")
	runAt := time.Now().UTC().Add(time.Hour)

	require.NoError(t, scheduler.ScheduleRewardMaturity(context.Background(), listing, runAt))
	require.Len(t, repo.jobs, 1)
	for _, job := range repo.jobs {
		assert.Equal(t, listing.String(), job.Subject)
		assert.Equal(t, domain.JobRewardMaturity, job.JobType)
		assert.Equal(t, domain.JobPending, job.Status)
		assert.Equal(t, runAt, job.RunAt)
	}

	require.NoError(t, scheduler.CancelSchedule(context.Background(), listing))
	for _, job := range repo.jobs {
		assert.Equal(t, domain.JobCancelled, job.Status)
	}
}

func TestRewardMaturityPublishesPayout(t *testing.T) {
	f := newFixture(t).withCenter(t)
	repo := newFakeSchedulerRepo()
	scheduler := f.rewardScheduler(repo)

	listing, err := f.listingService().CreateListing(context.Background(), f.listingRequest(t))
	require.NoError(t, err)
	f.publisher.events = nil

	require.NoError(t, scheduler.ScheduleRewardMaturity(context.Background(), listing.Address, time.Now().UTC().Add(-time.Minute)))
	scheduler.processPendingJobs(context.Background())

	event := f.publisher.lastEvent()
	require.NotNil(t, event)
	assert.Equal(t, domain.ListingRewardMatured, event.Type)
	assert.Equal(t, listing.Address, event.Address)
	// payout = rule payout per token * token size
	assert.Equal(t, uint64(10), event.Payout)

	for _, job := range repo.jobs {
		assert.Equal(t, domain.JobExecuted, job.Status)
	}
}

func TestRewardMaturitySkipsCancelledListing(t *testing.T) {
	f := newFixture(t).withCenter(t)
	repo := newFakeSchedulerRepo()
	scheduler := f.rewardScheduler(repo)

	// Subject points at a listing that no longer exists.
	require.NoError(t, scheduler.ScheduleRewardMaturity(context.Background(), testKey("gone"), time.Now().UTC().Add(-time.Minute)))
	scheduler.processPendingJobs(context.Background())

	assert.Empty(t, f.publisher.events)
	for _, job := range repo.jobs {
		assert.Equal(t, domain.JobExecuted, job.Status)
	}
}

func TestFutureJobsAreNotExecuted(t *testing.T) {
	f := newFixture(t).withCenter(t)
	repo := newFakeSchedulerRepo()
	scheduler := f.rewardScheduler(repo)

	require.NoError(t, scheduler.ScheduleRewardMaturity(context.Background(), testKey("listing"), time.Now().UTC().Add(time.Hour)))
	scheduler.processPendingJobs(context.Background())

	for _, job := range repo.jobs {
		assert.Equal(t, domain.JobPending, job.Status)
	}
}
