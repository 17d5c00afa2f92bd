package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultSyncInterval is how often accrued seconds are flushed upstream.
const DefaultSyncInterval = 30 * time.Second

// syncEnvelope mirrors the server's response envelope.
type syncEnvelope struct {
	Status  bool     `json:"status"`
	Message string   `json:"message"`
	Data    syncData `json:"data"`
}

type syncData struct {
	SecondsLogged     int     `json:"secondsLogged"`
	DailyHours        float64 `json:"dailyHours"`
	TotalHours        float64 `json:"totalHours"`
	HoursRequired     float64 `json:"hoursRequired"`
	IsCompleted       bool    `json:"isCompleted"`
	DailyLimitReached bool    `json:"dailyLimitReached"`
}

// Totals is the last authoritative state reported by the server.
type Totals struct {
	DailyHours        float64
	TotalHours        float64
	HoursRequired     float64
	IsCompleted       bool
	DailyLimitReached bool
}

// SyncClient flushes a clock's unsynced seconds to the time-sync endpoint
// on a fixed interval. Failed flushes put the seconds back so they ride
// along on the next attempt; accrued time is delayed, never destroyed.
type SyncClient struct {
	client       *resty.Client
	token        string
	enrollmentID uint
	articleID    uint
	interval     time.Duration
	clock        *ArticleClock

	mu     sync.Mutex
	totals Totals
}

// NewSyncClient creates a sync client for one article session.
func NewSyncClient(baseURL, token string, enrollmentID, articleID uint, clock *ArticleClock) *SyncClient {
	return &SyncClient{
		client:       resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		token:        token,
		enrollmentID: enrollmentID,
		articleID:    articleID,
		interval:     DefaultSyncInterval,
		clock:        clock,
	}
}

// Run ticks the clock every second and flushes on the sync interval until
// the context is cancelled, then performs one final best-effort flush.
func (s *SyncClient) Run(ctx context.Context) {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	flush := time.NewTicker(s.interval)
	defer flush.Stop()

	for {
		select {
		case <-ctx.Done():
			// best-effort final flush on unload
			_ = s.Flush()
			return
		case <-tick.C:
			s.clock.Tick()
		case <-flush.C:
			// failures restore the seconds; next interval retries
			_ = s.Flush()
		}
	}
}

// Flush sends the clock's unsynced seconds upstream. On any failure the
// seconds are restored to the clock. A daily-limit response stops the
// clock for the day and is not an error.
func (s *SyncClient) Flush() error {
	n := s.clock.TakeUnsynced()
	if n == 0 {
		return nil
	}

	var envelope syncEnvelope
	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.token).
		SetBody(map[string]interface{}{
			"enrollmentId": s.enrollmentID,
			"articleId":    s.articleID,
			"secondsToAdd": n,
		}).
		SetResult(&envelope).
		SetError(&envelope).
		Post("/track/time-sync")
	if err != nil {
		s.clock.Restore(n)
		return err
	}

	if resp.StatusCode() == 429 {
		s.adopt(envelope.Data)
		s.clock.StopForDay()
		return nil
	}

	if resp.StatusCode() != 200 {
		s.clock.Restore(n)
		return fmt.Errorf("time sync failed with status %d: %s", resp.StatusCode(), envelope.Message)
	}

	s.adopt(envelope.Data)
	if envelope.Data.DailyLimitReached {
		s.clock.StopForDay()
	}
	return nil
}

func (s *SyncClient) adopt(data syncData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = Totals{
		DailyHours:        data.DailyHours,
		TotalHours:        data.TotalHours,
		HoursRequired:     data.HoursRequired,
		IsCompleted:       data.IsCompleted,
		DailyLimitReached: data.DailyLimitReached,
	}
}

// Totals returns the last authoritative totals from the server.
func (s *SyncClient) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}
