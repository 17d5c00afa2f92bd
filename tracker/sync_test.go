package tracker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncServer struct {
	status   int
	data     syncData
	requests []int // secondsToAdd per request
}

func (s *syncServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SecondsToAdd int `json:"secondsToAdd"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.requests = append(s.requests, body.SecondsToAdd)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_ = json.NewEncoder(w).Encode(syncEnvelope{
			Status: s.status == http.StatusOK,
			Data:   s.data,
		})
	}
}

func newTestSync(t *testing.T, srv *syncServer) (*SyncClient, *ArticleClock, *fakeClock) {
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	clock, fc := newTestClock(0, nil)
	client := NewSyncClient(ts.URL, "test-token", 1, 2, clock)
	return client, clock, fc
}

func TestFlushSendsUnsyncedAndAdoptsTotals(t *testing.T) {
	srv := &syncServer{
		status: http.StatusOK,
		data: syncData{
			SecondsLogged: 30,
			DailyHours:    0.5,
			TotalHours:    12.25,
			HoursRequired: 40,
		},
	}
	client, clock, fc := newTestSync(t, srv)

	clock.Start()
	tickSeconds(clock, fc, 30)

	require.NoError(t, client.Flush())

	assert.Equal(t, []int{30}, srv.requests)
	assert.Equal(t, 0, clock.Unsynced())

	totals := client.Totals()
	assert.Equal(t, 12.25, totals.TotalHours)
	assert.Equal(t, 40.0, totals.HoursRequired)
	assert.False(t, totals.DailyLimitReached)
}

func TestFlushNothingToSendSkipsRequest(t *testing.T) {
	srv := &syncServer{status: http.StatusOK}
	client, _, _ := newTestSync(t, srv)

	require.NoError(t, client.Flush())
	assert.Empty(t, srv.requests)
}

func TestFlushServerErrorRestoresSeconds(t *testing.T) {
	srv := &syncServer{status: http.StatusInternalServerError}
	client, clock, fc := newTestSync(t, srv)

	clock.Start()
	tickSeconds(clock, fc, 30)

	err := client.Flush()
	assert.Error(t, err)

	// Delayed, never destroyed: the seconds ride on the next flush
	assert.Equal(t, 30, clock.Unsynced())

	srv.status = http.StatusOK
	require.NoError(t, client.Flush())
	assert.Equal(t, []int{30, 30}, srv.requests)
	assert.Equal(t, 0, clock.Unsynced())
}

func TestFlushNetworkErrorRestoresSeconds(t *testing.T) {
	clock, fc := newTestClock(0, nil)
	client := NewSyncClient("http://127.0.0.1:1", "test-token", 1, 2, clock)

	clock.Start()
	tickSeconds(clock, fc, 15)

	err := client.Flush()
	assert.Error(t, err)
	assert.Equal(t, 15, clock.Unsynced())
}

func TestFlushDailyLimitStopsClock(t *testing.T) {
	srv := &syncServer{
		status: http.StatusTooManyRequests,
		data: syncData{
			DailyHours:        8.0,
			TotalHours:        20,
			HoursRequired:     40,
			DailyLimitReached: true,
		},
	}
	client, clock, fc := newTestSync(t, srv)

	clock.Start()
	tickSeconds(clock, fc, 30)

	// The daily limit is an authoritative answer, not a failure
	require.NoError(t, client.Flush())

	assert.True(t, clock.LimitReached())
	assert.False(t, clock.Running())
	assert.True(t, client.Totals().DailyLimitReached)
	assert.Equal(t, 8.0, client.Totals().DailyHours)
}

func TestFlushPartialCreditAtCapStopsClock(t *testing.T) {
	srv := &syncServer{
		status: http.StatusOK,
		data: syncData{
			SecondsLogged:     10,
			DailyHours:        8.0,
			TotalHours:        25,
			HoursRequired:     40,
			DailyLimitReached: true,
		},
	}
	client, clock, fc := newTestSync(t, srv)

	clock.Start()
	tickSeconds(clock, fc, 30)

	require.NoError(t, client.Flush())

	// The 200 response carried the limit flag: stop accruing for the day
	assert.True(t, clock.LimitReached())
}
