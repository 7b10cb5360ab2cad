package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/fixtures"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	niche    = "Handcrafted leather bags"
	location = "Jaipur, Rajasthan"
)

func TestNew_StartsIdle(t *testing.T) {
	c := New(mocks.NewMockGenerator(t), zap.NewNop())

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Report)
	assert.Empty(t, snap.Error)
}

func TestSubmit_Success(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	report := fixtures.Report()
	gen.On("Generate", mock.Anything, niche, location).Return(report, nil).Once()
	c := New(gen, zap.NewNop())

	err := c.Submit(context.Background(), niche, location)

	require.NoError(t, err)
	snap := c.Snapshot()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Same(t, report, snap.Report)
	assert.Empty(t, snap.Error)
	assert.Equal(t, niche, snap.Niche)
	assert.NotEmpty(t, snap.GenerationID)
	require.NotNil(t, snap.StartedAt)

	assert.Len(t, snap.Report.CompetitorResearch, 4)
	assert.Len(t, snap.Report.TrendInsights, 3)
	assert.Len(t, snap.Report.CreativeRecommendations, 2)
	assert.Len(t, snap.Report.ProTips, 2)
}

func TestSubmit_FailureKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"empty", &generator.GenerationError{Kind: generator.KindEmptyResponse, Err: errors.New("x")}, "empty response"},
		{"malformed", &generator.GenerationError{Kind: generator.KindMalformedReport, Err: errors.New("x")}, "invalid format"},
		{"transport", &generator.GenerationError{Kind: generator.KindTransport, Err: errors.New("dial")}, "could not be reached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := mocks.NewMockGenerator(t)
			gen.On("Generate", mock.Anything, niche, location).Return(nil, tt.err).Once()
			c := New(gen, zap.NewNop())

			err := c.Submit(context.Background(), niche, location)

			assert.ErrorIs(t, err, tt.err)
			snap := c.Snapshot()
			assert.Equal(t, StateFailed, snap.State)
			assert.Nil(t, snap.Report)
			assert.Contains(t, snap.Error, "Failed to retrieve the report from the AI")
			assert.Contains(t, snap.Error, tt.wantMsg)
		})
	}
}

func TestSubmit_NilReportIsEmptyResponse(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, niche, location).Return(nil, nil).Once()
	c := New(gen, zap.NewNop())

	err := c.Submit(context.Background(), niche, location)

	assert.ErrorIs(t, err, generator.ErrEmptyResponse)
	assert.Equal(t, StateFailed, c.Snapshot().State)
}

func TestSubmit_LoadingBeforeCallResolves(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	gen.On("Generate", mock.Anything, niche, location).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(fixtures.Report(), nil).
		Once()
	c := New(gen, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), niche, location) }()

	<-entered
	snap := c.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Nil(t, snap.Report)
	assert.Empty(t, snap.Error)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateLoaded, c.Snapshot().State)
}

func TestSubmit_BusyWhileLoading(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	gen.On("Generate", mock.Anything, niche, location).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(fixtures.Report(), nil).
		Once()
	c := New(gen, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), niche, location) }()
	<-entered

	assert.ErrorIs(t, c.Submit(context.Background(), "other", "place"), ErrBusy)
	assert.ErrorIs(t, c.Start(context.Background(), "other", "place"), ErrBusy)
	assert.Equal(t, niche, c.Snapshot().Niche, "busy submission changes nothing")

	close(release)
	require.NoError(t, <-done)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSubmit_ResubmitClearsPreviousResult(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, niche, location).
		Return(nil, &generator.GenerationError{Kind: generator.KindMalformedReport, Err: errors.New("x")}).
		Once()
	c := New(gen, zap.NewNop())
	require.Error(t, c.Submit(context.Background(), niche, location))
	first := c.Snapshot()
	require.Equal(t, StateFailed, first.State)

	release := make(chan struct{})
	entered := make(chan struct{})
	gen.On("Generate", mock.Anything, "Organic honey", "Pune").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(fixtures.Report(), nil).
		Once()

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "Organic honey", "Pune") }()
	<-entered

	loading := c.Snapshot()
	assert.Equal(t, StateLoading, loading.State)
	assert.Empty(t, loading.Error)
	assert.NotEqual(t, first.GenerationID, loading.GenerationID)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateLoaded, c.Snapshot().State)
}

func TestStart_RunsInBackground(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	release := make(chan time.Time)
	gen.On("Generate", mock.Anything, niche, location).
		WaitUntil(release).
		Return(fixtures.Report(), nil).
		Once()
	c := New(gen, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx, niche, location))
	assert.Equal(t, StateLoading, c.Snapshot().State)

	// Cancelling the request must not abort the generation.
	cancel()
	close(release)

	require.Eventually(t, func() bool {
		return c.Snapshot().State == StateLoaded
	}, time.Second, 5*time.Millisecond)
}

func TestStart_ConcurrentSubmissionsCallOnce(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	release := make(chan time.Time)
	gen.On("Generate", mock.Anything, niche, location).
		WaitUntil(release).
		Return(fixtures.Report(), nil).
		Once()
	c := New(gen, zap.NewNop())

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Start(context.Background(), niche, location) == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, accepted)

	close(release)
	require.Eventually(t, func() bool {
		return c.Snapshot().State == StateLoaded
	}, time.Second, 5*time.Millisecond)
}
