// Package controller owns the UI state of one browser session: the current
// generation cycle, its report or its error.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// ErrBusy is returned when a submission arrives while a generation is running.
var ErrBusy = errors.New("a report is already being generated")

// Snapshot is a point-in-time copy of a controller's state. Report is set only
// in StateLoaded and Error only in StateFailed.
type Snapshot struct {
	State        State          `json:"state"`
	Report       *models.Report `json:"report,omitempty"`
	Error        string         `json:"error,omitempty"`
	Niche        string         `json:"niche,omitempty"`
	Location     string         `json:"location,omitempty"`
	GenerationID string         `json:"generationId,omitempty"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type Controller struct {
	gen    generator.Generator
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	snap Snapshot
}

func New(gen generator.Generator, logger *zap.Logger) *Controller {
	c := &Controller{
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
	c.snap = Snapshot{State: StateIdle, UpdatedAt: c.now()}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Submit runs one generation cycle and blocks until it finishes. The returned
// error is the generation failure, already recorded in the snapshot.
func (c *Controller) Submit(ctx context.Context, niche, location string) error {
	id, err := c.begin(niche, location)
	if err != nil {
		return err
	}
	return c.run(ctx, id, niche, location)
}

// Start moves to StateLoading and returns; the generation continues in the
// background, detached from ctx cancellation. Only ErrBusy is returned.
func (c *Controller) Start(ctx context.Context, niche, location string) error {
	id, err := c.begin(niche, location)
	if err != nil {
		return err
	}
	go func() {
		_ = c.run(context.WithoutCancel(ctx), id, niche, location)
	}()
	return nil
}

func (c *Controller) begin(niche, location string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap.State == StateLoading {
		return "", ErrBusy
	}

	now := c.now()
	id := uuid.NewString()
	c.snap = Snapshot{
		State:        StateLoading,
		Niche:        niche,
		Location:     location,
		GenerationID: id,
		StartedAt:    &now,
		UpdatedAt:    now,
	}
	c.logger.Info("generation started",
		zap.String("generation_id", id),
		zap.String("niche", niche),
		zap.String("location", location),
	)
	return id, nil
}

func (c *Controller) run(ctx context.Context, id, niche, location string) error {
	report, err := c.gen.Generate(ctx, niche, location)
	if err == nil && report == nil {
		err = &generator.GenerationError{
			Kind: generator.KindEmptyResponse,
			Err:  errors.New("generator returned no report"),
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.snap
	next.UpdatedAt = c.now()
	if err != nil {
		next.State = StateFailed
		next.Report = nil
		next.Error = generator.UserMessage(err)
	} else {
		next.State = StateLoaded
		next.Report = report
		next.Error = ""
	}
	c.snap = next

	c.logger.Info("generation finished",
		zap.String("generation_id", id),
		zap.String("state", string(next.State)),
		zap.Duration("elapsed", next.UpdatedAt.Sub(*next.StartedAt)),
	)
	return err
}
