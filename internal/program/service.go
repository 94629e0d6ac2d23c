package program

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/errors"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// poolLookbackDays bounds the variety pool's recently-used exclusion
// window.
const poolLookbackDays = 14

// logFetchDays bounds how far back logged workouts are fetched for trend
// analysis. Wider than the analyzer's own window so week grouping never
// truncates a week at the edge.
const logFetchDays = 28

// catalogCache is an immutable, time-boxed snapshot of the exercise
// catalog. Generation calls read it, never mutate it.
type catalogCache struct {
	mu        sync.Mutex
	exercises []Exercise
	fetchedAt time.Time
	ttl       time.Duration
}

func (c *catalogCache) get() ([]Exercise, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exercises == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.exercises, true
}

func (c *catalogCache) set(exercises []Exercise) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exercises = exercises
	c.fetchedAt = time.Now()
}

// Service wires the engine to its persistence collaborators and owns the
// catalog snapshot cache. Safe for concurrent use.
type Service struct {
	repo    *repository
	presets *Presets
	logger  *slog.Logger
	catalog catalogCache
	now     func() time.Time
}

// NewService creates a program service. catalogTTL bounds how stale the
// cached exercise catalog may get before the next call refetches it.
func NewService(db *sqlite.Database, logger *slog.Logger, presets *Presets, catalogTTL time.Duration) *Service {
	return &Service{
		repo:    newRepository(db, logger),
		presets: presets,
		logger:  logger,
		catalog: catalogCache{ttl: catalogTTL},
		now:     time.Now,
	}
}

// exerciseCatalog returns the cached catalog snapshot, refetching after
// the TTL.
func (s *Service) exerciseCatalog(ctx context.Context) ([]Exercise, error) {
	if cached, ok := s.catalog.get(); ok {
		return cached, nil
	}
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrDataUnavailable, "fetch exercise catalog",
			slog.String("cause", err.Error()))
	}
	s.catalog.set(exercises)
	return exercises, nil
}

// inputs bundles everything one generation call reads.
type inputs struct {
	profile ClientProfile
	catalog []Exercise
	history []HistoryRecord
	logged  []LoggedWorkout
}

// fetchInputs loads the profile, catalog, and both history views
// concurrently. Any failure aborts the whole fetch.
func (s *Service) fetchInputs(ctx context.Context, clientID int64) (inputs, error) {
	var in inputs
	now := s.now()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.repo.clients.Get(ctx, clientID)
		if err != nil {
			return err
		}
		in.profile = profile
		return nil
	})
	g.Go(func() error {
		catalog, err := s.exerciseCatalog(ctx)
		if err != nil {
			return err
		}
		in.catalog = catalog
		return nil
	})
	g.Go(func() error {
		history, err := s.repo.logs.AggregateHistory(ctx, clientID,
			now.AddDate(0, 0, -poolLookbackDays), s.presets.classifyMovement)
		if err != nil {
			return errors.Wrap(ErrDataUnavailable, "fetch exercise history",
				slog.String("cause", err.Error()))
		}
		in.history = history
		return nil
	})
	g.Go(func() error {
		logged, err := s.repo.logs.ListSince(ctx, clientID, now.AddDate(0, 0, -logFetchDays))
		if err != nil {
			return errors.Wrap(ErrDataUnavailable, "fetch workout logs",
				slog.String("cause", err.Error()))
		}
		in.logged = logged
		return nil
	})
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.DeadlineExceeded) {
			return inputs{}, errors.Wrap(ErrTimeout, "fetch generation inputs",
				slog.Int64("client_id", clientID))
		}
		return inputs{}, err
	}
	return in, nil
}

// GenerateProgram builds a weeks-long program for the client starting at
// startDate. A zero startDate means today.
func (s *Service) GenerateProgram(ctx context.Context, clientID int64, weeks int, startDate time.Time) (*WorkoutProgram, error) {
	in, err := s.fetchInputs(ctx, clientID)
	if err != nil {
		return nil, err
	}
	gen := NewGenerator(s.logger, s.presets, WithNow(s.now))
	prog, err := gen.GenerateProgram(in.profile, in.catalog, in.history, in.logged, startDate, weeks)
	if err != nil {
		return nil, errors.Wrap(err, "generate program", slog.Int64("client_id", clientID))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "program generated",
		slog.Int64("client_id", clientID),
		slog.Int("weeks", prog.Weeks),
		slog.String("trend", string(prog.Recommendation.Trend)))
	return prog, nil
}

// GenerateSingleSession builds one day's workout for the client without
// weekly rotation bookkeeping.
func (s *Service) GenerateSingleSession(ctx context.Context, clientID int64) (*WorkoutDay, error) {
	in, err := s.fetchInputs(ctx, clientID)
	if err != nil {
		return nil, err
	}
	gen := NewGenerator(s.logger, s.presets, WithNow(s.now))
	day, err := gen.GenerateSingleSession(in.profile, in.catalog, in.history, in.logged)
	if err != nil {
		return nil, errors.Wrap(err, "generate session", slog.Int64("client_id", clientID))
	}
	return day, nil
}

// LogWorkout records an executed session for later trend analysis.
func (s *Service) LogWorkout(ctx context.Context, clientID int64, workout LoggedWorkout) error {
	if len(workout.Exercises) == 0 {
		return errors.Wrap(ErrConfiguration, "workout has no exercises")
	}
	if workout.Date.IsZero() {
		workout.Date = s.now()
	}
	if _, err := s.repo.clients.Get(ctx, clientID); err != nil {
		return err
	}
	if err := s.repo.logs.Insert(ctx, clientID, workout); err != nil {
		return errors.Wrap(err, "log workout", slog.Int64("client_id", clientID))
	}
	return nil
}

// ListExercises returns the exercise catalog.
func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	return s.exerciseCatalog(ctx)
}

// GetClient retrieves a client profile.
func (s *Service) GetClient(ctx context.Context, clientID int64) (ClientProfile, error) {
	return s.repo.clients.Get(ctx, clientID)
}

// UpdateClient validates and persists a client profile.
func (s *Service) UpdateClient(ctx context.Context, profile ClientProfile) error {
	if err := s.presets.ValidateProfile(profile); err != nil {
		return err
	}
	if err := s.repo.clients.Upsert(ctx, profile); err != nil {
		return errors.Wrap(err, "update client", slog.Int64("client_id", profile.ID))
	}
	return nil
}
