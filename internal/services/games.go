package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"game_inventory/internal/models"
	"game_inventory/internal/storage"
)

var (
	ErrNotFound    = errors.New("game not found")
	ErrCodeExists  = errors.New("code already exists; choose another or leave blank")
	ErrUnknownView = errors.New("unknown view")
)

// PersistenceError is a failed store write or lookup. Game carries the
// submitted values for redisplay.
type PersistenceError struct {
	Op   string
	Game models.Game
	Err  error
}

func (e *PersistenceError) Error() string {
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type GameStorage interface {
	ListActive(ctx context.Context) ([]models.Game, error)
	ListInactive(ctx context.Context) ([]models.Game, error)
	ListAll(ctx context.Context) ([]models.Game, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Insert(ctx context.Context, g *models.Game) error
	Update(ctx context.Context, id int64, g *models.Game) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status models.GameStatus) error
}

type GameService struct {
	storage GameStorage
	log     *slog.Logger
}

func NewGameService(s GameStorage, log *slog.Logger) *GameService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &GameService{
		storage: s,
		log:     log,
	}
}

func (s *GameService) ListForView(ctx context.Context, view models.View) ([]models.Game, error) {
	const op = "services.games.ListForView"

	var (
		games []models.Game
		err   error
	)

	switch view {
	case models.ViewActive:
		games, err = s.storage.ListActive(ctx)
	case models.ViewInactive:
		games, err = s.storage.ListInactive(ctx)
	case models.ViewAll:
		games, err = s.storage.ListAll(ctx)
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownView, view)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return games, nil
}

func (s *GameService) Get(ctx context.Context, id int64) (*models.Game, error) {
	const op = "services.games.Get"

	g, err := s.storage.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return g, nil
}

func (s *GameService) Create(ctx context.Context, form models.GameForm) (*models.Game, error) {
	const op = "services.games.Create"

	g, err := Normalize(form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.Insert(ctx, &g); err != nil {
		return nil, persistenceError(op, g, err)
	}

	s.log.Info("game created", slog.Int64("id", g.ID), slog.String("title", g.Title))

	return &g, nil
}

func (s *GameService) Update(ctx context.Context, id int64, form models.GameForm) (*models.Game, error) {
	const op = "services.games.Update"

	if _, err := s.storage.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, persistenceError(op, models.Game{ID: id}, err)
	}

	g, err := Normalize(form)
	g.ID = id
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Game.ID = id
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.Update(ctx, id, &g); err != nil {
		return nil, persistenceError(op, g, err)
	}

	s.log.Info("game updated", slog.Int64("id", id))

	return &g, nil
}

// Remove permanently deletes the record.
func (s *GameService) Remove(ctx context.Context, id int64) error {
	const op = "services.games.Remove"

	g, err := s.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return persistenceError(op, models.Game{ID: id}, err)
	}

	if err := s.storage.Delete(ctx, id); err != nil {
		return persistenceError(op, *g, err)
	}

	s.log.Info("game deleted", slog.Int64("id", id))

	return nil
}

// ToggleStatus flips the status between active and inactive and returns the
// new value. Any failure to read the record counts as not found.
func (s *GameService) ToggleStatus(ctx context.Context, id int64) (models.GameStatus, error) {
	const op = "services.games.ToggleStatus"

	g, err := s.storage.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("toggle lookup failed", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	next := g.Status.Toggled()
	if err := s.storage.SetStatus(ctx, id, next); err != nil {
		return 0, persistenceError(op, *g, err)
	}

	s.log.Info("game status toggled", slog.Int64("id", id), slog.String("status", next.String()))

	return next, nil
}

func persistenceError(op string, g models.Game, err error) error {
	if errors.Is(err, storage.ErrExists) {
		return &PersistenceError{Op: op, Game: g, Err: ErrCodeExists}
	}
	return &PersistenceError{Op: op, Game: g, Err: err}
}
