package mariadb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"game_inventory/internal/config"
	"game_inventory/internal/models"
	"game_inventory/internal/storage"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const mysqlErrDuplicateEntry = 1062

type Storage struct {
	DB *gorm.DB
}

func New(cfg config.Database) (*Storage, error) {
	const op = "storage.mariadb.New"

	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.mariadb.Ping"

	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Migrate creates the games table when it does not exist yet.
func (s *Storage) Migrate() error {
	const op = "storage.mariadb.Migrate"

	if err := s.DB.AutoMigrate(&models.Game{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// withConn runs fn on one pooled connection. The connection goes back to
// the pool when fn returns, whatever the outcome.
func (s *Storage) withConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Connection(fn)
}

func (s *Storage) ListActive(ctx context.Context) ([]models.Game, error) {
	const op = "storage.mariadb.ListActive"

	status := models.StatusActive
	games, err := s.list(ctx, &status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return games, nil
}

func (s *Storage) ListInactive(ctx context.Context) ([]models.Game, error) {
	const op = "storage.mariadb.ListInactive"

	status := models.StatusInactive
	games, err := s.list(ctx, &status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return games, nil
}

func (s *Storage) ListAll(ctx context.Context) ([]models.Game, error) {
	const op = "storage.mariadb.ListAll"

	games, err := s.list(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return games, nil
}

// list returns games newest first, optionally filtered by status.
func (s *Storage) list(ctx context.Context, status *models.GameStatus) ([]models.Game, error) {
	var games []models.Game

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		q := tx.Model(&models.Game{})
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q.Order("id DESC").Find(&games).Error
	})
	if err != nil {
		return nil, err
	}

	return games, nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	const op = "storage.mariadb.GetByID"

	var g models.Game

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		return tx.First(&g, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}

// Insert stores g and sets its ID.
func (s *Storage) Insert(ctx context.Context, g *models.Game) error {
	const op = "storage.mariadb.Insert"

	g.ID = 0

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Create(g).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Update overwrites every mutable column of the row with the given id.
// A missing id is not an error.
func (s *Storage) Update(ctx context.Context, id int64, g *models.Game) error {
	const op = "storage.mariadb.Update"

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Game{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"code":     g.Code,
				"title":    g.Title,
				"platform": g.Platform,
				"genre":    g.Genre,
				"price":    g.Price,
				"stock":    g.Stock,
				"status":   g.Status,
			}).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	const op = "storage.mariadb.Delete"

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&models.Game{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) SetStatus(ctx context.Context, id int64, status models.GameStatus) error {
	const op = "storage.mariadb.SetStatus"

	err := s.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Game{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
