package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentio-backend/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"rentio-backend/migrations"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same repository
// code runs standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db            *sql.DB // nil when the store is transaction-scoped
	products      repository.ProductRepository
	rentals       repository.RentalRepository
	notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		products:      NewProductRepository(db),
		rentals:       NewRentalRepository(db),
		notifications: NewNotificationRepository(db),
	}
}

func (s *Store) Products() repository.ProductRepository { return s.products }

func (s *Store) Rentals() repository.RentalRepository { return s.rentals }

func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

// Transact runs fn against a transaction-scoped store. A nested call on
// an already transaction-scoped store joins the outer transaction.
func (s *Store) Transact(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := &Store{
		products:      NewProductRepository(tx),
		rentals:       NewRentalRepository(tx),
		notifications: NewNotificationRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
