package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, user_id, user_name, user_email, product_id, product_name, start_date, end_date, total_days, price_per_day_cents, total_price_cents, status, pickup_date, return_date, COALESCE(notes, ''), created_on, updated_on`

func scanRental(row *sql.Row) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.UserID, &rt.UserName, &rt.UserEmail, &rt.ProductID, &rt.ProductName, &rt.StartDate, &rt.EndDate, &rt.TotalDays, &rt.PricePerDayCents, &rt.TotalPriceCents, &rt.Status, &rt.PickupDate, &rt.ReturnDate, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Create inserts a new rental. A violation of the one-active-rental
// partial unique index maps to domain.ErrActiveRentalExists, closing
// the booking race that an application-level pre-check cannot.
func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	query := `INSERT INTO rentals (id, user_id, user_name, user_email, product_id, product_name, start_date, end_date, total_days, price_per_day_cents, total_price_cents, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING created_on, updated_on`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, rt.ID, rt.UserID, rt.UserName, rt.UserEmail, rt.ProductID, rt.ProductName, rt.StartDate, rt.EndDate, rt.TotalDays, rt.PricePerDayCents, rt.TotalPriceCents, rt.Status, rt.Notes, now, now).Scan(&rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "rentals_one_active_per_user" {
			return domain.ErrActiveRentalExists
		}
		return err
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	return rt, err
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	return rt, err
}

func (r *rentalRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE user_id = $1 AND status = ANY($2)`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, userID, pq.Array(statusStrings(domain.ActiveStatuses))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rt, err
}

func (r *rentalRepository) List(ctx context.Context, filter repository.RentalListFilter) ([]domain.Rental, int32, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (user_name ILIKE $%d OR user_email ILIKE $%d OR product_name ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.UserName, &rt.UserEmail, &rt.ProductID, &rt.ProductName, &rt.StartDate, &rt.EndDate, &rt.TotalDays, &rt.PricePerDayCents, &rt.TotalPriceCents, &rt.Status, &rt.PickupDate, &rt.ReturnDate, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, pickup_date=$2, return_date=$3, notes=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, rt.Status, rt.PickupDate, rt.ReturnDate, rt.Notes, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND end_date < $2 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusPickedUp, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.UserName, &rt.UserEmail, &rt.ProductID, &rt.ProductName, &rt.StartDate, &rt.EndDate, &rt.TotalDays, &rt.PricePerDayCents, &rt.TotalPriceCents, &rt.Status, &rt.PickupDate, &rt.ReturnDate, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) CountActiveByProduct(ctx context.Context, productID string) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM rentals WHERE product_id = $1 AND status = ANY($2)`
	err := r.db.QueryRowContext(ctx, query, productID, pq.Array(statusStrings(domain.StockHoldingStatuses))).Scan(&count)
	return count, err
}

func statusStrings(statuses []domain.RentalStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
