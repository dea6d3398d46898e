package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, COALESCE(description, ''), COALESCE(category, ''), price_per_day_cents, stock, available_stock, is_rentable, created_on, updated_on`

func scanProduct(row *sql.Row) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePerDayCents, &p.Stock, &p.AvailableStock, &p.IsRentable, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.AvailableStock = p.Stock
	query := `INSERT INTO products (id, name, description, category, price_per_day_cents, stock, available_stock, is_rentable, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Description, p.Category, p.PricePerDayCents, p.Stock, p.AvailableStock, p.IsRentable, now, now).Scan(&p.CreatedOn, &p.UpdatedOn)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	return p, err
}

// Update writes the descriptive fields only. Stock counters move solely
// through TryReserve, Release and AdjustTotalStock.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, category=$3, price_per_day_cents=$4, is_rentable=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.PricePerDayCents, p.IsRentable, time.Now(), p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePerDayCents, &p.Stock, &p.AvailableStock, &p.IsRentable, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, count, rows.Err()
}

// TryReserve performs the reserve as one conditional decrement so that
// two concurrent reservations against the last unit cannot both
// succeed. On failure a follow-up read distinguishes the cause.
func (r *productRepository) TryReserve(ctx context.Context, id string) (*domain.Product, error) {
	query := `UPDATE products
	          SET available_stock = available_stock - 1, updated_on = $2
	          WHERE id = $1 AND is_rentable AND available_stock > 0
	          RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, time.Now()))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var rentable bool
	var available int32
	err = r.db.QueryRowContext(ctx, `SELECT is_rentable, available_stock FROM products WHERE id = $1`, id).Scan(&rentable, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !rentable {
		return nil, domain.ErrProductNotRentable
	}
	return nil, domain.ErrOutOfStock
}

// Release caps at stock so a stray double release can never push
// available_stock past the total owned units.
func (r *productRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE products SET available_stock = LEAST(available_stock + 1, stock), updated_on = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AdjustTotalStock applies the stock delta to available_stock in the
// same statement; the SET expressions all read the pre-update row, so
// available_stock sees the old stock value.
func (r *productRepository) AdjustTotalStock(ctx context.Context, id string, newStock int32) (*domain.Product, error) {
	query := `UPDATE products
	          SET stock = $2,
	              available_stock = GREATEST(available_stock + ($2 - stock), 0),
	              updated_on = $3
	          WHERE id = $1
	          RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, newStock, time.Now()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	return p, err
}

func (r *productRepository) SetRentable(ctx context.Context, id string, rentable bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET is_rentable = $2, updated_on = $3 WHERE id = $1`, id, rentable, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
