package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	ListConsumptions(ctx context.Context, bookingID int64) ([]domain.Consumption, error)
	CreateConsumption(ctx context.Context, consumption *domain.Consumption) error
	GetConsumption(ctx context.Context, id int64) (*domain.Consumption, error)
	DeleteConsumption(ctx context.Context, id int64) error
}

type PGProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &PGProductRepository{db: db}
}

func (r *PGProductRepository) List(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := `SELECT id, name, category, price_cents, is_active, stock, created_at, updated_at FROM products`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.PriceCents, &p.IsActive, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PGProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, category, price_cents, is_active, stock, created_at, updated_at
		FROM products WHERE id = $1`, id)
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.PriceCents, &p.IsActive, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.QueryRow(ctx, `INSERT INTO products (name, category, price_cents, is_active, stock)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		product.Name, product.Category, product.PriceCents, product.IsActive, product.Stock).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *PGProductRepository) Update(ctx context.Context, product *domain.Product) error {
	cmd, err := r.db.Exec(ctx, `UPDATE products SET name = $1, category = $2, price_cents = $3, is_active = $4, stock = $5, updated_at = now()
		WHERE id = $6`, product.Name, product.Category, product.PriceCents, product.IsActive, product.Stock, product.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGProductRepository) ListConsumptions(ctx context.Context, bookingID int64) ([]domain.Consumption, error) {
	rows, err := r.db.Query(ctx, `SELECT cs.id, cs.booking_id, cs.product_id, p.name, cs.quantity, cs.unit_price_cents, cs.total_price_cents, cs.created_at
		FROM consumptions cs JOIN products p ON p.id = cs.product_id
		WHERE cs.booking_id = $1 ORDER BY cs.created_at DESC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consumptions []domain.Consumption
	for rows.Next() {
		var c domain.Consumption
		if err := rows.Scan(&c.ID, &c.BookingID, &c.ProductID, &c.ProductName, &c.Quantity, &c.UnitPriceCents, &c.TotalPriceCents, &c.CreatedAt); err != nil {
			return nil, err
		}
		consumptions = append(consumptions, c)
	}
	return consumptions, rows.Err()
}

func (r *PGProductRepository) CreateConsumption(ctx context.Context, consumption *domain.Consumption) error {
	return r.db.QueryRow(ctx, `INSERT INTO consumptions (booking_id, product_id, quantity, unit_price_cents, total_price_cents)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		consumption.BookingID, consumption.ProductID, consumption.Quantity, consumption.UnitPriceCents, consumption.TotalPriceCents).
		Scan(&consumption.ID, &consumption.CreatedAt)
}

func (r *PGProductRepository) GetConsumption(ctx context.Context, id int64) (*domain.Consumption, error) {
	row := r.db.QueryRow(ctx, `SELECT cs.id, cs.booking_id, cs.product_id, p.name, cs.quantity, cs.unit_price_cents, cs.total_price_cents, cs.created_at
		FROM consumptions cs JOIN products p ON p.id = cs.product_id WHERE cs.id = $1`, id)
	var c domain.Consumption
	if err := row.Scan(&c.ID, &c.BookingID, &c.ProductID, &c.ProductName, &c.Quantity, &c.UnitPriceCents, &c.TotalPriceCents, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGProductRepository) DeleteConsumption(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM consumptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ ProductRepository = (*PGProductRepository)(nil)
