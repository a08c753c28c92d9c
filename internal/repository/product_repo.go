package repository

import (
	"context"
	"errors"

	"taskhub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductNotFound = errors.New("product not found")

const productColumns = `id::text, name, quantity, price, image, created_at, updated_at`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Create assigns the id and timestamps on p.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	p.ID = uuid.NewString()
	return r.db.QueryRow(ctx,
		`INSERT INTO products (id, name, quantity, price, image)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Quantity, p.Price, p.Image,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update applies the non-nil fields of patch and returns the stored product.
func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	p, err := scanProduct(r.db.QueryRow(ctx,
		`UPDATE products SET
			name = COALESCE($2, name),
			quantity = COALESCE($3, quantity),
			price = COALESCE($4, price),
			image = COALESCE($5, image),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, patch.Name, patch.Quantity, patch.Price, patch.Image,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Ping is used by the readiness probe.
func (r *ProductRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
