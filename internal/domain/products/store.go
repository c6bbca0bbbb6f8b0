package products

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("product not found")

// Store is the data access abstraction for the products domain.
type Store interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]*Product, int, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const productColumns = `id, title, description, price, old_price, sale_price, stock_count,
	category, tags, image_urls, cargo_weight, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.OldPrice, &p.SalePrice, &p.StockCount,
		&p.Category, &p.Tags, &p.ImageURLs, &p.CargoWeight, &p.CreatedAt, &p.UpdatedAt,
	)
}

// Create inserts p and fills the generated id and timestamps.
func (r *Repository) Create(ctx context.Context, p *Product) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}

	query := `
		INSERT INTO products (title, description, price, old_price, sale_price, stock_count,
			category, tags, image_urls, cargo_weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.Price, p.OldPrice, p.SalePrice, p.StockCount,
		p.Category, p.Tags, p.ImageURLs, p.CargoWeight,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`
	p := &Product{}
	if err := scanProduct(r.db.QueryRow(ctx, query, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List returns a page of products, newest first, and the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Product, int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return products, total, nil
}
