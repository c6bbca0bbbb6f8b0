package trialproducts

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("trial product not found")

type Store interface {
	Create(ctx context.Context, t *TrialProduct) error
	GetByID(ctx context.Context, id int64) (*TrialProduct, error)
	List(ctx context.Context, limit, offset int) ([]*TrialProduct, int, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

const trialProductColumns = `id, title, description, trial_period, available_count,
	category, tags, image_urls, created_at, updated_at`

func scanTrialProduct(row pgx.Row, t *TrialProduct) error {
	return row.Scan(
		&t.ID, &t.Title, &t.Description, &t.TrialPeriod, &t.AvailableCount,
		&t.Category, &t.Tags, &t.ImageURLs, &t.CreatedAt, &t.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, t *TrialProduct) error {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.ImageURLs == nil {
		t.ImageURLs = []string{}
	}

	query := `
		INSERT INTO trial_products (title, description, trial_period, available_count,
			category, tags, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		t.Title, t.Description, t.TrialPeriod, t.AvailableCount,
		t.Category, t.Tags, t.ImageURLs,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create trial product: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*TrialProduct, error) {
	query := `SELECT ` + trialProductColumns + ` FROM trial_products WHERE id = $1;`
	t := &TrialProduct{}
	if err := scanTrialProduct(r.db.QueryRow(ctx, query, id), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get trial product: %w", err)
	}
	return t, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*TrialProduct, int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+trialProductColumns+`
		FROM trial_products
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list trial products: %w", err)
	}
	defer rows.Close()

	out := make([]*TrialProduct, 0, limit)
	for rows.Next() {
		var t TrialProduct
		if err := scanTrialProduct(rows, &t); err != nil {
			return nil, 0, fmt.Errorf("scan trial product: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trial_products`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trial products: %w", err)
	}
	return out, total, nil
}
