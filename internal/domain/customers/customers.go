package customers

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("customer not found")

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

// the latest subscription of a user decides the reported status
const customerSelect = `
SELECT u.id, u.email, TRIM(CONCAT(u.first_name, ' ', u.last_name)),
       (SELECT COUNT(*) FROM orders o WHERE o.user_id = u.id),
       (SELECT COUNT(*) FROM reviews rv WHERE rv.user_id = u.id),
       (SELECT s.status FROM subscriptions s WHERE s.user_id = u.id ORDER BY s.created_at DESC LIMIT 1)
FROM users u`

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(&c.UserID, &c.Email, &c.FullName, &c.TotalOrderCount, &c.TotalReviewCount, &c.SubscriptionStatus)
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Customer, int, error) {
	rows, err := r.q.Query(ctx, customerSelect+`
ORDER BY u.id
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := make([]*Customer, 0, limit)
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	return out, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	if err := scanCustomer(r.q.QueryRow(ctx, customerSelect+`
WHERE u.id = $1`, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
