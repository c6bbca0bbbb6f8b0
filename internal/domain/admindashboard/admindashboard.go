package admindashboard

import (
	"context"
	"fmt"

	"shopadmin/internal/infra/dbx"

	"golang.org/x/sync/errgroup"
)

const recentLimit = 3

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

// GetOverview runs the scalar rollups and the two recent lists concurrently.
func (r *Repository) GetOverview(ctx context.Context) (*Overview, error) {
	var o Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.scalars(ctx, &o) })
	g.Go(func() error {
		reviews, err := r.latestReviews(ctx)
		o.LatestReviews = reviews
		return err
	})
	g.Go(func() error {
		subs, err := r.recentSubscribers(ctx)
		o.RecentSubscribers = subs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) scalars(ctx context.Context, o *Overview) error {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM subscriptions WHERE is_active = true),

			(SELECT COALESCE(SUM(amount), 0)::float8 FROM orders
				WHERE status IN ('pending', 'shipping', 'delivered')),
			(SELECT COALESCE(SUM(amount), 0)::float8 FROM orders
				WHERE status IN ('pending', 'shipping', 'delivered')
				AND created_at >= now() - interval '24 hours'),

			(SELECT COUNT(*) FROM users WHERE created_at >= now() - interval '24 hours'),
			(SELECT COUNT(*) FROM subscriptions
				WHERE is_active = true AND created_at >= now() - interval '24 hours')
	`
	err := r.db.QueryRow(ctx, q).Scan(
		&o.TotalUsers,
		&o.TotalSubscribers,

		&o.TotalSalesAmount,
		&o.SalesInLast24h,

		&o.UsersInLast24h,
		&o.SubscribersInLast24h,
	)
	if err != nil {
		return fmt.Errorf("get dashboard totals: %w", err)
	}
	return nil
}

func (r *Repository) latestReviews(ctx context.Context) ([]ReviewSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.title, u.first_name, rv.rating, COALESCE(rv.comment, ''), rv.created_at
		FROM reviews rv
		LEFT JOIN products p ON p.id = rv.product_id
		LEFT JOIN users u ON u.id = rv.user_id
		ORDER BY rv.created_at DESC
		LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("latest reviews: %w", err)
	}
	defer rows.Close()

	out := make([]ReviewSummary, 0, recentLimit)
	for rows.Next() {
		var rv ReviewSummary
		if err := rows.Scan(&rv.ProductName, &rv.UserFirstName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repository) recentSubscribers(ctx context.Context) ([]SubscriberSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.user_id, s.status, s.is_active, s.created_at,
		       TRIM(CONCAT(u.first_name, ' ', u.last_name)), COALESCE(u.email, '')
		FROM subscriptions s
		LEFT JOIN users u ON u.id = s.user_id
		ORDER BY s.created_at DESC
		LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent subscribers: %w", err)
	}
	defer rows.Close()

	out := make([]SubscriberSummary, 0, recentLimit)
	for rows.Next() {
		var s SubscriberSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Status, &s.IsActive, &s.CreatedAt, &s.FullName, &s.Email); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
