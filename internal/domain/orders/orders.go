package orders

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

const feedSelect = `
SELECT o.id, o.status, o.created_at, o.amount,
       u.id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(u.email, '')`

// ListFeed returns a page of orders, newest first, optionally filtered by status.
func (r *Repository) ListFeed(ctx context.Context, status string, limit, offset int) ([]*FeedOrder, int, error) {
	where := "1=1"
	args := []any{}
	arg := 1

	if status != "" {
		where += fmt.Sprintf(" AND o.status = $%d", arg)
		args = append(args, status)
		arg++
	}

	q := fmt.Sprintf(feedSelect+`,
       COUNT(*) OVER() AS total_count
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
WHERE %s
ORDER BY o.created_at DESC, o.id DESC
LIMIT $%d OFFSET $%d`, where, arg, arg+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feed orders: %w", err)
	}
	defer rows.Close()

	var (
		out   = make([]*FeedOrder, 0, limit)
		total int
	)
	for rows.Next() {
		var (
			o      FeedOrder
			userID *int64
			t      int
		)
		if err := rows.Scan(
			&o.OrderID, &o.Status, &o.CreatedAt, &o.Amount,
			&userID, &o.User.FirstName, &o.User.LastName, &o.User.Email,
			&t,
		); err != nil {
			return nil, 0, fmt.Errorf("scan feed order: %w", err)
		}
		if userID != nil {
			o.User.UserID = *userID
		}
		total = t
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	// past the last page the window count is unavailable
	if len(out) == 0 && offset > 0 {
		countQ := fmt.Sprintf(`SELECT COUNT(*) FROM orders o WHERE %s`, where)
		if err := r.q.QueryRow(ctx, countQ, args[:arg-1]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count feed orders: %w", err)
		}
	}

	if err := r.attachFeedItems(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) GetFeedOrder(ctx context.Context, id int64) (*FeedOrder, error) {
	var (
		o      FeedOrder
		userID *int64
	)
	err := r.q.QueryRow(ctx, feedSelect+`
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
WHERE o.id = $1`, id).Scan(
		&o.OrderID, &o.Status, &o.CreatedAt, &o.Amount,
		&userID, &o.User.FirstName, &o.User.LastName, &o.User.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feed order: %w", err)
	}
	if userID != nil {
		o.User.UserID = *userID
	}

	if err := r.attachFeedItems(ctx, []*FeedOrder{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// attachFeedItems loads the lines of all orders in one query.
func (r *Repository) attachFeedItems(ctx context.Context, orders []*FeedOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int64]*FeedOrder, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
		o.Items = []FeedItem{}
		byID[o.OrderID] = o
	}

	rows, err := r.q.Query(ctx, `
SELECT oi.order_id, p.title, p.image_urls[1], oi.quantity, oi.price
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ANY($1)
ORDER BY oi.order_id, oi.id`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			it      FeedItem
		)
		if err := rows.Scan(&orderID, &it.Title, &it.ImageURL, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}

	for _, o := range orders {
		o.ItemsCount = len(o.Items)
	}
	return nil
}

func (r *Repository) GetDetail(ctx context.Context, id int64) (*OrderDetail, error) {
	var (
		d      OrderDetail
		userID *int64
		addrID *int64
		addr   struct {
			fullName, phone, address, city, state, postal, country, kind *string
		}
	)
	err := r.q.QueryRow(ctx, `
SELECT o.id, o.created_at, o.payment_intent_id, o.amount, o.currency, o.status,
       u.id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(u.email, ''),
       a.id, a.full_name, a.phone_number, a.address, a.city, a.state, a.postal_code, a.country, a.address_type
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
LEFT JOIN user_addresses a ON a.id = o.delivery_address_id
WHERE o.id = $1`, id).Scan(
		&d.OrderID, &d.CreatedAt, &d.PaymentIntentID, &d.Amount, &d.Currency, &d.Status,
		&userID, &d.User.FirstName, &d.User.LastName, &d.User.Email,
		&addrID, &addr.fullName, &addr.phone, &addr.address, &addr.city, &addr.state,
		&addr.postal, &addr.country, &addr.kind,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order detail: %w", err)
	}
	if userID != nil {
		d.User.UserID = *userID
	}
	if addrID != nil {
		d.DeliveryAddress = &DeliveryAddress{
			FullName:    deref(addr.fullName),
			PhoneNumber: deref(addr.phone),
			Address:     deref(addr.address),
			City:        deref(addr.city),
			State:       deref(addr.state),
			PostalCode:  deref(addr.postal),
			Country:     deref(addr.country),
			AddressType: deref(addr.kind),
		}
	}

	rows, err := r.q.Query(ctx, `
SELECT oi.product_id, p.title, p.image_urls[1], p.price, p.sale_price, p.cargo_weight, oi.quantity
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.id`, id)
	if err != nil {
		return nil, fmt.Errorf("load order detail items: %w", err)
	}
	defer rows.Close()

	d.Items = []DetailItem{}
	for rows.Next() {
		var it DetailItem
		if err := rows.Scan(&it.ProductID, &it.Title, &it.ImageURL, &it.Price, &it.SalePrice, &it.CargoWeight, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order detail item: %w", err)
		}
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return &d, nil
}

// UpdateStatus sets the status of an order and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) (*Order, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var o Order
	err := r.q.QueryRow(ctx, `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, user_id, delivery_address_id, payment_intent_id, amount, currency, status, created_at, updated_at`,
		id, status,
	).Scan(&o.ID, &o.UserID, &o.DeliveryAddressID, &o.PaymentIntentID, &o.Amount, &o.Currency, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &o, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
