package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopadmin/internal/infra/dbx/dbxtest"
)

func strp(s string) *string { return &s }

func TestListFeedAttachesItems(t *testing.T) {
	now := time.Now().UTC()
	q := dbxtest.New().
		On("FROM order_items oi", dbxtest.Result{Rows: [][]any{
			{int64(11), "Lamp", "https://cdn/lamp.webp", 2, 40.0},
			{int64(11), nil, nil, 1, 5.0},
			{int64(10), "Mug", "https://cdn/mug.webp", 1, 12.0},
		}}).
		On("COUNT(*) OVER()", dbxtest.Result{Rows: [][]any{
			{int64(11), "pending", now, 85.0, int64(1), "Ada", "Lovelace", "ada@example.com", 2},
			{int64(10), "pending", now.Add(-time.Hour), 12.0, nil, "", "", "", 2},
		}})

	list, total, err := NewRepository(q).ListFeed(context.Background(), StatusPending, 10, 0)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("total=%d len=%d", total, len(list))
	}
	first := list[0]
	if first.ItemsCount != 2 || first.User.FirstName != "Ada" || first.User.UserID != 1 {
		t.Fatalf("unexpected first order %+v", first)
	}
	if first.Items[1].Title != nil || first.Items[1].ImageURL != nil {
		t.Fatal("missing product should give null title and image")
	}
	if list[1].ItemsCount != 1 || list[1].User.UserID != 0 {
		t.Fatalf("unexpected second order %+v", list[1])
	}

	call := q.CallsMatching("COUNT(*) OVER()")[0]
	if call.Args[0] != StatusPending || len(call.Args) != 3 {
		t.Fatalf("status filter args = %v", call.Args)
	}
}

func TestListFeedPastLastPageCountsSeparately(t *testing.T) {
	q := dbxtest.New().
		On("COUNT(*) OVER()", dbxtest.Result{}).
		On("SELECT COUNT(*) FROM orders", dbxtest.Result{Rows: [][]any{{7}}})

	list, total, err := NewRepository(q).ListFeed(context.Background(), "", 10, 50)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if len(list) != 0 || total != 7 {
		t.Fatalf("len=%d total=%d", len(list), total)
	}
}

func TestGetFeedOrderNotFound(t *testing.T) {
	q := dbxtest.New().On("WHERE o.id = $1", dbxtest.Result{})
	if _, err := NewRepository(q).GetFeedOrder(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetDetail(t *testing.T) {
	now := time.Now().UTC()
	q := dbxtest.New().
		On("LEFT JOIN user_addresses", dbxtest.Result{Rows: [][]any{{
			int64(5), now, strp("pi_123"), 99.5, "usd", "shipping",
			int64(1), "Ada", "Lovelace", "ada@example.com",
			int64(9), "Ada Lovelace", "555", "1 Main St", "London", "LDN", "N1", "UK", "home",
		}}}).
		On("WHERE oi.order_id = $1", dbxtest.Result{Rows: [][]any{
			{int64(3), "Lamp", "https://cdn/lamp.webp", 40.0, nil, 1.2, 2},
		}})

	d, err := NewRepository(q).GetDetail(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if d.DeliveryAddress == nil || d.DeliveryAddress.City != "London" {
		t.Fatalf("address not loaded: %+v", d.DeliveryAddress)
	}
	if *d.PaymentIntentID != "pi_123" || d.Currency != "usd" {
		t.Fatalf("unexpected detail %+v", d)
	}
	if len(d.Items) != 1 || d.Items[0].SalePrice != nil || *d.Items[0].CargoWeight != 1.2 {
		t.Fatalf("unexpected items %+v", d.Items)
	}
}

func TestUpdateStatus(t *testing.T) {
	now := time.Now().UTC()
	q := dbxtest.New().On("UPDATE orders", dbxtest.Result{Rows: [][]any{{
		int64(5), int64(1), nil, nil, 10.0, "usd", "delivered", now, now,
	}}})

	o, err := NewRepository(q).UpdateStatus(context.Background(), 5, StatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if o.Status != StatusDelivered {
		t.Fatalf("status = %s", o.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	q := dbxtest.New()
	_, err := NewRepository(q).UpdateStatus(context.Background(), 5, "lost")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if len(q.Calls()) != 0 {
		t.Fatal("invalid status must not reach the database")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	q := dbxtest.New().On("UPDATE orders", dbxtest.Result{})
	if _, err := NewRepository(q).UpdateStatus(context.Background(), 5, StatusReturned); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
