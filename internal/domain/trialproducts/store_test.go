package trialproducts

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopadmin/internal/infra/dbx/dbxtest"
)

func TestCreateAndGet(t *testing.T) {
	now := time.Now().UTC()
	q := dbxtest.New().
		On("INSERT INTO trial_products", dbxtest.Result{Rows: [][]any{{int64(3), now, now}}}).
		On("FROM trial_products WHERE id", dbxtest.Result{Rows: [][]any{{
			int64(3), "Sample", "desc", 14, 50, "Beauty", []string{"a"}, []string{"u"}, now, now,
		}}})
	repo := NewRepository(q)

	tp := &TrialProduct{Title: "Sample", Description: "desc", TrialPeriod: 14, AvailableCount: 50, Category: "Beauty"}
	if err := repo.Create(context.Background(), tp); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tp.ID != 3 {
		t.Fatalf("id = %d", tp.ID)
	}

	got, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TrialPeriod != 14 || got.AvailableCount != 50 {
		t.Fatalf("unexpected trial product %+v", got)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	q := dbxtest.New().On("FROM trial_products WHERE id", dbxtest.Result{})
	if _, err := NewRepository(q).GetByID(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListEmpty(t *testing.T) {
	q := dbxtest.New().
		On("COUNT(*) FROM trial_products", dbxtest.Result{Rows: [][]any{{0}}}).
		On("ORDER BY created_at DESC", dbxtest.Result{})
	list, total, err := NewRepository(q).List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 || total != 0 {
		t.Fatalf("got %v, %d", list, total)
	}
}
