package db

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedMigrations(t *testing.T) {
	ms, err := Migrations(nil)
	if err != nil {
		t.Fatalf("Migrations: %v", err)
	}
	if len(ms) == 0 || ms[0].Version != "0001" {
		t.Fatalf("unexpected migrations %+v", ms)
	}
	for _, table := range []string{"products", "trial_products", "orders", "order_items", "users", "user_addresses", "reviews", "subscriptions"} {
		if !strings.Contains(ms[0].Up, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Errorf("initial migration does not create %s", table)
		}
	}
	if ms[0].Down == "" {
		t.Error("initial migration has no down script")
	}
}

func TestMigrationsOrderedByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_tags.up.sql":   {Data: []byte("up2")},
		"0001_init.up.sql":   {Data: []byte("up1")},
		"0001_init.down.sql": {Data: []byte("down1")},
		"README.md":          {Data: []byte("ignored")},
	}
	ms, err := Migrations(fsys)
	if err != nil {
		t.Fatalf("Migrations: %v", err)
	}
	if len(ms) != 2 || ms[0].Version != "0001" || ms[1].Version != "0002" {
		t.Fatalf("unexpected order %+v", ms)
	}
	if ms[0].Down != "down1" || ms[1].Down != "" {
		t.Fatalf("down scripts not paired: %+v", ms)
	}
}

func TestMigrationsRejectsMissingUp(t *testing.T) {
	fsys := fstest.MapFS{"0003_x.down.sql": {Data: []byte("down")}}
	if _, err := Migrations(fsys); err == nil {
		t.Fatal("expected error for migration without up script")
	}
}
