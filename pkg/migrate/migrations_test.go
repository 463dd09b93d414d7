package migrate_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one migration for %s, got %d", pattern, len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCatalogMigrationContainsConstraints(t *testing.T) {
	assertContains(t, readMigration(t, "*_create_catalog.sql"), []string{
		"CREATE TABLE IF NOT EXISTS categories",
		"FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE CASCADE",
		"CONSTRAINT ux_products_slug UNIQUE (slug)",
		"CONSTRAINT ux_product_variants_sku UNIQUE (sku)",
		"CONSTRAINT ux_product_variants_combo UNIQUE (product_id, color, size, material)",
		"CONSTRAINT ux_product_reviews_product_user UNIQUE (product_id, user_id)",
		"CHECK (rating BETWEEN 1 AND 5)",
		"DROP TABLE IF EXISTS categories",
	})
}

func TestCartOrderMigrationContainsConstraints(t *testing.T) {
	assertContains(t, readMigration(t, "*_create_carts_orders.sql"), []string{
		"CONSTRAINT ux_carts_user UNIQUE (user_id)",
		"CONSTRAINT ux_cart_items_cart_variant UNIQUE (cart_id, variant_id)",
		"CHECK (quantity >= 1)",
		"'pending', 'processing', 'shipped', 'delivered', 'cancelled', 'refunded'",
		"'credit_card', 'debit_card', 'paypal', 'stripe', 'cash_on_delivery', 'bank_transfer'",
		"price numeric(10,2) NOT NULL",
		"DROP TABLE IF EXISTS order_items",
	})
}

func TestValidateDirAcceptsRepositoryMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	embedded, err := fs.Glob(migrate.Embedded, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob embedded: %v", err)
	}
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob disk: %v", err)
	}
	if len(embedded) != len(onDisk) || len(embedded) == 0 {
		t.Fatalf("embedded %d migrations, disk has %d", len(embedded), len(onDisk))
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Gift Cards!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_gift_cards.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
	if err := migrate.ValidateDir(t.TempDir()); err == nil {
		t.Fatal("expected empty dir to fail validation")
	}
}
