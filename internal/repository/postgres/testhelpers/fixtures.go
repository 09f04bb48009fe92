package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures выполняет SQL-файлы из testdata по порядку
func LoadFixtures(ctx context.Context, db *sqlx.DB, dir string, files ...string) error {
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", name, err)
		}
	}
	return nil
}

// SetPlaceStatus меняет статус места (для проверки пересчета количества)
func SetPlaceStatus(ctx context.Context, db *sqlx.DB, slug, status string) error {
	res, err := db.ExecContext(ctx, "UPDATE places SET status = $1 WHERE slug = $2", status, slug)
	if err != nil {
		return fmt.Errorf("set status of place %s: %w", slug, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("place %s not found", slug)
	}
	return nil
}
