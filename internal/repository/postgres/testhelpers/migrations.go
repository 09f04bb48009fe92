package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

// ResetSchema пересоздает схему карты: сначала все *.down.sql в обратном
// порядке, затем все *.up.sql по возрастанию номера, в одной транзакции
func ResetSchema(ctx context.Context, db *sqlx.DB, migrationsPath string) error {
	down, err := filepath.Glob(filepath.Join(migrationsPath, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("list down migrations: %w", err)
	}
	up, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list up migrations: %w", err)
	}
	if len(up) == 0 {
		return fmt.Errorf("no up migrations in %s", migrationsPath)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(down)))
	sort.Strings(up)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema reset: %w", err)
	}
	defer tx.Rollback()

	for _, path := range append(down, up...) {
		if err := execFile(ctx, tx, path); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema reset: %w", err)
	}
	return nil
}

func execFile(ctx context.Context, tx *sqlx.Tx, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
	}
	return nil
}
