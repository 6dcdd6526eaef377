package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies every embedded up migration for the connection's driver,
// in file name order. The DDL is idempotent, so it is safe to rerun.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dir := path.Join("migrations", db.DriverName())

	files, err := fs.Glob(migrations, path.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := migrations.ReadFile(file)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply %s: %w", path.Base(file), err)
		}
		zap.L().Info("applied migration", zap.String("file", path.Base(file)))
	}
	return nil
}
