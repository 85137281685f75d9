package persistence

import (
	"context"

	"github.com/jinzhu/gorm"
)

// Transaction runs fn in a database transaction bound to ctx. A context cancelled before the
// commit rolls everything back; once committed, cancellation has no effect.
func Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ActiveDataSourceManager.GormDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		return ctx.Err()
	})
}
