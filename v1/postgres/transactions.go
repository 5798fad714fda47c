package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Transaction runs fn inside a database transaction. The transaction is
// rolled back when fn returns an error or panics, and committed otherwise.
//
//	err := pg.Transaction(ctx, func(tx *gorm.DB) error {
//		if err := tx.Create(&group).Error; err != nil {
//			return err
//		}
//		return tx.Create(&product).Error
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return p.WithContext(ctx).Transaction(fn)
}
