package postgres

import "fmt"

// Migrate creates or alters tables for the given models.
func (p *Postgres) Migrate(models ...interface{}) error {
	if err := p.DB().AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
