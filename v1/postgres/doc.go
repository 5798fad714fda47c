// Package postgres manages the PostgreSQL connection used by the catalog.
//
// Postgres wraps a *gorm.DB behind an atomic pointer so the connection can be
// replaced by the reconnect loop without blocking readers. MonitorConnection
// pings every ten seconds and signals RetryConnection on failure; FXModule
// runs both for the lifetime of the application.
//
// Errors from gorm and the pgx driver should be passed through TranslateError
// before inspection:
//
//	if err := pg.TranslateError(db.Create(&row).Error); errors.Is(err, postgres.ErrDuplicateKey) {
//		// row already exists
//	}
package postgres
