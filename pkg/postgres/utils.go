package postgres

import (
	"gorm.io/gorm"
)

// DB returns the underlying GORM DB client.
// This is for cases where direct access to GORM is needed.
func (p *Postgres) DB() *gorm.DB {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// GracefulShutdown stops the monitoring goroutines and closes the
// underlying connection pool.
func (p *Postgres) GracefulShutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	db, err := p.DB().DB()
	if err != nil {
		return err
	}
	return db.Close()
}
