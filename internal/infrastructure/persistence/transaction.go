package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// txKey is the context key under which an open transaction travels
type txKey struct{}

// GormTransactionManager implements shared.TransactionManager on top of
// GORM transactions. The open transaction is stored in the context, so
// every repository call made inside fn with that context joins the same
// transaction.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a single transaction. Returning an
// error from fn rolls everything back.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)

// conn resolves the database handle for a repository call: the open
// transaction carried by the context if there is one, otherwise the
// repository's own connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
