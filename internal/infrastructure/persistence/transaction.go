package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactionManager implements treasury.TransactionManager on GORM.
// The transaction handle travels in the context, so repository calls made
// through the callback's context automatically join the transaction.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction from the context when one is active,
// otherwise the base connection.
func dbFrom(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}
