package order

import (
	"context"
	"database/sql"

	"littlelemon/internal/cart"
)

// UnitOfWork groups order and cart writes in one transaction. Rollback
// after Commit is a no-op.
type UnitOfWork interface {
	Orders() Repository
	Carts() cart.Repository
	Commit() error
	Rollback() error
}

type Transactor interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

type sqlTransactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlUnitOfWork{
		tx:     tx,
		orders: NewRepository(tx),
		carts:  cart.NewRepository(tx),
	}, nil
}

type sqlUnitOfWork struct {
	tx     *sql.Tx
	orders Repository
	carts  cart.Repository
}

func (u *sqlUnitOfWork) Orders() Repository     { return u.orders }
func (u *sqlUnitOfWork) Carts() cart.Repository { return u.carts }
func (u *sqlUnitOfWork) Commit() error          { return u.tx.Commit() }

func (u *sqlUnitOfWork) Rollback() error {
	err := u.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
