// Package dbx содержит общие для репозиториев абстракции над database/sql
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX - методы, общие для *sql.DB и *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx выполняет fn в транзакции с уровнем изоляции по умолчанию.
// Ошибка fn откатывает транзакцию и возвращается как есть, чтобы
// errors.Is продолжал находить доменные ошибки. Неудачный откат
// добавляется к ней через errors.Join. Паника откатывает транзакцию
// и пробрасывается дальше.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		rbErr := tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true

	return nil
}
