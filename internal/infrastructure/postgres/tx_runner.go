package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

var _ libro.LibroTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLibro inicia una transacción, ejecuta fn con los repos del libro atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunLibro(ctx context.Context, fn func(
	periods repository.PeriodRepository,
	purchases repository.PurchaseEntryRepository,
	sales repository.SaleEntryRepository,
	notes repository.NoteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPeriodRepository(tx),
		NewPurchaseEntryRepository(tx),
		NewSaleEntryRepository(tx),
		NewNoteRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
