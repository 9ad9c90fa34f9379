package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danielmeza/catalogo-clientes/internal/application/customer"
	"github.com/danielmeza/catalogo-clientes/internal/domain/repository"
	"github.com/danielmeza/catalogo-clientes/pkg/config"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

var _ customer.TxRunner = (*TxRunner)(nil)
var _ customer.TxRunner = (*RoutineTxRunner)(nil)

// TxRunner ejecuta callbacks con un repositorio atado a una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con un repositorio atado a la tx y hace
// Commit o Rollback. El rollback diferido corre en todo camino de salida; su fallo
// tras un commit exitoso no altera el resultado de la operación.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.CustomerRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx, r.log, config.ReadShapeEmbedded)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RoutineTxRunner entrega el repositorio de rutinas tal cual: cada rutina ya es
// atómica del lado del servidor, no hay transacción que abrir aquí.
type RoutineTxRunner struct {
	repo repository.CustomerRepository
}

// NewRoutineTxRunner construye el runner de paso directo.
func NewRoutineTxRunner(repo repository.CustomerRepository) *RoutineTxRunner {
	return &RoutineTxRunner{repo: repo}
}

// Run ejecuta fn con el repositorio de rutinas.
func (r *RoutineTxRunner) Run(ctx context.Context, fn func(repo repository.CustomerRepository) error) error {
	return fn(r.repo)
}
