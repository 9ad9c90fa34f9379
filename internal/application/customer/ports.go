package customer

import (
	"context"

	"github.com/danielmeza/catalogo-clientes/internal/domain/repository"
)

// TxRunner ejecuta fn con un repositorio atado a una unidad de trabajo atómica.
// Los adaptadores cuyo backend ya es atómico por operación (rutinas almacenadas)
// pueden entregar el repositorio tal cual.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.CustomerRepository) error) error
}
