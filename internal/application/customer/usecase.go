package customer

import (
	"context"

	"github.com/danielmeza/catalogo-clientes/internal/application/dto"
	"github.com/danielmeza/catalogo-clientes/internal/domain"
	"github.com/danielmeza/catalogo-clientes/internal/domain/entity"
	"github.com/danielmeza/catalogo-clientes/internal/domain/repository"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

// UseCase casos de uso del catálogo de clientes: lectura del agregado
// cliente⇄direcciones y escritura con semántica de reemplazo total.
type UseCase struct {
	repo repository.CustomerRepository
	tx   TxRunner
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository, tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, tx: tx, log: log}
}

// List devuelve todos los clientes con sus direcciones. Si query no está vacío,
// filtra por nombre o número de cliente ignorando acentos y mayúsculas.
func (uc *UseCase) List(ctx context.Context, query string) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		out = append(out, toResponse(c))
	}
	return out, nil
}

// GetByID devuelve un cliente con sus direcciones o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(c), nil
}

// Create da de alta un cliente con sus direcciones y devuelve el ID asignado.
// name y customerNumber son obligatorios; las direcciones con calle o colonia
// vacías se descartan en silencio. El alta completa corre en una unidad atómica.
func (uc *UseCase) Create(ctx context.Context, in dto.CustomerRequest) (int64, error) {
	if in.Name == "" || in.CustomerNumber == "" {
		return 0, domain.ErrInvalidInput
	}
	c := toEntity(in)
	var id int64
	err := uc.tx.Run(ctx, func(repo repository.CustomerRepository) error {
		newID, err := repo.Create(c)
		if err != nil {
			return err
		}
		id = newID
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int64("customer_id", id).Str("customer_number", in.CustomerNumber).Msg("cliente creado")
	return id, nil
}

// Update sobreescribe los campos escalares sin condición y reemplaza por completo
// la colección de direcciones por la enviada: las filas previas no reenviadas
// desaparecen. El reemplazo no corre bajo una transacción que abarque ambas fases;
// un fallo entre el borrado y la inserción deja al cliente con cero direcciones
// y se reporta como error de escritura, nunca como éxito.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) error {
	if in.Name == "" || in.CustomerNumber == "" {
		return domain.ErrInvalidInput
	}
	c := toEntity(in)
	c.ID = id
	found, err := uc.repo.Update(c)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	uc.log.Info().Int64("customer_id", id).Msg("cliente actualizado")
	return nil
}

// Delete elimina el cliente y todas sus direcciones en una unidad atómica.
// Eliminar un ID inexistente se reporta como éxito, igual que en la fuente.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	err := uc.tx.Run(ctx, func(repo repository.CustomerRepository) error {
		return repo.Delete(id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("customer_id", id).Msg("cliente eliminado")
	return nil
}

// toEntity arma el agregado desde el payload aplicando los valores por defecto
// y la criba por dirección: calle o colonia vacías ⇒ la dirección no se persiste.
func toEntity(in dto.CustomerRequest) *entity.Customer {
	addrs := make([]entity.Address, 0, len(in.Addresses))
	for _, a := range in.Addresses {
		if a.Street == "" || a.Neighborhood == "" {
			continue
		}
		addrs = append(addrs, entity.Address{Street: a.Street, Neighborhood: a.Neighborhood})
	}
	return &entity.Customer{
		Name:           in.Name,
		Phone:          in.Phone,
		CustomerNumber: in.CustomerNumber,
		Email:          in.Email,
		Addresses:      addrs,
	}
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	addrs := make([]dto.AddressPayload, 0, len(c.Addresses))
	for _, a := range c.Addresses {
		addrs = append(addrs, dto.AddressPayload{ID: a.ID, Street: a.Street, Neighborhood: a.Neighborhood})
	}
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		CustomerNumber: c.CustomerNumber,
		Email:          c.Email,
		Addresses:      addrs,
	}
}
