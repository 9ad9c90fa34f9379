package repository

import "github.com/danielmeza/catalogo-clientes/internal/domain/entity"

// CustomerRepository define el puerto de persistencia del agregado cliente⇄direcciones.
// Los adaptadores normalizan la forma física de la fuente (sub-documento por fila,
// recordset aplanado o documento por lotes) a este contrato; la lógica de negocio
// nunca distingue entre ellas.
type CustomerRepository interface {
	// List devuelve todos los clientes, cada uno con Addresses no nil en orden de inserción.
	List() ([]*entity.Customer, error)
	// GetByID devuelve (nil, nil) cuando el cliente no existe.
	GetByID(id int64) (*entity.Customer, error)
	// Create inserta el cliente con sus direcciones y devuelve el ID asignado por la
	// fuente en el propio insert, nunca mediante una consulta posterior.
	Create(c *entity.Customer) (int64, error)
	// Update sobreescribe los campos escalares y reemplaza por completo la colección
	// de direcciones por la enviada. Devuelve false si el cliente no existe.
	Update(c *entity.Customer) (bool, error)
	// Delete elimina el cliente y todas sus direcciones; no quedan huérfanas.
	// Borrar un ID inexistente no es error.
	Delete(id int64) error
}
