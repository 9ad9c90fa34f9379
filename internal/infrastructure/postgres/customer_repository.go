package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danielmeza/catalogo-clientes/internal/domain/entity"
	"github.com/danielmeza/catalogo-clientes/internal/domain/repository"
	"github.com/danielmeza/catalogo-clientes/pkg/config"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo adaptador por consultas directas con parámetros enlazados (usable
// con pool o tx). Por defecto lee el agregado en la forma "documento incrustado":
// una subconsulta json_agg entrega las direcciones como columna JSON por fila de
// cliente. Con la forma "join" lee un recordset aplanado y agrupa las filas aquí;
// ambas formas entregan el mismo contrato.
type CustomerRepo struct {
	q         Querier
	log       *logger.Logger
	readShape string
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier, log *logger.Logger, readShape string) *CustomerRepo {
	return &CustomerRepo{q: q, log: log, readShape: readShape}
}

const listEmbeddedSQL = `
	SELECT c.id, c.name, c.phone, c.customer_number, c.email,
	       (SELECT json_agg(json_build_object(
	                   'id', d.id,
	                   'street', d.street,
	                   'neighborhood', d.neighborhood) ORDER BY d.id)
	          FROM addresses d
	         WHERE d.customer_id = c.id) AS addresses
	  FROM customers c`

const listJoinSQL = `
	SELECT c.id, c.name, c.phone, c.customer_number, c.email,
	       d.id, d.street, d.neighborhood
	  FROM customers c
	  LEFT JOIN addresses d ON d.customer_id = c.id`

// List devuelve todos los clientes con sus direcciones en orden de inserción.
func (r *CustomerRepo) List() ([]*entity.Customer, error) {
	if r.readShape == config.ReadShapeJoin {
		return r.listJoined(listJoinSQL + " ORDER BY c.id, d.id")
	}
	rows, err := r.q.Query(context.Background(), listEmbeddedSQL+" ORDER BY c.id")
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := r.scanEmbedded(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID devuelve un cliente con sus direcciones, o (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	if r.readShape == config.ReadShapeJoin {
		list, err := r.listJoined(listJoinSQL+" WHERE c.id = $1 ORDER BY d.id", id)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, nil
		}
		return list[0], nil
	}
	rows, err := r.q.Query(context.Background(), listEmbeddedSQL+" WHERE c.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("obtener cliente: %w", err)
		}
		return nil, nil
	}
	return r.scanEmbedded(rows)
}

// scanEmbedded lee una fila de la forma incrustada y normaliza el sub-documento
// de direcciones.
func (r *CustomerRepo) scanEmbedded(rows pgx.Rows) (*entity.Customer, error) {
	var c entity.Customer
	var raw []byte
	if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CustomerNumber, &c.Email, &raw); err != nil {
		return nil, fmt.Errorf("escanear cliente: %w", err)
	}
	c.Addresses = decodeAddressDoc(r.log, c.ID, raw)
	return &c, nil
}

// listJoined lee el recordset aplanado y agrupa las filas por cliente, conservando
// el orden del recordset.
func (r *CustomerRepo) listJoined(sql string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Customer, 0)
	index := make(map[int64]*entity.Customer)
	for rows.Next() {
		var c entity.Customer
		var addrID *int64
		var street, neighborhood *string
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CustomerNumber, &c.Email,
			&addrID, &street, &neighborhood); err != nil {
			return nil, fmt.Errorf("escanear cliente: %w", err)
		}
		cur, ok := index[c.ID]
		if !ok {
			c.Addresses = []entity.Address{}
			cur = &c
			index[c.ID] = cur
			list = append(list, cur)
		}
		if addrID != nil {
			cur.Addresses = append(cur.Addresses, entity.Address{
				ID:           *addrID,
				Street:       *street,
				Neighborhood: *neighborhood,
			})
		}
	}
	return list, rows.Err()
}

// Create inserta el cliente y sus direcciones. El ID nuevo sale del propio INSERT
// (RETURNING), nunca de una consulta posterior. La atomicidad cliente+direcciones
// la aporta el Querier: dentro de TxRunner ambas fases comparten transacción.
func (r *CustomerRepo) Create(c *entity.Customer) (int64, error) {
	var id int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO customers (name, phone, customer_number, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Name, c.Phone, c.CustomerNumber, c.Email,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insertar cliente: %w", err)
	}
	if err := r.insertAddresses(id, c.Addresses); err != nil {
		return 0, err
	}
	return id, nil
}

// Update sobreescribe los escalares y reemplaza por completo las direcciones:
// borrar todas, insertar las enviadas. Ninguna transacción abarca las dos fases;
// un fallo entre ambas deja al cliente con cero direcciones y se propaga como
// error de escritura.
func (r *CustomerRepo) Update(c *entity.Customer) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE customers
		   SET name = $2, phone = $3, customer_number = $4, email = $5
		 WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.CustomerNumber, c.Email,
	)
	if err != nil {
		return false, fmt.Errorf("actualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM addresses WHERE customer_id = $1`, c.ID); err != nil {
		return true, fmt.Errorf("borrar direcciones: %w", err)
	}
	if err := r.insertAddresses(c.ID, c.Addresses); err != nil {
		return true, err
	}
	return true, nil
}

// Delete elimina las direcciones primero y luego el cliente: un fallo a medio
// camino nunca deja direcciones huérfanas. El esquema además lleva ON DELETE CASCADE.
func (r *CustomerRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM addresses WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("borrar direcciones: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("borrar cliente: %w", err)
	}
	return nil
}

func (r *CustomerRepo) insertAddresses(customerID int64, addrs []entity.Address) error {
	for _, a := range addrs {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO addresses (customer_id, street, neighborhood)
			VALUES ($1, $2, $3)`,
			customerID, a.Street, a.Neighborhood,
		)
		if err != nil {
			return fmt.Errorf("insertar dirección: %w", err)
		}
	}
	return nil
}
