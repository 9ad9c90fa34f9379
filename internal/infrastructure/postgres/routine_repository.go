package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/danielmeza/catalogo-clientes/internal/domain/entity"
	"github.com/danielmeza/catalogo-clientes/internal/domain/repository"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

var _ repository.CustomerRepository = (*RoutineRepo)(nil)

// RoutineRepo adaptador sobre rutinas almacenadas. Pensado para despliegues detrás
// de poolers en modo transacción que no admiten sentencias preparadas: toda llamada
// viaja por el protocolo simple y cada valor libre se incrusta escapado con
// quoteLiteral. Las lecturas llegan en modo documento por lotes: la rutina responde
// el resultado completo pre-serializado como JSON en una sola celda. Cada rutina es
// atómica del lado del servidor.
type RoutineRepo struct {
	q   Querier
	log *logger.Logger
}

// NewRoutineRepository construye el adaptador de rutinas.
func NewRoutineRepository(q Querier, log *logger.Logger) *RoutineRepo {
	return &RoutineRepo{q: q, log: log}
}

// List llama customers_document() y decodifica el documento por lotes.
func (r *RoutineRepo) List() ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT customers_document()::text`, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	raw, _, err := r.batchDocument(rows)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	var docs []customerDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		r.log.Error().Str("raw", string(raw)).Err(err).Msg("documento de clientes ilegible")
		return nil, fmt.Errorf("interpretar documento de clientes: %w", err)
	}
	list := make([]*entity.Customer, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toEntity())
	}
	return list, nil
}

// GetByID llama customer_document(id). La rutina responde NULL cuando el cliente
// no existe; eso se traduce a (nil, nil), no a error de lectura.
func (r *RoutineRepo) GetByID(id int64) (*entity.Customer, error) {
	stmt := "SELECT customer_document(" + strconv.FormatInt(id, 10) + ")::text"
	rows, err := r.q.Query(context.Background(), stmt, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	defer rows.Close()

	raw, missing, err := r.batchDocument(rows)
	if missing {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	var doc customerDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.log.Error().Str("raw", string(raw)).Err(err).Msg("documento de cliente ilegible")
		return nil, fmt.Errorf("interpretar documento de cliente: %w", err)
	}
	return doc.toEntity(), nil
}

// Create llama create_customer con los escalares y el documento JSON de direcciones.
func (r *RoutineRepo) Create(c *entity.Customer) (int64, error) {
	doc, err := addressesDocument(c.Addresses)
	if err != nil {
		return 0, err
	}
	stmt := fmt.Sprintf("SELECT create_customer(%s, %s, %s, %s, %s)",
		quoteLiteral(c.Name), quoteLiteral(c.Phone), quoteLiteral(c.CustomerNumber),
		quoteLiteral(c.Email), quoteLiteral(doc))
	var id int64
	if err := r.q.QueryRow(context.Background(), stmt, pgx.QueryExecModeSimpleProtocol).Scan(&id); err != nil {
		return 0, fmt.Errorf("crear cliente: %w", err)
	}
	return id, nil
}

// Update llama update_customer; la rutina devuelve false si el cliente no existe.
// El reemplazo total de direcciones ocurre dentro de la rutina.
func (r *RoutineRepo) Update(c *entity.Customer) (bool, error) {
	doc, err := addressesDocument(c.Addresses)
	if err != nil {
		return false, err
	}
	stmt := fmt.Sprintf("SELECT update_customer(%s, %s, %s, %s, %s, %s)",
		strconv.FormatInt(c.ID, 10),
		quoteLiteral(c.Name), quoteLiteral(c.Phone), quoteLiteral(c.CustomerNumber),
		quoteLiteral(c.Email), quoteLiteral(doc))
	var found bool
	if err := r.q.QueryRow(context.Background(), stmt, pgx.QueryExecModeSimpleProtocol).Scan(&found); err != nil {
		return false, fmt.Errorf("actualizar cliente: %w", err)
	}
	return found, nil
}

// Delete llama delete_customer; las direcciones caen con el cliente dentro de la rutina.
func (r *RoutineRepo) Delete(id int64) error {
	stmt := "SELECT delete_customer(" + strconv.FormatInt(id, 10) + ")"
	if _, err := r.q.Exec(context.Background(), stmt, pgx.QueryExecModeSimpleProtocol); err != nil {
		return fmt.Errorf("borrar cliente: %w", err)
	}
	return nil
}

// batchDocument extrae el documento JSON de la primera fila del resultado.
// missing=true cuando la fuente respondió fila con puros NULL (cliente inexistente).
// Un resultado sin documento localizable se registra con el contenido crudo de la
// fila y se devuelve como error de lectura.
func (r *RoutineRepo) batchDocument(rows pgx.Rows) (raw []byte, missing bool, err error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
	values, err := rows.Values()
	if err != nil {
		return nil, false, err
	}
	raw, err = firstJSONField(values)
	if err != nil {
		if allNull(values) {
			return nil, true, nil
		}
		r.log.Error().Interface("row", values).Msg("la fila de la rutina no contiene documento JSON")
		return nil, false, err
	}
	return raw, false, nil
}

// addressesDocument serializa la lista de direcciones al documento JSON que
// consumen las rutinas de escritura.
func addressesDocument(addrs []entity.Address) (string, error) {
	docs := make([]addressDoc, 0, len(addrs))
	for _, a := range addrs {
		docs = append(docs, addressDoc{Street: a.Street, Neighborhood: a.Neighborhood})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("serializar direcciones: %w", err)
	}
	return string(raw), nil
}
