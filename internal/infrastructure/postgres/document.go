package postgres

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/danielmeza/catalogo-clientes/internal/domain/entity"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

// errNoDocument indica que la fuente no entregó ningún campo con documento JSON
// en el modo documento por lotes.
var errNoDocument = errors.New("la fuente no devolvió ningún campo con documento JSON")

// addressDoc dirección tal como aparece en los documentos JSON emitidos por la fuente.
type addressDoc struct {
	ID           int64  `json:"id"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
}

// customerDoc cliente completo en el modo documento por lotes.
type customerDoc struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	CustomerNumber string       `json:"customerNumber"`
	Email          string       `json:"email"`
	Addresses      []addressDoc `json:"addresses"`
}

func (d customerDoc) toEntity() *entity.Customer {
	addrs := make([]entity.Address, 0, len(d.Addresses))
	for _, a := range d.Addresses {
		addrs = append(addrs, entity.Address{ID: a.ID, Street: a.Street, Neighborhood: a.Neighborhood})
	}
	return &entity.Customer{
		ID:             d.ID,
		Name:           d.Name,
		Phone:          d.Phone,
		CustomerNumber: d.CustomerNumber,
		Email:          d.Email,
		Addresses:      addrs,
	}
}

// decodeAddressDoc normaliza el sub-documento de direcciones de una fila de cliente.
// NULL o vacío ⇒ lista vacía. JSON ilegible ⇒ lista vacía, registrando la anomalía:
// un sub-documento corrupto de un cliente jamás tumba el lote completo. Un objeto
// suelto sin envoltura de arreglo ⇒ lista de un elemento.
func decodeAddressDoc(log *logger.Logger, customerID int64, raw []byte) []entity.Address {
	if len(raw) == 0 {
		return []entity.Address{}
	}
	var docs []addressDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		var single addressDoc
		if err2 := json.Unmarshal(raw, &single); err2 == nil {
			return []entity.Address{{ID: single.ID, Street: single.Street, Neighborhood: single.Neighborhood}}
		}
		log.Warn().
			Int64("customer_id", customerID).
			Str("raw", string(raw)).
			Err(err).
			Msg("sub-documento de direcciones ilegible, se asume sin direcciones")
		return []entity.Address{}
	}
	out := make([]entity.Address, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.Address{ID: d.ID, Street: d.Street, Neighborhood: d.Neighborhood})
	}
	return out
}

// firstJSONField localiza entre los valores de una fila el primer campo cuyo texto
// comienza con '[' o '{'. Es el contrato del modo documento por lotes: la rutina
// responde el resultado completo pre-serializado en una sola celda.
func firstJSONField(values []any) ([]byte, error) {
	for _, v := range values {
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case []byte:
			s = string(t)
		default:
			continue
		}
		trimmed := strings.TrimSpace(s)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			return []byte(trimmed), nil
		}
	}
	return nil, errNoDocument
}

// allNull indica si todos los valores de la fila son NULL.
func allNull(values []any) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}
