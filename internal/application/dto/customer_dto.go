package dto

// AddressPayload dirección tal como viaja por el API.
// El ID solo aparece en respuestas de direcciones ya persistidas.
type AddressPayload struct {
	ID           int64  `json:"id,omitempty"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
}

// CustomerRequest body para POST /api/customers y PUT /api/customers/:id.
// phone y email son opcionales (cadena vacía por defecto); addresses puede omitirse.
type CustomerRequest struct {
	Name           string           `json:"name"`
	Phone          string           `json:"phone,omitempty"`
	CustomerNumber string           `json:"customerNumber"`
	Email          string           `json:"email,omitempty"`
	Addresses      []AddressPayload `json:"addresses,omitempty"`
}

// CustomerResponse cliente con sus direcciones en respuestas.
// Addresses está siempre presente: [] cuando no hay direcciones, nunca null.
type CustomerResponse struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Phone          string           `json:"phone"`
	CustomerNumber string           `json:"customerNumber"`
	Email          string           `json:"email"`
	Addresses      []AddressPayload `json:"addresses"`
}

// CreateCustomerResponse respuesta de POST /api/customers.
type CreateCustomerResponse struct {
	ID int64 `json:"id"`
}
