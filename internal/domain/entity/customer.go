package entity

// Customer es un cliente del catálogo junto con sus direcciones (el agregado completo).
// Addresses nunca es nil: un cliente sin direcciones lleva el slice vacío.
type Customer struct {
	ID             int64
	Name           string
	Phone          string
	CustomerNumber string
	Email          string
	Addresses      []Address
}

// Address dirección propiedad exclusiva de un cliente; nunca se comparte ni
// sobrevive a su cliente. ID solo está presente cuando la dirección ya fue persistida.
type Address struct {
	ID           int64
	Street       string
	Neighborhood string
}
