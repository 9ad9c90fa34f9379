package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danielmeza/catalogo-clientes/internal/application/customer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *customer.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	customers := api.Group("/customers")
	h := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", h.List)
	customers.Post("/", h.Create)
	customers.Get("/:id", h.GetByID)
	customers.Put("/:id", h.Update)
	customers.Delete("/:id", h.Delete)
}
