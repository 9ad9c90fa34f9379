package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielmeza/catalogo-clientes/internal/application/customer"
	"github.com/danielmeza/catalogo-clientes/internal/application/dto"
	"github.com/danielmeza/catalogo-clientes/internal/domain/entity"
	"github.com/danielmeza/catalogo-clientes/internal/domain/repository"
	apphttp "github.com/danielmeza/catalogo-clientes/internal/interfaces/http"
	"github.com/danielmeza/catalogo-clientes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// memRepo repositorio en memoria con la semántica de los adaptadores reales.
type memRepo struct {
	nextID     int64
	nextAddrID int64
	customers  map[int64]*entity.Customer
	order      []int64
}

var _ repository.CustomerRepository = (*memRepo)(nil)

func (m *memRepo) List() ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.customers[id])
	}
	return out, nil
}

func (m *memRepo) GetByID(id int64) (*entity.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (m *memRepo) Create(c *entity.Customer) (int64, error) {
	m.nextID++
	stored := *c
	stored.ID = m.nextID
	stored.Addresses = append([]entity.Address(nil), c.Addresses...)
	for i := range stored.Addresses {
		m.nextAddrID++
		stored.Addresses[i].ID = m.nextAddrID
	}
	if stored.Addresses == nil {
		stored.Addresses = []entity.Address{}
	}
	m.customers[stored.ID] = &stored
	m.order = append(m.order, stored.ID)
	return stored.ID, nil
}

func (m *memRepo) Update(c *entity.Customer) (bool, error) {
	if _, ok := m.customers[c.ID]; !ok {
		return false, nil
	}
	stored := *c
	stored.Addresses = append([]entity.Address{}, c.Addresses...)
	for i := range stored.Addresses {
		m.nextAddrID++
		stored.Addresses[i].ID = m.nextAddrID
	}
	m.customers[c.ID] = &stored
	return true, nil
}

func (m *memRepo) Delete(id int64) error {
	delete(m.customers, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type passTx struct {
	repo repository.CustomerRepository
}

func (p *passTx) Run(_ context.Context, fn func(repo repository.CustomerRepository) error) error {
	return fn(p.repo)
}

// buildTestApp construye una aplicación Fiber con el router real sobre un
// repositorio en memoria.
func buildTestApp() *fiber.App {
	repo := &memRepo{customers: make(map[int64]*entity.Customer)}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := customer.NewUseCase(repo, &passTx{repo: repo}, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{CustomerUC: uc})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida completo del agregado
// ──────────────────────────────────────────────────────────────────────────────

// Alta de Ana Ruiz, lectura, reemplazo de direcciones y borrado, tal como lo
// recorre el frontend.
func TestAPI_CicloDeVidaCompleto(t *testing.T) {
	app := buildTestApp()

	// Alta
	resp := doJSON(t, app, http.MethodPost, "/api/customers", dto.CustomerRequest{
		Name:           "Ana Ruiz",
		CustomerNumber: "C-1",
		Addresses:      []dto.AddressPayload{{Street: "Av. Reforma", Neighborhood: "Centro"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateCustomerResponse](t, resp)
	require.Positive(t, created.ID)

	// Lectura inmediata con defaults aplicados
	resp = doJSON(t, app, http.MethodGet, "/api/customers/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, "Ana Ruiz", got.Name)
	assert.Equal(t, "C-1", got.CustomerNumber)
	assert.Equal(t, "", got.Phone)
	assert.Equal(t, "", got.Email)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Av. Reforma", got.Addresses[0].Street)
	assert.Equal(t, "Centro", got.Addresses[0].Neighborhood)

	// Update con addresses vacío: el cliente queda sin direcciones
	resp = doJSON(t, app, http.MethodPut, "/api/customers/1", dto.CustomerRequest{
		Name:           "Ana Ruiz",
		CustomerNumber: "C-1",
		Addresses:      []dto.AddressPayload{},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/1", nil)
	got = decode[dto.CustomerResponse](t, resp)
	assert.NotNil(t, got.Addresses)
	assert.Empty(t, got.Addresses)

	// Borrado y lectura posterior
	resp = doJSON(t, app, http.MethodDelete, "/api/customers/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/1", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// El cuerpo de la lista siempre serializa addresses, [] cuando no hay.
func TestAPI_ListSerializaAddressesVacias(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/customers", dto.CustomerRequest{
		Name:           "Ana Ruiz",
		CustomerNumber: "C-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"addresses":[]`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y errores
// ──────────────────────────────────────────────────────────────────────────────

// Un id no entero se rechaza con 400 sin llegar al almacenamiento.
func TestAPI_IDNoEnteroEsValidacion(t *testing.T) {
	app := buildTestApp()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body any
		if method == http.MethodPut {
			body = dto.CustomerRequest{Name: "x", CustomerNumber: "x"}
		}
		resp := doJSON(t, app, method, "/api/customers/abc", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "método %s", method)
		errBody := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION", errBody.Code)
	}
}

func TestAPI_CreateSinNombreEsValidacion(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/customers", dto.CustomerRequest{CustomerNumber: "C-1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)

	// La tabla sigue vacía.
	resp = doJSON(t, app, http.MethodGet, "/api/customers", nil)
	list := decode[[]dto.CustomerResponse](t, resp)
	assert.Empty(t, list)
}

func TestAPI_UpdateNoExistenteEs404(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPut, "/api/customers/99", dto.CustomerRequest{
		Name:           "Ana Ruiz",
		CustomerNumber: "C-1",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Borrar un ID inexistente responde éxito, igual que la fuente original.
func TestAPI_DeleteInexistenteEsExito(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodDelete, "/api/customers/99", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// Round-trip de un nombre con comilla simple a través del API completo.
func TestAPI_ComillaSimpleSobreviveRoundTrip(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/customers", dto.CustomerRequest{
		Name:           "O'Brien",
		CustomerNumber: "C-9",
		Addresses:      []dto.AddressPayload{{Street: "O'Higgins 12", Neighborhood: "Centro"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateCustomerResponse](t, resp)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "O'Brien", got.Name)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "O'Higgins 12", got.Addresses[0].Street)
}

// El filtro q= reduce el listado ignorando acentos.
func TestAPI_ListConFiltro(t *testing.T) {
	app := buildTestApp()

	for _, in := range []dto.CustomerRequest{
		{Name: "José Pérez", CustomerNumber: "C-1"},
		{Name: "Ana Ruiz", CustomerNumber: "C-2"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/customers", in)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/customers?q=perez", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.CustomerResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "José Pérez", list[0].Name)
}
