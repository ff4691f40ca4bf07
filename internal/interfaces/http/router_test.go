package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/domain/entity"
	apphttp "github.com/SistemasTACTSUPP/tactical-inventory/internal/interfaces/http"
)

// La programación de tareas de inventario cíclico es exclusiva de Admin; los
// roles de almacén solo registran conteos sobre tareas ya asignadas.
func TestRouter_CrearTareaCiclicaSoloAdmin(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	req := httptest.NewRequest(http.MethodPost, "/api/inventario-ciclico/", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAlmacenCedis))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un rol de almacén no programa tareas cíclicas")

	// Admin pasa el control de rol; el cuerpo vacío se rechaza después, sin
	// llegar al caso de uso.
	req = httptest.NewRequest(http.MethodPost, "/api/inventario-ciclico/", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
