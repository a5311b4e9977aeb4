package rest_test

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/sitehatch/market-backend/internal/application"
	"github.com/sitehatch/market-backend/internal/infra/config"
	"github.com/sitehatch/market-backend/internal/presentation/rest"
	"github.com/sitehatch/market-backend/internal/presentation/ws"
)

type fakeFiles struct {
	objects map[string][]byte
}

func (f *fakeFiles) GetFile(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no object under key %q", key)
	}
	return data, nil
}

func newTestApp(files *fakeFiles) *fiber.App {
	app := fiber.New()
	server := rest.NewServer(&application.Handlers{}, files)
	rest.RegisterHandlers(app, server, ws.NewHub(), &config.ServerConfig{AdminToken: "sesame"})
	return app
}

func Test_Admin_When_Token_Missing_Then_Unauthorized(t *testing.T) {
	app := newTestApp(&fakeFiles{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/orders", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func Test_Admin_When_Token_Wrong_Then_Unauthorized(t *testing.T) {
	app := newTestApp(&fakeFiles{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("X-Admin-Token", "open")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func Test_GetOrder_When_Malformed_ID_Then_BadRequest(t *testing.T) {
	app := newTestApp(&fakeFiles{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/orders/not-a-uuid", nil)
	req.Header.Set("X-Admin-Token", "sesame")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func Test_DeleteOrder_When_Malformed_ID_Then_BadRequest(t *testing.T) {
	app := newTestApp(&fakeFiles{})

	req := httptest.NewRequest(fiber.MethodDelete, "/api/v1/admin/orders/not-a-uuid", nil)
	req.Header.Set("X-Admin-Token", "sesame")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func Test_DownloadFile_Serves_Stored_Object_By_Key(t *testing.T) {
	files := &fakeFiles{objects: map[string][]byte{
		"uploads/1700000000000-logo.png": []byte("png bytes"),
	}}
	app := newTestApp(files)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/files/uploads/1700000000000-logo.png", nil)
	req.Header.Set("X-Admin-Token", "sesame")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "png bytes", string(body))
}

func Test_DownloadFile_When_Key_Unknown_Then_NotFound(t *testing.T) {
	app := newTestApp(&fakeFiles{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/files/uploads/missing.png", nil)
	req.Header.Set("X-Admin-Token", "sesame")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
