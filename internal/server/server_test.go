package server

import (
	"Cruder/cmd"
	"Cruder/database"
	"Cruder/internal/config"
	"Cruder/internal/crud"
	"Cruder/internal/handlers"
	"Cruder/internal/models"
	"Cruder/internal/repository"
	"Cruder/internal/services"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*fiber.App, *config.Configuration) {
	boxRepo, err := repository.NewMemoryRepository[models.Box, uint]()
	require.NoError(t, err)
	itemRepo, err := repository.NewMemoryRepository[models.Item, uint]()
	require.NoError(t, err)
	labelRepo, err := repository.NewMemoryRepository[models.Label, uuid.UUID]()
	require.NoError(t, err)
	return newServerWith(t, boxRepo, itemRepo, labelRepo, services.Purgers{})
}

func newDatabaseTestServer(t *testing.T) (*fiber.App, *config.Configuration) {
	cfg := config.DefaultConfiguration()
	cfg.Database.Path = ":memory:"
	db, err := database.SetupDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every sqlite :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { database.CloseDatabase(db) })

	boxRepo, err := repository.NewGenericRepository[models.Box, uint](db)
	require.NoError(t, err)
	itemRepo, err := repository.NewGenericRepository[models.Item, uint](db)
	require.NoError(t, err)
	labelRepo, err := repository.NewGenericRepository[models.Label, uuid.UUID](db)
	require.NoError(t, err)
	purgers := services.Purgers{"boxes": boxRepo, "items": itemRepo, "labels": labelRepo}
	return newServerWith(t, boxRepo, itemRepo, labelRepo, purgers)
}

func newServerWith(
	t *testing.T,
	boxRepo crud.Repository[models.Box, uint],
	itemRepo crud.Repository[models.Item, uint],
	labelRepo crud.Repository[models.Label, uuid.UUID],
	purgers services.Purgers,
) (*fiber.App, *config.Configuration) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	logService := services.LogService{Log: log}

	boxHandler, err := handlers.NewCrudHandler[models.Box, uint]("boxes", boxRepo, logService)
	require.NoError(t, err)
	itemHandler, err := handlers.NewCrudHandler[models.Item, uint]("items", itemRepo, logService)
	require.NoError(t, err)
	labelHandler, err := handlers.NewCrudHandler[models.Label, uuid.UUID]("labels", labelRepo, logService)
	require.NoError(t, err)

	cfg := config.DefaultConfiguration()
	cfg.Server.RateLimit.Rate = 0
	janitor := services.NewJanitorService(purgers, logService, cfg)
	srv := cmd.NewServer(boxHandler, itemHandler, labelHandler, logService, janitor)
	return NewApp(srv, cfg), cfg
}

func send(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestNewApp_Health(t *testing.T) {
	app, _ := newTestServer(t)

	resp := send(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestNewApp_BoxLifecycle(t *testing.T) {
	app, _ := newTestServer(t)

	resp := send(t, app, http.MethodGet, "/api/boxes", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/boxes", map[string]interface{}{"name": "tools"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var box models.Box
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&box))
	assert.Equal(t, uint(1), box.ID)
	assert.Equal(t, "tools", box.Name)

	resp = send(t, app, http.MethodGet, "/api/boxes", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodDelete, "/api/boxes/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/boxes/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_BoxLifecycleOnDatabase(t *testing.T) {
	app, _ := newDatabaseTestServer(t)

	resp := send(t, app, http.MethodPost, "/api/boxes", map[string]interface{}{"name": "tools"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var box models.Box
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&box))
	require.NotZero(t, box.ID)
	path := fmt.Sprintf("/api/boxes/%d", box.ID)

	resp = send(t, app, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodPut, path, map[string]interface{}{
		"name":       "garden",
		"deleted_at": "2020-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found models.Box
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	assert.Equal(t, "garden", found.Name)
	assert.False(t, found.DeletedAt.Valid)

	resp = send(t, app, http.MethodGet, "/api/boxes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var boxes []models.Box
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boxes))
	assert.Len(t, boxes, 1)

	resp = send(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/boxes", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_LabelsUseUUIDKeys(t *testing.T) {
	app, _ := newTestServer(t)

	resp := send(t, app, http.MethodPost, "/api/labels", map[string]interface{}{"name": "urgent"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var label models.Label
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&label))
	require.NotEqual(t, uuid.Nil, label.ID)

	resp = send(t, app, http.MethodGet, "/api/labels/"+label.ID.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/labels/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/labels/1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewApp_InvalidKeyIsBadRequest(t *testing.T) {
	app, _ := newTestServer(t)

	resp := send(t, app, http.MethodGet, "/api/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], `invalid key "abc"`)
}

func TestNewApp_UnknownRoute(t *testing.T) {
	app, _ := newTestServer(t)

	resp := send(t, app, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_JanitorClean(t *testing.T) {
	app, _ := newTestServer(t)

	resp := send(t, app, http.MethodPost, "/janitor/clean", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
