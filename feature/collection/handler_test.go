package collection

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	app := fiber.New()
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, mock
}

func TestHandleList_NoOwner(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/collection/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body)
}

func TestHandleSetQuantity_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Missing owner", `{"cardId":"c1","quantity":1}`},
		{"Missing card", `{"ownerId":"adrien","quantity":1}`},
		{"Missing quantity", `{"ownerId":"adrien","cardId":"c1"}`},
		{"Unknown variant", `{"ownerId":"adrien","cardId":"c1","variant":"holo","quantity":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)
			req := httptest.NewRequest("POST", "/collection/qty", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHandleSetQuantity_OK(t *testing.T) {
	app, mock := setupTestApp(t)

	mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `stock_entries`.*").WillReturnResult(sqlmock.NewResult(1, 1))

	req := httptest.NewRequest("POST", "/collection/qty", strings.NewReader(`{"ownerId":"adrien","cardId":"c1","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 2, body["quantity"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
