package stats

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func expectReportQueries(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT .* `cards`.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "set_name", "set_code", "ink"}).
			AddRow("c1", "Ariel", "The First Chapter", "1", "Amber").
			AddRow("c2", "Belle", "The First Chapter", "1", "Ruby"))
	mock.ExpectQuery("SELECT .* `stock_entries`.*").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "card_id", "variant", "quantity"}).
			AddRow("adrien", "c1", "normal", 2))
	mock.ExpectQuery("SELECT .* `stock_entries`.*").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id", "card_id", "variant", "quantity"}))
}

func TestService_Report(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop(), "adrien", "angele")

	expectReportQueries(mock)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Global.Total)
	assert.Equal(t, 1, report.Global.AOwned)
	assert.Equal(t, 0, report.Global.BOwned)
	assert.Equal(t, 1, report.Global.ADoubles)
	require.Len(t, report.Chapters, 1)
	assert.Equal(t, "The First Chapter", report.Chapters[0].SetName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_HandleReport(t *testing.T) {
	db, mock := setupMockDB(t)
	feature := NewFeature(db, zap.NewNop(), "adrien", "angele")

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	expectReportQueries(mock)

	req := httptest.NewRequest("GET", "/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 2, report.Global.Total)
	assert.Equal(t, OwnerPair{A: "adrien", B: "angele"}, report.Owners)
}

func TestHandler_HandleReportStoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	feature := NewFeature(db, zap.NewNop(), "adrien", "angele")

	app := fiber.New()
	require.NoError(t, feature.Load(app))

	mock.ExpectQuery("SELECT .* `cards`.*").WillReturnError(assert.AnError)

	req := httptest.NewRequest("GET", "/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
