package trades

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func stockRows(qty int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"owner_id", "card_id", "variant", "quantity"}).
		AddRow("adrien", "c1", "normal", qty)
}

func emptyStockRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"owner_id", "card_id", "variant", "quantity"})
}

func TestService_Give(t *testing.T) {
	t.Run("Decrements donor and increments recipient", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(stockRows(3))
		mock.ExpectExec("UPDATE `stock_entries`.*").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(emptyStockRows())
		mock.ExpectExec("INSERT INTO `stock_entries`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `trades`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		result, err := svc.Give(context.Background(), GiveRequest{
			FromOwner: "adrien",
			ToOwner:   "angele",
			CardID:    "c1",
			Quantity:  2,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.TradeID)
		assert.Equal(t, 1, result.FromQty)
		assert.Equal(t, 2, result.ToQty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deletes donor row when it reaches zero", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(stockRows(2))
		mock.ExpectExec("DELETE FROM `stock_entries`.*").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(
			sqlmock.NewRows([]string{"owner_id", "card_id", "variant", "quantity"}).
				AddRow("angele", "c1", "normal", 1))
		mock.ExpectExec("INSERT INTO `stock_entries`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `trades`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		result, err := svc.Give(context.Background(), GiveRequest{
			FromOwner: "adrien",
			ToOwner:   "angele",
			CardID:    "c1",
			Quantity:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.FromQty)
		assert.Equal(t, 3, result.ToQty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Quantity below one defaults to one", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(stockRows(3))
		mock.ExpectExec("UPDATE `stock_entries`.*").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(emptyStockRows())
		mock.ExpectExec("INSERT INTO `stock_entries`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `trades`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		result, err := svc.Give(context.Background(), GiveRequest{
			FromOwner: "adrien",
			ToOwner:   "angele",
			CardID:    "c1",
			Quantity:  0,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.FromQty)
		assert.Equal(t, 1, result.ToQty)
	})

	t.Run("Insufficient stock rolls back", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(stockRows(1))
		mock.ExpectRollback()

		_, err := svc.Give(context.Background(), GiveRequest{
			FromOwner: "adrien",
			ToOwner:   "angele",
			CardID:    "c1",
			Quantity:  2,
		})
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 1, insufficient.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing donor row counts as zero", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO `owners`.*").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT .* `stock_entries`.*FOR UPDATE").WillReturnRows(emptyStockRows())
		mock.ExpectRollback()

		_, err := svc.Give(context.Background(), GiveRequest{
			FromOwner: "adrien",
			ToOwner:   "angele",
			CardID:    "c1",
			Quantity:  1,
		})
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 0, insufficient.Available)
	})

	t.Run("Validation failures never touch the store", func(t *testing.T) {
		db, _ := setupMockDB(t)
		svc := NewService(db, zap.NewNop())

		tests := []struct {
			name string
			req  GiveRequest
		}{
			{"missing from owner", GiveRequest{ToOwner: "angele", CardID: "c1"}},
			{"missing card", GiveRequest{FromOwner: "adrien", ToOwner: "angele"}},
			{"self transfer", GiveRequest{FromOwner: "adrien", ToOwner: "adrien", CardID: "c1"}},
			{"unknown variant", GiveRequest{FromOwner: "adrien", ToOwner: "angele", CardID: "c1", Variant: "holo"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Give(context.Background(), tt.req)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})
}

func TestService_Record(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectExec("INSERT INTO `trades`.*").WillReturnResult(sqlmock.NewResult(1, 1))

	trade, err := svc.Record(context.Background(), RecordRequest{
		FromOwner: "angele",
		ToOwner:   "adrien",
		CardID:    "c9",
		Quantity:  0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, 1, trade.Quantity)
	assert.Equal(t, "normal", trade.Variant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_History(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectQuery("SELECT .* `trades`.*ORDER BY created_at DESC LIMIT.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "from_owner", "to_owner", "card_id", "variant", "quantity"}).
			AddRow("t2", "adrien", "angele", "c1", "normal", 1).
			AddRow("t1", "angele", "adrien", "c2", "foil", 2))
	mock.ExpectQuery("SELECT .* `cards`.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("c1", "Ariel").
			AddRow("c2", "Belle"))

	trades, err := svc.History(context.Background(), "", "all")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "t2", trades[0].ID)
	assert.Equal(t, "Ariel", trades[0].Card.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_HistoryOwnerFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop())

	mock.ExpectQuery("SELECT .* `trades`.*from_owner.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "from_owner", "to_owner", "card_id", "variant", "quantity"}))

	trades, err := svc.History(context.Background(), "adrien", "")
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.NotNil(t, trades)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{Available: 2}
	assert.Equal(t, "insufficient stock: 2 available", err.Error())
	assert.False(t, errors.Is(err, ErrValidation))
}
