// childcare-crm/internal/handlers/withdrawal_handler_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"childcare-crm/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gdb
	t.Cleanup(func() {
		config.DB = prev
		db.Close()
	})
	return mock
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	return requestWithID(t, handler, http.MethodPost, "", body)
}

func requestWithID(t *testing.T, handler gin.HandlerFunc, method, id string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	c.Request = httptest.NewRequest(method, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}

	handler(c)
	return w
}

func TestCreateWithdrawalSetsEnrollmentEndDate(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "children"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "first_name", "last_name"}).
			AddRow(7, 3, "Mia", "Singh"))
	mock.ExpectQuery(`SELECT \* FROM "withdrawals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "withdrawals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "children" SET "enrollment_end_date"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := postJSON(t, CreateWithdrawalHandler, WithdrawalInput{
		ChildID:        7,
		WithdrawalDate: "2025-06-30",
		Reason:         "Relocation",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp WithdrawalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, uint(7), resp.ChildID)
	require.Equal(t, "2025-06-30", resp.WithdrawalDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithdrawalDuplicateConflict(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "children"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "first_name", "last_name"}).
			AddRow(7, 3, "Mia", "Singh"))
	mock.ExpectQuery(`SELECT \* FROM "withdrawals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id"}).AddRow(1, 7))

	w := postJSON(t, CreateWithdrawalHandler, WithdrawalInput{
		ChildID:        7,
		WithdrawalDate: "2025-06-30",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithdrawalChildNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "children"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "family_id", "first_name", "last_name"}))

	w := postJSON(t, CreateWithdrawalHandler, WithdrawalInput{
		ChildID:        99,
		WithdrawalDate: "2025-06-30",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithdrawalResyncsEnrollmentEndDate(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "withdrawals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id", "withdrawal_date", "reason"}).
			AddRow(1, 7, date(2025, time.June, 30), "Relocation"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "withdrawals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "children" SET "enrollment_end_date"`).
		WithArgs(date(2025, time.July, 15), sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := requestWithID(t, UpdateWithdrawalHandler, http.MethodPut, "1", WithdrawalInput{
		ChildID:        7,
		WithdrawalDate: "2025-07-15",
		Reason:         "Relocation",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp WithdrawalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "2025-07-15", resp.WithdrawalDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithdrawalChildImmutable(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "withdrawals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id", "withdrawal_date"}).
			AddRow(1, 7, date(2025, time.June, 30)))

	w := requestWithID(t, UpdateWithdrawalHandler, http.MethodPut, "1", WithdrawalInput{
		ChildID:        8,
		WithdrawalDate: "2025-07-15",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithdrawalClearsEnrollmentEndDate(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "withdrawals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "child_id", "withdrawal_date"}).
			AddRow(1, 7, date(2025, time.June, 30)))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "withdrawals" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Reopening the enrollment: the end date goes back to NULL.
	mock.ExpectExec(`UPDATE "children" SET "enrollment_end_date"`).
		WithArgs(nil, sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := requestWithID(t, DeleteWithdrawalHandler, http.MethodDelete, "1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithdrawalRejectsBadDate(t *testing.T) {
	setupMockDB(t)

	w := postJSON(t, CreateWithdrawalHandler, WithdrawalInput{
		ChildID:        7,
		WithdrawalDate: "30/06/2025",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}
