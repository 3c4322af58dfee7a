package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateExpenseCategory(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	expectStaffRow(mock, 1, uint(1), "gym_admin")
	mock.ExpectQuery(`SELECT \* FROM "expense_categories" WHERE id = \$1 AND gym_id = \$2`).
		WithArgs(uint(4), uint(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "name"}).AddRow(4, 1, "Rent"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "expense_categories" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := staffSend(t, r, auth, 1, http.MethodPut, "/api/v1/expense-categories/4", `{"name":"Utilities"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Utilities")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExpenseCategoryCrossTenant(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	expectStaffRow(mock, 1, uint(1), "gym_admin")
	mock.ExpectQuery(`SELECT \* FROM "expense_categories" WHERE id = \$1 AND gym_id = \$2`).
		WithArgs(uint(4), uint(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := staffSend(t, r, auth, 1, http.MethodPut, "/api/v1/expense-categories/4", `{"name":"Rent"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
