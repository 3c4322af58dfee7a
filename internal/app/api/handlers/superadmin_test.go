package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	"github.com/gymstack/gymhub/internal/app/service/statistics"
	subsvc "github.com/gymstack/gymhub/internal/app/service/subscription"
)

// newSuperAdminAPI mounts the platform routes behind the real staff auth and
// super-admin gate.
func newSuperAdminAPI(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *mw.Auth) {
	t.Helper()
	r, mock, auth, db := newStaffStack(t)
	log := zap.NewNop().Sugar()
	g := r.Group("/api/v1/super-admin")
	g.Use(auth.StaffAuth(), mw.RequireSuperAdmin())
	RegisterSuperAdminRoutes(g, db, subsvc.NewService(db, log), statistics.NewService(db, log))
	return r, mock, auth
}

func staffSend(t *testing.T, r *gin.Engine, auth *mw.Auth, userID uint, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.StaffIssuer().Generate(userID)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateGymSlugConflict(t *testing.T) {
	r, mock, auth := newSuperAdminAPI(t)

	expectStaffRow(mock, 1, nil, "super_admin")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "gyms" WHERE slug = \$1`).
		WithArgs("iron-temple").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := staffSend(t, r, auth, 1, http.MethodPost, "/api/v1/super-admin/gyms",
		`{"name":"Iron Temple","slug":"iron-temple","email":"owner@irontemple.test"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slug already taken")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGym(t *testing.T) {
	r, mock, auth := newSuperAdminAPI(t)

	expectStaffRow(mock, 1, nil, "super_admin")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "gyms" WHERE slug = \$1`).
		WithArgs("iron-temple").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "gyms"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	w := staffSend(t, r, auth, 1, http.MethodPost, "/api/v1/super-admin/gyms",
		`{"name":"Iron Temple","slug":"iron-temple","email":"owner@irontemple.test"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "iron-temple")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSubscriptionMissing(t *testing.T) {
	r, mock, auth := newSuperAdminAPI(t)

	expectStaffRow(mock, 1, nil, "super_admin")
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "subscriptions" WHERE`).
		WithArgs(uint(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := staffSend(t, r, auth, 1, http.MethodDelete, "/api/v1/super-admin/subscriptions/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
