package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cfgpkg "github.com/gymstack/gymhub/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAuth(t *testing.T) (*Auth, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	cfg := &cfgpkg.Config{Auth: cfgpkg.AuthConfig{
		StaffSecret:   "staff-secret",
		MemberSecret:  "member-secret",
		TrainerSecret: "trainer-secret",
		TokenTTL:      time.Hour,
	}}
	a, err := NewAuth(db, cfg)
	require.NoError(t, err)
	return a, mock
}

func staffRouter(a *Auth, guards ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{a.StaffAuth()}, guards...)
	chain = append(chain, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", chain...)
	return r
}

func expectStaffLookup(mock sqlmock.Sqlmock, id uint, gymID *uint, role string) {
	rows := sqlmock.NewRows([]string{"id", "gym_id", "role", "role_id", "email"})
	if gymID == nil {
		rows.AddRow(id, nil, role, nil, "u@example.com")
	} else {
		rows.AddRow(id, *gymID, role, nil, "u@example.com")
	}
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(rows)
}

func TestStaffAuthMissingToken(t *testing.T) {
	a, _ := newTestAuth(t)
	r := staffRouter(a)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffAuthRejectsMemberNamespaceToken(t *testing.T) {
	a, _ := newTestAuth(t)
	r := staffRouter(a)

	token, err := a.MemberIssuer().Generate(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireGymContextRejectsUnassignedStaff(t *testing.T) {
	a, mock := newTestAuth(t)
	r := staffRouter(a, RequireGymContext())

	expectStaffLookup(mock, 3, nil, "gym_admin")
	token, err := a.StaffIssuer().Generate(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), MsgNoGymAssigned)
}

func TestRequireGymContextPassesSuperAdmin(t *testing.T) {
	a, mock := newTestAuth(t)
	r := staffRouter(a, RequireGymContext())

	expectStaffLookup(mock, 1, nil, "super_admin")
	token, err := a.StaffIssuer().Generate(1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSuperAdminRejectsGymAdmin(t *testing.T) {
	a, mock := newTestAuth(t)
	r := staffRouter(a, RequireSuperAdmin())

	gym := uint(5)
	expectStaffLookup(mock, 2, &gym, "gym_admin")
	token, err := a.StaffIssuer().Generate(2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), MsgSuperAdminOnly)
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		// An owner (gym_admin without a custom role) holds every permission.
		{name: "owner passes", role: "gym_admin", want: http.StatusOK},
		// Plain staff without a custom role holds none.
		{name: "staff denied", role: "gym_staff", want: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, mock := newTestAuth(t)
			r := staffRouter(a, RequirePermission("members.view"))

			gym := uint(5)
			expectStaffLookup(mock, 4, &gym, tc.role)
			token, err := a.StaffIssuer().Generate(4)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), MsgNoPermission)
			}
		})
	}
}
