package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	mw "github.com/gymstack/gymhub/internal/app/api/middleware"
	annsvc "github.com/gymstack/gymhub/internal/app/service/announcement"
	"github.com/gymstack/gymhub/internal/app/service/statistics"
	cfgpkg "github.com/gymstack/gymhub/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newStaffStack builds a bare engine with real staff auth over a mocked
// database, the same stack a live request passes through. Callers mount the
// route groups they exercise.
func newStaffStack(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *mw.Auth, *gorm.DB) {
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
	auth, err := mw.NewAuth(db, cfg)
	require.NoError(t, err)

	return gin.New(), mock, auth, db
}

// newStaffAPI mounts the tenant-scoped staff routes the way the server does.
func newStaffAPI(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *mw.Auth) {
	t.Helper()
	r, mock, auth, db := newStaffStack(t)
	log := zap.NewNop().Sugar()
	g := r.Group("/api/v1")
	g.Use(auth.StaffAuth(), mw.RequireGymContext())
	RegisterMemberRoutes(g, db)
	RegisterExpenseRoutes(g, db)
	RegisterDashboardRoutes(g, statistics.NewService(db, log), annsvc.NewService(db, log))
	return r, mock, auth
}

func expectStaffRow(mock sqlmock.Sqlmock, id uint, gymID any, role string) {
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "role", "role_id"}).
			AddRow(id, gymID, role, nil))
}

func staffGet(t *testing.T, r *gin.Engine, auth *mw.Auth, userID uint, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.StaffIssuer().Generate(userID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetMemberCrossTenantReadsAsMissing(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	expectStaffRow(mock, 1, uint(1), "gym_admin")
	// Member 5 belongs to another gym; the scoped query finds nothing.
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 AND gym_id = \$2`).
		WithArgs(uint(5), uint(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := staffGet(t, r, auth, 1, "/api/v1/members/5")

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMembersNoGymAssigned(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	// A gym_admin with no gym assigned is stopped at the group gate.
	expectStaffRow(mock, 2, nil, "gym_admin")

	w := staffGet(t, r, auth, 2, "/api/v1/members")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), mw.MsgNoGymAssigned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMembersSuperAdminWithoutOverride(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	// A super admin passes the group gate but still has to pick a tenant for
	// tenant-scoped listings.
	expectStaffRow(mock, 2, nil, "super_admin")

	w := staffGet(t, r, auth, 2, "/api/v1/members")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), MsgGymContextRequired)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMembersStaffWithoutRole(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	// Plain CRUD is open to any staff principal of the gym; no custom role
	// is needed outside user and role management.
	expectStaffRow(mock, 7, uint(1), "gym_staff")
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE gym_id = \$1 ORDER BY id`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id"}).AddRow(3, 1))

	w := staffGet(t, r, auth, 7, "/api/v1/members")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementsPlatformOverride(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	// gym_id=platform pins the explicit platform scope: only gym_id IS NULL
	// rows come back, no tenant's feed is mixed in.
	expectStaffRow(mock, 3, nil, "super_admin")
	mock.ExpectQuery(`SELECT \* FROM "announcements" WHERE is_published = \$1 AND \(\(starts_at IS NULL OR starts_at <= \$2\)\) AND \(\(ends_at IS NULL OR ends_at >= \$3\)\) AND gym_id IS NULL ORDER BY created_at DESC`).
		WithArgs(true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "title"}).
			AddRow(1, nil, "Scheduled maintenance"))

	w := staffGet(t, r, auth, 3, "/api/v1/announcements?gym_id=platform")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Scheduled maintenance")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMembersSuperAdminOverride(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	expectStaffRow(mock, 3, nil, "super_admin")
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE gym_id = \$1 ORDER BY id`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id", "name", "email"}).
			AddRow(9, 2, "Dana", "dana@example.com"))

	w := staffGet(t, r, auth, 3, "/api/v1/members?gym_id=2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dana@example.com")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMembersPaginated(t *testing.T) {
	r, mock, auth := newStaffAPI(t)

	expectStaffRow(mock, 4, uint(1), "gym_admin")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "members" WHERE gym_id = \$1`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE gym_id = \$1 ORDER BY id LIMIT \$2 OFFSET \$3`).
		WithArgs(uint(1), 5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "gym_id"}).AddRow(6, 1))

	w := staffGet(t, r, auth, 4, "/api/v1/members?page=2&per_page=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":12`)
	require.NoError(t, mock.ExpectationsWereMet())
}
