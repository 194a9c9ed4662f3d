package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPrefix = "catalog "

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Admin{}, &model.User{}))

	return db
}

func newTestCodec(t *testing.T, expiry time.Duration) *security.TokenCodec {
	t.Helper()

	codec, err := security.NewTokenCodec([]byte("login-secret"), []byte("verification-secret"), expiry)
	require.NoError(t, err)

	return codec
}

// authRig mounts the middleware in front of a probe handler that echoes the
// resolved principal.
func authRig(db *gorm.DB, codec *security.TokenCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/probe", NewAuthMiddleware(db, codec, testPrefix), func(c *gin.Context) {
		principal := c.MustGet(AuthUserKey).(model.Principal)
		c.JSON(http.StatusOK, principal)
	})

	return router
}

func probe(router *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		r.Header.Set("accesstoken", header)
	}

	router.ServeHTTP(w, r)
	return w
}

func TestAuthMiddleware_ResolvesBothRoles(t *testing.T) {
	db := newTestDB(t)
	codec := newTestCodec(t, time.Hour)
	router := authRig(db, codec)

	admin := model.Admin{Name: "ada", Email: "ada@gmail.com", Role: model.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	usr := model.User{Name: "uma", Email: "uma@gmail.com", Role: model.RoleUser}
	require.NoError(t, db.Create(&usr).Error)

	cases := []struct {
		id    uint
		email string
		role  model.Role
	}{
		{admin.ID, admin.Email, model.RoleAdmin},
		{usr.ID, usr.Email, model.RoleUser},
	}

	for _, tc := range cases {
		token, err := codec.IssueLoginToken(tc.email, tc.id, tc.role)
		require.NoError(t, err)

		w := probe(router, testPrefix+token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got model.Principal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

		assert.Equal(t, tc.id, got.ID)
		assert.Equal(t, tc.email, got.Email)
		assert.Equal(t, tc.role, got.Role)
	}
}

// Requests that fail before the role branch must never touch storage, so a
// nil DB is enough to serve them.
func TestAuthMiddleware_RejectsBeforeStorage(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	router := authRig(nil, codec)

	token, err := codec.IssueLoginToken("a@gmail.com", 1, model.RoleUser)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "please login first"},
		{"missing prefix", token, http.StatusBadRequest, "invalid token prefix"},
		{"garbage token", testPrefix + "garbage", http.StatusUnauthorized, "invalid token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := probe(router, tc.header)
			assert.Equal(t, tc.status, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body["error"])
			assert.Equal(t, float64(tc.status), body["status"])
			assert.NotEmpty(t, body["timestamp"])
		})
	}
}

func TestAuthMiddleware_ZeroIDRejected(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	router := authRig(nil, codec)

	token, err := codec.IssueLoginToken("a@gmail.com", 0, model.RoleUser)
	require.NoError(t, err)

	w := probe(router, testPrefix+token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token payload")
}

func TestAuthMiddleware_UnknownRoleRejected(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	router := authRig(nil, codec)

	token, err := codec.IssueLoginToken("a@gmail.com", 1, model.Role("ROOT"))
	require.NoError(t, err)

	w := probe(router, testPrefix+token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token payload")
}

func TestAuthMiddleware_ExpiredDistinctFromInvalid(t *testing.T) {
	codec := newTestCodec(t, time.Millisecond)
	router := authRig(nil, codec)

	token, err := codec.IssueLoginToken("a@gmail.com", 1, model.RoleUser)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	w := probe(router, testPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired, please login again")
}

// A valid token whose account row no longer exists resolves to 404, not to
// a signature error.
func TestAuthMiddleware_VanishedPrincipal(t *testing.T) {
	db := newTestDB(t)
	codec := newTestCodec(t, time.Hour)
	router := authRig(db, codec)

	token, err := codec.IssueLoginToken("ghost@gmail.com", 999, model.RoleUser)
	require.NoError(t, err)

	w := probe(router, testPrefix+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "please sign up first")
}

// An admin token whose id only exists in the users table must not resolve:
// the role claim picks the table, ids do not cross over.
func TestAuthMiddleware_RoleSelectsTable(t *testing.T) {
	db := newTestDB(t)
	codec := newTestCodec(t, time.Hour)
	router := authRig(db, codec)

	usr := model.User{Name: "uma", Email: "uma@gmail.com", Role: model.RoleUser}
	require.NoError(t, db.Create(&usr).Error)

	token, err := codec.IssueLoginToken(usr.Email, usr.ID, model.RoleAdmin)
	require.NoError(t, err)

	w := probe(router, testPrefix+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
