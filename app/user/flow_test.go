package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/internal/service"
	"boycottwatch/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeUploader struct {
	uploads []string
	deleted []string
}

func (f *fakeUploader) Upload(_ context.Context, file *multipart.FileHeader, folder string) (*service.UploadResult, error) {
	f.uploads = append(f.uploads, folder)
	return &service.UploadResult{
		URL:      "https://cdn.test/" + folder + "/" + file.Filename,
		PublicID: folder + "/" + file.Filename,
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fakeMailer struct {
	to   []string
	link string
	err  error
}

func (f *fakeMailer) SendConfirmation(to, confirmationLink string) error {
	if f.err != nil {
		return f.err
	}

	f.to = append(f.to, to)
	f.link = confirmationLink
	return nil
}

type rig struct {
	router   *gin.Engine
	deps     *internal.Deps
	uploader *fakeUploader
	mailer   *fakeMailer
}

func newRig(t *testing.T) *rig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	codec, err := security.NewTokenCodec([]byte("login-secret"), []byte("verification-secret"), time.Hour)
	require.NoError(t, err)

	r := &rig{
		uploader: &fakeUploader{},
		mailer:   &fakeMailer{},
	}
	r.deps = &internal.Deps{
		DB:       db,
		Argon:    security.NewArgon(),
		Tokens:   codec,
		Uploader: r.uploader,
		Mailer:   r.mailer,
	}

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("requestID", "test") })
	router.POST("/user/signUp", func(c *gin.Context) { SignUp(c, r.deps) })
	router.GET("/user/confirm-email/:token", func(c *gin.Context) { ConfirmEmail(c, r.deps) })
	router.POST("/user/signIn", func(c *gin.Context) { SignIn(c, r.deps) })
	r.router = router

	return r
}

func (r *rig) signUp(t *testing.T, name, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.WriteField("password", password))

	fw, err := mw.CreateFormFile("image", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/signUp", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.router.ServeHTTP(w, req)

	return w
}

func (r *rig) signIn(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(gin.H{"email": email, "password": password})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/signIn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.router.ServeHTTP(w, req)

	return w
}

func TestAccountFlow(t *testing.T) {
	r := newRig(t)

	w := r.signUp(t, "uma", "a@gmail.com", "Abc12345!")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Data model.Principal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.Data.ID)
	assert.Equal(t, "a@gmail.com", created.Data.Email)
	assert.Equal(t, model.RoleUser, created.Data.Role)

	require.Equal(t, []string{"a@gmail.com"}, r.mailer.to)
	require.Contains(t, r.mailer.link, "/user/confirm-email/")

	// the row exists but cannot sign in until the link is followed
	w = r.signIn(t, "a@gmail.com", "Abc12345!")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "please verify your email")

	token := r.mailer.link[strings.LastIndex(r.mailer.link, "/")+1:]
	w = httptest.NewRecorder()
	r.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/confirm-email/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = r.signIn(t, "a@gmail.com", "Abc12345!")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loggedIn struct {
		AccessToken string `json:"accesstoken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	require.NotEmpty(t, loggedIn.AccessToken)

	claims, err := r.deps.Tokens.VerifyLoginToken(loggedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.Data.ID, claims.ID)
	assert.Equal(t, model.RoleUser, claims.Role)

	var row model.User
	require.NoError(t, r.deps.DB.First(&row, created.Data.ID).Error)
	assert.Equal(t, loggedIn.AccessToken, row.Token)
}

// Two sign-ins both succeed and the stored token is the one written last.
func TestSignIn_TokenRotation(t *testing.T) {
	r := newRig(t)

	require.Equal(t, http.StatusOK, r.signUp(t, "uma", "a@gmail.com", "Abc12345!").Code)

	token := r.mailer.link[strings.LastIndex(r.mailer.link, "/")+1:]
	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/confirm-email/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	first := r.signIn(t, "a@gmail.com", "Abc12345!")
	require.Equal(t, http.StatusOK, first.Code)

	second := r.signIn(t, "a@gmail.com", "Abc12345!")
	require.Equal(t, http.StatusOK, second.Code)

	var got struct {
		AccessToken string `json:"accesstoken"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &got))

	var row model.User
	require.NoError(t, r.deps.DB.Where("email = ?", "a@gmail.com").First(&row).Error)
	assert.Equal(t, got.AccessToken, row.Token)
}

func TestSignUp_Rejections(t *testing.T) {
	r := newRig(t)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		status   int
		msg      string
	}{
		{"empty name", "", "a@gmail.com", "Abc12345!", http.StatusBadRequest, "name field can't be empty"},
		{"bad provider", "uma", "a@example.com", "Abc12345!", http.StatusBadRequest, "only gmail and yahoo"},
		{"weak password", "uma", "a@gmail.com", "abc12345", http.StatusBadRequest, "password must contain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := r.signUp(t, tc.userName, tc.email, tc.password)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.msg)
		})
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	r := newRig(t)

	require.Equal(t, http.StatusOK, r.signUp(t, "uma", "a@gmail.com", "Abc12345!").Code)

	w := r.signUp(t, "uma2", "a@gmail.com", "Abc12345!")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already exists")
}

// Unknown emails and unverified accounts get the same answer, so the
// endpoint cannot be used to enumerate registered addresses.
func TestSignIn_UnknownAndUnverifiedIndistinguishable(t *testing.T) {
	r := newRig(t)

	require.Equal(t, http.StatusOK, r.signUp(t, "uma", "a@gmail.com", "Abc12345!").Code)

	unverified := r.signIn(t, "a@gmail.com", "Abc12345!")
	unknown := r.signIn(t, "nobody@gmail.com", "Abc12345!")

	assert.Equal(t, unverified.Code, unknown.Code)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(unverified.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &b))
	assert.Equal(t, a["error"], b["error"])
}

// A sign-up whose confirmation mail cannot be sent leaves nothing behind:
// no row that would block a retry on the unique email, no stored image.
func TestSignUp_MailFailureRollsBack(t *testing.T) {
	r := newRig(t)
	r.mailer.err = errors.New("relay unreachable")

	w := r.signUp(t, "uma", "a@gmail.com", "Abc12345!")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	require.NoError(t, r.deps.DB.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Len(t, r.uploader.deleted, 1)

	// the retry goes through once the relay is back
	r.mailer.err = nil
	w = r.signUp(t, "uma", "a@gmail.com", "Abc12345!")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSignIn_WrongPassword(t *testing.T) {
	r := newRig(t)

	require.Equal(t, http.StatusOK, r.signUp(t, "uma", "a@gmail.com", "Abc12345!").Code)

	token := r.mailer.link[strings.LastIndex(r.mailer.link, "/")+1:]
	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/confirm-email/"+token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	got := r.signIn(t, "a@gmail.com", "Wrong12345!")
	assert.Equal(t, http.StatusBadRequest, got.Code)
	assert.Contains(t, got.Body.String(), "password is incorrect")
}

func TestConfirmEmail_BadToken(t *testing.T) {
	r := newRig(t)

	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/confirm-email/garbage", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestConfirmEmail_UnknownEmail(t *testing.T) {
	r := newRig(t)

	token, err := r.deps.Tokens.IssueVerificationToken("nobody@gmail.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/confirm-email/"+token, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "email not verified")
}
