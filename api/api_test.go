package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alisontirado/estacionatec/middleware"
	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/security"
	"github.com/alisontirado/estacionatec/storage"
	"github.com/alisontirado/estacionatec/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestAPI wires a full router against a fresh in-memory database so
// handler tests exercise the real middleware chain
func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("security.jwt_secret", "test-secret")
	viper.Set("upload.max_size", int64(10<<20))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", util.RandStr(12))

	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = d.AutoMigrate(model.User{}, model.Vehicle{}, model.Payment{}, model.QRCode{}, model.AccessLog{})
	require.NoError(t, err)

	st, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	a := &API{
		DB:    d,
		Argon: security.NewArgon(),
		Store: st,
	}

	router := gin.New()
	a.Router = router
	router.Use(middleware.NewRequestIDMiddleware())
	a.registerRoutes(router, d)

	return a
}

const testPassword = "test-password-123"

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func seedUser(t *testing.T, a *API, username, role string, active bool) model.User {
	t.Helper()

	hash, err := a.Argon.GenerateFromPassword(testPassword)
	require.NoError(t, err)

	user := model.User{
		Username:        username,
		PasswordHash:    hash,
		Role:            role,
		FirstName:       "Test",
		PaternalSurname: "User",
		Email:           username + "@tec.edu",
		ControlNumber:   "CN-" + username,
		Active:          active,
		RegisteredAt:    time.Now().UTC(),
	}

	require.NoError(t, a.DB.Create(&user).Error)
	return user
}

func seedPayment(t *testing.T, a *API, userID uint, receipt string) model.Payment {
	t.Helper()

	p := model.Payment{
		UserID:        userID,
		ReceiptNumber: receipt,
		Concept:       "Semestre",
		Amount:        "350.00",
		PaidAt:        time.Now().UTC(),
	}
	require.NoError(t, a.DB.Create(&p).Error)
	return p
}

func loginForm(username, password string) url.Values {
	form := url.Values{}
	form.Set("nombre_usuario", username)
	form.Set("contraseña", password)
	return form
}

func login(t *testing.T, a *API, username, password string) []*http.Cookie {
	t.Helper()

	form := loginForm(username, password)

	w := doRequest(t, a, http.MethodPost, "/perfil_usuario", strings.NewReader(form.Encode()),
		withContentType("application/x-www-form-urlencoded"))
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func postForm(t *testing.T, a *API, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, a, http.MethodPost, path, strings.NewReader(form.Encode()),
		withContentType("application/x-www-form-urlencoded"))
}

type reqOption func(*http.Request)

func withContentType(ct string) reqOption {
	return func(r *http.Request) { r.Header.Set("Content-Type", ct) }
}

func withCookies(cookies []*http.Cookie) reqOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

func withClientIP(ip string) reqOption {
	return func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", ip)
	}
}

func doRequest(t *testing.T, a *API, method, path string, body io.Reader, opts ...reqOption) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "192.0.2.1:50000"

	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
