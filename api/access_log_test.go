package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/alisontirado/estacionatec/model"
	"github.com/stretchr/testify/require"
)

func TestProtectedPages_RedirectWithoutSession(t *testing.T) {
	a := newTestAPI(t)

	for _, path := range []string{"/miperfil", "/resumen/pago", "/carga/vehiculo", "/scanner"} {
		w := doRequest(t, a, http.MethodGet, path, nil)
		require.Equal(t, http.StatusFound, w.Code, "expected redirect for %s", path)
		require.Equal(t, "/", w.Header().Get("Location"))
	}
}

func TestScanner_RedirectsStudents(t *testing.T) {
	a := newTestAPI(t)

	seedUser(t, a, "curious_student", model.RoleStudent, true)
	cookies := login(t, a, "curious_student", testPassword)

	w := doRequest(t, a, http.MethodGet, "/scanner", nil, withCookies(cookies))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/miperfil", w.Header().Get("Location"))

	seedUser(t, a, "gate_guard", model.RoleStaff, true)
	staffCookies := login(t, a, "gate_guard", testPassword)

	w = doRequest(t, a, http.MethodGet, "/scanner", nil, withCookies(staffCookies))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAccessLogCreate_StaffOnly(t *testing.T) {
	a := newTestAPI(t)

	subject := seedUser(t, a, "scanned_student", model.RoleStudent, true)

	seedUser(t, a, "guard", model.RoleStaff, true)
	staffCookies := login(t, a, "guard", testPassword)

	payload := `{"usuario_id": ` + itoa(subject.ID) + `, "tipo_acceso": "entrada"}`

	w := doRequest(t, a, http.MethodPost, "/registro_acceso", strings.NewReader(payload),
		withContentType("application/json"), withCookies(staffCookies))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	require.NoError(t, a.DB.Model(model.AccessLog{}).Where("user_id = ?", subject.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// A student can't record accesses
	studentCookies := login(t, a, "scanned_student", testPassword)

	w = doRequest(t, a, http.MethodPost, "/registro_acceso", strings.NewReader(payload),
		withContentType("application/json"), withCookies(studentCookies))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccessLogCreate_RejectsBadType(t *testing.T) {
	a := newTestAPI(t)

	subject := seedUser(t, a, "typed_student", model.RoleStudent, true)
	seedUser(t, a, "typed_guard", model.RoleStaff, true)
	cookies := login(t, a, "typed_guard", testPassword)

	payload := `{"usuario_id": ` + itoa(subject.ID) + `, "tipo_acceso": "sideways"}`

	w := doRequest(t, a, http.MethodPost, "/registro_acceso", strings.NewReader(payload),
		withContentType("application/json"), withCookies(cookies))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccessLogCreate_UnknownUser(t *testing.T) {
	a := newTestAPI(t)

	seedUser(t, a, "lonely_guard", model.RoleStaff, true)
	cookies := login(t, a, "lonely_guard", testPassword)

	w := doRequest(t, a, http.MethodPost, "/registro_acceso",
		strings.NewReader(`{"usuario_id": 99999, "tipo_acceso": "salida"}`),
		withContentType("application/json"), withCookies(cookies))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeactivatedUser_LosesAccess(t *testing.T) {
	a := newTestAPI(t)

	user := seedUser(t, a, "fading_user", model.RoleStudent, true)
	cookies := login(t, a, "fading_user", testPassword)

	require.NoError(t, a.DB.Model(&user).Update("active", false).Error)

	// Page routes bounce to login even with a still-valid token
	w := doRequest(t, a, http.MethodGet, "/miperfil", nil, withCookies(cookies))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}
