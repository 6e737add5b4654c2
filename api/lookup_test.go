package api

import (
	"net/http"
	"testing"

	"github.com/alisontirado/estacionatec/model"
	"github.com/stretchr/testify/require"
)

func seedVehicle(t *testing.T, a *API, ownerID uint, plate string) model.Vehicle {
	t.Helper()

	v := model.Vehicle{
		UserID: ownerID,
		Type:   "Sedan",
		Plate:  plate,
	}
	require.NoError(t, a.DB.Create(&v).Error)
	return v
}

func TestVehicleLookup_ActiveOwner(t *testing.T) {
	a := newTestAPI(t)

	owner := seedUser(t, a, "active_owner", model.RoleStudent, true)
	seedVehicle(t, a, owner.ID, "LKP-001")

	w := doRequest(t, a, http.MethodGet, "/obtener_info/LKP-001", nil, withClientIP("10.1.0.1"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	require.Equal(t, "LKP-001", body["placas"])
	require.Equal(t, "Sedan", body["modelo"])
	require.Equal(t, "Activo", body["estado"])
	require.Equal(t, "/static/placeholder_car.png", body["imagen_vehiculo"])
	require.Equal(t, "/static/placeholder_user.png", body["imagen_conductor"])
}

func TestVehicleLookup_InactiveOwner(t *testing.T) {
	a := newTestAPI(t)

	owner := seedUser(t, a, "inactive_owner", model.RoleStudent, false)
	seedVehicle(t, a, owner.ID, "LKP-002")

	w := doRequest(t, a, http.MethodGet, "/obtener_info/LKP-002", nil, withClientIP("10.1.0.2"))
	require.Equal(t, http.StatusForbidden, w.Code)

	body := decodeBody(t, w)
	require.Contains(t, body["error"], "Inactivo")
}

func TestVehicleLookup_UnknownPlate(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/obtener_info/LKP-404", nil, withClientIP("10.1.0.3"))
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Vehículo no encontrado", body["error"])
}

func TestVehicleLookup_Idempotent(t *testing.T) {
	a := newTestAPI(t)

	owner := seedUser(t, a, "repeat_owner", model.RoleStaff, true)
	seedVehicle(t, a, owner.ID, "LKP-003")

	w1 := doRequest(t, a, http.MethodGet, "/obtener_info/LKP-003", nil, withClientIP("10.1.0.4"))
	w2 := doRequest(t, a, http.MethodGet, "/obtener_info/LKP-003", nil, withClientIP("10.1.0.4"))

	require.Equal(t, http.StatusOK, w1.Code)
	require.Equal(t, w1.Code, w2.Code)
	require.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestVehicleLookup_PlateNormalized(t *testing.T) {
	a := newTestAPI(t)

	owner := seedUser(t, a, "case_owner", model.RoleStudent, true)
	seedVehicle(t, a, owner.ID, "LKP-005")

	w := doRequest(t, a, http.MethodGet, "/obtener_info/lkp-005", nil, withClientIP("10.1.0.5"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestVehicleLookup_RateLimitStopsTheChain(t *testing.T) {
	a := newTestAPI(t)

	var limited string
	for i := 0; i < 30; i++ {
		w := doRequest(t, a, http.MethodGet, "/obtener_info/LKP-429", nil, withClientIP("198.51.100.77"))
		if w.Code == http.StatusTooManyRequests {
			limited = w.Body.String()
			break
		}
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	require.NotEmpty(t, limited, "the burst was never exhausted")
	require.Contains(t, limited, "Too many requests")
	require.NotContains(t, limited, "Vehículo", "a limited request must not run the lookup")
}
