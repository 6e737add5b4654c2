package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/storage"
	"github.com/stretchr/testify/require"
)

func vehicleForm(t *testing.T, plate string, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	require.NoError(t, mw.WriteField("placa", plate))
	require.NoError(t, mw.WriteField("tipo_vehiculo", "Sedan"))

	if withPhoto {
		fw, err := mw.CreateFormFile("foto_vehiculo", "car.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("not-really-a-jpeg"))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestVehicleUpload_CreatesVehicleAndStoresPhoto(t *testing.T) {
	a := newTestAPI(t)

	seedUser(t, a, "uploader", model.RoleStudent, true)
	cookies := login(t, a, "uploader", testPassword)

	body, ct := vehicleForm(t, "UPL-001", true)

	w := doRequest(t, a, http.MethodPost, "/carga/vehiculo", body,
		withContentType(ct), withCookies(cookies))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var vehicle model.Vehicle
	require.NoError(t, a.DB.Where("placa = ?", "UPL-001").First(&vehicle).Error)
	require.NotEmpty(t, vehicle.PhotoKey)
	require.Empty(t, vehicle.RegistrationCardKey)

	// The object actually landed in the store
	local := a.Store.(*storage.LocalStore)
	_, err := os.Stat(filepath.Join(local.Dir, vehicle.PhotoKey))
	require.NoError(t, err)
}

func TestVehicleUpload_DuplicatePlate(t *testing.T) {
	a := newTestAPI(t)

	owner := seedUser(t, a, "dup_uploader", model.RoleStudent, true)
	seedVehicle(t, a, owner.ID, "UPL-002")
	cookies := login(t, a, "dup_uploader", testPassword)

	body, ct := vehicleForm(t, "UPL-002", false)

	w := doRequest(t, a, http.MethodPost, "/carga/vehiculo", body,
		withContentType(ct), withCookies(cookies))
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestVehicleUpload_InvalidPlate(t *testing.T) {
	a := newTestAPI(t)

	seedUser(t, a, "bad_uploader", model.RoleStudent, true)
	cookies := login(t, a, "bad_uploader", testPassword)

	body, ct := vehicleForm(t, "??", false)

	w := doRequest(t, a, http.MethodPost, "/carga/vehiculo", body,
		withContentType(ct), withCookies(cookies))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVehicleUploadPage_ListsOwnVehicles(t *testing.T) {
	a := newTestAPI(t)

	owner := seedUser(t, a, "page_owner", model.RoleStudent, true)
	seedVehicle(t, a, owner.ID, "UPL-003")
	cookies := login(t, a, "page_owner", testPassword)

	w := doRequest(t, a, http.MethodGet, "/carga/vehiculo", nil, withCookies(cookies))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "UPL-003")
}
