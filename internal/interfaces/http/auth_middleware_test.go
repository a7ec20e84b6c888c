package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/libros-fiscales/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "libros-fiscales-test"
	testExpMin    = 60
)

// tokenForRole genera el header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func callWithAuth(t *testing.T, app *fiber.App, method, path, authHeader, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Validar y rectificar solo para contador o admin; alta de sucursal solo admin.
func TestRouter_RolesPorRuta(t *testing.T) {
	app := buildLibrosApp(&fakePeriods{}, &fakeExports{})
	validate := "/api/libros/" + periodID + "/validate"
	rectify := "/api/libros/" + periodID + "/rectify"
	reason := `{"reason":"nota de crédito omitida"}`

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		body   string
		status int
		code   string
	}{
		{"asistente valida", http.MethodPost, validate, "asistente", "", http.StatusForbidden, "FORBIDDEN"},
		{"contador valida", http.MethodPost, validate, "contador", "", http.StatusOK, ""},
		{"admin valida", http.MethodPost, validate, "admin", "", http.StatusOK, ""},
		{"asistente rectifica", http.MethodPost, rectify, "asistente", reason, http.StatusForbidden, "FORBIDDEN"},
		{"contador rectifica", http.MethodPost, rectify, "contador", reason, http.StatusOK, ""},
		{"asistente vuelve a borrador", http.MethodPost, "/api/libros/" + periodID + "/draft", "asistente", "", http.StatusOK, ""},
		{"asistente selecciona", http.MethodPost, "/api/libros/" + periodID + "/select-all", "asistente", "", http.StatusNoContent, ""},
		{"contador crea sucursal", http.MethodPost, "/api/companies/me/branches", "contador", `{"name":"Sucursal San Miguel"}`, http.StatusForbidden, "FORBIDDEN"},
		{"asistente crea sucursal", http.MethodPost, "/api/companies/me/branches", "asistente", `{"name":"Sucursal San Miguel"}`, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.path, tc.role, tc.body)
			defer resp.Body.Close()
			require.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				assert.Equal(t, tc.code, decodeError(t, resp).Code)
			}
		})
	}
}

func TestRouter_TokenInvalidoORolAusente(t *testing.T) {
	app := buildLibrosApp(&fakePeriods{}, &fakeExports{})
	validate := "/api/libros/" + periodID + "/validate"

	noRole, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "", testIssuer, testExpMin)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret", testUserID, testCompanyID, "contador", testIssuer, testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "contador", testIssuer, -1)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin Bearer", "Token " + noRole, "INVALID_TOKEN"},
		{"firma de otro secreto", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"sin rol", "Bearer " + noRole, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := callWithAuth(t, app, http.MethodPost, validate, tc.header, "")
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "contador", testIssuer, testExpMin)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, "contador", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}
