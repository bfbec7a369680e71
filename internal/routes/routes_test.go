package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/library-api/internal/audit"
	"github.com/BruksfildServices01/library-api/internal/config"
	"github.com/BruksfildServices01/library-api/internal/db/dbtest"
	"github.com/BruksfildServices01/library-api/internal/middleware"
	"github.com/BruksfildServices01/library-api/internal/models"
)

type apiFixture struct {
	t     *testing.T
	db    *gorm.DB
	r     *gin.Engine
	token string
}

type envelope struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Errors    []string        `json:"errors"`
	Data      json.RawMessage `json:"data"`
	Total     int             `json:"total"`
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.New(t)
	cfg := &config.Config{
		JWTSecret:       "segredo-de-teste",
		JWTTTL:          time.Hour,
		LoginRatePerSec: 100,
		LoginRateBurst:  100,
	}

	d := audit.NewDispatcher(audit.New(gdb), hclog.NewNullLogger())
	t.Cleanup(d.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:          gdb,
		Config:      cfg,
		Log:         hclog.NewNullLogger(),
		Audit:       d,
		LoginLimits: middlewareLimiter(cfg),
	})

	f := &apiFixture{t: t, db: gdb, r: r}
	f.token = f.register()
	return f
}

func (f *apiFixture) do(method, path string, body any, auth bool) (*httptest.ResponseRecorder, envelope) {
	f.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (f *apiFixture) register() string {
	f.t.Helper()

	body, _ := json.Marshal(map[string]string{
		"name":     "Bibliotecária",
		"email":    "staff@biblioteca.com",
		"password": "segredo123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	require.Equal(f.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(f.t, resp.Token)
	return resp.Token
}

func joaoBody() map[string]string {
	return map[string]string{
		"name":      "João da Silva",
		"email":     "joao@email.com",
		"cpf":       "111.444.777-35",
		"telephone": "(85) 99999-9999",
		"address":   "Rua A, 123",
	}
}

func TestClientRoutes_RequireToken(t *testing.T) {
	f := newAPI(t)

	w, env := f.do(http.MethodGet, "/api/v1/clients", nil, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", env.ErrorCode)
}

func TestClientRoutes_Lifecycle(t *testing.T) {
	f := newAPI(t)

	// vazio
	w, env := f.do(http.MethodGet, "/api/v1/clients", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", env.Type)

	// criação
	w, env = f.do(http.MethodPost, "/api/v1/clients/register", joaoBody(), true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", env.Type)

	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "11144477735", created["cpf"])
	assert.Contains(t, created, "id")
	assert.Contains(t, created, "createdAt")

	// duplicado
	dup := joaoBody()
	dup["email"] = "outro@email.com"
	w, env = f.do(http.MethodPost, "/api/v1/clients/register", dup, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "client_already_exists", env.ErrorCode)

	// busca
	w, env = f.do(http.MethodGet, "/api/v1/clients/11144477735", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var found map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Equal(t, "joao@email.com", found["email"])

	// listagem sem id
	w, env = f.do(http.MethodGet, "/api/v1/clients", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Total)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.NotContains(t, items[0], "id")
	assert.Equal(t, "11144477735", items[0]["cpf"])

	// edição parcial
	w, env = f.do(http.MethodPut, "/api/v1/clients/cpf/11144477735", map[string]string{"address": "Rua B, 45"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var edited map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &edited))
	assert.Equal(t, "Rua B, 45", edited["address"])
	assert.Equal(t, "João da Silva", edited["name"])

	// remoção
	w, _ = f.do(http.MethodDelete, "/api/v1/clients/cpf/11144477735", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(http.MethodDelete, "/api/v1/clients/cpf/11144477735", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(http.MethodGet, "/api/v1/clients/11144477735", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientRoutes_ValidationErrors(t *testing.T) {
	f := newAPI(t)

	w, env := f.do(http.MethodPost, "/api/v1/clients/register", map[string]string{
		"name":      "",
		"email":     "bad",
		"cpf":       "00000000000",
		"telephone": "",
		"address":   "",
	}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_failed", env.ErrorCode)
	assert.Len(t, env.Errors, 5)
}

func TestClientRoutes_EditWithEmptyBody(t *testing.T) {
	f := newAPI(t)

	w, _ := f.do(http.MethodPost, "/api/v1/clients/register", joaoBody(), true)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := f.do(http.MethodPut, "/api/v1/clients/cpf/11144477735", map[string]string{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_patch", env.ErrorCode)
}

func TestClientRoutes_EmailIsCaseInsensitive(t *testing.T) {
	f := newAPI(t)

	w, _ := f.do(http.MethodPost, "/api/v1/clients/register", joaoBody(), true)
	require.Equal(t, http.StatusCreated, w.Code)

	again := joaoBody()
	again["cpf"] = "529.982.247-25"
	again["email"] = "JOAO@Email.com"
	w, env := f.do(http.MethodPost, "/api/v1/clients/register", again, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "client_already_exists", env.ErrorCode)
}

func TestClientRoutes_MalformedBody(t *testing.T) {
	f := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients/register", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientRoutes_DeleteWithRentals(t *testing.T) {
	f := newAPI(t)

	w, _ := f.do(http.MethodPost, "/api/v1/clients/register", joaoBody(), true)
	require.Equal(t, http.StatusCreated, w.Code)

	var client models.Client
	require.NoError(t, f.db.Where("cpf = ?", "11144477735").First(&client).Error)

	book := models.Book{ISBN: "9788535914849", Title: "Dom Casmurro"}
	require.NoError(t, f.db.Create(&book).Error)
	cp := models.Copy{BookID: book.ID, Code: "DC-001"}
	require.NoError(t, f.db.Create(&cp).Error)
	require.NoError(t, f.db.Create(&models.Rental{
		ClientID:   client.ID,
		CopyID:     cp.ID,
		RentalDate: time.Now(),
		DueDate:    time.Now().Add(72 * time.Hour),
	}).Error)

	w, env := f.do(http.MethodDelete, "/api/v1/clients/cpf/11144477735", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "client_has_rentals", env.ErrorCode)

	w, _ = f.do(http.MethodGet, "/api/v1/clients/11144477735", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserRoutes(t *testing.T) {
	f := newAPI(t)

	w, _ := f.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    "staff@biblioteca.com",
		"password": "segredo123",
	}, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := f.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    "staff@biblioteca.com",
		"password": "errada",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", env.ErrorCode)

	w, env = f.do(http.MethodPost, "/api/v1/users/register", map[string]string{
		"name":     "Outra",
		"email":    "STAFF@biblioteca.com",
		"password": "segredo123",
	}, false)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_exists", env.ErrorCode)

	w, _ = f.do(http.MethodGet, "/api/v1/users/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff@biblioteca.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuditLogRoute(t *testing.T) {
	f := newAPI(t)

	w, _ := f.do(http.MethodPost, "/api/v1/clients/register", joaoBody(), true)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Eventually(t, func() bool {
		var count int64
		f.db.Model(&models.AuditLog{}).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)

	w, _ = f.do(http.MethodGet, "/api/v1/audit-logs?action=client_created", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int64             `json:"total"`
		Logs  []models.AuditLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Logs, 1)
	require.NotNil(t, resp.Logs[0].UserID)

	w, _ = f.do(http.MethodGet, "/api/v1/audit-logs?from=2000-01-01&to=2000-01-31", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
	assert.Empty(t, resp.Logs)

	from := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	to := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	w, _ = f.do(http.MethodGet, "/api/v1/audit-logs?from="+from+"&to="+to+"&page=99999999999", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var paged struct {
		Page  int   `json:"page"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	assert.Equal(t, audit.MaxPage, paged.Page)
	assert.EqualValues(t, 1, paged.Total)
}

func middlewareLimiter(cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.LoginRatePerSec, cfg.LoginRateBurst)
}
