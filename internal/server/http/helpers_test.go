package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/auth"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeDirectory is an in-memory user directory keeping insertion order.
type fakeDirectory struct {
	mu     sync.Mutex
	hasher *auth.BcryptHasher
	order  []string
	byID   map[string]*models.User
	n      int
	err    error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{hasher: auth.NewBcryptHasher(bcrypt.MinCost), byID: map[string]*models.User{}}
}

func (d *fakeDirectory) Register(_ context.Context, r services.Registration) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	for _, u := range d.byID {
		if u.Email == r.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	hash, err := d.hasher.Hash(r.Password)
	if err != nil {
		return nil, err
	}
	d.n++
	u := &models.User{
		ID: int64(d.n), PublicID: fmt.Sprintf("pub%027d", d.n), Email: r.Email,
		EncryptedPassword: hash, FirstName: r.FirstName, LastName: r.LastName,
	}
	d.byID[u.PublicID] = u
	d.order = append(d.order, u.PublicID)
	return u.WithoutPassword(), nil
}

func (d *fakeDirectory) Authenticate(_ context.Context, email string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (d *fakeDirectory) GetByPublicID(_ context.Context, id string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.WithoutPassword(), nil
}

func (d *fakeDirectory) Update(_ context.Context, id string, upd services.UserUpdate) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.FirstName != "" {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		u.LastName = upd.LastName
	}
	return u.WithoutPassword(), nil
}

func (d *fakeDirectory) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(d.byID, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

func (d *fakeDirectory) List(_ context.Context, page, size int) ([]*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if size < 1 {
		return nil, common.ErrorValidation
	}
	if page > 0 {
		page--
	}
	out := []*models.User{}
	for i := page * size; i < len(d.order) && len(out) < size; i++ {
		out = append(out, d.byID[d.order[i]].WithoutPassword())
	}
	return out, nil
}

type testEnv struct {
	server *HTTPServer
	dir    *fakeDirectory
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T, rpm int) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, ServerConfig{LoginRateLimitRPM: rpm})
}

func newTestEnvWithConfig(t *testing.T, cfg ServerConfig) *testEnv {
	t.Helper()
	dir := newFakeDirectory()
	tokens := auth.NewTokenService([]byte("test-secret"))
	login := auth.NewAuthenticator(dir, dir.hasher, tokens, time.Hour)
	srv := NewHTTPServer(cfg, logging.Nop(), dir, login, tokens)
	return &testEnv{server: srv, dir: dir, tokens: tokens}
}

type request struct {
	method  string
	path    string
	body    string
	headers map[string]string
}

func (e *testEnv) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
	if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) createUser(t *testing.T, email string) userResponse {
	t.Helper()
	w := e.do(t, request{method: http.MethodPost, path: "/users", body: fmt.Sprintf(
		`{"firstName":"First","lastName":"Last","email":%q,"password":"pw-123"}`, email)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var u userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	return u
}

// token logs email in with the password used by createUser.
func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, request{method: http.MethodPost, path: "/users/login", body: fmt.Sprintf(`{"email":%q,"password":"pw-123"}`, email)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Header().Get(common.AuthorizationHeaderName)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e), w.Body.String())
	_, err := time.Parse(time.RFC3339, e.Timestamp)
	require.NoError(t, err, "timestamp must be RFC 3339")
	require.NotEmpty(t, e.Message)
	return e
}
