package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Shoxzn12/level-up-pc/internal/clients"
	"github.com/Shoxzn12/level-up-pc/internal/domain"
	"github.com/Shoxzn12/level-up-pc/internal/repository"
	"github.com/Shoxzn12/level-up-pc/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "admin-secret"

type mockPaymentClient struct {
	CreatePreferenceFunc func(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error)
	WhoAmIFunc           func(ctx context.Context) (*domain.AccountInfo, error)
	calls                int
}

func (m *mockPaymentClient) CreatePreference(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error) {
	m.calls++
	if m.CreatePreferenceFunc != nil {
		return m.CreatePreferenceFunc(ctx, pref)
	}
	return &domain.CreatedPreference{ID: "pref-1", InitPoint: "https://mp.example/init"}, nil
}

func (m *mockPaymentClient) WhoAmI(ctx context.Context) (*domain.AccountInfo, error) {
	m.calls++
	if m.WhoAmIFunc != nil {
		return m.WhoAmIFunc(ctx)
	}
	return &domain.AccountInfo{ID: "42", Nickname: "TESTSHOP", SiteID: "MLC"}, nil
}

// testServer wires the real handlers over a temp data file.
type testServer struct {
	router   *gin.Engine
	repo     *repository.FileProductRepository
	dataFile string
	payments *mockPaymentClient
}

type serverOptions struct {
	adminToken string
	mpToken    string
	production bool
	staticDir  string
	// payments replaces the mock with a real client when set.
	payments clients.PaymentClient
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dataFile := filepath.Join(t.TempDir(), "db.json")
	repo := repository.NewFileProductRepository(dataFile, nil, logger)
	require.NoError(t, repo.Ensure())

	payments := &mockPaymentClient{}
	var paymentClient clients.PaymentClient = payments
	if opts.payments != nil {
		paymentClient = opts.payments
	}
	checkout := usecase.NewCheckoutUseCase(usecase.CheckoutConfig{
		AccessToken:   opts.mpToken,
		Production:    opts.production,
		PublicBaseURL: "https://shop.example",
		CurrencyID:    "CLP",
	}, paymentClient, logger)

	router := NewRouter(RouterDeps{
		Products:   NewProductHandler(usecase.NewProductUseCase(repo, logger), logger),
		Chat:       NewChatHandler(usecase.NewChatUseCase(nil, false, logger), logger),
		Checkout:   NewCheckoutHandler(checkout, logger),
		Pages:      NewPageHandler(opts.staticDir, logger),
		AdminToken: opts.adminToken,
	}, logger)

	return &testServer{router: router, repo: repo, dataFile: dataFile, payments: payments}
}

func (ts *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func TestListProductsEmptyCatalog(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})

	w := ts.do(http.MethodGet, "/api/products", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":[],"brands":[]}`, w.Body.String())
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})

	w := ts.do(http.MethodPost, "/api/products",
		`{"name":"RTX 4060","price":299990,"category":"gpu","brand":"Nvidia","image":"/img/4060.png","stock":3}`, testAdminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created domain.Product
	decode(t, w, &created)
	assert.Equal(t, 1, created.ID)

	// a fresh repository over the same file sees the identical record
	reloaded, err := repository.NewFileProductRepository(ts.dataFile, nil, logrus.New()).GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, *reloaded)

	w = ts.do(http.MethodGet, "/api/products/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Product
	decode(t, w, &got)
	assert.Equal(t, created, got)
}

func TestCreateProductErrors(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/products", `{"id":5,"name":"CPU","price":100}`, testAdminToken).Code)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"price":10}`, http.StatusBadRequest},
		{"null price", `{"name":"X","price":null}`, http.StatusBadRequest},
		{"string price", `{"name":"X","price":"10"}`, http.StatusBadRequest},
		{"unknown field", `{"name":"X","price":10,"color":"red"}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"duplicate id", `{"id":5,"name":"Dup","price":1}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before, err := os.ReadFile(ts.dataFile)
			require.NoError(t, err)

			w := ts.do(http.MethodPost, "/api/products", tc.body, testAdminToken)
			assert.Equal(t, tc.want, w.Code, w.Body.String())

			after, err := os.ReadFile(ts.dataFile)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}

	w := ts.do(http.MethodPost, "/api/products", `{"name":"GPU","price":10}`, testAdminToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var next domain.Product
	decode(t, w, &next)
	assert.Equal(t, 6, next.ID)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})
	body := `{"name":"CPU","price":100}`

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/api/products", body, "").Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/api/products", body, "wrong").Code)
	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/products?admin_token="+testAdminToken, body, "").Code)

	unconfigured := newTestServer(t, serverOptions{})
	w := unconfigured.do(http.MethodDelete, "/api/products/1", "", "anything")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domain.CodeAdminNotConfigured)
}

func TestUpdateStock(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/products", `{"name":"CPU","price":100,"stock":4}`, testAdminToken).Code)

	for _, body := range []string{`{"stock":-1}`, `{"stock":"ten"}`, `{"stock":1.5}`, `{}`} {
		w := ts.do(http.MethodPatch, "/api/products/1/stock", body, testAdminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	product, err := ts.repo.GetProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 4, product.Stock)

	w := ts.do(http.MethodPatch, "/api/products/1/stock", `{"stock":12}`, testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"stock":12}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPatch, "/api/products/9/stock", `{"stock":1}`, testAdminToken).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPatch, "/api/products/abc/stock", `{"stock":1}`, testAdminToken).Code)
}

func TestDeleteProduct(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})
	for _, body := range []string{`{"name":"A","price":1}`, `{"name":"B","price":2}`} {
		require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/products", body, testAdminToken).Code)
	}

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/products/3", "", testAdminToken).Code)

	w := ts.do(http.MethodDelete, "/api/products/2", "", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.DeleteResponse
	decode(t, w, &res)
	assert.Equal(t, "B", res.Removed.Name)

	assert.Len(t, ts.repo.Load().Products, 1)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/products/2", "", "").Code)
}

func TestPlainErrorsOmitCode(t *testing.T) {
	ts := newTestServer(t, serverOptions{adminToken: testAdminToken})
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/products", `{"id":1,"name":"A","price":1}`, testAdminToken).Code)

	for _, w := range []*httptest.ResponseRecorder{
		ts.do(http.MethodGet, "/api/products/7", "", ""),
		ts.do(http.MethodPost, "/api/products", `{"id":1,"name":"Dup","price":1}`, testAdminToken),
	} {
		var body map[string]interface{}
		decode(t, w, &body)
		assert.NotEmpty(t, body["error"])
		assert.NotContains(t, body, "code")
	}
}

func TestChatFallback(t *testing.T) {
	ts := newTestServer(t, serverOptions{})

	w := ts.do(http.MethodPost, "/api/chat", `{"message":"cual es el precio?"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.ChatResponse
	decode(t, w, &res)
	assert.Equal(t, usecase.FallbackReply("precio"), res.Reply)

	w = ts.do(http.MethodPost, "/api/chat", `{"message":"hola"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &res)
	assert.Equal(t, usecase.FallbackReply("hola"), res.Reply)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/chat", `{"message":""}`, "").Code)
}

func TestCreatePreference(t *testing.T) {
	ts := newTestServer(t, serverOptions{mpToken: "TEST-123"})

	w := ts.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000,"quantity":1}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res domain.PreferenceResponse
	decode(t, w, &res)
	assert.Equal(t, "https://mp.example/init", res.InitPoint)
	assert.True(t, strings.HasPrefix(res.ExternalReference, "order-"))

	w = ts.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), domain.CodeValidation)
}

func TestCreatePreferenceTokenGuards(t *testing.T) {
	prodToken := newTestServer(t, serverOptions{mpToken: "APP_USR-123"})
	w := prodToken.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000,"quantity":1}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body domain.ErrorBody
	decode(t, w, &body)
	assert.Equal(t, domain.CodeUseTestAccessToken, body.Code)
	assert.Zero(t, prodToken.payments.calls)

	noToken := newTestServer(t, serverOptions{})
	w = noToken.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000,"quantity":1}`, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domain.CodeMPNotConfigured)
}

func TestCreatePreferenceProviderFailures(t *testing.T) {
	ts := newTestServer(t, serverOptions{mpToken: "TEST-123"})
	ts.payments.CreatePreferenceFunc = func(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error) {
		return nil, &clients.ProviderError{Provider: "payment provider", StatusCode: http.StatusUnauthorized, Message: "invalid access token"}
	}

	w := ts.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000,"quantity":1}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body domain.ErrorBody
	decode(t, w, &body)
	assert.Equal(t, "invalid access token", body.Error)

	ts.payments.CreatePreferenceFunc = func(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error) {
		return &domain.CreatedPreference{ID: "pref-1"}, nil
	}
	w = ts.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000,"quantity":1}`, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domain.CodeMissingRedirectURL)
}

func TestWhoAmI(t *testing.T) {
	ts := newTestServer(t, serverOptions{mpToken: "TEST-123"})

	w := ts.do(http.MethodGet, "/api/mp_whoami", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"nickname":"TESTSHOP","email":"","site_id":"MLC"}`, w.Body.String())

	ts.payments.WhoAmIFunc = func(ctx context.Context) (*domain.AccountInfo, error) {
		return nil, &clients.ProviderError{Provider: "payment provider", StatusCode: http.StatusForbidden, Message: "forbidden"}
	}
	w = ts.do(http.MethodGet, "/api/mp_whoami", "", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPaymentProviderUnreachable(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	dead := clients.NewMercadoPagoHTTPClient("TEST-123", "http://127.0.0.1:1", time.Second, logger)
	ts := newTestServer(t, serverOptions{mpToken: "TEST-123", payments: dead})

	for _, w := range []*httptest.ResponseRecorder{
		ts.do(http.MethodGet, "/api/mp_whoami", "", ""),
		ts.do(http.MethodPost, "/api/create_preference", `{"title":"CPU","price":1000,"quantity":1}`, ""),
	} {
		assert.Equal(t, http.StatusBadGateway, w.Code)
		var body domain.ErrorBody
		decode(t, w, &body)
		assert.Equal(t, domain.CodeProviderError, body.Code)
		assert.Contains(t, body.Error, "could not reach payment provider")
	}
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t, serverOptions{staticDir: t.TempDir()})
	w := ts.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Level-Up PC API")

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>storefront</h1>"), 0o644))
	ts = newTestServer(t, serverOptions{staticDir: static})
	w = ts.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("storefront")))

	assert.JSONEq(t, `{"status":"ok"}`, ts.do(http.MethodGet, "/health", "", "").Body.String())
}

func TestMapErrorToStatus(t *testing.T) {
	status, code := mapErrorToStatus(domain.ErrPersistence)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, code)

	status, code = mapErrorToStatus(&clients.ProviderError{Message: "dial tcp"})
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, domain.CodeProviderError, code)
}
