package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Sam99132/full-stack-backend/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Sam99132/full-stack-backend/internal/domains/catalog/application"
	catalogdomain "github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
	ordersmemory "github.com/Sam99132/full-stack-backend/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Sam99132/full-stack-backend/internal/domains/orders/application"
	usersmemory "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/memory"
	"github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/orderhistory"
	userstoken "github.com/Sam99132/full-stack-backend/internal/domains/users/adapters/token"
	usersapp "github.com/Sam99132/full-stack-backend/internal/domains/users/application"
	usersdomain "github.com/Sam99132/full-stack-backend/internal/domains/users/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	users    *usersmemory.Repository
	products *catalogmemory.Repository
	userSvc  *usersapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	userRepo := usersmemory.NewRepository()
	productRepo := catalogmemory.NewRepository()
	orderRepo := ordersmemory.NewRepository(productRepo, userRepo)

	tokens, err := userstoken.NewJWT("test-secret", time.Hour)
	require.NoError(t, err)

	userSvc := usersapp.NewService(userRepo, tokens, orderhistory.New(orderRepo))
	router := NewRouter(APIs{
		Auth:     NewAuthAPI(userSvc),
		Products: NewProductAPI(catalogapp.NewService(productRepo)),
		Orders:   NewOrderAPI(ordersapp.NewService(orderRepo), nil),
		Users:    NewUserAPI(userSvc),
	}, RouterConfig{Verifier: tokens})

	return &testServer{router: router, users: userRepo, products: productRepo, userSvc: userSvc}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) registerAndLogin(t *testing.T, name, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return s.login(t, email)
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	admin, err := usersdomain.NewUser("Admin", "admin@example.com", "hunter22")
	require.NoError(t, err)
	admin.Role = usersdomain.RoleAdmin
	_, err = s.users.Save(t.Context(), admin)
	require.NoError(t, err)
	return s.login(t, "admin@example.com")
}

func (s *testServer) seedProduct(t *testing.T, name, price string, stock int) int64 {
	t.Helper()
	product, err := catalogdomain.NewProduct(name, "", decimal.RequireFromString(price), stock, "Electronics", "")
	require.NoError(t, err)
	created, err := s.products.Create(t.Context(), product)
	require.NoError(t, err)
	return created.ID
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Server is running")
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Imposter", "email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestRegister_WeakPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "Ada", "ada@example.com")

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ada@example.com", "password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrders_RequireAuthentication(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/orders", "", gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/orders", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_Success(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "Ada", "ada@example.com")
	productID := s.seedProduct(t, "Widget", "100.00", 5)

	rec := s.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"productId": productID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order struct {
		ID     int64  `json:"id"`
		Total  string `json:"total"`
		Status string `json:"status"`
		Items  []struct {
			Quantity int    `json:"quantity"`
			Price    string `json:"price"`
		} `json:"items"`
	}
	decodeJSON(t, rec, &order)
	require.Equal(t, "PENDING", order.Status)
	require.Equal(t, "300", order.Total)
	require.Len(t, order.Items, 1)

	product, err := s.products.GetByID(t.Context(), productID)
	require.NoError(t, err)
	require.Equal(t, 2, product.Stock)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "Ada", "ada@example.com")
	productID := s.seedProduct(t, "Widget", "100.00", 2)

	rec := s.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"productId": productID, "quantity": 3}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem struct {
		Type       string         `json:"type"`
		Extensions map[string]any `json:"extensions"`
	}
	decodeJSON(t, rec, &problem)
	require.Equal(t, "/problems/insufficient-stock", problem.Type)
	require.EqualValues(t, 2, problem.Extensions["available"])
	require.EqualValues(t, 3, problem.Extensions["requested"])

	product, err := s.products.GetByID(t.Context(), productID)
	require.NoError(t, err)
	require.Equal(t, 2, product.Stock, "failed order must not reserve stock")
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "Ada", "ada@example.com")

	rec := s.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{{"productId": 404, "quantity": 1}},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin(t, "Ada", "ada@example.com")

	rec := s.do(t, http.MethodPost, "/api/orders", token, gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_VisibilityRules(t *testing.T) {
	s := newTestServer(t)
	adaToken := s.registerAndLogin(t, "Ada", "ada@example.com")
	bobToken := s.registerAndLogin(t, "Bob", "bob@example.com")
	productID := s.seedProduct(t, "Widget", "10.00", 10)

	rec := s.do(t, http.MethodPost, "/api/orders", adaToken, gin.H{
		"items": []gin.H{{"productId": productID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, rec, &order)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	rec = s.do(t, http.MethodGet, path, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, path, adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, path, s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/orders/9999", adaToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders_ScopedByRole(t *testing.T) {
	s := newTestServer(t)
	adaToken := s.registerAndLogin(t, "Ada", "ada@example.com")
	bobToken := s.registerAndLogin(t, "Bob", "bob@example.com")
	productID := s.seedProduct(t, "Widget", "10.00", 10)

	for _, token := range []string{adaToken, bobToken, adaToken} {
		rec := s.do(t, http.MethodPost, "/api/orders", token, gin.H{
			"items": []gin.H{{"productId": productID, "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var mine []struct {
		UserID int64 `json:"userId"`
	}
	rec := s.do(t, http.MethodGet, "/api/orders", adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &mine)
	require.Len(t, mine, 2)

	var all []struct {
		UserID int64 `json:"userId"`
	}
	rec = s.do(t, http.MethodGet, "/api/orders", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &all)
	require.Len(t, all, 3)
}

func TestProducts_PublicReadAdminWrite(t *testing.T) {
	s := newTestServer(t)
	customerToken := s.registerAndLogin(t, "Ada", "ada@example.com")
	payload := gin.H{"name": "Widget", "price": "19.99", "stock": 5, "category": "Electronics"}

	rec := s.do(t, http.MethodPost, "/api/products", "", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/products", customerToken, payload)
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := s.adminToken(t)
	rec = s.do(t, http.MethodPost, "/api/products", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	decodeJSON(t, rec, &created)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), adminToken, gin.H{"stock": 42})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		Stock int    `json:"stock"`
		Name  string `json:"name"`
	}
	decodeJSON(t, rec, &updated)
	require.Equal(t, 42, updated.Stock)
	require.Equal(t, "Widget", updated.Name)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts_PaginationEnvelope(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 12; i++ {
		s.seedProduct(t, fmt.Sprintf("Widget %d", i+1), "10.00", 1)
	}

	rec := s.do(t, http.MethodGet, "/api/products?limit=5&page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Products   []json.RawMessage `json:"products"`
		Pagination struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
			Pages int   `json:"pages"`
		} `json:"pagination"`
	}
	decodeJSON(t, rec, &page)
	require.Len(t, page.Products, 5)
	require.EqualValues(t, 12, page.Pagination.Total)
	require.Equal(t, 2, page.Pagination.Page)
	require.Equal(t, 3, page.Pagination.Pages)
}

func TestListProducts_BadPriceFilter(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products?minPrice=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProfile_OwnerAndAdmin(t *testing.T) {
	s := newTestServer(t)
	adaToken := s.registerAndLogin(t, "Ada", "ada@example.com")
	bobToken := s.registerAndLogin(t, "Bob", "bob@example.com")
	productID := s.seedProduct(t, "Widget", "10.00", 10)

	rec := s.do(t, http.MethodPost, "/api/orders", adaToken, gin.H{
		"items": []gin.H{{"productId": productID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	ada, err := s.users.GetByEmail(t.Context(), "ada@example.com")
	require.NoError(t, err)
	path := fmt.Sprintf("/api/users/%d", ada.ID)

	rec = s.do(t, http.MethodGet, path, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, path, adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Email  string `json:"email"`
		Orders []struct {
			Status string `json:"status"`
		} `json:"orders"`
	}
	decodeJSON(t, rec, &profile)
	require.Equal(t, "ada@example.com", profile.Email)
	require.Len(t, profile.Orders, 1)
	require.Equal(t, "PENDING", profile.Orders[0].Status)

	rec = s.do(t, http.MethodGet, path, s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "", nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	out := httptest.NewRecorder()
	s.router.ServeHTTP(out, req)
	require.Equal(t, "fixed-id", out.Header().Get("X-Request-Id"))
}
