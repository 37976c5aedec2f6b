package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/api"
	"github.com/shivaccounts/accounts-api/internal/api/handler"
	"github.com/shivaccounts/accounts-api/internal/api/middleware"
	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Binder = handler.NewBinder()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func do(e *echo.Echo, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
	if msg != "" {
		if got := decode(t, rec)["error"]; got != msg {
			t.Fatalf("expected error %q, got %v", msg, got)
		}
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type stubAuthService struct {
	signupFn  func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn   func(ctx context.Context, key, password, requestID string) (*ports.TokenResult, error)
	currentFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, key, password, requestID string) (*ports.TokenResult, error) {
	return s.loginFn(ctx, key, password, requestID)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return s.currentFn(ctx, token)
}

func authEcho(stub *stubAuthService) *echo.Echo {
	e := newEcho()
	h := handler.NewAuthHandler(stub)
	e.POST("/CreateUser", h.CreateUser)
	e.POST("/login", h.Login)
	e.GET("/me", h.Me)
	return e
}

var ann = &domain.User{
	ID:           "6f1c1a52-3b8e-4c1d-9a1f-2b7e0d4c9e11",
	Name:         "Ann",
	LoginID:      "ann1",
	Email:        "ann@x.com",
	PasswordHash: "$2a$12$hashhashhash",
	Role:         domain.RoleAdmin,
	CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

const annSignup = `{"name":"Ann","login_id":"ann1","email":"ann@x.com","password":"longenough","role":"admin"}`

func TestCreateUser_Created(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Name != "Ann" || in.LoginID != "ann1" || in.Email != "ann@x.com" || in.Password != "longenough" || in.Role != domain.RoleAdmin {
				t.Fatalf("unexpected input: %+v", in)
			}
			return ann, nil
		},
	}

	rec := do(authEcho(stub), http.MethodPost, "/CreateUser", annSignup)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["id"] != ann.ID || body["name"] != "Ann" || body["login_id"] != "ann1" || body["role"] != "admin" {
		t.Fatalf("unexpected identity: %v", body)
	}
	for _, k := range []string{"password", "password_hash", "PasswordHash"} {
		if _, ok := body[k]; ok {
			t.Fatalf("response must not contain %s", k)
		}
	}
	if strings.Contains(rec.Body.String(), "longenough") || strings.Contains(rec.Body.String(), ann.PasswordHash) {
		t.Fatalf("response leaks credentials: %s", rec.Body.String())
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	rec := do(authEcho(stub), http.MethodPost, "/CreateUser", annSignup)
	expectError(t, rec, http.StatusConflict, "email or login_id already exists")
}

func TestCreateUser_RejectedBeforeService(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	e := authEcho(stub)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"unknown field", `{"name":"Ann","login_id":"a","email":"a@x.com","password":"longenough","role":"admin","is_admin":true}`, http.StatusBadRequest},
		{"wrong type", `{"name":1}`, http.StatusBadRequest},
		{"short password", `{"name":"Ann","login_id":"a","email":"a@x.com","password":"short","role":"admin"}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"Ann","login_id":"a","email":"not-an-email","password":"longenough","role":"admin"}`, http.StatusUnprocessableEntity},
		{"bad role", `{"name":"Ann","login_id":"a","email":"a@x.com","password":"longenough","role":"root"}`, http.StatusUnprocessableEntity},
		{"missing name", `{"login_id":"a","email":"a@x.com","password":"longenough","role":"admin"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/CreateUser", tc.body)
			expectError(t, rec, tc.code, "")
		})
	}
}

func TestCreateUser_ValidationNamesField(t *testing.T) {
	stub := &stubAuthService{}
	rec := do(authEcho(stub), http.MethodPost, "/CreateUser",
		`{"name":"Ann","login_id":"a","email":"a@x.com","password":"short","role":"admin"}`)
	expectError(t, rec, http.StatusUnprocessableEntity, "password must be at least 8 characters")
}

func TestCreateUser_EmptyBody(t *testing.T) {
	rec := do(authEcho(&stubAuthService{}), http.MethodPost, "/CreateUser", "")
	expectError(t, rec, http.StatusBadRequest, "request body is required")
}

func TestLogin_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, key, password, _ string) (*ports.TokenResult, error) {
			if key != "ann1" || password != "longenough" {
				t.Fatalf("unexpected args: %s %s", key, password)
			}
			return &ports.TokenResult{AccessToken: "tok", TokenType: "bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	rec := do(authEcho(stub), http.MethodPost, "/login", `{"login_or_email":"ann1","password":"longenough"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["access_token"] != "tok" || body["token_type"] != "bearer" || len(body) != 2 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLogin_Failures(t *testing.T) {
	for err, want := range map[error]int{
		domain.ErrInvalidCredentials: http.StatusUnauthorized,
		domain.ErrTooManyAttempts:    http.StatusTooManyRequests,
		errors.New("db down"):        http.StatusInternalServerError,
	} {
		stub := &stubAuthService{
			loginFn: func(context.Context, string, string, string) (*ports.TokenResult, error) {
				return nil, err
			},
		}
		rec := do(authEcho(stub), http.MethodPost, "/login", `{"login_or_email":"ann1","password":"nope"}`)
		if rec.Code != want {
			t.Fatalf("%v: expected %d, got %d", err, want, rec.Code)
		}
		if strings.Contains(rec.Body.String(), "db down") {
			t.Fatalf("internal error leaked: %s", rec.Body.String())
		}
	}
}

func TestMe(t *testing.T) {
	stub := &stubAuthService{
		currentFn: func(_ context.Context, token string) (*domain.User, error) {
			switch token {
			case "good":
				return ann, nil
			case "orphan":
				return nil, domain.ErrUserNotFound
			default:
				return nil, domain.ErrInvalidToken
			}
		},
	}
	e := authEcho(stub)

	rec := do(e, http.MethodGet, "/me", "", echo.HeaderAuthorization, "Bearer good")
	if rec.Code != http.StatusOK || decode(t, rec)["name"] != "Ann" {
		t.Fatalf("expected Ann, got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/me", "")
	expectError(t, rec, http.StatusUnauthorized, "invalid or expired token")
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("expected WWW-Authenticate header")
	}

	rec = do(e, http.MethodGet, "/me", "", echo.HeaderAuthorization, "Bearer forged")
	expectError(t, rec, http.StatusUnauthorized, "invalid or expired token")

	rec = do(e, http.MethodGet, "/me", "", echo.HeaderAuthorization, "Bearer orphan")
	expectError(t, rec, http.StatusNotFound, "user not found")
}

// ---------------------------------------------------------------------------
// Registries
// ---------------------------------------------------------------------------

type stubProductService struct {
	created domain.Product
	patch   domain.ProductPatch
}

func (s *stubProductService) List(context.Context) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.created = p
	p.ID = "p-1"
	return &p, nil
}

func (s *stubProductService) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	s.patch = patch
	if id != "p-1" {
		return nil, domain.ErrProductNotFound
	}
	return &domain.Product{ID: id, Name: "Chair", Type: domain.ProductGoods}, nil
}

func (s *stubProductService) Delete(context.Context, string) error { return domain.ErrProductNotFound }

func TestProductHandler(t *testing.T) {
	svc := &stubProductService{}
	e := newEcho()
	h := handler.NewProductHandler(svc)
	e.GET("/products", h.List)
	e.GET("/products/:id", h.Get)
	e.POST("/products", h.Create)
	e.PUT("/products/:id", h.Update)
	e.DELETE("/products/:id", h.Delete)

	rec := do(e, http.MethodGet, "/products", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/products", `{"name":"Chair","type":"goods","sales_price":2200,"sales_tax":18}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created.Name != "Chair" || *svc.created.SalesPrice != 2200 || svc.created.PurchasePrice != nil {
		t.Fatalf("unexpected product passed to service: %+v", svc.created)
	}

	rec = do(e, http.MethodPost, "/products", `{"name":"Chair","type":"goods","sales_tax":120}`)
	expectError(t, rec, http.StatusUnprocessableEntity, "sales_tax must be at most 100")

	rec = do(e, http.MethodPost, "/products", `{"name":"Chair","type":"goods","sales_price":1e10}`)
	expectError(t, rec, http.StatusUnprocessableEntity, "sales_price must be at most 9999999999.99")

	rec = do(e, http.MethodPut, "/products/p-1", `{"sales_price":2500}`)
	if rec.Code != http.StatusOK || svc.patch.SalesPrice == nil || svc.patch.Name != nil {
		t.Fatalf("unexpected update: %d %+v", rec.Code, svc.patch)
	}

	expectError(t, do(e, http.MethodGet, "/products/nope", ""), http.StatusNotFound, "product not found")
	expectError(t, do(e, http.MethodPut, "/products/nope", `{"name":"x"}`), http.StatusNotFound, "product not found")
	expectError(t, do(e, http.MethodDelete, "/products/nope", ""), http.StatusNotFound, "product not found")
}

type stubTaxService struct {
	includeArchived bool
}

func (s *stubTaxService) List(_ context.Context, includeArchived bool) ([]domain.Tax, error) {
	s.includeArchived = includeArchived
	return []domain.Tax{}, nil
}

func (s *stubTaxService) Create(_ context.Context, t domain.Tax) (*domain.Tax, error) {
	t.ID = "t-1"
	return &t, nil
}

func (s *stubTaxService) Update(_ context.Context, id string, _ domain.TaxPatch) (*domain.Tax, error) {
	return nil, domain.NewValidationError("value", "must not exceed 100 for percentage taxes")
}

func (s *stubTaxService) ToggleArchived(_ context.Context, id string) (*domain.Tax, error) {
	return &domain.Tax{ID: id, Name: "GST", Archived: true}, nil
}

func TestTaxHandler(t *testing.T) {
	svc := &stubTaxService{}
	e := newEcho()
	h := handler.NewTaxHandler(svc)
	e.GET("/taxes", h.List)
	e.POST("/taxes", h.Create)
	e.PUT("/taxes/:id", h.Update)
	e.DELETE("/taxes/:id", h.ToggleArchived)

	if rec := do(e, http.MethodGet, "/taxes?include_archived=true", ""); rec.Code != http.StatusOK || !svc.includeArchived {
		t.Fatalf("expected include_archived to reach service, got %d", rec.Code)
	}
	expectError(t, do(e, http.MethodGet, "/taxes?include_archived=maybe", ""), http.StatusBadRequest, "include_archived must be a boolean")

	rec := do(e, http.MethodPost, "/taxes", `{"name":"GST 0%","method":"Percentage","appliesTo":"Sales","value":0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("zero-valued tax should be accepted, got %d: %s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["appliesTo"] != "Sales" {
		t.Fatalf("expected appliesTo in response, got %s", rec.Body.String())
	}
	expectError(t, do(e, http.MethodPost, "/taxes", `{"name":"Freight","method":"Fixed","appliesTo":"Purchase","value":1e10}`),
		http.StatusUnprocessableEntity, "value must be at most 9999999999.99")
	expectError(t, do(e, http.MethodPost, "/taxes", `{"name":"GST","method":"Percentage","applies_to":"Sales","value":5}`),
		http.StatusBadRequest, "unknown field \"applies_to\"")
	expectError(t, do(e, http.MethodPost, "/taxes", `{"name":"GST","method":"Percentage","appliesTo":"Sales"}`),
		http.StatusUnprocessableEntity, "value is required")

	expectError(t, do(e, http.MethodPut, "/taxes/t-1", `{"value":150}`),
		http.StatusUnprocessableEntity, "value must not exceed 100 for percentage taxes")

	rec = do(e, http.MethodDelete, "/taxes/t-1", "")
	if rec.Code != http.StatusOK || decode(t, rec)["archived"] != true {
		t.Fatalf("expected archived tax, got %d %s", rec.Code, rec.Body.String())
	}
}

type stubContactService struct {
	created domain.Contact
}

func (s *stubContactService) List(context.Context) ([]domain.Contact, error) { return nil, nil }

func (s *stubContactService) Get(context.Context, string) (*domain.Contact, error) {
	return nil, domain.ErrContactNotFound
}

func (s *stubContactService) Create(_ context.Context, c domain.Contact) (*domain.Contact, error) {
	s.created = c
	return &c, nil
}

func (s *stubContactService) Update(context.Context, string, domain.ContactPatch) (*domain.Contact, error) {
	return nil, domain.ErrContactNotFound
}

func (s *stubContactService) Delete(context.Context, string) error { return nil }

func TestContactHandler_CreatedBy(t *testing.T) {
	svc := &stubContactService{}
	e := newEcho()
	h := handler.NewContactHandler(svc)
	e.POST("/contacts", h.Create)
	e.POST("/authed/contacts", h.Create, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextKeyUserID, "from-token")
			return next(c)
		}
	})

	body := `{"name":"Acme","type":"vendor","created_by":"6f1c1a52-3b8e-4c1d-9a1f-2b7e0d4c9e11"}`

	if rec := do(e, http.MethodPost, "/contacts", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created.CreatedBy != "6f1c1a52-3b8e-4c1d-9a1f-2b7e0d4c9e11" {
		t.Fatalf("expected body created_by, got %q", svc.created.CreatedBy)
	}

	if rec := do(e, http.MethodPost, "/authed/contacts", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.created.CreatedBy != "from-token" {
		t.Fatalf("token subject should win, got %q", svc.created.CreatedBy)
	}

	expectError(t, do(e, http.MethodPost, "/contacts", `{"name":"Acme","type":"vendor","email":"nope"}`),
		http.StatusUnprocessableEntity, "email must be a valid email")
}

type stubAccountService struct {
	byType string
}

func (s *stubAccountService) List(context.Context) ([]domain.Account, error) { return nil, nil }

func (s *stubAccountService) ListByType(_ context.Context, accountType string) ([]domain.Account, error) {
	s.byType = accountType
	if accountType == "revenue" {
		return nil, domain.NewValidationError("type", "must be one of: Asset Liability Income Expense Equity")
	}
	return []domain.Account{{ID: "a-1", Name: "Cash", Type: domain.AccountAsset}}, nil
}

func (s *stubAccountService) Create(_ context.Context, a domain.Account) (*domain.Account, error) {
	return &a, nil
}

func (s *stubAccountService) Update(context.Context, string, domain.Account) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (s *stubAccountService) Delete(context.Context, string) error { return nil }

func TestAccountHandler(t *testing.T) {
	svc := &stubAccountService{}
	e := newEcho()
	h := handler.NewAccountHandler(svc)
	e.GET("/coa/by-type/:type", h.ListByType)
	e.PUT("/coa/:id", h.Update)
	e.DELETE("/coa/:id", h.Delete)

	if rec := do(e, http.MethodGet, "/coa/by-type/asset", ""); rec.Code != http.StatusOK || svc.byType != "asset" {
		t.Fatalf("expected raw type to reach service, got %d %q", rec.Code, svc.byType)
	}
	expectError(t, do(e, http.MethodGet, "/coa/by-type/revenue", ""), http.StatusUnprocessableEntity, "")
	expectError(t, do(e, http.MethodPut, "/coa/a-9", `{"name":"Cash","type":"Asset"}`), http.StatusNotFound, "account not found")
	if rec := do(e, http.MethodDelete, "/coa/a-1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

type stubPaymentService struct {
	err error
}

func (s *stubPaymentService) CreateOrder(_ context.Context, cartTotal int64) (*domain.PaymentOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.PaymentOrder{OrderID: "order_1", Amount: cartTotal * 100, Currency: "INR", Status: "created"}, nil
}

func TestPaymentHandler(t *testing.T) {
	route := func(svc ports.PaymentService) *echo.Echo {
		e := newEcho()
		e.POST("/create-order", handler.NewPaymentHandler(svc).CreateOrder)
		return e
	}

	rec := do(route(&stubPaymentService{}), http.MethodPost, "/create-order", `{"cart_total":150}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["order_id"] != "order_1" || body["amount"] != float64(15000) || body["currency"] != "INR" {
		t.Fatalf("unexpected body: %v", body)
	}

	expectError(t, do(route(&stubPaymentService{err: domain.NewValidationError("cart_total", "is too large")}),
		http.MethodPost, "/create-order", `{"cart_total":92233720368547758}`),
		http.StatusUnprocessableEntity, "cart_total is too large")
	expectError(t, do(route(&stubPaymentService{}), http.MethodPost, "/create-order", `{"cart_total":0}`),
		http.StatusUnprocessableEntity, "cart_total is required")
	expectError(t, do(route(&stubPaymentService{err: domain.ErrPaymentUnavailable}), http.MethodPost, "/create-order", `{"cart_total":1}`),
		http.StatusServiceUnavailable, "payment gateway not configured")
	expectError(t, do(route(&stubPaymentService{err: errors.Join(domain.ErrPaymentFailed, errors.New("401 from gateway"))}),
		http.MethodPost, "/create-order", `{"cart_total":1}`),
		http.StatusBadGateway, "payment gateway request failed")
}
