package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
	"github.com/FahriNazarudin/E-commerce/internal/auth"
	"github.com/FahriNazarudin/E-commerce/internal/cart"
	"github.com/FahriNazarudin/E-commerce/internal/catalog"
	"github.com/FahriNazarudin/E-commerce/internal/checkout"
	"github.com/FahriNazarudin/E-commerce/internal/chatbot"
	"github.com/FahriNazarudin/E-commerce/internal/payment"
	"github.com/FahriNazarudin/E-commerce/internal/users"
)

// --- fakes ---

type memUsers struct {
	byID   map[int64]*users.User
	nextID int64
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*users.User{}, nextID: 1} }

func (m *memUsers) Create(_ context.Context, u *users.User) error {
	for _, e := range m.byID {
		if e.Email == u.Email {
			return apperr.New(apperr.Validation, "Email is already exists")
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "User id:%d not found", id)
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.Newf(apperr.NotFound, "User with email %s not found", email)
}

func (m *memUsers) Update(_ context.Context, u *users.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) seed(t *testing.T, id int64, email, role string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	m.byID[id] = &users.User{
		ID: id, Username: "user" + email, Email: email,
		PhoneNumber: "081234567890", Password: string(hashed),
		Address: "Jakarta", Role: role,
	}
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

type memCarts struct {
	lines   map[int64][]cart.Line
	cleared []int64
}

func (m *memCarts) AddItem(_ context.Context, userID, productID int64, quantity int) error {
	if productID <= 0 || quantity <= 0 {
		return apperr.New(apperr.Validation, "ProductId and quantity are required and must be positive")
	}
	if productID == 404 {
		return apperr.Newf(apperr.NotFound, "Product id:%d not found", productID)
	}
	if quantity > 10 {
		return apperr.New(apperr.Validation, "Insufficient stock")
	}
	if m.lines == nil {
		m.lines = map[int64][]cart.Line{}
	}
	m.lines[userID] = append(m.lines[userID], cart.Line{
		ID: int64(len(m.lines[userID]) + 1), UserID: userID, ProductID: productID, Quantity: quantity,
	})
	return nil
}

func (m *memCarts) ListItems(_ context.Context, userID int64) ([]cart.Line, error) {
	return m.lines[userID], nil
}

func (m *memCarts) UpdateItem(_ context.Context, userID, lineID, productID int64, quantity int) error {
	for i, l := range m.lines[userID] {
		if l.ID == lineID {
			m.lines[userID][i].ProductID = productID
			m.lines[userID][i].Quantity = quantity
			return nil
		}
	}
	return apperr.Newf(apperr.NotFound, "Cart item id:%d not found", lineID)
}

func (m *memCarts) DeleteItem(_ context.Context, userID, lineID int64) error {
	for i, l := range m.lines[userID] {
		if l.ID == lineID {
			m.lines[userID] = append(m.lines[userID][:i], m.lines[userID][i+1:]...)
			return nil
		}
	}
	return apperr.Newf(apperr.NotFound, "Cart item id:%d not found", lineID)
}

func (m *memCarts) ItemsForCheckout(_ context.Context, userID int64) ([]cart.CheckoutItem, error) {
	var out []cart.CheckoutItem
	for _, l := range m.lines[userID] {
		out = append(out, cart.CheckoutItem{
			ProductID: l.ProductID, Quantity: l.Quantity,
			Name: fmt.Sprintf("product-%d", l.ProductID), Price: 1000,
		})
	}
	return out, nil
}

func (m *memCarts) Clear(_ context.Context, userID int64) error {
	m.cleared = append(m.cleared, userID)
	delete(m.lines, userID)
	return nil
}

type memCatalog struct {
	products   map[int64]*catalog.Product
	categories map[int64]*catalog.Category
	nextID     int64
}

func newMemCatalog() *memCatalog {
	return &memCatalog{products: map[int64]*catalog.Product{}, categories: map[int64]*catalog.Category{}, nextID: 1}
}

func (m *memCatalog) ListProducts(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memCatalog) GetProduct(_ context.Context, id int64) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "Product id:%d not found", id)
	}
	return p, nil
}

func (m *memCatalog) CreateProduct(_ context.Context, p *catalog.Product) error {
	if p.Name == "" {
		return apperr.New(apperr.Validation, "Name is required")
	}
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) UpdateProduct(_ context.Context, p *catalog.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return apperr.Newf(apperr.NotFound, "Product id:%d not found", p.ID)
	}
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return apperr.Newf(apperr.NotFound, "Product id:%d not found", id)
	}
	delete(m.products, id)
	return nil
}

func (m *memCatalog) ListCategories(_ context.Context) ([]catalog.Category, error) {
	out := make([]catalog.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCatalog) GetCategory(_ context.Context, id int64) (*catalog.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "Category with ID %d not found", id)
	}
	return c, nil
}

func (m *memCatalog) CreateCategory(_ context.Context, c *catalog.Category) error {
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return nil
}

func (m *memCatalog) UpdateCategory(_ context.Context, c *catalog.Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return apperr.Newf(apperr.NotFound, "Category with ID %d not found", c.ID)
	}
	m.categories[c.ID] = c
	return nil
}

func (m *memCatalog) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return apperr.Newf(apperr.NotFound, "Category with ID %d not found", id)
	}
	delete(m.categories, id)
	return nil
}

type memOrders struct {
	owners map[string]int64
	paid   []string
}

func (m *memOrders) Create(_ context.Context, o *checkout.Order, _ []checkout.OrderItem) error {
	if m.owners == nil {
		m.owners = map[string]int64{}
	}
	m.owners[o.OrderID] = o.UserID
	return nil
}

func (m *memOrders) Owner(_ context.Context, orderID string) (int64, error) {
	id, ok := m.owners[orderID]
	if !ok {
		return 0, apperr.Newf(apperr.NotFound, "Order %s not found", orderID)
	}
	return id, nil
}

func (m *memOrders) MarkPaid(_ context.Context, orderID string) error {
	m.paid = append(m.paid, orderID)
	return nil
}

type stubGateway struct {
	notif     *payment.Notification
	verifyErr error
}

func (g *stubGateway) CreateSnapTransaction(_ context.Context, _ *payment.CheckoutRequest) (*payment.SnapResult, error) {
	return &payment.SnapResult{Token: "snap-token", RedirectURL: "https://snap.example/redirect"}, nil
}

func (g *stubGateway) ChargeQRIS(_ context.Context, _ *payment.CheckoutRequest) (*payment.QRISResult, error) {
	return &payment.QRISResult{QRCodeURL: "https://qr.example/code", ExpiryTime: "2026-09-02 10:00:00"}, nil
}

func (g *stubGateway) TransactionStatus(_ context.Context, orderID string) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`{"order_id":%q,"transaction_status":"pending"}`, orderID)), nil
}

func (g *stubGateway) VerifyNotification(_ context.Context, _ map[string]any) (*payment.Notification, error) {
	return g.notif, g.verifyErr
}

type memDedup struct{ seen map[string]bool }

func (m *memDedup) SeenOrMark(_ context.Context, key string) (bool, error) {
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	if m.seen[key] {
		return true, nil
	}
	m.seen[key] = true
	return false, nil
}

func (m *memDedup) Unmark(_ context.Context, key string) error {
	delete(m.seen, key)
	return nil
}

// --- environment ---

type env struct {
	router  http.Handler
	tokens  *auth.Tokens
	users   *memUsers
	carts   *memCarts
	catalog *memCatalog
	orders  *memOrders
	gateway *stubGateway
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := newMemUsers()
	store.seed(t, 7, "fahri@mail.com", users.RoleUser)
	store.seed(t, 1, "admin@mail.com", users.RoleAdmin)

	carts := &memCarts{}
	cat := newMemCatalog()
	orders := &memOrders{}
	gateway := &stubGateway{}
	tokens := auth.NewTokens("test-secret")

	checkoutSvc := &checkout.Service{
		Carts:       carts,
		Users:       store,
		Orders:      orders,
		Gateway:     gateway,
		Dedup:       &memDedup{},
		FrontendURL: "http://localhost:5173",
		ServiceName: "test-api",
	}
	userSvc := &users.Service{Store: store}
	gate := &auth.Gate{Tokens: tokens, Users: store}

	r := NewRouter()
	Register(r, gate,
		&UsersHandler{Users: userSvc, Tokens: tokens},
		&CatalogHandler{Store: cat},
		&CartsHandler{Carts: carts},
		&CheckoutHandler{Checkout: checkoutSvc},
		&ChatHandler{Bot: &chatbot.Bot{}},
	)
	return &env{router: r, tokens: tokens, users: store, carts: carts, catalog: cat, orders: orders, gateway: gateway}
}

func (e *env) do(t *testing.T, method, path string, body any, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != 0 {
		u := e.users.byID[userID]
		token, err := e.tokens.Sign(u.ID, u.Email, u.Role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	assert.Equal(t, code, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, msg), rec.Body.String())
}

// --- auth gate ---

func TestGateRejectsMissingToken(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/carts", nil, 0)
	assertMessage(t, rec, http.StatusUnauthorized, "Unauthorized access")
}

func TestGateRejectsBadToken(t *testing.T) {
	e := newEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assertMessage(t, rec, http.StatusUnauthorized, "Unauthorized access")
}

func TestGateRejectsDeletedUser(t *testing.T) {
	e := newEnv(t)
	token, err := e.tokens.Sign(99, "ghost@mail.com", users.RoleUser)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assertMessage(t, rec, http.StatusUnauthorized, "Unauthorized access")
}

func TestAdminRoutesForbiddenForUser(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/products", map[string]any{"name": "BILLY"}, 7)
	assertMessage(t, rec, http.StatusForbidden, "Forbidden access")
}

func TestStoredRoleWinsOverTokenClaim(t *testing.T) {
	e := newEnv(t)
	// token claims admin but the stored row says plain user
	token, err := e.tokens.Sign(7, "fahri@mail.com", users.RoleAdmin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assertMessage(t, rec, http.StatusForbidden, "Forbidden access")
}

// --- users ---

func TestRegisterEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/register", map[string]string{
		"username": "budi", "email": "budi@mail.com", "phoneNumber": "081111111111",
		"password": "secret123", "address": "Jakarta",
	}, 0)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"username":"budi","email":"budi@mail.com"}`, rec.Body.String())
}

func TestRegisterEndpointValidation(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/register", map[string]string{"email": "budi@mail.com"}, 0)
	assertMessage(t, rec, http.StatusBadRequest, "username is required!")
}

func TestLoginEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/login", map[string]string{
		"email": "fahri@mail.com", "password": "secret123",
	}, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)

	claims, err := e.tokens.Parse(body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/login", map[string]string{
		"email": "fahri@mail.com", "password": "nope",
	}, 0)
	assertMessage(t, rec, http.StatusUnauthorized, "Invalid email/password")
}

func TestGetUserSelfAndForeign(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/users/7", nil, 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = e.do(t, http.MethodGet, "/users/1", nil, 7)
	assertMessage(t, rec, http.StatusForbidden, "Forbidden access")

	// admin reads anyone
	rec = e.do(t, http.MethodGet, "/users/7", nil, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUserEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPut, "/users/7", map[string]string{"address": "Bandung"}, 7)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bandung")
}

// --- catalog ---

func TestProductCRUD(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/products", map[string]any{"name": "BILLY", "price": 500, "stock": 3}, 1)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/products", nil, 7)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/products/1", nil, 7)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPut, "/products/1", map[string]any{"name": "BILLY v2", "price": 600}, 1)
	assertMessage(t, rec, http.StatusOK, "Product id:1 updated")

	rec = e.do(t, http.MethodDelete, "/products/1", nil, 1)
	assertMessage(t, rec, http.StatusOK, "Product id:1 success to deleted")

	rec = e.do(t, http.MethodGet, "/products/1", nil, 7)
	assertMessage(t, rec, http.StatusNotFound, "Product id:1 not found")
}

func TestCategoryCRUD(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/categories", map[string]any{"name": "Furniture"}, 1)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPut, "/categories/1", map[string]any{"name": "Decor"}, 1)
	assertMessage(t, rec, http.StatusOK, "Category with ID 1 updated")

	rec = e.do(t, http.MethodDelete, "/categories/1", nil, 1)
	assertMessage(t, rec, http.StatusOK, "Category with ID 1 deleted")

	rec = e.do(t, http.MethodGet, "/categories/1", nil, 7)
	assertMessage(t, rec, http.StatusNotFound, "Category with ID 1 not found")
}

// --- carts ---

func TestCartAdd(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 2}, 7)
	assertMessage(t, rec, http.StatusCreated, "Item added to cart")
}

func TestCartAddValidation(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 0, "quantity": 0}, 7)
	assertMessage(t, rec, http.StatusBadRequest, "ProductId and quantity are required and must be positive")
}

func TestCartAddInsufficientStock(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 99}, 7)
	assertMessage(t, rec, http.StatusBadRequest, "Insufficient stock")
}

func TestCartAddUnknownProduct(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 404, "quantity": 1}, 7)
	assertMessage(t, rec, http.StatusNotFound, "Product id:404 not found")
}

func TestCartUpdateAndDelete(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 2}, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPut, "/carts/1", map[string]any{"productId": 1, "quantity": 5}, 7)
	assertMessage(t, rec, http.StatusOK, "Cart with ID 1 successfully updated")

	rec = e.do(t, http.MethodDelete, "/carts/1", nil, 7)
	assertMessage(t, rec, http.StatusOK, "Cart with ID 1 successfully deleted")
}

func TestCartForeignLineInvisible(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 2}, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	// admin (user 1) cannot touch user 7's line
	rec = e.do(t, http.MethodDelete, "/carts/1", nil, 1)
	assertMessage(t, rec, http.StatusNotFound, "Cart item id:1 not found")

	rec = e.do(t, http.MethodPut, "/carts/1", map[string]any{"productId": 1, "quantity": 3}, 1)
	assertMessage(t, rec, http.StatusNotFound, "Cart item id:1 not found")
}

// --- checkout ---

func TestSnapCheckoutEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 2}, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/checkout/snap", nil, 7)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token       string `json:"token"`
		OrderID     string `json:"orderId"`
		RedirectURL string `json:"redirect_url"`
		TotalAmount int64  `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "snap-token", body.Token)
	assert.Regexp(t, `^SNAP-7-\d+$`, body.OrderID)
	assert.Equal(t, int64(2000), body.TotalAmount)
}

func TestQRISCheckoutEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 2, "quantity": 1}, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/checkout/qris", nil, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		OrderID     string `json:"orderId"`
		TotalAmount int64  `json:"totalAmount"`
		QRCode      string `json:"qrCode"`
		ExpiryTime  string `json:"expiry_time"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Regexp(t, `^QRIS-7-\d+$`, body.OrderID)
	assert.Equal(t, int64(1000), body.TotalAmount)
	assert.Equal(t, "https://qr.example/code", body.QRCode)
	assert.Equal(t, "2026-09-02 10:00:00", body.ExpiryTime)
}

func TestCheckoutEmptyCartEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/checkout/snap", nil, 7)
	assertMessage(t, rec, http.StatusBadRequest, "Cart is empty")

	rec = e.do(t, http.MethodPost, "/checkout/qris", nil, 7)
	assertMessage(t, rec, http.StatusBadRequest, "Cart is empty")
}

func TestTransactionStatusEndpoint(t *testing.T) {
	e := newEnv(t)
	for _, path := range []string{"/checkout/status/SNAP-7-1", "/transaction/status/SNAP-7-1"} {
		rec := e.do(t, http.MethodGet, path, nil, 7)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"order_id":"SNAP-7-1","transaction_status":"pending"}`, rec.Body.String())
	}
}

// --- notification webhook ---

func TestNotificationSettlement(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 2}, 7)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = e.do(t, http.MethodPost, "/checkout/qris", nil, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	e.gateway.notif = &payment.Notification{OrderID: body.OrderID, TransactionStatus: "settlement"}
	rec = e.do(t, http.MethodPost, "/checkout/notification", map[string]any{"order_id": body.OrderID}, 0)
	assertMessage(t, rec, http.StatusOK, "Notification processed")

	assert.Equal(t, []int64{7}, e.carts.cleared)
	assert.Equal(t, []string{body.OrderID}, e.orders.paid)

	// cart now reads back empty
	rec = e.do(t, http.MethodGet, "/carts", nil, 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestNotificationPendingLeavesCart(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/carts", map[string]any{"productId": 1, "quantity": 2}, 7)
	require.Equal(t, http.StatusCreated, rec.Code)

	e.gateway.notif = &payment.Notification{OrderID: "QRIS-7-1690000000000", TransactionStatus: "pending"}
	rec = e.do(t, http.MethodPost, "/checkout/notification", map[string]any{}, 0)
	assertMessage(t, rec, http.StatusOK, "Notification processed")
	assert.Empty(t, e.carts.cleared)
}

func TestNotificationVerifyFailure(t *testing.T) {
	e := newEnv(t)
	e.gateway.verifyErr = errors.New("signature mismatch")
	rec := e.do(t, http.MethodPost, "/checkout/notification", map[string]any{}, 0)
	assertMessage(t, rec, http.StatusInternalServerError, "Error processing notification")
}

func TestNotificationHandlingAlias(t *testing.T) {
	e := newEnv(t)
	e.gateway.notif = &payment.Notification{OrderID: "QRIS-7-1690000000000", TransactionStatus: "pending"}
	rec := e.do(t, http.MethodPost, "/notification/handling", map[string]any{}, 0)
	assertMessage(t, rec, http.StatusOK, "Notification processed")
}

// --- chatbot ---

func TestChatbotEndpoint(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/chatbot", map[string]string{"message": "hello"}, 7)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello there!")
}

func TestChatbotRequiresMessage(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/chatbot", map[string]string{"message": ""}, 7)
	assertMessage(t, rec, http.StatusBadRequest, "Message is required")
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", nil, 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
