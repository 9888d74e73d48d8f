package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordesk/backoffice/internal/domain/category"
	"github.com/ordesk/backoffice/internal/domain/customer"
	"github.com/ordesk/backoffice/internal/domain/dashboard"
	"github.com/ordesk/backoffice/internal/domain/order"
	"github.com/ordesk/backoffice/internal/domain/product"
	"github.com/ordesk/backoffice/internal/storage"
)

// --- Mock implementations ---

type mockCategoryRepo struct {
	items   []category.Category
	listErr error
	getErr  error
	delErr  error
}

func (m *mockCategoryRepo) List(_ context.Context) ([]category.Category, error) {
	return m.items, m.listErr
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id int64) (*category.Category, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, category.ErrNotFound
}

func (m *mockCategoryRepo) Create(_ context.Context, c *category.Category) (int64, error) {
	if m.listErr != nil {
		return 0, m.listErr
	}
	c.ID = int64(len(m.items) + 1)
	m.items = append(m.items, *c)
	return c.ID, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, id int64, _ category.Patch) error {
	if _, err := m.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id int64) error {
	if m.delErr != nil {
		return m.delErr
	}
	if _, err := m.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

type mockCustomerRepo struct {
	items  []customer.Customer
	delErr error
}

func (m *mockCustomerRepo) List(_ context.Context, _ string) ([]customer.Customer, error) {
	return m.items, nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, customer.ErrNotFound
}

func (m *mockCustomerRepo) Create(_ context.Context, c *customer.Customer) (int64, error) {
	c.ID = int64(len(m.items) + 1)
	m.items = append(m.items, *c)
	return c.ID, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, id int64, _ customer.Patch) error {
	if _, err := m.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id int64) error {
	if m.delErr != nil {
		return m.delErr
	}
	if _, err := m.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

type mockProductRepo struct {
	items      []product.Product
	lastFilter product.Filter
}

func (m *mockProductRepo) List(_ context.Context, f product.Filter) ([]product.Product, error) {
	m.lastFilter = f
	return m.items, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, product.ErrNotFound
}

func (m *mockProductRepo) Create(_ context.Context, p *product.Product) (int64, error) {
	p.ID = int64(len(m.items) + 1)
	m.items = append(m.items, *p)
	return p.ID, nil
}

func (m *mockProductRepo) Update(_ context.Context, id int64, _ product.Patch) error {
	if _, err := m.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	if _, err := m.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

type mockOrderRepo struct {
	orders     []order.Order
	details    map[int64]*order.Details
	created    *order.Order
	createErr  error
	detailsErr error
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order, _ []order.Item) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	o.ID = 42
	m.created = o
	return o.ID, nil
}

func (m *mockOrderRepo) List(_ context.Context, _ order.Filter) ([]order.Order, error) {
	return m.orders, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, order.ErrNotFound
}

func (m *mockOrderRepo) GetDetails(_ context.Context, id int64) (*order.Details, error) {
	if m.detailsErr != nil {
		return nil, m.detailsErr
	}
	d, ok := m.details[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return d, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id int64, s order.Status) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = s
			return nil
		}
	}
	return order.ErrNotFound
}

func (m *mockOrderRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

type mockDashboardRepo struct {
	stats dashboard.Stats
	err   error
}

func (m *mockDashboardRepo) Stats(_ context.Context) (*dashboard.Stats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.stats, nil
}

// --- Helpers ---

type deps struct {
	categories *mockCategoryRepo
	customers  *mockCustomerRepo
	products   *mockProductRepo
	orders     *mockOrderRepo
	stats      *mockDashboardRepo
}

func newTestRouter(d deps) http.Handler {
	if d.categories == nil {
		d.categories = &mockCategoryRepo{}
	}
	if d.customers == nil {
		d.customers = &mockCustomerRepo{}
	}
	if d.products == nil {
		d.products = &mockProductRepo{}
	}
	if d.orders == nil {
		d.orders = &mockOrderRepo{}
	}
	if d.stats == nil {
		d.stats = &mockDashboardRepo{}
	}

	svc := order.NewService(d.orders, order.NewNumberGenerator(), zap.NewNop())
	h := NewHandler(d.categories, d.customers, d.products, d.orders, svc, d.stats)
	return h.Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- Category tests ---

func TestListCategories(t *testing.T) {
	router := newTestRouter(deps{categories: &mockCategoryRepo{items: []category.Category{
		{ID: 1, Name: "Eletrônicos"},
		{ID: 2, Name: "Serviços"},
	}}})

	w := doJSON(t, router, http.MethodGet, "/categories", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var out []categoryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "Eletrônicos", out[0].Name)
}

func TestListCategories_StorageDownDegradesToEmpty(t *testing.T) {
	router := newTestRouter(deps{categories: &mockCategoryRepo{listErr: storage.ErrUnavailable}})

	w := doJSON(t, router, http.MethodGet, "/categories", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateCategory(t *testing.T) {
	repo := &mockCategoryRepo{}
	router := newTestRouter(deps{categories: repo})

	w := doJSON(t, router, http.MethodPost, "/categories", map[string]string{
		"name":        "Escritório",
		"description": "Material de escritório",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	require.Len(t, repo.items, 1)
}

func TestCreateCategory_MissingName(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodPost, "/categories", map[string]string{
		"description": "sem nome",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Fields, "name")
}

func TestGetCategory_StorageDownDegradesToNull(t *testing.T) {
	router := newTestRouter(deps{categories: &mockCategoryRepo{
		getErr: errors.Wrap(storage.ErrUnavailable, "connect"),
	}})

	w := doJSON(t, router, http.MethodGet, "/categories/1", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `null`, w.Body.String())
}

func TestGetOrder_StorageDownDegradesToNull(t *testing.T) {
	router := newTestRouter(deps{orders: &mockOrderRepo{
		detailsErr: errors.Wrap(storage.ErrUnavailable, "connect"),
	}})

	w := doJSON(t, router, http.MethodGet, "/orders/1", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `null`, w.Body.String())
}

func TestCreateCategory_StorageDownFailsLoud(t *testing.T) {
	router := newTestRouter(deps{categories: &mockCategoryRepo{listErr: storage.ErrUnavailable}})

	w := doJSON(t, router, http.MethodPost, "/categories", map[string]string{"name": "X"}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetCategory_NotFound(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodGet, "/categories/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategory_InvalidID(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodGet, "/categories/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategory_InUse(t *testing.T) {
	router := newTestRouter(deps{categories: &mockCategoryRepo{
		items:  []category.Category{{ID: 1, Name: "Eletrônicos"}},
		delErr: category.ErrInUse,
	}})

	w := doJSON(t, router, http.MethodDelete, "/categories/1", nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- Customer tests ---

func TestCreateCustomer_InvalidEmail(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodPost, "/customers", map[string]string{
		"name":  "Ana",
		"email": "not-an-email",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Fields, "email")
}

func TestDeleteCustomer_WithOrders(t *testing.T) {
	router := newTestRouter(deps{customers: &mockCustomerRepo{
		items:  []customer.Customer{{ID: 1, Name: "Ana"}},
		delErr: customer.ErrInUse,
	}})

	w := doJSON(t, router, http.MethodDelete, "/customers/1", nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- Product tests ---

func TestCreateProduct_Defaults(t *testing.T) {
	repo := &mockProductRepo{}
	router := newTestRouter(deps{products: repo})

	w := doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":  "Mouse",
		"kind":  "product",
		"price": 7990,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "un", repo.items[0].Unit)
	assert.True(t, repo.items[0].Active)
}

func TestCreateProduct_BadKind(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":  "Mouse",
		"kind":  "bundle",
		"price": 7990,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	repo := &mockProductRepo{}
	router := newTestRouter(deps{products: repo})

	w := doJSON(t, router, http.MethodGet, "/products?category_id=3&search=mouse", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastFilter.CategoryID)
	assert.Equal(t, int64(3), *repo.lastFilter.CategoryID)
	assert.Equal(t, "mouse", repo.lastFilter.Search)
}

// --- Order tests ---

func validOrderBody() map[string]any {
	return map[string]any{
		"customerId":    1,
		"paymentMethod": "pix",
		"discount":      500,
		"items": []map[string]any{
			{"productId": 7, "productName": "Widget", "quantity": 3, "unitPrice": 1000},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	repo := &mockOrderRepo{}
	router := newTestRouter(deps{orders: repo})

	w := doJSON(t, router, http.MethodPost, "/orders", validOrderBody(),
		map[string]string{"X-User-ID": "9"})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID          int64  `json:"id"`
		OrderNumber string `json:"orderNumber"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Contains(t, resp.OrderNumber, "PED-")

	require.NotNil(t, repo.created)
	assert.Equal(t, int64(9), repo.created.UserID)
	assert.Equal(t, int64(3000), repo.created.TotalAmount)
	assert.Equal(t, int64(2500), repo.created.FinalAmount)
	assert.Equal(t, order.StatusPending, repo.created.Status)
}

func TestCreateOrder_MissingUserHeader(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodPost, "/orders", validOrderBody(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	router := newTestRouter(deps{})

	body := validOrderBody()
	body["items"] = []map[string]any{}
	w := doJSON(t, router, http.MethodPost, "/orders", body,
		map[string]string{"X-User-ID": "9"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_UnknownPaymentMethod(t *testing.T) {
	router := newTestRouter(deps{})

	body := validOrderBody()
	body["paymentMethod"] = "crypto"
	w := doJSON(t, router, http.MethodPost, "/orders", body,
		map[string]string{"X-User-ID": "9"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	router := newTestRouter(deps{orders: &mockOrderRepo{createErr: order.ErrCustomerNotFound}})

	w := doJSON(t, router, http.MethodPost, "/orders", validOrderBody(),
		map[string]string{"X-User-ID": "9"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	router := newTestRouter(deps{})

	w := doJSON(t, router, http.MethodGet, "/orders?status=shipped", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := &mockOrderRepo{orders: []order.Order{{ID: 1, Status: order.StatusPending}}}
	router := newTestRouter(deps{orders: repo})

	w := doJSON(t, router, http.MethodPatch, "/orders/1/status",
		map[string]string{"status": "confirmed"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.StatusConfirmed, repo.orders[0].Status)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	router := newTestRouter(deps{orders: &mockOrderRepo{orders: []order.Order{{ID: 1, Status: order.StatusPending}}}})

	w := doJSON(t, router, http.MethodPatch, "/orders/1/status",
		map[string]string{"status": "shipped"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder_Details(t *testing.T) {
	router := newTestRouter(deps{orders: &mockOrderRepo{
		details: map[int64]*order.Details{
			1: {
				Order: order.Order{ID: 1, OrderNumber: "PED-1", CustomerID: 2, FinalAmount: 2500},
				Items: []order.Item{
					{ID: 10, OrderID: 1, ProductID: 7, ProductName: "Widget", Quantity: 3, UnitPrice: 1000, TotalPrice: 3000},
				},
				Customer: &customer.Customer{ID: 2, Name: "Ana"},
			},
		},
	}})

	w := doJSON(t, router, http.MethodGet, "/orders/1", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp orderDetailsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "PED-1", resp.OrderNumber)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Widget", resp.Items[0].ProductName)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Ana", resp.Customer.Name)
}

// --- Dashboard tests ---

func TestDashboardStats(t *testing.T) {
	router := newTestRouter(deps{stats: &mockDashboardRepo{stats: dashboard.Stats{
		TotalCustomers: 3,
		TotalProducts:  6,
		TotalOrders:    10,
		PendingOrders:  2,
		TotalRevenue:   123400,
	}}})

	w := doJSON(t, router, http.MethodGet, "/dashboard/stats", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"totalCustomers": 3,
		"totalProducts": 6,
		"totalOrders": 10,
		"pendingOrders": 2,
		"totalRevenue": 123400
	}`, w.Body.String())
}

func TestDashboardStats_StorageDownDegradesToZeros(t *testing.T) {
	router := newTestRouter(deps{stats: &mockDashboardRepo{err: storage.ErrUnavailable}})

	w := doJSON(t, router, http.MethodGet, "/dashboard/stats", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"totalCustomers": 0,
		"totalProducts": 0,
		"totalOrders": 0,
		"pendingOrders": 0,
		"totalRevenue": 0
	}`, w.Body.String())
}
