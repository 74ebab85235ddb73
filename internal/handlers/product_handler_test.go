package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/handlers"
	"github.com/ammerola/inventory-dashboard/test/helpers"
	"github.com/ammerola/inventory-dashboard/test/mocks"
)

func newProductRequest(method, id, body string) *http.Request {
	target := "/api/v1/products"
	if id != "" {
		target += "/" + id
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func TestProductHandler_ListProducts(t *testing.T) {
	tee := helpers.CreateTestProduct()
	tee.Variants = []domain.ProductVariant{helpers.CreateTestVariant(tee, "m", "black")}

	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockProductService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:  "lists_with_variants",
			query: "?category=t-shirt&limit=5",
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
						require.NotNil(t, f.Category)
						assert.Equal(t, domain.CategoryTShirt, *f.Category)
						require.NotNil(t, f.Limit)
						assert.Equal(t, 5, *f.Limit)
						assert.Nil(t, f.Offset)
						return []domain.Product{*tee}, nil
					})
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var resp struct {
					Data []map[string]json.RawMessage `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				require.Len(t, resp.Data, 1)
				assert.Contains(t, resp.Data[0], "productVariants")
				assert.Contains(t, string(resp.Data[0]["productVariants"]), "ECT-M-BLACK")
			},
		},
		{
			name:           "bad_limit",
			query:          "?limit=-1&offset=x",
			setupMocks:     func(m *mocks.MockProductService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var resp errorBody
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Len(t, resp.Details, 2)
			},
		},
		{
			name:  "service_error",
			query: "",
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().List(gomock.Any(), domain.ProductFilter{}).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"Failed to fetch products"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockProductService(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewProductHandler(svc, helpers.TestLogger())
			w := httptest.NewRecorder()
			handler.ListProducts(w, httptest.NewRequest(http.MethodGet, "/api/v1/products"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, w.Body.Bytes())
		})
	}
}

func TestProductHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockProductService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "created",
			body: `{"name":"Cozy Pullover Hoodie","category":"hoodie","tags":["warm"]}`,
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
						p := helpers.CreateTestProduct()
						in.Apply(p)
						return p, nil
					})
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var resp struct {
					Data domain.Product `json:"data"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Cozy Pullover Hoodie", resp.Data.Name)
				assert.Equal(t, []string{"warm"}, resp.Data.Tags)
			},
		},
		{
			name:           "malformed_json",
			body:           `{"name":`,
			setupMocks:     func(m *mocks.MockProductService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var resp errorBody
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Validation failed", resp.Error)
			},
		},
		{
			name: "validation_error",
			body: `{"name":"","category":"hoodie"}`,
			setupMocks: func(m *mocks.MockProductService) {
				ve := &domain.ValidationError{}
				ve.Add("name", "must not be empty")
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, ve)
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"Validation failed","details":[{"field":"name","message":"must not be empty"}]}`, string(body))
			},
		},
		{
			name: "store_error",
			body: `{"name":"Tee","category":"t-shirt"}`,
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"Failed to create product"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockProductService(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewProductHandler(svc, helpers.TestLogger())
			w := httptest.NewRecorder()
			handler.CreateProduct(w, newProductRequest(http.MethodPost, "", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, w.Body.Bytes())
		})
	}
}

func TestProductHandler_ByID(t *testing.T) {
	product := helpers.CreateTestProduct()
	id := product.ID
	notFound := &domain.NotFoundError{Entity: "product", ID: id.String()}

	tests := []struct {
		name           string
		method         string
		id             string
		body           string
		setupMocks     func(*mocks.MockProductService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "get_found",
			method: http.MethodGet,
			id:     id.String(),
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Get(gomock.Any(), id).Return(product, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "get_malformed_id",
			method:         http.MethodGet,
			id:             "not-a-uuid",
			setupMocks:     func(m *mocks.MockProductService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Product not found"}`,
		},
		{
			name:   "get_missing",
			method: http.MethodGet,
			id:     id.String(),
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Get(gomock.Any(), id).Return(nil, notFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Product not found"}`,
		},
		{
			name:   "get_failure",
			method: http.MethodGet,
			id:     id.String(),
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Get(gomock.Any(), id).Return(nil, errors.New("timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to fetch product"}`,
		},
		{
			name:   "update_ok",
			method: http.MethodPut,
			id:     id.String(),
			body:   `{"description":"Heavyweight cotton"}`,
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(product, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "update_missing",
			method: http.MethodPut,
			id:     id.String(),
			body:   `{}`,
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil, notFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Product not found"}`,
		},
		{
			name:   "update_failure",
			method: http.MethodPut,
			id:     id.String(),
			body:   `{}`,
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(nil, errors.New("deadlock"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to update product"}`,
		},
		{
			name:   "delete_ok",
			method: http.MethodDelete,
			id:     id.String(),
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Delete(gomock.Any(), id).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Product deleted successfully"}`,
		},
		{
			name:   "delete_missing",
			method: http.MethodDelete,
			id:     uuid.Nil.String(),
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Delete(gomock.Any(), uuid.Nil).Return(notFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Product not found"}`,
		},
		{
			name:   "delete_failure",
			method: http.MethodDelete,
			id:     id.String(),
			setupMocks: func(m *mocks.MockProductService) {
				m.EXPECT().Delete(gomock.Any(), id).Return(errors.New("fk violation"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to delete product"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockProductService(ctrl)
			tt.setupMocks(svc)

			handler := handlers.NewProductHandler(svc, helpers.TestLogger())
			w := httptest.NewRecorder()
			req := newProductRequest(tt.method, tt.id, tt.body)

			switch tt.method {
			case http.MethodGet:
				handler.GetProduct(w, req)
			case http.MethodPut:
				handler.UpdateProduct(w, req)
			case http.MethodDelete:
				handler.DeleteProduct(w, req)
			}

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK && tt.method != http.MethodDelete {
				assert.Contains(t, w.Body.String(), `"data"`)
			}
		})
	}
}
