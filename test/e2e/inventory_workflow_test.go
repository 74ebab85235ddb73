//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/inventory-dashboard/internal/adapters/db"
	redis_a "github.com/ammerola/inventory-dashboard/internal/adapters/redis_adapter"
	"github.com/ammerola/inventory-dashboard/internal/core/domain"
	"github.com/ammerola/inventory-dashboard/internal/core/services"
	"github.com/ammerola/inventory-dashboard/internal/handlers"
	"github.com/ammerola/inventory-dashboard/internal/handlers/middleware"
	"github.com/ammerola/inventory-dashboard/test/helpers"
)

const cronSecret = "e2e-secret"

type InventoryE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *InventoryE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + handlers.APIPrefix
}

func (s *InventoryE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *InventoryE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

// seedCatalog stores one product per category, each with two variants.
func (s *InventoryE2ESuite) seedCatalog() {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	names := map[domain.Category]string{
		domain.CategoryTShirt:    "Classic Cotton T-Shirt",
		domain.CategoryPoloShirt: "Premium Polo Shirt",
		domain.CategoryHoodie:    "Cozy Pullover Hoodie",
		domain.CategoryToteBag:   "Eco Canvas Tote Bag",
	}

	i := 0
	for _, category := range domain.Categories {
		p := helpers.CreateTestProduct(func(p *domain.Product) {
			p.Name = names[category]
			p.Category = category
		})
		p.Variants = []domain.ProductVariant{
			helpers.CreateTestVariant(p, "m", "black"),
			helpers.CreateTestVariant(p, "l", "white"),
		}
		helpers.SeedProduct(s.T(), s.testDB.PgxPool, p)

		for _, v := range p.Variants {
			onHand := 10 * (i + 1)
			if i == 0 {
				onHand = 0
			}
			helpers.SeedInventory(s.T(), s.testDB.PgxPool, v.ID, onHand, 0, base.Add(time.Duration(i)*time.Hour))
			i++
		}
	}
}

func (s *InventoryE2ESuite) TestInventoryListing() {
	s.seedCatalog()

	resp := s.makeRequest(http.MethodGet, "/inventory", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var page domain.InventoryPage
	s.decodeResponse(resp, &page)
	s.Equal(int64(8), page.TotalCount)
	s.Equal(1, page.TotalPages)
	s.Equal(1, page.CurrentPage)
	s.Len(page.Items, 8)
	// newest first by default
	s.True(page.Items[0].LastModified.After(page.Items[7].LastModified))

	resp = s.makeRequest(http.MethodGet, "/inventory?page=2&pageSize=3&sortBy=sku&sortOrder=asc", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &page)
	s.Equal(3, page.TotalPages)
	s.Len(page.Items, 3)
	s.LessOrEqual(page.Items[0].SKU, page.Items[1].SKU)

	resp = s.makeRequest(http.MethodGet, "/inventory?page=9&pageSize=3", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &page)
	s.Empty(page.Items)
	s.Equal(int64(8), page.TotalCount)
}

func (s *InventoryE2ESuite) TestInventoryFilters() {
	s.seedCatalog()

	resp := s.makeRequest(http.MethodGet, "/inventory?category=hoodie", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var page domain.InventoryPage
	s.decodeResponse(resp, &page)
	s.Equal(int64(2), page.TotalCount)
	for _, item := range page.Items {
		s.Equal(domain.CategoryHoodie, item.Category)
	}

	// search matches product name or sku, case-insensitively
	resp = s.makeRequest(http.MethodGet, "/inventory?search=POLO", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &page)
	s.Equal(int64(2), page.TotalCount)

	resp = s.makeRequest(http.MethodGet, "/inventory?search=-L-WHITE&category=tote-bag", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &page)
	s.Equal(int64(1), page.TotalCount)

	resp = s.makeRequest(http.MethodGet, "/inventory?pageSize=500&sortBy=price", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp struct {
		Error   string              `json:"error"`
		Details []domain.FieldError `json:"details"`
	}
	s.decodeResponse(resp, &errResp)
	s.Equal("Invalid query parameters", errResp.Error)
	s.Len(errResp.Details, 2)
}

func (s *InventoryE2ESuite) TestInventoryExport() {
	s.seedCatalog()

	resp := s.makeRequest(http.MethodGet, "/inventory/export?category=t-shirt&sortBy=sku&sortOrder=asc", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(services.XLSXContentType, resp.Header.Get("Content-Type"))
	s.Contains(resp.Header.Get("Content-Disposition"), "inventory_export_")
	s.Equal("2", resp.Header.Get("X-Export-Rows"))

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	file, err := xlsx.OpenBinary(data)
	s.Require().NoError(err)
	sheet, ok := file.Sheet["Inventory"]
	s.Require().True(ok)
	s.Equal(3, sheet.MaxRow)
}

func (s *InventoryE2ESuite) TestDashboardSummary() {
	s.seedCatalog()

	resp := s.makeRequest(http.MethodGet, "/dashboard", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var summary domain.InventorySummary
	s.decodeResponse(resp, &summary)
	s.Len(summary.Categories, len(domain.Categories))
	s.Equal(int64(8), summary.Totals.Variants)
	s.Equal(int64(1), summary.Totals.OutOfStock)
}

func (s *InventoryE2ESuite) TestProductWorkflow() {
	createReq := map[string]interface{}{
		"name":     "E2E Hoodie",
		"category": "hoodie",
		"tags":     []string{"e2e"},
		"customizableAreas": []map[string]interface{}{
			{"area": "front", "maxSize": map[string]float64{"width": 20, "height": 25}},
		},
	}

	resp := s.makeRequest(http.MethodPost, "/products", createReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Data domain.Product `json:"data"`
	}
	s.decodeResponse(resp, &created)
	s.NotEmpty(created.Data.ID)
	s.Empty(created.Data.Variants)

	path := fmt.Sprintf("/products/%s", created.Data.ID)

	resp = s.makeRequest(http.MethodPut, path, map[string]interface{}{"description": "Fleece lined"})
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var fetched struct {
		Data domain.Product `json:"data"`
	}
	resp = s.makeRequest(http.MethodGet, path, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &fetched)
	s.Require().NotNil(fetched.Data.Description)
	s.Equal("Fleece lined", *fetched.Data.Description)
	s.Equal("E2E Hoodie", fetched.Data.Name)

	resp = s.makeRequest(http.MethodGet, "/products?category=hoodie", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	var list struct {
		Data []domain.Product `json:"data"`
	}
	s.decodeResponse(resp, &list)
	s.Len(list.Data, 1)

	resp = s.makeRequest(http.MethodPost, "/products", map[string]interface{}{"name": "", "category": "socks"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodDelete, path, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, path, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *InventoryE2ESuite) TestWritesInvalidateListingCache() {
	s.seedCatalog()

	resp := s.makeRequest(http.MethodGet, "/inventory", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	key := services.InventoryPageKey(domain.DefaultInventoryQuery())
	s.True(s.testRedis.Server.Exists(key))

	resp = s.makeRequest(http.MethodPost, "/products", map[string]interface{}{"name": "Cache Buster", "category": "t-shirt"})
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	s.False(s.testRedis.Server.Exists(key))
}

func (s *InventoryE2ESuite) TestConcurrentRequests() {
	s.seedCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			resp := s.makeRequest(http.MethodGet, fmt.Sprintf("/inventory?page=%d&pageSize=2", idx%4+1), nil)
			defer resp.Body.Close()
			s.Equal(http.StatusOK, resp.StatusCode)
		}(i)
	}
	wg.Wait()
}

func (s *InventoryE2ESuite) TestHealthAndKeepAlive() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health handlers.HealthStatus
	s.decodeResponse(resp, &health)
	s.Equal("healthy", health.Status)
	s.Contains(health.Services, "database")
	s.Contains(health.Services, "redis")

	resp = s.makeRequest(http.MethodGet, "/cron/keep-alive", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/cron/keep-alive", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+cronSecret)
	resp, err = s.client.Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// Helper methods

func (s *InventoryE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	database := s.testDB.Database
	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)

	inventoryService := services.NewInventoryService(
		db.NewInventoryRepository(database),
		cache,
		nil,
		services.InventoryOptions{PageTTL: time.Minute, SummaryTTL: time.Minute},
		logger,
	)
	productService := services.NewProductService(db.NewProductRepository(database, logger), cache, logger)

	mux := http.NewServeMux()
	handlers.Router{
		Inventory: handlers.NewInventoryHandler(inventoryService, logger),
		Products:  handlers.NewProductHandler(productService, logger),
		Dashboard: handlers.NewDashboardHandler(inventoryService, logger),
		Health:    handlers.NewHealthHandler(database, cache, handlers.BuildInfo{Version: "e2e", Environment: "test"}, logger),
		Cron:      handlers.NewCronHandler(database, cronSecret, logger),
	}.Register(mux)

	return httptest.NewServer(middleware.Chain(mux,
		middleware.RequestID(""),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	))
}

func (s *InventoryE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *InventoryE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestInventoryE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(InventoryE2ESuite))
}
