package handlers

import "net/http"

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// Router binds the handlers to their routes. Nil handlers are skipped.
type Router struct {
	Inventory *InventoryHandler
	Products  *ProductHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
	Cron      *CronHandler
	Metrics   http.Handler
}

// Register adds every route to mux using method-specific patterns.
func (rt Router) Register(mux *http.ServeMux) {
	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
		mux.HandleFunc("GET "+APIPrefix+"/health", rt.Health.Health)
	}

	if rt.Inventory != nil {
		mux.HandleFunc("GET "+APIPrefix+"/inventory", rt.Inventory.ListInventory)
		mux.HandleFunc("POST "+APIPrefix+"/inventory", rt.Inventory.CreateInventory)
		mux.HandleFunc("GET "+APIPrefix+"/inventory/export", rt.Inventory.ExportInventory)
	}

	if rt.Products != nil {
		mux.HandleFunc("GET "+APIPrefix+"/products", rt.Products.ListProducts)
		mux.HandleFunc("POST "+APIPrefix+"/products", rt.Products.CreateProduct)
		mux.HandleFunc("GET "+APIPrefix+"/products/{id}", rt.Products.GetProduct)
		mux.HandleFunc("PUT "+APIPrefix+"/products/{id}", rt.Products.UpdateProduct)
		mux.HandleFunc("DELETE "+APIPrefix+"/products/{id}", rt.Products.DeleteProduct)
	}

	if rt.Dashboard != nil {
		mux.HandleFunc("GET "+APIPrefix+"/dashboard", rt.Dashboard.GetDashboard)
	}
	if rt.Cron != nil {
		mux.HandleFunc("GET "+APIPrefix+"/cron/keep-alive", rt.Cron.KeepAlive)
	}
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}
}
