package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/logger"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/handler"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	Inventory *handler.InventoryHandler
	Menu      *handler.MenuHandler
	Planning  *handler.PlanningHandler
	Finance   *handler.FinanceHandler
	System    *handler.SystemHandler
}

// Options configures the middleware stack built by NewEngine
type Options struct {
	Logger    *zap.Logger
	HTTP      config.HTTPConfig
	Tracing   middleware.TracingConfig
	Profiling middleware.ProfilingConfig
	// Meter records the HTTP server metrics; nil disables them.
	Meter metric.Meter
}

// NewEngine builds the gin engine with the full middleware stack and every
// route. Order matters: the request id and span exist before the access log
// is written, and panics are recovered inside both.
func NewEngine(h Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(opts.Tracing))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(opts.Meter, log))
	engine.Use(middleware.Profiling(opts.Profiling))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  opts.HTTP.CORSAllowOrigins,
		AllowMethods:  opts.HTTP.CORSAllowMethods,
		AllowHeaders:  opts.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.Timeout(opts.HTTP.RequestTimeout))
	if h.Inventory != nil {
		r.Register(InventoryRoutes(h.Inventory))
	}
	if h.Menu != nil {
		r.Register(MenuRoutes(h.Menu))
	}
	if h.Planning != nil {
		r.Register(PlanningRoutes(h.Planning))
	}
	if h.Finance != nil {
		r.Register(FinanceRoutes(h.Finance))
	}
	if h.System != nil {
		r.Register(SystemRoutes(h.System))
	}
	r.Setup()

	return engine
}

// InventoryRoutes mounts ingredient stock and ledger endpoints. Mutations
// accept an Idempotency-Key header.
func InventoryRoutes(h *handler.InventoryHandler) *DomainGroup {
	g := NewDomainGroup("inventory", "/inventory")
	g.GET("/items", h.ListItems)
	g.POST("/items", h.CreateItem)
	g.GET("/items/:id", h.GetItem)
	g.PATCH("/items/:id", h.UpdateItem)
	g.POST("/items/:id/transactions", middleware.IdempotencyKey(), h.ApplyTransaction)
	g.GET("/items/:id/transactions", h.ListTransactions)
	g.GET("/items/:id/ledger-check", h.VerifyLedger)
	g.POST("/events/:event_id/usage", middleware.IdempotencyKey(), h.ApplyEventUsage)
	return g
}

// MenuRoutes mounts dish and costing endpoints
func MenuRoutes(h *handler.MenuHandler) *DomainGroup {
	g := NewDomainGroup("menu", "/menu")
	g.GET("/dishes", h.ListDishes)
	g.POST("/dishes", h.CreateDish)
	g.GET("/dishes/:id", h.GetDish)
	g.PATCH("/dishes/:id", h.UpdateDish)
	g.GET("/dishes/:id/cost", h.CostDish)
	g.GET("/dishes/:id/suggested-price", h.SuggestPrice)
	g.GET("/costing", h.CostMenu)
	return g
}

// PlanningRoutes mounts ingredient planning endpoints
func PlanningRoutes(h *handler.PlanningHandler) *DomainGroup {
	g := NewDomainGroup("planning", "/planning")
	g.POST("/plans", h.Plan)
	g.GET("/plans", h.ListPlans)
	g.POST("/plans/archive", h.ArchivePlan)
	g.GET("/plans/:id", h.GetPlan)
	g.GET("/plans/:id/download-url", h.GetPlanDownloadURL)
	g.GET("/archive/*key", h.ServeArchive)
	return g
}

// FinanceRoutes mounts the expense book endpoints
func FinanceRoutes(h *handler.FinanceHandler) *DomainGroup {
	g := NewDomainGroup("finance", "/finance")
	g.GET("/expenses", h.ListExpenses)
	g.GET("/spend", h.IngredientSpend)
	return g
}

// SystemRoutes mounts reference data endpoints
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	g := NewDomainGroup("system", "")
	g.GET("/units", h.ListUnits)
	return g
}
