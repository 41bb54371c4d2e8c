package router

import (
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/config"
	"github.com/BryanFuM/saas-gyh-sub000/internal/handler"
	"github.com/BryanFuM/saas-gyh-sub000/internal/middleware"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"
	"github.com/BryanFuM/saas-gyh-sub000/internal/service"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"
	"github.com/BryanFuM/saas-gyh-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, clock *timeutil.Clock, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	ingresoRepo := repository.NewIngresoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	clientSvc := service.NewClientService(clientRepo, clock)
	productSvc := service.NewProductService(productRepo)
	stockSvc := service.NewStockService(ingresoRepo, ventaRepo, productRepo, snapshotRepo, rdb, clock)
	ingresoSvc := service.NewIngresoService(ingresoRepo, productRepo, stockSvc, clock)
	ventaSvc := service.NewVentaService(ventaRepo, productRepo, clientRepo, stockSvc, dispatcher, clock)
	reporteSvc := service.NewReporteService(ventaRepo, ingresoRepo, clientRepo, productRepo, clock)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clientSvc)
	productosH := handler.NewProductosHandler(productSvc)
	catalogoH := handler.NewCatalogoHandler(productSvc)
	ingresosH := handler.NewIngresosHandler(ingresoSvc, stockSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, clock)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/auth/refresh", authH.Refresh)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(model.RolAdmin)
	todos := middleware.RequireRole(model.RolAdmin, model.RolVendedor, model.RolInventor)
	adminInventor := middleware.RequireRole(model.RolAdmin, model.RolInventor)
	adminVendedor := middleware.RequireRole(model.RolAdmin, model.RolVendedor)

	// Perfil propio — cualquier rol autenticado
	r.GET("/users/me", jwtMW, todos, usuariosH.Me)

	// Usuarios — administración exclusiva
	users := r.Group("/users", jwtMW, adminOnly)
	{
		users.POST("", usuariosH.Crear)
		users.GET("", usuariosH.Listar)
		users.PUT("/:id", usuariosH.Actualizar)
		users.DELETE("/:id", usuariosH.Desactivar)
	}

	// Clientes y pagos. Los vendedores registran clientes y abonos en caja;
	// solo un admin puede eliminar.
	clients := r.Group("/clients", jwtMW)
	{
		clients.POST("", adminVendedor, clientesH.Crear)
		clients.GET("", todos, clientesH.Listar)
		clients.GET("/:id", todos, clientesH.Obtener)
		clients.PUT("/:id", adminVendedor, clientesH.Actualizar)
		clients.DELETE("/:id", adminOnly, clientesH.Eliminar)
		clients.POST("/:id/payments", adminVendedor, clientesH.RegistrarPago)
		clients.GET("/:id/payments", adminVendedor, clientesH.ListarPagos)
	}

	// Productos
	products := r.Group("/products", jwtMW)
	{
		products.GET("", todos, productosH.Listar)
		products.GET("/:id", todos, productosH.Obtener)
		products.GET("/:id/usage-count", adminOnly, productosH.UsageCount)
		products.POST("", adminOnly, productosH.Crear)
		products.PUT("/:id", adminOnly, productosH.Actualizar)
		products.DELETE("/:id", adminOnly, productosH.Eliminar)
	}

	// Catálogos de configuración
	cfgGroup := r.Group("/config", jwtMW)
	{
		cfgGroup.GET("/product-types", todos, catalogoH.ListarTipos)
		cfgGroup.POST("/product-types", adminOnly, catalogoH.CrearTipo)
		cfgGroup.GET("/product-types/:id/usage-count", adminOnly, catalogoH.UsageCountTipo)
		cfgGroup.DELETE("/product-types/:id", adminOnly, catalogoH.EliminarTipo)
		cfgGroup.GET("/product-qualities", todos, catalogoH.ListarCalidades)
		cfgGroup.POST("/product-qualities", adminOnly, catalogoH.CrearCalidad)
		cfgGroup.GET("/product-qualities/:id/usage-count", adminOnly, catalogoH.UsageCountCalidad)
		cfgGroup.DELETE("/product-qualities/:id", adminOnly, catalogoH.EliminarCalidad)
	}

	v1 := r.Group("/v1", jwtMW)
	{
		// Ingresos de mercadería — el INVENTOR registra las llegadas
		ingresos := v1.Group("/ingresos")
		{
			ingresos.POST("", adminInventor, ingresosH.CrearLote)
			ingresos.GET("", adminInventor, ingresosH.Listar)
			ingresos.GET("/stock/disponible", todos, ingresosH.StockDisponible)
			ingresos.GET("/stock/detalle", adminInventor, ingresosH.StockDetalle)
			ingresos.POST("/snapshots", adminInventor, ingresosH.CrearSnapshot)
			ingresos.GET("/snapshots", adminInventor, ingresosH.ListarSnapshots)
			ingresos.GET("/:id", adminInventor, ingresosH.Obtener)
			ingresos.DELETE("/:id", adminOnly, ingresosH.Eliminar)
		}

		// Ventas
		ventas := v1.Group("/ventas")
		{
			ventas.POST("", todos, ventasH.Crear)
			ventas.GET("", todos, ventasH.Listar)
			ventas.GET("/:id", todos, ventasH.Obtener)
			ventas.PUT("/:id", adminOnly, ventasH.Actualizar)
			ventas.DELETE("/:id", adminOnly, ventasH.Eliminar)
			ventas.PATCH("/:id/imprimir", todos, ventasH.MarcarImpresa)
		}

		// Reportes — solo administración
		reportes := v1.Group("/reportes", adminOnly)
		{
			reportes.GET("/ganancias", reportesH.Ganancias)
			reportes.GET("/resumen-diario", reportesH.ResumenDiario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
