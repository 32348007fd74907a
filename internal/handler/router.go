package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"library-api/internal/handler/api"
	"library-api/internal/handler/middleware"
	"library-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookHandler *api.BookHandler,
	loanHandler *api.LoanHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookHandler, loanHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookHandler *api.BookHandler,
	loanHandler *api.LoanHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := engine.Group("/auth")
	{
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
			{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
		})
	}

	// Route names kept compatible with the frontend the catalog grew up with
	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodGet, Path: "/getBooks", Handler: bookHandler.List},
		{Method: http.MethodGet, Path: "/bookbyID/:id", Handler: bookHandler.GetByID},
	})

	mutating := engine.Group("")
	mutating.Use(authMiddleware.RequireAuth())
	{
		addRoutes(mutating, []route{
			{Method: http.MethodPost, Path: "/createBook", Handler: bookHandler.Create},
			{Method: http.MethodPut, Path: "/bookUpdate/:id", Handler: bookHandler.Update},
			{Method: http.MethodDelete, Path: "/delete/:id", Handler: bookHandler.Delete},
		})
	}

	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodPost, Path: "/borrow", Handler: loanHandler.Borrow},
		{Method: http.MethodGet, Path: "/borrowed-books", Handler: loanHandler.ListBorrowed},
		{Method: http.MethodGet, Path: "/borrowed-books/:id", Handler: loanHandler.GetBorrowed},
		{Method: http.MethodDelete, Path: "/borrowed-books/:id", Handler: loanHandler.Return},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
