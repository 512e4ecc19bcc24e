package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	usersports "github.com/Sam99132/full-stack-backend/internal/domains/users/ports"
)

// APIs bundles the handler groups mounted by the router.
type APIs struct {
	Auth     AuthAPI
	Products ProductAPI
	Orders   OrderAPI
	Users    UserAPI
}

// RouterConfig carries the transport-level knobs.
type RouterConfig struct {
	CORSOrigin string
	Verifier   usersports.TokenVerifier
}

// NewRouter assembles the gin engine with middleware and all routes mounted.
func NewRouter(apis APIs, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	authed := RequireAuth(cfg.Verifier)
	admin := RequireAdmin()

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", apis.Auth.Register)
		auth.POST("/login", apis.Auth.Login)
	}

	products := router.Group("/api/products")
	{
		products.GET("", apis.Products.ListProducts)
		products.GET("/:id", apis.Products.GetProduct)
		products.POST("", authed, admin, apis.Products.CreateProduct)
		products.PUT("/:id", authed, admin, apis.Products.UpdateProduct)
		products.DELETE("/:id", authed, admin, apis.Products.DeleteProduct)
	}

	orders := router.Group("/api/orders", authed)
	{
		orders.POST("", apis.Orders.CreateOrder)
		orders.GET("", apis.Orders.ListOrders)
		orders.GET("/:id", apis.Orders.GetOrder)
	}

	users := router.Group("/api/users", authed)
	{
		users.GET("/:id", apis.Users.GetUser)
	}

	return router
}

func corsConfig(origin string) cors.Config {
	cfg := cors.DefaultConfig()
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	cfg.ExposeHeaders = []string{"Authorization"}
	return cfg
}
