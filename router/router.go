// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmhung1294/INT3505E-02-demo/auth"
	"github.com/nmhung1294/INT3505E-02-demo/controller"
	"github.com/nmhung1294/INT3505E-02-demo/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	gate *auth.Gate,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.Authentication(gate))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	controllers.AuthController.RegisterRoutes(api)
	controllers.BookTitleController.RegisterRoutes(api)
	controllers.BookCopyController.RegisterRoutes(api)
	controllers.BorrowingController.RegisterRoutes(api)
	controllers.WebhookController.RegisterRoutes(api)

	return router
}
