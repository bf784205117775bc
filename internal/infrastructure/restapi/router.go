package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wallet_companion/internal/infrastructure/ws"
)

// SetupRouter configures and returns the Gin router instance.
func SetupRouter(handler *Handler, hub *ws.Hub) *gin.Engine {
	router := gin.Default()

	// The gateway serves a local UI; allow cross-origin by default.
	router.Use(cors.Default())

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", func(c *gin.Context) {
		hub.HandleWS(c.Writer, c.Request)
	})

	v1 := router.Group("/api/v1")
	{
		wallet := v1.Group("/wallet")
		{
			wallet.POST("/connect", handler.ConnectWalletHandler)
			wallet.POST("/disconnect", handler.DisconnectWalletHandler)
			wallet.GET("", handler.GetWalletHandler)
			wallet.POST("/balance/refresh", handler.RefreshBalanceHandler)
		}

		v1.GET("/counter", handler.GetCounterHandler)
		v1.POST("/counter/increment", handler.IncrementCounterHandler)

		v1.POST("/chat", handler.ChatHandler)

		transfer := v1.Group("/transfer")
		{
			transfer.POST("", handler.TransferHandler)
			transfer.GET("/pending", handler.GetPendingTransferHandler)
			transfer.POST("/confirm", handler.ConfirmTransferHandler)
			transfer.POST("/cancel", handler.CancelTransferHandler)
		}

		v1.GET("/transaction", handler.GetTransactionHandler)
	}

	return router
}
