// Package api exposes a small read-only status server next to the bot:
// liveness plus live appointment counts. It carries no auth, the platform
// remains the only write surface.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dnns01/fernuni-bot/internal/store"
)

func Start(port string, st *store.Store) error {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/appointments", func(c *gin.Context) {
		counts := st.Counts()
		total := 0
		for _, n := range counts {
			total += n
		}
		c.JSON(http.StatusOK, gin.H{
			"total":    total,
			"channels": counts,
		})
	})

	return r.Run(":" + port)
}
