package api

import (
	"github.com/gin-gonic/gin"

	"github.com/runereum-labs/runereum/api/handlers"
)

// StartServer initializes the REST API and blocks serving it.
func StartServer(addr string, h *handlers.Handlers) error {
	r := gin.Default()
	SetupRoutes(r, h)
	return r.Run(addr)
}
