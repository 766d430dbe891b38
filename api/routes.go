package api

import (
	"github.com/gin-gonic/gin"

	"github.com/runereum-labs/runereum/api/handlers"
)

// SetupRoutes initializes all API endpoints
func SetupRoutes(router *gin.Engine, h *handlers.Handlers) {
	api := router.Group("/api")
	{
		api.POST("/agents", h.DeployAgent)
		api.GET("/agents", h.ListAgents)
		api.GET("/agents/:id", h.GetAgent)
		api.PUT("/agents/:id/status", h.SetAgentStatus)
		api.PATCH("/agents/:id", h.UpdateAgent)
		api.PUT("/agents/:id/social", h.UpdateSocialLinks)
		api.PUT("/agents/:id/select", h.SelectAgent)
		api.DELETE("/agents/:id", h.DeleteAgent)
		api.GET("/selection", h.SelectedAgent)

		api.GET("/capabilities", h.Capabilities)
		api.GET("/chains", h.Chains)

		api.POST("/agent-connect", h.AgentConnect)

		api.POST("/chat", h.Chat)
		api.GET("/chat/:sessionId", h.Transcript)

		api.POST("/nft/upload-image", h.UploadImage)
		api.POST("/nft/upload-metadata", h.UploadMetadata)
		api.POST("/nft/mint", h.MintNFT)
		api.POST("/mint/run", h.RunMint)

		api.GET("/ws", h.HandleWebSocket)
	}
}
