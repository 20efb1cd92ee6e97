package router

import (
	"github.com/gin-gonic/gin"

	"spotcheck.app/survey/internal/http/handler"
)

func ParticipantRouter(rg *gin.RouterGroup, h *handler.ParticipantHandler) {
	rg.POST("/signup", h.SignUp)
	rg.POST("/login", h.LogIn)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.UpdateName)
}
