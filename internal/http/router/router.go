package router

import (
	"github.com/gin-gonic/gin"

	"spotcheck.app/survey/internal/http/handler"
	"spotcheck.app/survey/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		participantHandler := handler.NewParticipantHandler(services.Participants())
		ParticipantRouter(v1.Group("/participants"), participantHandler)

		surveyHandler := handler.NewSurveyHandler(services.Survey(), services.Assignments())
		practiceHandler := handler.NewPracticeHandler(services.Practice())
		SurveyRouter(v1.Group("/participants/:id"), surveyHandler, practiceHandler)
	}
}
