package router

import (
	"github.com/gin-gonic/gin"

	"spotcheck.app/survey/internal/http/handler"
)

func SurveyRouter(rg *gin.RouterGroup, survey *handler.SurveyHandler, practice *handler.PracticeHandler) {
	rg.GET("/batches", survey.ListBatches)
	rg.GET("/batches/:no", survey.GetBatch)
	rg.PUT("/responses", survey.SaveResponse)
	rg.POST("/responses/skip", survey.Skip)
	rg.GET("/progress", survey.Progress)

	rg.GET("/practice", practice.Session)
	rg.POST("/practice/complete", practice.Complete)
}
