package http

import (
	"github.com/gin-gonic/gin"
	"github.com/reusedev/sbi-hub/internal/service/http/handler"
	"github.com/reusedev/sbi-hub/internal/service/http/middleware"
)

func Serve(port string) {
	e := NewEngine()
	if err := e.Run(port); err != nil {
		panic(err)
	}
}

func NewEngine() *gin.Engine {
	e := gin.New()
	initRouter(e)
	return e
}

func initRouter(e *gin.Engine) {
	e.Use(gin.Recovery(), middleware.RequestLogger())
	v1 := e.Group("/v1")
	thumb := v1.Group("/thumbnail")
	{
		thumb.POST("/size", handler.ThumbnailSize)
	}
	search := v1.Group("/search")
	{
		search.POST("", handler.Search)
		search.GET("/page", handler.SearchPage)
		search.POST("/upload", handler.Upload)
		search.GET("/lookup", handler.Lookup)
		search.GET("/record", handler.GetRecord)
	}
	hover := v1.Group("/hover")
	{
		hover.POST("/eligible", handler.HoverEligible)
		hover.POST("/replay", handler.HoverReplay)
		hover.POST("/click", handler.HoverClick)
	}
	prefs := v1.Group("/preferences")
	{
		prefs.GET("", handler.GetPreferences)
		prefs.PUT("", handler.PutPreferences)
	}
}
