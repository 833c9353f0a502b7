package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studypod/studypod-backend/controllers"
	"github.com/studypod/studypod-backend/middleware"
	"github.com/studypod/studypod-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, podcasts *controllers.PodcastController) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	// Core resolution workflow
	r.POST("/generate-podcast", podcasts.GeneratePodcast)
	r.POST("/generate-podcast/document", podcasts.GeneratePodcastFromDocument)
	r.GET("/audio-file-by-keywords", podcasts.LookupPodcastByKeywords)

	users := r.Group("/users")
	{
		users.Use(middleware.DBMiddleware(db))
		users.POST("", controllers.CreateUser)
		users.GET("", controllers.GetUsers)
		users.GET("/:firebaseId", controllers.GetUserByFirebaseID)
		users.PUT("/:firebaseId", controllers.UpdateUser)
		users.DELETE("/:firebaseId", controllers.DeleteUser)
		users.POST("/interests/:firebaseId", controllers.SaveInterests)
		users.POST("/:firebaseId/playlist", controllers.AddToPlaylist)
		users.DELETE("/:firebaseId/playlist/:audioId", controllers.RemoveFromPlaylist)
	}

	catalog := r.Group("/podcasts")
	{
		catalog.Use(middleware.DBMiddleware(db))
		catalog.POST("/initialize", controllers.InitializePodcasts)
		catalog.GET("", controllers.GetPodcasts)
		catalog.GET("/:id", controllers.GetPodcastByID)
	}

	data := r.Group("/data")
	{
		data.Use(middleware.DBMiddleware(db))
		data.GET("/users", controllers.GetUsers)
		data.GET("/audio-files", controllers.GetAudioFiles)
		data.GET("/podcast-summaries", controllers.GetPodcastSummaries)
		data.GET("/user-audio-files", controllers.GetUserAudioFiles)
	}

	r.GET("/ws/status", ws.HandleStatusWebSocket)

	return r
}
