package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/studypod/studypod-backend/config"
	"github.com/studypod/studypod-backend/controllers"
	"github.com/studypod/studypod-backend/repository"
	"github.com/studypod/studypod-backend/routes"
	"github.com/studypod/studypod-backend/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	config.InitDB()

	// External collaborators, wired once and injected
	generator := services.NewGeminiGenerator(os.Getenv("GEMINI_API_KEY"))
	synthesizer := services.NewGoogleSynthesizer(os.Getenv("GOOGLE_CREDENTIALS_JSON"))
	storage := services.NewSupabaseStorage(
		os.Getenv("SUPABASE_URL"),
		os.Getenv("SUPABASE_KEY"),
		os.Getenv("SUPABASE_BUCKET"),
	)

	pipeline := services.NewGenerationPipeline(generator, synthesizer, storage)
	store := repository.NewGormStore(config.DB)
	resolver := services.NewPodcastResolver(store, pipeline)
	podcastController := controllers.NewPodcastController(resolver)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081", "http://localhost:19006"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB, podcastController)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "StudyPod API is running - Convert your study materials to podcasts!")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
