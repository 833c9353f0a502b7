package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/studypod/studypod-backend/models"
	"github.com/studypod/studypod-backend/services"
)

type staticPodcast struct {
	Title    string
	Content  string
	Summary  string
	Keywords []string
	AudioURL string
}

// Seed episodes for a fresh deployment. Their audio is pre-rendered and
// already sitting in the bucket under the initialize/ prefix.
var staticPodcasts = []staticPodcast{
	{
		Title:    "The Wonders of Science",
		Content:  "A deep dive into the fascinating world of scientific discoveries...",
		Summary:  "Explore the latest breakthroughs in science and their impact on our understanding of the universe.",
		Keywords: []string{"science", "discovery", "research"},
		AudioURL: "https://team5-study-pod-s3-bucket.s3.us-east-2.amazonaws.com/initialize/science-podcast.mp3",
	},
	{
		Title:    "Journey Through History",
		Content:  "Uncovering the pivotal moments that shaped our world...",
		Summary:  "A captivating exploration of key historical events and their lasting influence on modern society.",
		Keywords: []string{"history", "culture", "civilization"},
		AudioURL: "https://team5-study-pod-s3-bucket.s3.us-east-2.amazonaws.com/initialize/history-podcast.mp3",
	},
	{
		Title:    "Programming Fundamentals",
		Content:  "Master the basics of programming and software development...",
		Summary:  "Learn essential programming concepts and best practices for modern software development.",
		Keywords: []string{"programming", "coding", "software"},
		AudioURL: "https://team5-study-pod-s3-bucket.s3.us-east-2.amazonaws.com/initialize/programming-podcast.mp3",
	},
	{
		Title:    "The AI Revolution",
		Content:  "Understanding artificial intelligence and its transformative potential...",
		Summary:  "Discover how AI is reshaping industries and what it means for the future of technology.",
		Keywords: []string{"ai", "machine learning", "technology"},
		AudioURL: "https://team5-study-pod-s3-bucket.s3.us-east-2.amazonaws.com/initialize/ai-podcast.mp3",
	},
	{
		Title:    "Art and Creativity",
		Content:  "Exploring the intersection of art, design, and human expression...",
		Summary:  "Dive into the world of art and discover how creativity shapes our cultural landscape.",
		Keywords: []string{"art", "creativity", "design"},
		AudioURL: "https://team5-study-pod-s3-bucket.s3.us-east-2.amazonaws.com/initialize/art-podcast.mp3",
	},
	{
		Title:    "Entrepreneurship Essentials",
		Content:  "Building and growing successful businesses in the modern world...",
		Summary:  "Learn the key principles of entrepreneurship and how to navigate the startup landscape.",
		Keywords: []string{"entrepreneurship", "business", "startup"},
		AudioURL: "https://team5-study-pod-s3-bucket.s3.us-east-2.amazonaws.com/initialize/entrepreneurship-podcast.mp3",
	},
}

// InitializePodcasts seeds the static episodes. Idempotent: an episode whose
// storage key already exists is skipped.
// POST /podcasts/initialize
func InitializePodcasts(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	for _, p := range staticPodcasts {
		parts := strings.Split(p.AudioURL, "/")
		storageKey := "initialize/" + parts[len(parts)-1]

		var existing models.AudioFile
		err := db.First(&existing, "storage_key = ?", storageKey).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize podcasts", "details": err.Error()})
			return
		}

		audio := models.AudioFile{
			StorageKey:   storageKey,
			URL:          p.AudioURL,
			ContentType:  "audio/mpeg",
			OriginalName: slug.Make(p.Title) + ".mp3",
		}
		if err := db.Create(&audio).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize podcasts", "details": err.Error()})
			return
		}

		summary := models.PodcastSummary{
			Title:    p.Title,
			Content:  p.Content,
			Summary:  p.Summary,
			Keywords: services.NormalizeKeywords(p.Keywords),
			AudioID:  audio.ID,
		}
		if err := db.Create(&summary).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize podcasts", "details": err.Error()})
			return
		}
	}

	var seeded []models.PodcastSummary
	if err := db.Preload("Audio").
		Joins("JOIN audio_files ON audio_files.id = podcast_summaries.audio_id").
		Where("audio_files.storage_key LIKE ?", "initialize/%").
		Find(&seeded).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize podcasts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, seeded)
}

// GET /podcasts
func GetPodcasts(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var podcasts []models.PodcastSummary
	if err := db.Preload("Audio").Order("created_at ASC").Find(&podcasts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch podcasts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, podcasts)
}

// GET /podcasts/:id
func GetPodcastByID(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var podcast models.PodcastSummary
	if err := db.Preload("Audio").First(&podcast, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Podcast not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch podcast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, podcast)
}

// Data browse routes: raw collections with relations preloaded.

// GET /data/audio-files
func GetAudioFiles(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var audioFiles []models.AudioFile
	if err := db.Preload("Summary").Preload("SavedBy.User").Find(&audioFiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, audioFiles)
}

// GET /data/podcast-summaries
func GetPodcastSummaries(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var summaries []models.PodcastSummary
	if err := db.Preload("Audio").Find(&summaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GET /data/user-audio-files
func GetUserAudioFiles(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var entries []models.UserAudioFile
	if err := db.Preload("AudioFile.Summary").Preload("User").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
