package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studypod/studypod-backend/services"
	"github.com/studypod/studypod-backend/ws"
)

// PodcastController exposes the podcast resolution workflow. The resolver
// and its pipeline are injected so handlers stay testable with fakes.
type PodcastController struct {
	Resolver *services.PodcastResolver
}

func NewPodcastController(resolver *services.PodcastResolver) *PodcastController {
	return &PodcastController{Resolver: resolver}
}

type generateRequest struct {
	Prompt     string `json:"prompt"`
	FirebaseID string `json:"firebaseId"`
	Voice      string `json:"voice"`
}

// GeneratePodcast handles POST /generate-podcast. Reuses an existing episode
// on a keyword match, otherwise runs the full generation pipeline.
func (pc *PodcastController) GeneratePodcast(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both prompt and firebaseId are required"})
		return
	}

	progress := func(stage string) {
		ws.SendGenerationStatus(req.FirebaseID, stage, "")
	}

	res, err := pc.Resolver.Resolve(c.Request.Context(), req.Prompt, req.FirebaseID, req.Voice, progress)
	if err != nil {
		ws.SendGenerationStatus(req.FirebaseID, "error", err.Error())
		respondResolutionError(c, err)
		return
	}
	ws.SendGenerationStatus(req.FirebaseID, "done", "")

	c.JSON(http.StatusOK, gin.H{
		"title":    res.Title,
		"content":  res.Content,
		"keywords": res.Keywords,
		"summary":  res.Summary,
		"id":       res.ID,
		"audioUrl": res.AudioURL,
		"s3Key":    res.StorageKey,
	})
}

// GeneratePodcastFromDocument handles POST /generate-podcast/document.
// The uploaded study material (.pdf or .txt) is extracted to plain text and
// fed through the same resolution flow as a prompt.
func (pc *PodcastController) GeneratePodcastFromDocument(c *gin.Context) {
	firebaseID := c.PostForm("firebaseId")
	voice := c.PostForm("voice")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both file and firebaseId are required"})
		return
	}

	text, err := services.ExtractTextFromUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot extract text from upload", "details": err.Error()})
		return
	}

	progress := func(stage string) {
		ws.SendGenerationStatus(firebaseID, stage, "")
	}

	res, err := pc.Resolver.Resolve(c.Request.Context(), text, firebaseID, voice, progress)
	if err != nil {
		ws.SendGenerationStatus(firebaseID, "error", err.Error())
		respondResolutionError(c, err)
		return
	}
	ws.SendGenerationStatus(firebaseID, "done", "")

	c.JSON(http.StatusOK, gin.H{
		"title":    res.Title,
		"content":  res.Content,
		"keywords": res.Keywords,
		"summary":  res.Summary,
		"id":       res.ID,
		"audioUrl": res.AudioURL,
		"s3Key":    res.StorageKey,
	})
}

// LookupPodcastByKeywords handles GET /audio-file-by-keywords?prompt=&firebaseId=.
// Lookup only, no generation fallback: 404 tells the client to POST instead.
func (pc *PodcastController) LookupPodcastByKeywords(c *gin.Context) {
	prompt := c.Query("prompt")
	firebaseID := c.Query("firebaseId")

	res, err := pc.Resolver.Lookup(c.Request.Context(), prompt, firebaseID)
	if err != nil {
		respondResolutionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       res.ID,
		"title":    res.Title,
		"content":  res.Content,
		"summary":  res.Summary,
		"keywords": res.Keywords,
		"audioUrl": res.AudioURL,
		"s3Key":    res.StorageKey,
	})
}

// respondResolutionError maps resolver errors onto the HTTP taxonomy:
// validation 400, unknown references 404, duplicate links 409, everything
// from the pipeline or the store 500 with the underlying detail.
func respondResolutionError(c *gin.Context, err error) {
	var genErr *services.GenerationError
	switch {
	case errors.Is(err, services.ErrMissingInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAudioNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoMatch):
		c.JSON(http.StatusNotFound, gin.H{"message": "No cached podcast found"})
	case errors.Is(err, services.ErrAlreadyLinked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &genErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate podcast content", "details": genErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve podcast", "details": err.Error()})
	}
}
