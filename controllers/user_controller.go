package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypod/studypod-backend/models"
)

// CreateUser registers a user on first identity-provider sign-in.
// POST /users {firebaseId, email?}
func CreateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var req struct {
		FirebaseID string `json:"firebaseId"`
		Email      string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FirebaseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Firebase ID is required"})
		return
	}

	var existing models.User
	if err := db.First(&existing, "firebase_id = ?", req.FirebaseID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	user := models.User{FirebaseID: req.FirebaseID, Email: req.Email}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GET /users
func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var users []models.User
	if err := db.Preload("PlaylistItems.AudioFile").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /users/:firebaseId
func GetUserByFirebaseID(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	firebaseID := c.Param("firebaseId")

	var user models.User
	if err := db.Preload("PlaylistItems.AudioFile").First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// PUT /users/:firebaseId {email}
func UpdateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	firebaseID := c.Param("firebaseId")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := db.First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Email = req.Email
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user", "details": err.Error()})
		return
	}

	db.Preload("PlaylistItems.AudioFile").First(&user, "id = ?", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /users/:firebaseId — exists for completeness, not exercised by the
// core workflow.
func DeleteUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	firebaseID := c.Param("firebaseId")

	var user models.User
	if err := db.First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or could not be deleted"})
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "deletedUser": user})
}

// SaveInterests replaces the user's interest tags.
// POST /users/interests/:firebaseId {interests: []string}
func SaveInterests(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	firebaseID := c.Param("firebaseId")

	var req struct {
		Interests []string `json:"interests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Interests == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Interests must be an array"})
		return
	}

	var user models.User
	if err := db.First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Interests = req.Interests
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user interests", "details": err.Error()})
		return
	}

	db.Preload("PlaylistItems.AudioFile").First(&user, "id = ?", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AddToPlaylist links an existing audio file to the user's playlist.
// POST /users/:firebaseId/playlist {audioId}
func AddToPlaylist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	firebaseID := c.Param("firebaseId")

	var req struct {
		AudioID string `json:"audioId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AudioID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio ID is required"})
		return
	}

	audioID, err := uuid.Parse(req.AudioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audioId"})
		return
	}

	var user models.User
	if err := db.First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var audio models.AudioFile
	if err := db.First(&audio, "id = ?", audioID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio file not found"})
		return
	}

	// Existence check before insert, the one uniqueness guard on the pair.
	var existing models.UserAudioFile
	if err := db.Where("user_id = ? AND audio_id = ?", user.ID, audioID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Audio file already in playlist"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to playlist", "details": err.Error()})
		return
	}

	item := models.UserAudioFile{UserID: user.ID, AudioID: audioID}
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to playlist", "details": err.Error()})
		return
	}

	db.Preload("AudioFile").First(&item, "id = ?", item.ID)
	c.JSON(http.StatusCreated, gin.H{"playlistItem": item})
}

// RemoveFromPlaylist deletes the link and drops the audio id from the user's
// accumulating list.
// DELETE /users/:firebaseId/playlist/:audioId
func RemoveFromPlaylist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	firebaseID := c.Param("firebaseId")

	audioID, err := uuid.Parse(c.Param("audioId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audioId"})
		return
	}

	var user models.User
	if err := db.First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	result := db.Where("user_id = ? AND audio_id = ?", user.ID, audioID).
		Delete(&models.UserAudioFile{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from playlist", "details": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist item not found"})
		return
	}

	if err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("audios", gorm.Expr("array_remove(COALESCE(audios, '{}'), ?)", audioID.String())).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user audio list", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from playlist"})
}
