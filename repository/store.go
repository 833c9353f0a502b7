package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/studypod/studypod-backend/models"
	"github.com/studypod/studypod-backend/services"
)

// GormStore implements services.Store on the Postgres document schema.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) UserByFirebaseID(ctx context.Context, firebaseID string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "firebase_id = ?", firebaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SummaryByKeywordOverlap finds summaries whose stored keyword array shares
// at least one element with the extracted set, via the Postgres && operator.
// Tie-break across multiple matches is oldest-first (creation order, id as
// the final discriminator) so repeated lookups are stable.
func (s *GormStore) SummaryByKeywordOverlap(ctx context.Context, keywords []string) (*models.PodcastSummary, error) {
	if len(keywords) == 0 {
		return nil, services.ErrNoMatch
	}

	var summary models.PodcastSummary
	err := s.DB.WithContext(ctx).
		Preload("Audio").
		Where("keywords && ?", pq.Array(keywords)).
		Order("created_at ASC, id ASC").
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNoMatch
		}
		return nil, err
	}
	return &summary, nil
}

func (s *GormStore) CreateAudioFile(ctx context.Context, audio *models.AudioFile) error {
	return s.DB.WithContext(ctx).Create(audio).Error
}

func (s *GormStore) CreatePodcastSummary(ctx context.Context, summary *models.PodcastSummary) error {
	return s.DB.WithContext(ctx).Create(summary).Error
}

func (s *GormStore) AppendUserAudio(ctx context.Context, userID, audioID uuid.UUID) error {
	return s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("audios", gorm.Expr("array_append(COALESCE(audios, '{}'), ?)", audioID.String())).Error
}

func (s *GormStore) LinkExists(ctx context.Context, userID, audioID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.UserAudioFile{}).
		Where("user_id = ? AND audio_id = ?", userID, audioID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateLink(ctx context.Context, link *models.UserAudioFile) error {
	return s.DB.WithContext(ctx).Create(link).Error
}
