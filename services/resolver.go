package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/studypod/studypod-backend/models"
)

// StageSave is emitted while the resolved episode is being persisted.
const StageSave = "saving"

// Store is the document-store surface the resolver needs. The GORM
// implementation lives in the repository package; tests inject fakes.
type Store interface {
	UserByFirebaseID(ctx context.Context, firebaseID string) (*models.User, error)
	// SummaryByKeywordOverlap returns the oldest summary whose keyword set
	// intersects the given one, with its AudioFile preloaded, or ErrNoMatch.
	SummaryByKeywordOverlap(ctx context.Context, keywords []string) (*models.PodcastSummary, error)
	CreateAudioFile(ctx context.Context, audio *models.AudioFile) error
	CreatePodcastSummary(ctx context.Context, summary *models.PodcastSummary) error
	AppendUserAudio(ctx context.Context, userID, audioID uuid.UUID) error
	LinkExists(ctx context.Context, userID, audioID uuid.UUID) (bool, error)
	CreateLink(ctx context.Context, link *models.UserAudioFile) error
}

// Resolution is the outcome of one resolve call: either a reused episode or
// a freshly generated one, always with a user link created for the requester.
type Resolution struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary"`
	Keywords   []string  `json:"keywords"`
	AudioID    uuid.UUID `json:"audio_id"`
	AudioURL   string    `json:"audioUrl"`
	StorageKey string    `json:"s3Key"`
	Reused     bool      `json:"reused"`
}

// PodcastResolver decides, per prompt, whether to reuse previously generated
// content or to synthesize new content, and keeps the summary, audio and
// user-link records consistent afterwards.
type PodcastResolver struct {
	Store    Store
	Pipeline *GenerationPipeline
}

func NewPodcastResolver(store Store, pipeline *GenerationPipeline) *PodcastResolver {
	return &PodcastResolver{Store: store, Pipeline: pipeline}
}

// Resolve runs the full reuse-or-generate policy for a prompt.
//
// The requesting user is verified before the pipeline runs, so an unknown
// firebaseId never produces orphan AudioFile/PodcastSummary rows. An empty
// keyword set skips the lookup entirely: an empty set would intersect with
// everything under a naive any-in-common test, so it means "no signal" and
// always generates.
func (r *PodcastResolver) Resolve(ctx context.Context, prompt, firebaseID, voice string, progress Progress) (*Resolution, error) {
	prompt = strings.TrimSpace(prompt)
	firebaseID = strings.TrimSpace(firebaseID)
	if prompt == "" || firebaseID == "" {
		return nil, ErrMissingInput
	}

	user, err := r.Store.UserByFirebaseID(ctx, firebaseID)
	if err != nil {
		return nil, err
	}

	keywords := ExtractKeywords(prompt)
	if len(keywords) > 0 {
		match, err := r.Store.SummaryByKeywordOverlap(ctx, keywords)
		switch {
		case err == nil && match.AudioID != uuid.Nil:
			return r.reuse(ctx, user, match)
		case err != nil && !errors.Is(err, ErrNoMatch):
			return nil, err
		}
	}

	bundle, err := r.Pipeline.Generate(ctx, prompt, voice, progress)
	if err != nil {
		return nil, err
	}

	return r.persist(ctx, user, bundle, progress)
}

// Lookup runs only the reuse half of the policy, for the GET endpoint that
// has no generation fallback. ErrNoMatch tells the client to fall back to
// the generating endpoint.
func (r *PodcastResolver) Lookup(ctx context.Context, prompt, firebaseID string) (*Resolution, error) {
	prompt = strings.TrimSpace(prompt)
	firebaseID = strings.TrimSpace(firebaseID)
	if prompt == "" || firebaseID == "" {
		return nil, ErrMissingInput
	}

	keywords := ExtractKeywords(prompt)
	if len(keywords) == 0 {
		return nil, ErrNoMatch
	}

	match, err := r.Store.SummaryByKeywordOverlap(ctx, keywords)
	if err != nil {
		return nil, err
	}
	if match.AudioID == uuid.Nil {
		return nil, ErrNoMatch
	}

	user, err := r.Store.UserByFirebaseID(ctx, firebaseID)
	if err != nil {
		return nil, err
	}

	return r.reuse(ctx, user, match)
}

// reuse links an existing episode to the requesting user: verify no link for
// the pair exists yet, create the link, then append the audio id to the
// user's accumulating list. A second call for the same pair is a conflict,
// never a silent duplicate.
func (r *PodcastResolver) reuse(ctx context.Context, user *models.User, match *models.PodcastSummary) (*Resolution, error) {
	exists, err := r.Store.LinkExists(ctx, user.ID, match.AudioID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyLinked
	}

	link := &models.UserAudioFile{UserID: user.ID, AudioID: match.AudioID}
	if err := r.Store.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	if err := r.Store.AppendUserAudio(ctx, user.ID, match.AudioID); err != nil {
		return nil, err
	}

	return &Resolution{
		ID:         match.ID,
		Title:      match.Title,
		Content:    match.Content,
		Summary:    match.Summary,
		Keywords:   match.Keywords,
		AudioID:    match.AudioID,
		AudioURL:   match.Audio.URL,
		StorageKey: match.Audio.StorageKey,
		Reused:     true,
	}, nil
}

// persist applies the first-time write sequence for a generated bundle:
// AudioFile, then PodcastSummary referencing it, then the user's audio-id
// list, then the UserAudioFile link. The four writes are issued sequentially
// and are not wrapped in a transaction; a failure partway through leaves the
// earlier rows in place.
func (r *PodcastResolver) persist(ctx context.Context, user *models.User, bundle *Bundle, progress Progress) (*Resolution, error) {
	if progress != nil {
		progress(StageSave)
	}

	audio := &models.AudioFile{
		StorageKey:   bundle.StorageKey,
		URL:          bundle.AudioURL,
		ContentType:  bundle.ContentType,
		OriginalName: bundle.OriginalName,
		DurationSec:  bundle.DurationSec,
	}
	if err := r.Store.CreateAudioFile(ctx, audio); err != nil {
		return nil, err
	}

	summary := &models.PodcastSummary{
		Title:    bundle.Title,
		Content:  bundle.Content,
		Summary:  bundle.Summary,
		Keywords: NormalizeKeywords(bundle.Keywords),
		AudioID:  audio.ID,
	}
	if err := r.Store.CreatePodcastSummary(ctx, summary); err != nil {
		return nil, err
	}

	if err := r.Store.AppendUserAudio(ctx, user.ID, audio.ID); err != nil {
		return nil, err
	}

	link := &models.UserAudioFile{UserID: user.ID, AudioID: audio.ID}
	if err := r.Store.CreateLink(ctx, link); err != nil {
		return nil, err
	}

	return &Resolution{
		ID:         summary.ID,
		Title:      bundle.Title,
		Content:    bundle.Content,
		Summary:    bundle.Summary,
		Keywords:   bundle.Keywords,
		AudioID:    audio.ID,
		AudioURL:   bundle.AudioURL,
		StorageKey: bundle.StorageKey,
		Reused:     false,
	}, nil
}
