package services

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/studypod/studypod-backend/models"
)

// In-memory test doubles for the pipeline collaborators and the store.

type stubGenerator struct {
	content *PodcastContent
	err     error
	calls   int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (*PodcastContent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.content, nil
}

type stubSynthesizer struct {
	audio []byte
	err   error
	calls int
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

type stubStorage struct {
	url   string
	err   error
	keys  []string
	calls int
}

func (s *stubStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return s.url, nil
}

type fakeStore struct {
	users     map[string]*models.User
	summaries []*models.PodcastSummary
	audios    []*models.AudioFile
	links     []*models.UserAudioFile
	appended  map[uuid.UUID][]uuid.UUID

	linkErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		appended: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeStore) addUser(firebaseID string) *models.User {
	u := &models.User{ID: uuid.New(), FirebaseID: firebaseID}
	f.users[firebaseID] = u
	return u
}

func (f *fakeStore) addEpisode(title string, keywords []string) *models.PodcastSummary {
	audio := &models.AudioFile{
		ID:         uuid.New(),
		StorageKey: "audio/" + title + ".mp3",
		URL:        "https://storage.example.com/audio/" + title + ".mp3",
	}
	f.audios = append(f.audios, audio)
	summary := &models.PodcastSummary{
		ID:       uuid.New(),
		Title:    title,
		Content:  "content about " + title,
		Summary:  "summary of " + title,
		Keywords: keywords,
		AudioID:  audio.ID,
		Audio:    *audio,
	}
	f.summaries = append(f.summaries, summary)
	return summary
}

func (f *fakeStore) UserByFirebaseID(ctx context.Context, firebaseID string) (*models.User, error) {
	if u, ok := f.users[firebaseID]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (f *fakeStore) SummaryByKeywordOverlap(ctx context.Context, keywords []string) (*models.PodcastSummary, error) {
	if len(keywords) == 0 {
		return nil, ErrNoMatch
	}
	want := map[string]struct{}{}
	for _, k := range keywords {
		want[k] = struct{}{}
	}
	// Insertion order stands in for the repository's created_at ordering.
	for _, s := range f.summaries {
		for _, k := range s.Keywords {
			if _, ok := want[k]; ok {
				return s, nil
			}
		}
	}
	return nil, ErrNoMatch
}

func (f *fakeStore) CreateAudioFile(ctx context.Context, audio *models.AudioFile) error {
	audio.ID = uuid.New()
	f.audios = append(f.audios, audio)
	return nil
}

func (f *fakeStore) CreatePodcastSummary(ctx context.Context, summary *models.PodcastSummary) error {
	summary.ID = uuid.New()
	f.summaries = append(f.summaries, summary)
	return nil
}

func (f *fakeStore) AppendUserAudio(ctx context.Context, userID, audioID uuid.UUID) error {
	f.appended[userID] = append(f.appended[userID], audioID)
	return nil
}

func (f *fakeStore) LinkExists(ctx context.Context, userID, audioID uuid.UUID) (bool, error) {
	for _, l := range f.links {
		if l.UserID == userID && l.AudioID == audioID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateLink(ctx context.Context, link *models.UserAudioFile) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	link.ID = uuid.New()
	f.links = append(f.links, link)
	return nil
}

var errUpstream = errors.New("upstream unavailable")
