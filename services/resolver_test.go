package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(store *fakeStore, gen *stubGenerator) *PodcastResolver {
	synth := &stubSynthesizer{audio: []byte("mp3")}
	storage := &stubStorage{url: "https://storage.example.com/audio/new.mp3"}
	p := &GenerationPipeline{Generator: gen, Synthesizer: synth, Storage: storage}
	return NewPodcastResolver(store, p)
}

func TestResolve_MissingInput(t *testing.T) {
	store := newFakeStore()
	gen := &stubGenerator{content: testContent()}
	r := newTestResolver(store, gen)

	_, err := r.Resolve(context.Background(), "", "firebase-1", "", nil)
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = r.Resolve(context.Background(), "tell me about science", "  ", "", nil)
	assert.ErrorIs(t, err, ErrMissingInput)

	assert.Zero(t, gen.calls)
	assert.Empty(t, store.links)
}

func TestResolve_UnknownUser(t *testing.T) {
	store := newFakeStore()
	gen := &stubGenerator{content: testContent()}
	r := newTestResolver(store, gen)

	_, err := r.Resolve(context.Background(), "tell me about alligators", "nobody", "", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// User existence is checked before generation: no pipeline run, no rows.
	assert.Zero(t, gen.calls)
	assert.Empty(t, store.audios)
	assert.Empty(t, store.summaries)
}

func TestResolve_EmptyKeywordSetAlwaysGenerates(t *testing.T) {
	store := newFakeStore()
	store.addUser("firebase-1")
	// A stored episode exists, but a prompt with no signal must never match it.
	store.addEpisode("science", []string{"science", "discovery"})

	gen := &stubGenerator{content: testContent()}
	r := newTestResolver(store, gen)

	res, err := r.Resolve(context.Background(), "Can you make me a podcast?", "firebase-1", "", nil)
	require.NoError(t, err)

	assert.False(t, res.Reused)
	assert.Equal(t, 1, gen.calls)
}

func TestResolve_ReuseOnKeywordOverlap(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("firebase-1")
	episode := store.addEpisode("gators", []string{"alligators", "crocodiles"})

	gen := &stubGenerator{content: testContent()}
	r := newTestResolver(store, gen)

	res, err := r.Resolve(context.Background(), "tell me about alligators", "firebase-1", "", nil)
	require.NoError(t, err)

	assert.True(t, res.Reused)
	assert.Equal(t, episode.ID, res.ID)
	assert.Equal(t, episode.Audio.URL, res.AudioURL)
	assert.Zero(t, gen.calls, "reuse must not invoke the generation pipeline")

	require.Len(t, store.links, 1)
	assert.Equal(t, user.ID, store.links[0].UserID)
	assert.Equal(t, episode.AudioID, store.links[0].AudioID)
	require.Len(t, store.appended[user.ID], 1)
	assert.Equal(t, episode.AudioID, store.appended[user.ID][0])
}

func TestResolve_RepeatedReuseIsConflict(t *testing.T) {
	store := newFakeStore()
	store.addUser("firebase-1")
	store.addEpisode("gators", []string{"alligators", "crocodiles"})

	r := newTestResolver(store, &stubGenerator{content: testContent()})

	_, err := r.Resolve(context.Background(), "tell me about alligators", "firebase-1", "", nil)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "tell me about alligators", "firebase-1", "", nil)
	assert.ErrorIs(t, err, ErrAlreadyLinked)

	assert.Len(t, store.links, 1, "exactly one link per (user, audio) pair")
}

func TestResolve_SecondUserReusesFirstGeneration(t *testing.T) {
	store := newFakeStore()
	alice := store.addUser("firebase-alice")
	bob := store.addUser("firebase-bob")

	gen := &stubGenerator{content: &PodcastContent{
		Title:    "Alligators vs Crocodiles",
		Content:  "Alligators and crocodiles differ in...",
		Keywords: []string{"alligators", "crocodiles"},
		Summary:  "How to tell the two apart.",
	}}
	r := newTestResolver(store, gen)
	r.Pipeline.TempDir = t.TempDir()

	prompt := "difference between alligators and crocodiles"

	first, err := r.Resolve(context.Background(), prompt, "firebase-alice", "", nil)
	require.NoError(t, err)
	assert.False(t, first.Reused)

	second, err := r.Resolve(context.Background(), prompt, "firebase-bob", "", nil)
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, 1, gen.calls, "second request must not regenerate")

	// Two distinct links, same audio file.
	require.Len(t, store.links, 2)
	assert.Equal(t, store.links[0].AudioID, store.links[1].AudioID)
	assert.NotEqual(t, store.links[0].UserID, store.links[1].UserID)
	assert.Equal(t, alice.ID, store.links[0].UserID)
	assert.Equal(t, bob.ID, store.links[1].UserID)
}

func TestResolve_GenerationFailureLeavesNoRecords(t *testing.T) {
	store := newFakeStore()
	store.addUser("firebase-1")

	gen := &stubGenerator{err: errUpstream}
	r := newTestResolver(store, gen)

	_, err := r.Resolve(context.Background(), "tell me about quasars", "firebase-1", "", nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)

	assert.Empty(t, store.audios)
	assert.Empty(t, store.summaries)
	assert.Empty(t, store.links)
	assert.Empty(t, store.appended)
}

func TestResolve_GeneratePersistsAllFourRecords(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("firebase-1")

	gen := &stubGenerator{content: testContent()}
	r := newTestResolver(store, gen)
	r.Pipeline.TempDir = t.TempDir()

	res, err := r.Resolve(context.Background(), "tell me about quasars", "firebase-1", "", nil)
	require.NoError(t, err)
	assert.False(t, res.Reused)

	require.Len(t, store.audios, 1)
	require.Len(t, store.summaries, 1)
	require.Len(t, store.links, 1)

	assert.Equal(t, store.audios[0].ID, store.summaries[0].AudioID)
	assert.Equal(t, store.audios[0].ID, store.links[0].AudioID)
	assert.Equal(t, user.ID, store.links[0].UserID)
	assert.Equal(t, []string{"science", "discovery"}, []string(store.summaries[0].Keywords))
	require.Len(t, store.appended[user.ID], 1)
	assert.Equal(t, store.audios[0].ID, store.appended[user.ID][0])
}

func TestLookup_NoMatchWithoutGeneration(t *testing.T) {
	store := newFakeStore()
	store.addUser("firebase-1")

	gen := &stubGenerator{content: testContent()}
	r := newTestResolver(store, gen)

	_, err := r.Lookup(context.Background(), "tell me about quasars", "firebase-1")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Zero(t, gen.calls)
}

func TestLookup_EmptyKeywordSetIsNoMatch(t *testing.T) {
	store := newFakeStore()
	store.addUser("firebase-1")
	store.addEpisode("science", []string{"science"})

	r := newTestResolver(store, &stubGenerator{content: testContent()})

	_, err := r.Lookup(context.Background(), "Can you make me a podcast?", "firebase-1")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLookup_MatchLinksRequester(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("firebase-1")
	episode := store.addEpisode("gators", []string{"alligators", "crocodiles"})

	r := newTestResolver(store, &stubGenerator{content: testContent()})

	res, err := r.Lookup(context.Background(), "tell me about crocodiles", "firebase-1")
	require.NoError(t, err)

	assert.True(t, res.Reused)
	assert.Equal(t, episode.ID, res.ID)
	require.Len(t, store.links, 1)
	assert.Equal(t, user.ID, store.links[0].UserID)
}
