package services

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() *PodcastContent {
	return &PodcastContent{
		Title:    "The Wonders of Science",
		Content:  "Science is everywhere around us...",
		Keywords: []string{"science", "discovery"},
		Summary:  "A short tour of science.",
	}
}

func TestPipeline_Success(t *testing.T) {
	gen := &stubGenerator{content: testContent()}
	synth := &stubSynthesizer{audio: []byte("mp3-bytes")}
	store := &stubStorage{url: "https://storage.example.com/audio/x.mp3"}

	p := NewGenerationPipeline(gen, synth, store)
	p.TempDir = t.TempDir()

	var stages []string
	bundle, err := p.Generate(context.Background(), "tell me about science", "", func(stage string) {
		stages = append(stages, stage)
	})
	require.NoError(t, err)

	assert.Equal(t, "The Wonders of Science", bundle.Title)
	assert.Equal(t, "audio/mpeg", bundle.ContentType)
	assert.Equal(t, store.url, bundle.AudioURL)
	assert.True(t, strings.HasPrefix(bundle.StorageKey, "audio/the-wonders-of-science-"))
	assert.True(t, strings.HasSuffix(bundle.StorageKey, ".mp3"))
	assert.Equal(t, []string{StageGenerate, StageSynthesize, StageUpload}, stages)

	// The temp buffer must be gone after a successful run.
	entries, err := os.ReadDir(p.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPipeline_GeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errUpstream}
	synth := &stubSynthesizer{audio: []byte("mp3")}
	store := &stubStorage{url: "u"}

	p := NewGenerationPipeline(gen, synth, store)
	p.TempDir = t.TempDir()

	_, err := p.Generate(context.Background(), "prompt", "", nil)
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageGenerate, genErr.Stage)
	assert.Zero(t, synth.calls)
	assert.Zero(t, store.calls)
}

func TestPipeline_SynthesizerFailure(t *testing.T) {
	gen := &stubGenerator{content: testContent()}
	synth := &stubSynthesizer{err: errUpstream}
	store := &stubStorage{url: "u"}

	p := NewGenerationPipeline(gen, synth, store)
	p.TempDir = t.TempDir()

	_, err := p.Generate(context.Background(), "prompt", "", nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageSynthesize, genErr.Stage)
	assert.Zero(t, store.calls)
}

func TestPipeline_UploadFailureRemovesTempFile(t *testing.T) {
	gen := &stubGenerator{content: testContent()}
	synth := &stubSynthesizer{audio: []byte("mp3")}
	store := &stubStorage{err: errUpstream}

	p := NewGenerationPipeline(gen, synth, store)
	p.TempDir = t.TempDir()

	_, err := p.Generate(context.Background(), "prompt", "", nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageUpload, genErr.Stage)

	entries, readErr := os.ReadDir(p.TempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
