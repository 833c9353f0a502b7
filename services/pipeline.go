package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Pipeline stage names, also used as progress events.
const (
	StageGenerate   = "generating"
	StageSynthesize = "synthesizing"
	StageUpload     = "uploading"
)

// Per-stage deadlines. None of the upstream services guarantee a prompt
// answer, so every external call is bounded. A timeout surfaces as the same
// GenerationError family as any other stage failure.
const (
	generateTimeout   = 2 * time.Minute
	synthesizeTimeout = 5 * time.Minute
	uploadTimeout     = 2 * time.Minute
)

// Bundle is the fully formed output of one pipeline run. Nothing is persisted
// until the bundle exists; a failure at any stage leaves no records behind.
type Bundle struct {
	Title        string
	Content      string
	Summary      string
	Keywords     []string
	StorageKey   string
	AudioURL     string
	ContentType  string
	OriginalName string
	DurationSec  int
}

// Progress receives stage events as the pipeline advances. May be nil.
type Progress func(stage string)

// GenerationPipeline orchestrates the text generation, speech synthesis and
// storage upload for one podcast, strictly in that order.
type GenerationPipeline struct {
	Generator   TextGenerator
	Synthesizer SpeechSynthesizer
	Storage     ObjectStorage
	TempDir     string // defaults to os.TempDir()
}

func NewGenerationPipeline(gen TextGenerator, synth SpeechSynthesizer, store ObjectStorage) *GenerationPipeline {
	return &GenerationPipeline{Generator: gen, Synthesizer: synth, Storage: store}
}

// Generate runs the full pipeline for a prompt. The synthesized audio is
// buffered to a per-request temp file which is removed on every exit path.
func (p *GenerationPipeline) Generate(ctx context.Context, prompt, voice string, progress Progress) (*Bundle, error) {
	notify := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	// 1) Generate and parse the structured content.
	notify(StageGenerate)
	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	content, err := p.Generator.Generate(genCtx, prompt)
	cancel()
	if err != nil {
		return nil, generationErr(StageGenerate, err)
	}

	// 2) Synthesize the generated body (not the original prompt).
	notify(StageSynthesize)
	synthCtx, cancel := context.WithTimeout(ctx, synthesizeTimeout)
	audio, err := p.Synthesizer.Synthesize(synthCtx, content.Content, voice)
	cancel()
	if err != nil {
		return nil, generationErr(StageSynthesize, err)
	}

	// 3) Buffer to a temp file, measure duration, upload.
	safeName := fmt.Sprintf("%s-%s.mp3", slug.Make(content.Title), uuid.NewString())
	tempDir := p.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	tempPath := filepath.Join(tempDir, safeName)
	if err := os.WriteFile(tempPath, audio, 0o644); err != nil {
		return nil, generationErr(StageSynthesize, err)
	}
	defer os.Remove(tempPath)

	durationSec := 0
	if dur, err := MP3DurationFromFile(tempPath); err == nil {
		durationSec = int(dur)
	}

	notify(StageUpload)
	f, err := os.Open(tempPath)
	if err != nil {
		return nil, generationErr(StageUpload, err)
	}
	defer f.Close()

	storageKey := "audio/" + safeName
	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	url, err := p.Storage.Upload(uploadCtx, storageKey, f, "audio/mpeg")
	cancel()
	if err != nil {
		return nil, generationErr(StageUpload, err)
	}

	return &Bundle{
		Title:        content.Title,
		Content:      content.Content,
		Summary:      content.Summary,
		Keywords:     content.Keywords,
		StorageKey:   storageKey,
		AudioURL:     url,
		ContentType:  "audio/mpeg",
		OriginalName: content.Title,
		DurationSec:  durationSec,
	}, nil
}
