package services

import (
	"context"
	"errors"
	"log"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// SpeechSynthesizer turns text into MP3 bytes using the given voice.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

const (
	defaultVoice    = "en-US-Chirp3-HD-Puck"
	defaultLanguage = "en-US"
	// The synthesis API rejects inputs over 5000 bytes; stay under with margin.
	maxChunkBytes = 4500
)

// GoogleSynthesizer implements SpeechSynthesizer on Google Cloud TTS.
type GoogleSynthesizer struct {
	CredentialsFile string
	DefaultVoice    string
}

func NewGoogleSynthesizer(credentialsFile string) *GoogleSynthesizer {
	return &GoogleSynthesizer{CredentialsFile: credentialsFile, DefaultVoice: defaultVoice}
}

// Synthesize converts text to MP3 bytes, splitting long inputs into chunks
// at sentence boundaries and concatenating the resulting audio.
func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if len(text) == 0 {
		return nil, errors.New("text is empty")
	}
	if voice == "" {
		voice = s.DefaultVoice
	}
	if voice == "" {
		voice = defaultVoice
	}

	var opts []option.ClientOption
	if s.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	chunks := splitTextToChunksByByte(text, maxChunkBytes)
	var allAudio []byte

	for idx, chunk := range chunks {
		log.Printf("Synthesizing chunk %d/%d: %d bytes", idx+1, len(chunks), len(chunk))

		req := &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{
					Text: chunk,
				},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: defaultLanguage,
				Name:         voice,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_MP3,
				SpeakingRate:  1.0,
			},
		}

		resp, err := client.SynthesizeSpeech(ctx, req)
		if err != nil {
			return nil, err
		}
		allAudio = append(allAudio, resp.AudioContent...)
	}

	return allAudio, nil
}

// splitTextToChunksByByte splits text on a byte budget, preferring sentence
// boundaries and never cutting inside a UTF-8 sequence.
func splitTextToChunksByByte(text string, maxBytes int) []string {
	var chunks []string
	remaining := text

	for len(remaining) > 0 {
		if len(remaining) <= maxBytes {
			chunks = append(chunks, remaining)
			break
		}

		cutPos := maxBytes
		for i := cutPos; i > 0; i-- {
			if remaining[i-1] == '.' || remaining[i-1] == '!' || remaining[i-1] == '?' || remaining[i-1] == '\n' {
				cutPos = i
				break
			}
		}

		for cutPos < len(remaining) && (remaining[cutPos]&0xC0) == 0x80 {
			cutPos++
		}

		chunks = append(chunks, remaining[:cutPos])
		remaining = remaining[cutPos:]
	}

	return chunks
}
