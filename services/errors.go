package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput: prompt or firebaseId absent. Rejected before any side effect.
	ErrMissingInput = errors.New("both prompt and firebaseId are required")
	// ErrUserNotFound: the firebaseId does not resolve to a known user.
	ErrUserNotFound = errors.New("user not found for that firebaseId")
	// ErrAudioNotFound: an audio id does not resolve to an AudioFile row.
	ErrAudioNotFound = errors.New("audio file not found")
	// ErrNoMatch: the keyword lookup found no overlapping summary.
	ErrNoMatch = errors.New("no cached podcast found")
	// ErrAlreadyLinked: the (user, audio) pair is already in the playlist.
	ErrAlreadyLinked = errors.New("audio file already in playlist")
)

// GenerationError wraps a failure from any stage of the generation pipeline:
// text generation, parsing the generated payload, speech synthesis, or the
// storage upload. All of them are fatal to the request and are not retried.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func generationErr(stage string, err error) error {
	return &GenerationError{Stage: stage, Err: err}
}
