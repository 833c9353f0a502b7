package services

import (
	"io"
	"net/http"
	"os"

	tcmp3 "github.com/tcolgate/mp3"
)

// MP3Duration decodes an MP3 stream and returns its duration in seconds.
func MP3Duration(r io.Reader) (float64, error) {
	var (
		dur     float64
		dec     = tcmp3.NewDecoder(r)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}

// MP3DurationFromFile measures the duration of a local MP3 file.
func MP3DurationFromFile(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return MP3Duration(f)
}

// MP3DurationFromURL fetches an MP3 by URL and measures its duration.
func MP3DurationFromURL(url string) (float64, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return MP3Duration(resp.Body)
}
