// Package audio fetches song preview clips and inspects them so the
// server can report clip length before a round starts.
package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

const maxPreviewBytes = 8 << 20 // previews are ~30s clips, cap reads defensively

// ClipInfo describes a decoded preview clip.
type ClipInfo struct {
	Duration   time.Duration `json:"duration"`
	SampleRate int           `json:"sample_rate"`
	Bytes      int64         `json:"bytes"`
}

// Fetcher downloads preview clips over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with a bounded request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the preview at url. The caller must close the
// returned body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid preview url: %w", err)
	}
	req.Header.Set("User-Agent", "tunetrivia/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("preview fetch failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("preview fetch status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return resp.Body, contentType, nil
}

// Inspect decodes the preview at url and reports its duration and
// sample rate.
func (f *Fetcher) Inspect(ctx context.Context, url string) (ClipInfo, error) {
	body, _, err := f.Fetch(ctx, url)
	if err != nil {
		return ClipInfo{}, err
	}
	defer body.Close()

	return DecodeClip(io.LimitReader(body, maxPreviewBytes))
}

// DecodeClip reads an MP3 stream and computes its playable length.
// go-mp3 emits 16-bit stereo samples, so each frame is four bytes.
func DecodeClip(r io.Reader) (ClipInfo, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return ClipInfo{}, fmt.Errorf("preview decode failed: %w", err)
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		return ClipInfo{}, fmt.Errorf("preview has invalid sample rate %d", sampleRate)
	}

	length := decoder.Length()
	if length <= 0 {
		// Length is unknown for unseekable streams, count instead.
		n, err := io.Copy(io.Discard, decoder)
		if err != nil {
			return ClipInfo{}, fmt.Errorf("preview read failed: %w", err)
		}
		length = n
	}

	seconds := float64(length) / float64(4*sampleRate)
	return ClipInfo{
		Duration:   time.Duration(seconds * float64(time.Second)),
		SampleRate: sampleRate,
		Bytes:      length,
	}, nil
}
