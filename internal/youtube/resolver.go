// Package youtube resolves user song requests into streamable audio URLs.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/elysium-discord/elysium-bot/internal/player"
	yt "github.com/kkdai/youtube/v2"
)

// ErrNoResults means the search produced no playable video.
var ErrNoResults = errors.New("no results found")

var videoIDPattern = regexp.MustCompile(`"videoId":"([\w-]{11})"`)

// Resolver turns YouTube URLs, video ids, or free-text searches into tracks
// with a direct audio stream URL.
type Resolver struct {
	client     *yt.Client
	httpClient *http.Client
}

func NewResolver() *Resolver {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &Resolver{
		client:     &yt.Client{HTTPClient: httpClient},
		httpClient: httpClient,
	}
}

var _ player.Resolver = (*Resolver)(nil)

// Resolve looks up the request and returns the track with the best
// audio-only stream. Free text goes through a search first; the top result
// wins.
func (r *Resolver) Resolve(ctx context.Context, query string) (player.Track, error) {
	target := query
	if !looksLikeVideoRef(query) {
		id, err := r.search(ctx, query)
		if err != nil {
			return player.Track{}, err
		}
		target = id
	}

	video, err := r.client.GetVideoContext(ctx, target)
	if err != nil {
		return player.Track{}, fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	format, err := bestAudioFormat(video)
	if err != nil {
		return player.Track{}, err
	}

	streamURL, err := r.client.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return player.Track{}, fmt.Errorf("failed to resolve stream URL: %w", err)
	}

	return player.Track{StreamURL: streamURL, Title: video.Title}, nil
}

// search scrapes the results page for the first video id. YouTube inlines
// the result data as JSON, so the first "videoId" field is the top hit.
func (r *Resolver) search(ctx context.Context, query string) (string, error) {
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read search results: %w", err)
	}

	match := videoIDPattern.FindSubmatch(body)
	if match == nil {
		return "", ErrNoResults
	}
	return string(match[1]), nil
}

// looksLikeVideoRef reports whether the query is already a URL or bare
// video id rather than a search phrase.
func looksLikeVideoRef(query string) bool {
	if strings.Contains(query, "youtube.com/") || strings.Contains(query, "youtu.be/") {
		return true
	}
	if len(query) == 11 && !strings.ContainsAny(query, " \t") {
		return videoIDPattern.MatchString(fmt.Sprintf(`"videoId":"%s"`, query))
	}
	return false
}

func bestAudioFormat(video *yt.Video) (*yt.Format, error) {
	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		// Some videos only expose muxed streams.
		formats = video.Formats.WithAudioChannels()
	}
	if len(formats) == 0 {
		return nil, errors.New("no audio stream available")
	}
	formats.Sort()
	return &formats[0], nil
}
