package captions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	yttranscript "github.com/mjlefevre/yt-words-go/transcript"

	"ytt/internal/language"
	"ytt/internal/logging"
	"ytt/internal/transcript"
)

const defaultTimeout = 30 * time.Second

// TrackSource lists and downloads caption tracks for a video ID.
// *yttranscript.Client satisfies it.
type TrackSource interface {
	ListAvailableTranscripts(videoID string) ([]yttranscript.Transcript, error)
	GetTranscriptWithLanguage(videoID, languageCode string) ([]yttranscript.TranscriptEntry, error)
}

// Config describes the captions client configuration. Proxy is only used
// when Source is nil and the default platform client is built.
type Config struct {
	Languages []string
	Timeout   time.Duration
	Proxy     string
	Source    TrackSource
	Logger    *slog.Logger
}

// Client looks up caption tracks on the video platform.
type Client struct {
	source    TrackSource
	languages []string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	source := cfg.Source
	if source == nil {
		var opts []yttranscript.ClientOption
		if proxy := strings.TrimSpace(cfg.Proxy); proxy != "" {
			parsed, err := url.Parse(proxy)
			if err != nil || parsed.Scheme == "" || parsed.Host == "" {
				return nil, fmt.Errorf("captions: invalid proxy url %q", proxy)
			}
			opts = append(opts, yttranscript.WithProxy(proxy))
		}
		source = yttranscript.NewClient(opts...)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		source:    source,
		languages: language.NormalizeList(cfg.Languages),
		timeout:   timeout,
		logger:    logging.NewComponentLogger(logger, "captions"),
	}, nil
}

// Fetch resolves the video ID in rawURL and downloads its captions. It never
// returns an error; failures are reported as an Unavailable result.
func (c *Client) Fetch(ctx context.Context, rawURL string) Result {
	videoID := ResolveVideoID(rawURL)
	if videoID == "" {
		return Unavailable("", ReasonNoVideoID, nil)
	}
	if c == nil || c.source == nil {
		return Unavailable(videoID, ReasonFetchFailed, errors.New("captions: client is nil"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tracks, err := await(ctx, func() ([]yttranscript.Transcript, error) {
		return c.source.ListAvailableTranscripts(videoID)
	})
	if err != nil {
		return unavailableFor(videoID, fmt.Errorf("captions: list tracks: %w", err))
	}
	if len(tracks) == 0 {
		return Unavailable(videoID, ReasonCaptionsDisabled, nil)
	}

	track := c.pickTrack(tracks)
	c.logger.Debug("caption track selected",
		logging.String("video_id", videoID),
		logging.String("language", track.LanguageCode),
		logging.Bool("generated", track.IsGenerated),
	)

	entries, err := await(ctx, func() ([]yttranscript.TranscriptEntry, error) {
		return c.source.GetTranscriptWithLanguage(videoID, track.LanguageCode)
	})
	if err != nil {
		return unavailableFor(videoID, fmt.Errorf("captions: download %s track: %w", track.LanguageCode, err))
	}
	segments := toSegments(entries)
	if len(segments) == 0 {
		return Unavailable(videoID, ReasonFetchFailed, errors.New("captions: track contained no text"))
	}
	return Available(videoID, track.LanguageCode, transcript.New(segments, track.LanguageCode))
}

// pickTrack prefers configured languages in order, manual tracks over
// auto-generated ones, and falls back to the first track.
func (c *Client) pickTrack(tracks []yttranscript.Transcript) yttranscript.Transcript {
	for _, lang := range c.languages {
		var generated *yttranscript.Transcript
		for i := range tracks {
			if !language.Matches(lang, tracks[i].LanguageCode) {
				continue
			}
			if !tracks[i].IsGenerated {
				return tracks[i]
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated
		}
	}
	return tracks[0]
}

func toSegments(entries []yttranscript.TranscriptEntry) []transcript.Segment {
	segments := make([]transcript.Segment, 0, len(entries))
	for _, entry := range entries {
		text := strings.Join(strings.Fields(entry.Text), " ")
		if text == "" {
			continue
		}
		dur := entry.Duration
		if dur < 0 {
			dur = 0
		}
		segments = append(segments, transcript.Segment{Start: entry.Start, End: entry.Start + dur, Text: text})
	}
	return segments
}

// unavailableFor maps a platform client error onto a fallback reason. A
// watch page without a captions block is reported as an unavailable video
// with no ID, which means the video simply has no tracks.
func unavailableFor(videoID string, err error) Result {
	var (
		disabled       yttranscript.ErrTranscriptsDisabled
		disabledRef    *yttranscript.ErrTranscriptsDisabled
		notFound       yttranscript.ErrNoTranscriptFound
		notFoundRef    *yttranscript.ErrNoTranscriptFound
		unavailable    yttranscript.ErrVideoUnavailable
		unavailableRef *yttranscript.ErrVideoUnavailable
	)
	switch {
	case errors.As(err, &disabled), errors.As(err, &disabledRef),
		errors.As(err, &notFound), errors.As(err, &notFoundRef):
		return Unavailable(videoID, ReasonCaptionsDisabled, nil)
	case errors.As(err, &unavailableRef) && unavailableRef != nil && unavailableRef.VideoID == "",
		errors.As(err, &unavailable) && unavailable.VideoID == "":
		return Unavailable(videoID, ReasonCaptionsDisabled, nil)
	}
	return Unavailable(videoID, ReasonFetchFailed, err)
}

// await runs call on its own goroutine so ctx can abandon a request the
// platform client cannot cancel.
func await[T any](ctx context.Context, call func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := call()
		done <- outcome{value: value, err: err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-done:
		return out.value, out.err
	}
}
