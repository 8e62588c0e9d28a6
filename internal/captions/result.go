package captions

import "ytt/internal/transcript"

// Reason explains why captions were not used.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoVideoID        Reason = "no_video_id"
	ReasonCaptionsDisabled Reason = "captions_disabled"
	ReasonFetchFailed      Reason = "fetch_failed"
)

// Result is the outcome of a caption lookup. When Available is false,
// Reason says why and Err carries the underlying failure for fetch_failed.
type Result struct {
	Available  bool
	Transcript transcript.Transcript
	VideoID    string
	Language   string
	Reason     Reason
	Err        error
}

// Available builds a successful Result.
func Available(videoID, language string, t transcript.Transcript) Result {
	return Result{Available: true, Transcript: t, VideoID: videoID, Language: language}
}

// Unavailable builds a fallback Result.
func Unavailable(videoID string, reason Reason, err error) Result {
	return Result{VideoID: videoID, Reason: reason, Err: err}
}

// Detail renders the reason and error for logs.
func (r Result) Detail() string {
	if r.Available {
		return "captions available"
	}
	if r.Err != nil {
		return string(r.Reason) + ": " + r.Err.Error()
	}
	return string(r.Reason)
}
