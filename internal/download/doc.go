// Package download fetches the audio track of a video URL with yt-dlp.
//
// Fetcher runs yt-dlp with best-audio selection and audio extraction into a
// caller-owned work directory, then reads the single-JSON info dump for the
// title, video ID, and final file path.
package download
