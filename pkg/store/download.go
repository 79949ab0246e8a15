package store

// DownloadState is the observable state of one case's document download:
// the {loading, error, progress} triple the UI renders. A retry resets it.
// Two concurrent downloads for the same case are not coordinated; the last
// writer wins, matching the advisory nature of the display.
type DownloadState struct {
	Loading   bool   `json:"loading"`
	Progress  int    `json:"progress"` // 0..100; stays 0 without Content-Length
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable"`
}
