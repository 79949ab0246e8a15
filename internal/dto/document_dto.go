package dto

import "deposit-defender-be/pkg/letter"

// DownloadStatusResponse mirrors the observable download triple.
type DownloadStatusResponse struct {
	Loading   bool   `json:"loading"`
	Progress  int    `json:"progress"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable"`
}

type EmailCopyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LetterRequest carries the user-edited field set for PDF rendering. The
// mailing address is the one hard requirement for the final document.
type LetterRequest struct {
	Fields letter.Fields `json:"fields"`
}

// LetterPreviewResponse returns the pre-filled fields plus the rendered
// preview body and its derived date strings.
type LetterPreviewResponse struct {
	Fields       letter.Fields `json:"fields"`
	Today        string        `json:"today"`
	DeadlineDate string        `json:"deadline_date"`
	Body         string        `json:"body"`
}
