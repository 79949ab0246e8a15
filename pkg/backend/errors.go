// Package backend is the typed HTTP client for the external case, analysis
// and document services. It owns the failure taxonomy: HTTP-level failures
// are classified by status, transport failures are reported separately
// (the remediation differs: retry now vs. wait), and the payment gate is a
// navigational signal rather than an error condition.
package backend

import "fmt"

// Kind classifies a backend failure for the presentation layer.
type Kind int

const (
	// KindPaymentRequired is the 402 gate: not a failure, the caller must
	// redirect to the payment/review flow.
	KindPaymentRequired Kind = iota
	// KindNotFound covers expired documents; they are retained only for a
	// bounded window after purchase.
	KindNotFound
	// KindServer covers 5xx and generation failures; retryable in place.
	KindServer
	// KindNetwork covers transport-level failures (the request never got an
	// HTTP answer).
	KindNetwork
	// KindMalformed covers a 200 whose body does not match the contract.
	KindMalformed
	// KindRejected covers non-retryable request problems such as an invalid
	// email address.
	KindRejected
)

// Error codes the document service returns in error bodies. The
// code-to-message table is shared between the browser download and the
// "email me a copy" variant; only the transport differs.
const (
	CodeOCRTimeout          = "OCR_TIMEOUT"
	CodePDFGenerationFailed = "PDF_GENERATION_FAILED"
	CodeInvalidEmail        = "INVALID_EMAIL"
)

var codeMessages = map[string]string{
	CodeOCRTimeout:          "Reading your lease took too long. Please try again.",
	CodePDFGenerationFailed: "We couldn't generate your document. Please try again.",
	CodeInvalidEmail:        "That email address doesn't look right. Please check it and try again.",
}

var retryableCodes = map[string]bool{
	CodeOCRTimeout:          true,
	CodePDFGenerationFailed: true,
}

// MessageForCode maps a service error code to its user-facing message,
// falling back to the raw upstream message.
func MessageForCode(code, fallback string) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return "Something went wrong. Please try again."
}

// Error is a classified backend failure.
type Error struct {
	Kind      Kind
	Status    int    // HTTP status, 0 for transport failures
	Code      string // upstream error code when present
	Message   string // user-facing
	Retryable bool
	Cause     error // underlying transport error, if any
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend: %s (%s)", e.Message, e.Code)
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
	}
	return "backend: " + e.Message
}

func networkError(err error) *Error {
	return &Error{
		Kind:      KindNetwork,
		Message:   "Network error — check your connection and try again.",
		Retryable: true,
		Cause:     err,
	}
}

// AsError returns the classified form of err, or nil.
func AsError(err error) *Error {
	if berr, ok := err.(*Error); ok {
		return berr
	}
	return nil
}
