package dto

import "time"

// Audit event names published on the in-process bus.
const (
	EventReportDerived     = "REPORT_DERIVED"
	EventDownloadCompleted = "DOWNLOAD_COMPLETED"
	EventDownloadFailed    = "DOWNLOAD_FAILED"
	EventLetterGenerated   = "LETTER_GENERATED"
	EventReportEmailed     = "REPORT_EMAILED"
)

// AuditEventMessage is the payload exchanged over the watermill channel and
// relayed to NATS when a connection is available.
type AuditEventMessage struct {
	Event      string                 `json:"event"`
	CaseId     string                 `json:"case_id"`
	Details    map[string]interface{} `json:"details,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
