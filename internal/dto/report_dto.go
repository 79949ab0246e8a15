package dto

import "deposit-defender-be/pkg/store"

// ReportViewResponse is the fully derived report page: backend report joined
// with key dates, cross references, and this session's disclosure state.
type ReportViewResponse struct {
	CaseId       string        `json:"case_id"`
	Nav          store.NavKind `json:"nav"`
	OpenLane     int           `json:"open_lane"`
	TransitionMs int           `json:"transition_ms"`

	Sections SectionVisibility `json:"sections"`
	Summary  SummaryStrip      `json:"summary"`

	Position   *PositionView   `json:"position,omitempty"`
	Action     *ActionView     `json:"action,omitempty"`
	Escalation *EscalationView `json:"escalation,omitempty"`

	KeyDates    []KeyDateView `json:"key_dates"`
	Recovery    *RecoveryView `json:"recovery,omitempty"`
	Disclaimers []string      `json:"disclaimers,omitempty"`
}

// SectionVisibility gates the three lanes on their backing data; an empty
// section is omitted rather than rendered hollow.
type SectionVisibility struct {
	Position   bool `json:"position"`
	Action     bool `json:"action"`
	Escalation bool `json:"escalation"`
}

// SummaryStrip is the compact line a collapsed lane still shows, so
// collapsing never hides the single most important fact.
type SummaryStrip struct {
	Grade        string       `json:"grade,omitempty"`
	TopMetric    string       `json:"top_metric,omitempty"`
	NextDeadline *KeyDateView `json:"next_deadline,omitempty"`
}

type KeyDateView struct {
	Label         string `json:"label"`
	Date          string `json:"date"`
	Badge         string `json:"badge,omitempty"` // "N days ago" | "N days left" | "Today"
	IsPast        bool   `json:"is_past"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

type PositionView struct {
	Grade             string              `json:"grade,omitempty"`
	Score             *float64            `json:"score,omitempty"`
	WinProbability    *float64            `json:"win_probability,omitempty"`
	StrategicPosition string              `json:"strategic_position,omitempty"`
	LeveragePoints    []LeveragePointView `json:"leverage_points"`
	ShowAll           bool                `json:"show_all"`
	NoDataMessage     string              `json:"no_data_message,omitempty"`
}

type LeveragePointView struct {
	Key             string   `json:"key"`
	Title           string   `json:"title"`
	Severity        string   `json:"severity,omitempty"`
	Observation     string   `json:"observation,omitempty"`
	WhyThisMatters  string   `json:"why_this_matters,omitempty"`
	SupportingFacts []string `json:"supporting_facts,omitempty"`
	Expanded        bool     `json:"expanded"` // rank 0 renders un-collapsed
}

type ActionView struct {
	Steps []StepView `json:"steps"`
}

// StepView is a procedural step joined to its cross references. The linked
// leverage point, statutes, and lease clauses are resolved server-side; the
// client only renders.
type StepView struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Expanded    bool   `json:"expanded"`

	Checklist []ChecklistItemView `json:"checklist,omitempty"`
	Resources []ResourceView      `json:"resources,omitempty"`

	LinkedPointKey   string            `json:"linked_point_key,omitempty"`
	Statutes         []StatuteView     `json:"statutes,omitempty"`
	StatutesOpen     bool              `json:"statutes_open"`
	LeaseClauses     []LeaseClauseView `json:"lease_clauses,omitempty"`
	LeaseClausesOpen bool              `json:"lease_clauses_open"`
	// LeaseNoneFound distinguishes "no clauses in this lease" from
	// "no clauses applicable to this step".
	LeaseNoneFound bool `json:"lease_none_found"`
}

type ChecklistItemView struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type ResourceView struct {
	Label string `json:"label"`
	Url   string `json:"url,omitempty"`
}

type StatuteView struct {
	Citation string `json:"citation"`
	Title    string `json:"title,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

type LeaseClauseView struct {
	Section string `json:"section,omitempty"`
	Text    string `json:"text,omitempty"`
}

type EscalationView struct {
	Urgency           string      `json:"urgency,omitempty"`
	RecommendedAction string      `json:"recommended_action,omitempty"`
	Phases            []PhaseView `json:"phases"`
}

type PhaseView struct {
	Phase       string `json:"phase"`
	Description string `json:"description"`
}

type RecoveryView struct {
	WorstCase        *float64 `json:"worst_case,omitempty"`
	LikelyCase       *float64 `json:"likely_case,omitempty"`
	BestCase         *float64 `json:"best_case,omitempty"`
	AmountStillOwed  *float64 `json:"amount_still_owed,omitempty"`
	StatutoryPenalty *float64 `json:"statutory_penalty,omitempty"`
}

// PaymentRequiredResponse rides on a 402: the client should redirect to the
// review/checkout flow, not render an error.
type PaymentRequiredResponse struct {
	RedirectTo string `json:"redirect_to"`
}

// --- view-state mutations ---

type NavigateRequest struct {
	Target string `json:"target" validate:"required,oneof=hub status steps escalate"`
}

type ToggleLaneRequest struct {
	Lane int `json:"lane" validate:"required,min=1,max=3"`
}

type ToggleDisclosureRequest struct {
	StepNumber int    `json:"step_number" validate:"min=0"`
	Section    string `json:"section" validate:"required"`
}

type ChecklistTickRequest struct {
	StepNumber int  `json:"step_number" validate:"min=0"`
	Item       int  `json:"item" validate:"min=0"`
	Done       bool `json:"done"`
}

type ViewStateResponse struct {
	Nav          store.NavKind `json:"nav"`
	OpenLane     int           `json:"open_lane"`
	TransitionMs int           `json:"transition_ms"`
}
