package entity

import (
	"bytes"
	"encoding/json"
)

// Report is the root analysis document produced by the scoring backend.
// Every field is optional: older cases and partially-paid cases come back
// with whole sections missing, and that is not an error.
type Report struct {
	CaseStrength         *CaseStrength     `json:"case_strength,omitempty"`
	LeveragePoints       []LeveragePoint   `json:"leverage_points,omitempty"`
	ProceduralSteps      []ProceduralStep  `json:"procedural_steps,omitempty"`
	StatutoryReferences  []StatutoryRef    `json:"statutory_references,omitempty"`
	LeaseClauseCitations []LeaseClause     `json:"lease_clause_citations,omitempty"`
	Timeline             *Timeline         `json:"timeline,omitempty"`
	Strategy             *Strategy         `json:"strategy,omitempty"`
	RecoveryEstimate     *RecoveryEstimate `json:"recovery_estimate,omitempty"`
	DamageDefense        json.RawMessage   `json:"damage_defense,omitempty"`
	Disclaimers          []string          `json:"disclaimers,omitempty"`
}

type StrategicPosition string

const (
	PositionStrong    StrategicPosition = "STRONG"
	PositionModerate  StrategicPosition = "MODERATE"
	PositionWeak      StrategicPosition = "WEAK"
	PositionUncertain StrategicPosition = "UNCERTAIN"
)

type CaseStrength struct {
	Grade              string            `json:"leverage_grade,omitempty"`
	Score              *float64          `json:"leverage_score,omitempty"`
	WinProbability     *float64          `json:"win_probability,omitempty"`
	StrategicPosition  StrategicPosition `json:"strategic_position,omitempty"`
	BadFaithIndicators []string          `json:"bad_faith_indicators,omitempty"`
	EvidenceMatrix     map[string]string `json:"evidence_matrix,omitempty"`
}

// LeveragePoint is one argument favoring the tenant, ranked by the backend
// (index 0 is the strongest). The identifier field name drifted across
// backend versions, hence the three aliases.
type LeveragePoint struct {
	Id               string         `json:"id,omitempty"`
	PointId          string         `json:"point_id,omitempty"`
	IssueId          string         `json:"issue_id,omitempty"`
	Title            string         `json:"title,omitempty"`
	Severity         string         `json:"severity,omitempty"` // high|medium|low
	Observation      string         `json:"observation,omitempty"`
	WhyThisMatters   string         `json:"why_this_matters,omitempty"`
	SupportingFacts  []string       `json:"supporting_facts,omitempty"`
	StatuteCitations []string       `json:"statute_citations,omitempty"`
	LeaseCitations   LeaseCitations `json:"lease_citations,omitempty"`
}

// Key returns the identifier under whichever alias the backend populated.
func (p *LeveragePoint) Key() string {
	if p.PointId != "" {
		return p.PointId
	}
	if p.IssueId != "" {
		return p.IssueId
	}
	return p.Id
}

// LeaseCitations is either a list of clauses or the sentinel string
// "none_found" (the extractor found no lease text for this point).
type LeaseCitations struct {
	Clauses   []LeaseClause
	NoneFound bool
}

func (lc *LeaseCitations) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil // malformed citation payloads are treated as absent
		}
		lc.NoneFound = s == "none_found"
		return nil
	}
	var clauses []LeaseClause
	if err := json.Unmarshal(trimmed, &clauses); err != nil {
		return nil
	}
	lc.Clauses = clauses
	return nil
}

func (lc LeaseCitations) MarshalJSON() ([]byte, error) {
	if lc.NoneFound {
		return json.Marshal("none_found")
	}
	return json.Marshal(lc.Clauses)
}

type StepCategory string

const (
	CategoryDocumentation     StepCategory = "documentation"
	CategoryCommunication     StepCategory = "communication"
	CategoryLegalConsultation StepCategory = "legal_consultation"
	CategoryCourtInformation  StepCategory = "court_information"
	CategoryReview            StepCategory = "review"
	CategoryPlanning          StepCategory = "planning"
	CategoryNextSteps         StepCategory = "next_steps"
)

// ProceduralStep is one action item in the recommended plan. The optional
// ApplicabilityNote carries a free-text link back to a leverage point
// ("Relevant to: <issue>") that the backend never resolves for us.
type ProceduralStep struct {
	StepNumber        int          `json:"step_number"`
	Title             string       `json:"title,omitempty"`
	Category          StepCategory `json:"category,omitempty"`
	Description       string       `json:"description,omitempty"`
	Checklist         []string     `json:"checklist,omitempty"`
	Resources         []Resource   `json:"resources,omitempty"`
	ApplicabilityNote string       `json:"applicability_note,omitempty"`
}

type Resource struct {
	Label string `json:"label,omitempty"`
	Url   string `json:"url,omitempty"`
}

// UnmarshalJSON accepts both the object form and the bare-string form the
// older backend emitted.
func (r *Resource) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		r.Label = s
		return nil
	}
	type alias Resource
	var a alias
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return nil
	}
	*r = Resource(a)
	return nil
}

type StatutoryRef struct {
	Citation string `json:"citation,omitempty"`
	Title    string `json:"title,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// LeaseClause is a clause excerpt; older payloads carry a single topic,
// newer ones a topics list.
type LeaseClause struct {
	Topic   string   `json:"topic,omitempty"`
	Topics  []string `json:"topics,omitempty"`
	Section string   `json:"section,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// TopicSet returns all topics attached to the clause.
func (c *LeaseClause) TopicSet() []string {
	if len(c.Topics) > 0 {
		return c.Topics
	}
	if c.Topic != "" {
		return []string{c.Topic}
	}
	return nil
}

// Timeline carries the temporal facts. Newer reports include the
// backend-computed deadline list; older ones only the raw day count.
type Timeline struct {
	ComputedDeadlines []ComputedDeadline `json:"computed_deadlines,omitempty"`
	KeyDates          *TimelineKeyDates  `json:"key_dates,omitempty"`
	MoveOutDate       string             `json:"move_out_date,omitempty"`
	DaysSinceMoveOut  *int               `json:"days_since_move_out,omitempty"`
	Past30Days        *bool              `json:"past_30_days,omitempty"`
}

type TimelineKeyDates struct {
	MoveOutDate string `json:"move_out_date,omitempty"`
}

type ComputedDeadline struct {
	Label         string `json:"label,omitempty"`
	Date          string `json:"date,omitempty"`
	HasPassed     bool   `json:"has_passed"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

type Urgency string

const (
	UrgencyHigh   Urgency = "HIGH"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyLow    Urgency = "LOW"
)

type Strategy struct {
	Urgency           Urgency        `json:"urgency,omitempty"`
	RecommendedAction string         `json:"recommended_action,omitempty"`
	EscalationPath    EscalationPath `json:"escalation_path,omitempty"`
}

// EscalationPhase is one phase of what happens if the landlord ignores the
// demand letter.
type EscalationPhase struct {
	Phase       string `json:"phase"`
	Description string `json:"description"`
}

// EscalationPath preserves the backend's phase ordering. The backend emits
// either an ordered JSON object (phase name → description) or a list of
// phase objects; encoding/json maps lose key order, so the object form is
// decoded token by token.
type EscalationPath []EscalationPhase

func (ep *EscalationPath) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '[' {
		var phases []EscalationPhase
		if err := json.Unmarshal(trimmed, &phases); err != nil {
			return nil
		}
		*ep = phases
		return nil
	}
	if trimmed[0] != '{' {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil
	}
	var phases []EscalationPhase
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := keyTok.(string)
		// Decode the value wholesale so a non-string body consumes exactly
		// one value and the decoder stays aligned on the next key.
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}
		var desc string
		if err := json.Unmarshal(raw, &desc); err != nil {
			// Non-string phase bodies are skipped, not fatal.
			continue
		}
		phases = append(phases, EscalationPhase{Phase: key, Description: desc})
	}
	*ep = phases
	return nil
}

func (ep EscalationPath) MarshalJSON() ([]byte, error) {
	return json.Marshal([]EscalationPhase(ep))
}

type RecoveryEstimate struct {
	WorstCase               *float64           `json:"worst_case,omitempty"`
	LikelyCase              *float64           `json:"likely_case,omitempty"`
	BestCase                *float64           `json:"best_case,omitempty"`
	AmountStillOwed         *float64           `json:"amount_still_owed,omitempty"`
	ProbabilityDistribution map[string]float64 `json:"probability_distribution,omitempty"`
	StatutoryPenalty        *float64           `json:"statutory_penalty,omitempty"`
}
