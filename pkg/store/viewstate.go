// Package store holds the ephemeral per-page state of a report view. Nothing
// here touches a database: state lives for the lifetime of one page view,
// keyed by (session, case), and evaporates on TTL. It is never synced back
// to any backend.
package store

import "fmt"

// NavKind is the hub-and-spoke navigation node. The report page opens on the
// hub; a back action always returns there, never to the previous spoke, so
// navigation history stays unambiguous.
type NavKind string

const (
	NavHub      NavKind = "hub"
	NavStatus   NavKind = "status"
	NavSteps    NavKind = "steps"
	NavEscalate NavKind = "escalate"
	NavError    NavKind = "error"
)

// TransitionMs is the fade/slide duration the client honors between
// navigation nodes before scrolling to top.
const TransitionMs = 200

// ViewState is the disclosure state of one report page view. The legacy
// report generation uses the accordion lanes (OpenLane); the current one
// navigates hub-and-spoke (Nav). Sub-disclosures and checklist ticks are
// independent boolean toggles; flipping one never affects another.
type ViewState struct {
	Nav      NavKind `json:"nav"`
	OpenLane int     `json:"open_lane"` // 0 = all collapsed, 1..3 = Position/Action/Escalation

	ExpandedSteps map[int]bool    `json:"expanded_steps"`
	Disclosures   map[string]bool `json:"disclosures"` // "stepNumber-sectionName"
	Checklist     map[string]bool `json:"checklist"`   // "stepNumber-itemIndex"
}

func NewViewState() *ViewState {
	return &ViewState{
		Nav:           NavHub,
		ExpandedSteps: make(map[int]bool),
		Disclosures:   make(map[string]bool),
		Checklist:     make(map[string]bool),
	}
}

// Navigate moves to a spoke. Unknown targets are ignored so a stale client
// can never wedge the state machine.
func (s *ViewState) Navigate(target NavKind) bool {
	switch target {
	case NavHub, NavStatus, NavSteps, NavEscalate:
		s.Nav = target
		return true
	}
	return false
}

// Back always returns to the hub.
func (s *ViewState) Back() {
	s.Nav = NavHub
}

// Fail moves to the error node. Only a failed report fetch enters it;
// Navigate never accepts it, so a client cannot put itself there.
func (s *ViewState) Fail() {
	s.Nav = NavError
}

// ToggleLane applies the accordion contract: clicking the open lane closes
// it, clicking another closes the previous one and opens the new one. At
// most one lane is ever expanded.
func (s *ViewState) ToggleLane(lane int) {
	if lane < 1 || lane > 3 {
		return
	}
	if s.OpenLane == lane {
		s.OpenLane = 0
		return
	}
	s.OpenLane = lane
}

// ToggleDisclosure flips one composite-keyed sub-section (statute list,
// lease clauses, "show all leverage points", per-step detail).
func (s *ViewState) ToggleDisclosure(key string) bool {
	s.Disclosures[key] = !s.Disclosures[key]
	return s.Disclosures[key]
}

// ToggleStep flips a step's detail expansion.
func (s *ViewState) ToggleStep(stepNumber int) bool {
	s.ExpandedSteps[stepNumber] = !s.ExpandedSteps[stepNumber]
	return s.ExpandedSteps[stepNumber]
}

// SetChecklistItem records a cosmetic progress tick. Ticks have no backend
// effect and do not survive a reload beyond the cache TTL.
func (s *ViewState) SetChecklistItem(stepNumber, item int, done bool) {
	s.Checklist[ChecklistKey(stepNumber, item)] = done
}

// ChecklistKey builds the composite key for a checklist tick.
func ChecklistKey(stepNumber, item int) string {
	return fmt.Sprintf("%d-%d", stepNumber, item)
}

// DisclosureKey builds the composite key for a per-step sub-section.
func DisclosureKey(stepNumber int, section string) string {
	return fmt.Sprintf("%d-%s", stepNumber, section)
}
