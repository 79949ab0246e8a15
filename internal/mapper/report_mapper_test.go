package mapper

import (
	"testing"

	"deposit-defender-be/internal/entity"
	"deposit-defender-be/pkg/report"
	"deposit-defender-be/pkg/store"
)

func intPtr(n int) *int      { return &n }
func f64(v float64) *float64 { return &v }

func TestBadge(t *testing.T) {
	tests := []struct {
		name string
		date report.KeyDate
		want string
	}{
		{"no days remaining", report.KeyDate{IsPast: true}, ""},
		{"past", report.KeyDate{IsPast: true, DaysRemaining: intPtr(-12)}, "12 days ago"},
		{"future", report.KeyDate{IsPast: false, DaysRemaining: intPtr(7)}, "7 days left"},
		{"today", report.KeyDate{IsPast: false, DaysRemaining: intPtr(0)}, "Today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Badge(tt.date); got != tt.want {
				t.Errorf("Badge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToViewEmptySections(t *testing.T) {
	r := &entity.Report{
		LeveragePoints: []entity.LeveragePoint{},
		ProceduralSteps: []entity.ProceduralStep{
			{StepNumber: 1, Title: "Send a demand letter", Category: entity.CategoryCommunication},
		},
		Strategy: &entity.Strategy{Urgency: entity.UrgencyHigh},
	}

	m := NewReportMapper()
	view := m.ToView("case-1", r, store.NewViewState())

	if view.Sections.Position {
		t.Error("position section should be hidden when no leverage points exist")
	}
	if !view.Sections.Action {
		t.Error("action section should be shown when steps exist")
	}
	if view.Sections.Escalation || view.Escalation != nil {
		t.Error("escalation section should be omitted when the path is empty")
	}
	if view.Position == nil || view.Position.NoDataMessage == "" {
		t.Error("position view should carry the no-data fallback message")
	}
	if view.Action == nil || len(view.Action.Steps) != 1 {
		t.Fatalf("expected one step view, got %+v", view.Action)
	}
	if view.Action.Steps[0].Title != "Send a demand letter" {
		t.Errorf("unexpected step title %q", view.Action.Steps[0].Title)
	}
}

func TestToViewJoinsSessionState(t *testing.T) {
	r := &entity.Report{
		CaseStrength: &entity.CaseStrength{
			Grade:          "B+",
			WinProbability: f64(72),
		},
		LeveragePoints: []entity.LeveragePoint{
			{PointId: "missing_itemization", Title: "No itemized deductions", Severity: "high"},
			{IssueId: "late_refund", Title: "Refund past 30 days", Severity: "medium"},
		},
		ProceduralSteps: []entity.ProceduralStep{
			{
				StepNumber:        2,
				Title:             "Gather your records",
				Category:          entity.CategoryDocumentation,
				Description:       "Pull together everything the landlord saw",
				ApplicabilityNote: "Relevant to: missing itemization",
				Checklist:         []string{"Find the lease", "Find move-out photos"},
			},
		},
		StatutoryReferences: []entity.StatutoryRef{
			{Citation: "Tex. Prop. Code § 92.104(c)", Title: "Itemized list requirement"},
		},
		Strategy: &entity.Strategy{
			Urgency:           entity.UrgencyMedium,
			RecommendedAction: "Send the demand letter now",
			EscalationPath: entity.EscalationPath{
				{Phase: "demand", Description: "Send a written demand"},
				{Phase: "small_claims", Description: "File in justice court"},
			},
		},
	}

	state := store.NewViewState()
	state.ToggleStep(2)
	state.ToggleDisclosure(store.DisclosureKey(2, SectionStatutes))
	state.SetChecklistItem(2, 1, true)

	view := NewReportMapper().ToView("case-2", r, state)

	if view.Summary.Grade != "B+" {
		t.Errorf("summary grade = %q", view.Summary.Grade)
	}
	if view.Summary.TopMetric != "72% win probability" {
		t.Errorf("summary top metric = %q", view.Summary.TopMetric)
	}

	pts := view.Position.LeveragePoints
	if len(pts) != 2 {
		t.Fatalf("expected 2 leverage points, got %d", len(pts))
	}
	if !pts[0].Expanded || pts[1].Expanded {
		t.Error("only the top-ranked point should render expanded by default")
	}
	if pts[0].Key != "missing_itemization" || pts[1].Key != "late_refund" {
		t.Errorf("point keys = %q, %q", pts[0].Key, pts[1].Key)
	}

	step := view.Action.Steps[0]
	if !step.Expanded {
		t.Error("step 2 should reflect the session's expanded state")
	}
	if step.LinkedPointKey != "missing_itemization" {
		t.Errorf("linked point key = %q", step.LinkedPointKey)
	}
	if !step.StatutesOpen {
		t.Error("statutes disclosure for step 2 should be open")
	}
	if step.LeaseClausesOpen {
		t.Error("lease disclosure for step 2 should stay closed")
	}
	if len(step.Checklist) != 2 || step.Checklist[0].Done || !step.Checklist[1].Done {
		t.Errorf("checklist state = %+v", step.Checklist)
	}
	if len(step.Statutes) != 1 || step.Statutes[0].Citation != "Tex. Prop. Code § 92.104(c)" {
		t.Errorf("statutes = %+v", step.Statutes)
	}

	if view.Escalation == nil || len(view.Escalation.Phases) != 2 {
		t.Fatalf("escalation view = %+v", view.Escalation)
	}
	if view.Escalation.Phases[0].Phase != "demand" || view.Escalation.Phases[1].Phase != "small_claims" {
		t.Error("escalation phase order must be preserved")
	}
}
