package mapper

import (
	"fmt"

	"deposit-defender-be/internal/dto"
	"deposit-defender-be/internal/entity"
	"deposit-defender-be/pkg/report"
	"deposit-defender-be/pkg/store"
)

// SectionStatutes and SectionLease are the disclosure section names the
// client composes into toggle keys.
const (
	SectionStatutes = "statutes"
	SectionLease    = "lease"
	SectionShowAll  = "show_all_points"
)

const positionFallbackMessage = "We couldn't identify specific leverage points in your case. The action plan below still applies."

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

// ToView derives the full report page from the backend report, the resolved
// key dates, and this session's disclosure state.
func (m *ReportMapper) ToView(caseId string, r *entity.Report, state *store.ViewState) *dto.ReportViewResponse {
	keyDates := report.ResolveKeyDates(timelineOf(r))

	view := &dto.ReportViewResponse{
		CaseId:       caseId,
		Nav:          state.Nav,
		OpenLane:     state.OpenLane,
		TransitionMs: store.TransitionMs,
		KeyDates:     m.keyDateViews(keyDates),
		Sections: dto.SectionVisibility{
			Position:   len(r.LeveragePoints) > 0,
			Action:     len(r.ProceduralSteps) > 0,
			Escalation: r.Strategy != nil && len(r.Strategy.EscalationPath) > 0,
		},
		Disclaimers: r.Disclaimers,
	}

	view.Summary = m.summaryStrip(r, view.KeyDates)
	view.Position = m.positionView(r, state)
	if view.Sections.Action {
		view.Action = m.actionView(r, state)
	}
	if view.Sections.Escalation {
		view.Escalation = m.escalationView(r.Strategy)
	}
	if r.RecoveryEstimate != nil {
		view.Recovery = &dto.RecoveryView{
			WorstCase:        r.RecoveryEstimate.WorstCase,
			LikelyCase:       r.RecoveryEstimate.LikelyCase,
			BestCase:         r.RecoveryEstimate.BestCase,
			AmountStillOwed:  r.RecoveryEstimate.AmountStillOwed,
			StatutoryPenalty: r.RecoveryEstimate.StatutoryPenalty,
		}
	}
	return view
}

func timelineOf(r *entity.Report) *entity.Timeline {
	if r == nil {
		return nil
	}
	return r.Timeline
}

func (m *ReportMapper) keyDateViews(dates []report.KeyDate) []dto.KeyDateView {
	views := make([]dto.KeyDateView, 0, len(dates))
	for _, d := range dates {
		views = append(views, dto.KeyDateView{
			Label:         d.Label,
			Date:          d.Date,
			Badge:         Badge(d),
			IsPast:        d.IsPast,
			DaysRemaining: d.DaysRemaining,
		})
	}
	return views
}

// Badge renders the urgency chip for a key date. Zero days remaining is
// "Today": neither past nor future for display purposes.
func Badge(d report.KeyDate) string {
	if d.DaysRemaining == nil {
		return ""
	}
	switch n := *d.DaysRemaining; {
	case n == 0:
		return "Today"
	case d.IsPast && n < 0:
		return fmt.Sprintf("%d days ago", -n)
	case !d.IsPast && n > 0:
		return fmt.Sprintf("%d days left", n)
	}
	return ""
}

// summaryStrip picks the facts a collapsed lane still shows: grade, the top
// metric, and the next upcoming deadline.
func (m *ReportMapper) summaryStrip(r *entity.Report, dates []dto.KeyDateView) dto.SummaryStrip {
	strip := dto.SummaryStrip{}
	if r.CaseStrength != nil {
		strip.Grade = r.CaseStrength.Grade
		if r.CaseStrength.WinProbability != nil {
			strip.TopMetric = fmt.Sprintf("%.0f%% win probability", *r.CaseStrength.WinProbability)
		} else if r.CaseStrength.StrategicPosition != "" {
			strip.TopMetric = string(r.CaseStrength.StrategicPosition)
		}
	}
	if strip.TopMetric == "" && len(r.LeveragePoints) > 0 {
		strip.TopMetric = r.LeveragePoints[0].Title
	}
	for i := range dates {
		if !dates[i].IsPast {
			strip.NextDeadline = &dates[i]
			break
		}
	}
	return strip
}

func (m *ReportMapper) positionView(r *entity.Report, state *store.ViewState) *dto.PositionView {
	view := &dto.PositionView{LeveragePoints: []dto.LeveragePointView{}}
	if r.CaseStrength != nil {
		view.Grade = r.CaseStrength.Grade
		view.Score = r.CaseStrength.Score
		view.WinProbability = r.CaseStrength.WinProbability
		view.StrategicPosition = string(r.CaseStrength.StrategicPosition)
	}
	if len(r.LeveragePoints) == 0 {
		view.NoDataMessage = positionFallbackMessage
		return view
	}

	view.ShowAll = state.Disclosures[store.DisclosureKey(0, SectionShowAll)]
	for i, p := range r.LeveragePoints {
		view.LeveragePoints = append(view.LeveragePoints, dto.LeveragePointView{
			Key:             p.Key(),
			Title:           p.Title,
			Severity:        p.Severity,
			Observation:     p.Observation,
			WhyThisMatters:  p.WhyThisMatters,
			SupportingFacts: p.SupportingFacts,
			// The backend ranks points; the top one always renders open.
			Expanded: i == 0 || view.ShowAll,
		})
	}
	return view
}

func (m *ReportMapper) actionView(r *entity.Report, state *store.ViewState) *dto.ActionView {
	view := &dto.ActionView{Steps: make([]dto.StepView, 0, len(r.ProceduralSteps))}
	for i := range r.ProceduralSteps {
		step := &r.ProceduralSteps[i]
		sv := dto.StepView{
			StepNumber:  step.StepNumber,
			Title:       step.Title,
			Category:    string(step.Category),
			Description: step.Description,
			Expanded:    state.ExpandedSteps[step.StepNumber],
		}

		for j, item := range step.Checklist {
			sv.Checklist = append(sv.Checklist, dto.ChecklistItemView{
				Text: item,
				Done: state.Checklist[store.ChecklistKey(step.StepNumber, j)],
			})
		}
		for _, res := range step.Resources {
			sv.Resources = append(sv.Resources, dto.ResourceView{Label: res.Label, Url: res.Url})
		}

		if lp := report.LinkedLeveragePoint(r, step); lp != nil {
			sv.LinkedPointKey = lp.Key()
		}
		for _, ref := range report.RelevantStatutes(r, step) {
			sv.Statutes = append(sv.Statutes, dto.StatuteView{
				Citation: ref.Citation, Title: ref.Title, Summary: ref.Summary,
			})
		}
		clauses, noneFound := report.RelevantLeaseClauses(r, step)
		sv.LeaseNoneFound = noneFound
		for _, clause := range clauses {
			sv.LeaseClauses = append(sv.LeaseClauses, dto.LeaseClauseView{
				Section: clause.Section, Text: clause.Text,
			})
		}

		sv.StatutesOpen = state.Disclosures[store.DisclosureKey(step.StepNumber, SectionStatutes)]
		sv.LeaseClausesOpen = state.Disclosures[store.DisclosureKey(step.StepNumber, SectionLease)]

		view.Steps = append(view.Steps, sv)
	}
	return view
}

func (m *ReportMapper) escalationView(s *entity.Strategy) *dto.EscalationView {
	view := &dto.EscalationView{
		Urgency:           string(s.Urgency),
		RecommendedAction: s.RecommendedAction,
		Phases:            make([]dto.PhaseView, 0, len(s.EscalationPath)),
	}
	for _, phase := range s.EscalationPath {
		view.Phases = append(view.Phases, dto.PhaseView{Phase: phase.Phase, Description: phase.Description})
	}
	return view
}
