package report

import (
	"regexp"
	"strings"

	"deposit-defender-be/internal/entity"
)

// The backend never joins steps to leverage points; the only link is the
// free-text convention "Relevant to: <issue>" inside applicability_note.
// Keeping the parsing here means the convention is a single swappable detail.
var relevantToPattern = regexp.MustCompile(`(?i)relevant to:\s*(.+)`)

// categoryTopics maps a step category to the lease-clause topics worth
// showing when a step has no explicit leverage-point link.
var categoryTopics = map[entity.StepCategory][]string{
	entity.CategoryDocumentation:     {"security_deposit", "move_out"},
	entity.CategoryCommunication:     {"notice", "security_deposit"},
	entity.CategoryLegalConsultation: {"security_deposit", "deductions"},
	entity.CategoryCourtInformation:  {"security_deposit"},
	entity.CategoryReview:            {"deductions", "normal_wear"},
	entity.CategoryPlanning:          {"move_out", "notice"},
	entity.CategoryNextSteps:         {"security_deposit", "notice"},
}

// maxFallbackStatutes bounds the "loosely relevant is better than nothing"
// fallback in RelevantStatutes.
const maxFallbackStatutes = 2

// normalizeKey lower-cases and collapses whitespace to underscores so that
// "Relevant to: Missing Itemization" matches point_id "missing_itemization".
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "_")
}

// LinkedLeveragePoint resolves a step's applicability note to its leverage
// point. Returns nil when the note is absent, unparseable, or matches no
// point. Matching is exact on the normalized key; there is no fuzzy pass.
func LinkedLeveragePoint(r *entity.Report, step *entity.ProceduralStep) *entity.LeveragePoint {
	if r == nil || step == nil || step.ApplicabilityNote == "" {
		return nil
	}
	m := relevantToPattern.FindStringSubmatch(step.ApplicabilityNote)
	if m == nil {
		return nil
	}
	want := normalizeKey(m[1])
	if want == "" {
		return nil
	}
	for i := range r.LeveragePoints {
		if normalizeKey(r.LeveragePoints[i].Key()) == want {
			return &r.LeveragePoints[i]
		}
	}
	return nil
}

// RelevantStatutes selects the statutory references worth showing next to a
// step. A linked leverage point narrows the canonical list by section number
// (substring match, since citation formatting differs between the point and the
// canonical list). Without a link, or when nothing matches, the first two
// references serve as generic context.
func RelevantStatutes(r *entity.Report, step *entity.ProceduralStep) []entity.StatutoryRef {
	if r == nil || len(r.StatutoryReferences) == 0 {
		return []entity.StatutoryRef{}
	}

	if lp := LinkedLeveragePoint(r, step); lp != nil && len(lp.StatuteCitations) > 0 {
		sections := make([]string, 0, len(lp.StatuteCitations))
		for _, c := range lp.StatuteCitations {
			if s := sectionNumber(c); s != "" {
				sections = append(sections, s)
			}
		}
		var matched []entity.StatutoryRef
		for _, ref := range r.StatutoryReferences {
			for _, s := range sections {
				if strings.Contains(ref.Citation, s) {
					matched = append(matched, ref)
					break
				}
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}

	n := len(r.StatutoryReferences)
	if n > maxFallbackStatutes {
		n = maxFallbackStatutes
	}
	return r.StatutoryReferences[:n]
}

// sectionNumber pulls the numeric section token out of a citation,
// e.g. "Tex. Prop. Code § 92.109(a)" → "92.109".
func sectionNumber(citation string) string {
	_, after, found := strings.Cut(citation, "§")
	if !found {
		return ""
	}
	after = strings.TrimSpace(after)
	end := 0
	for end < len(after) && (after[end] >= '0' && after[end] <= '9' || after[end] == '.') {
		end++
	}
	return strings.TrimRight(after[:end], ".")
}

// RelevantLeaseClauses selects lease clauses for a step. A linked leverage
// point's own citation list wins when non-empty; otherwise clauses are
// filtered by the category topic table. The second return value is true only
// when the report carries no clauses at all, so the UI can distinguish
// "no clauses in this lease" from "no clauses applicable to this step".
func RelevantLeaseClauses(r *entity.Report, step *entity.ProceduralStep) ([]entity.LeaseClause, bool) {
	if r == nil {
		return []entity.LeaseClause{}, true
	}

	if lp := LinkedLeveragePoint(r, step); lp != nil && len(lp.LeaseCitations.Clauses) > 0 {
		return lp.LeaseCitations.Clauses, false
	}

	if len(r.LeaseClauseCitations) == 0 {
		return []entity.LeaseClause{}, true
	}

	var topics []string
	if step != nil {
		topics = categoryTopics[step.Category]
	}
	matched := []entity.LeaseClause{}
	for _, clause := range r.LeaseClauseCitations {
		for _, t := range clause.TopicSet() {
			if containsTopic(topics, t) {
				matched = append(matched, clause)
				break
			}
		}
	}
	return matched, false
}

func containsTopic(topics []string, t string) bool {
	for _, topic := range topics {
		if strings.EqualFold(topic, t) {
			return true
		}
	}
	return false
}
