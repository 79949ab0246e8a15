package report

import (
	"testing"

	"deposit-defender-be/internal/entity"
)

func sampleReport() *entity.Report {
	return &entity.Report{
		LeveragePoints: []entity.LeveragePoint{
			{
				PointId:          "missing_itemization",
				Title:            "No itemized deduction list",
				Severity:         "high",
				StatuteCitations: []string{"Tex. Prop. Code § 92.104(c)"},
				LeaseCitations: entity.LeaseCitations{
					Clauses: []entity.LeaseClause{{Topic: "deductions", Section: "14", Text: "Deductions require itemization."}},
				},
			},
			{
				IssueId:          "late_refund",
				Title:            "Refund past the 30-day window",
				Severity:         "high",
				StatuteCitations: []string{"§ 92.103"},
			},
		},
		StatutoryReferences: []entity.StatutoryRef{
			{Citation: "Tex. Prop. Code § 92.103", Title: "Obligation to Refund"},
			{Citation: "Tex. Prop. Code § 92.104", Title: "Retention of Security Deposit"},
			{Citation: "Tex. Prop. Code § 92.109", Title: "Liability of Landlord"},
		},
		LeaseClauseCitations: []entity.LeaseClause{
			{Topic: "security_deposit", Section: "12", Text: "Deposit held in trust."},
			{Topic: "move_out", Section: "22", Text: "Move-out notice terms."},
			{Topic: "pets", Section: "30", Text: "Pet addendum."},
		},
	}
}

func TestLinkedLeveragePoint(t *testing.T) {
	r := sampleReport()

	tests := []struct {
		name    string
		note    string
		wantKey string
	}{
		{"matches point_id", "Relevant to: Missing Itemization", "missing_itemization"},
		{"matches issue_id", "relevant to: late_refund", "late_refund"},
		{"case and spacing insensitive", "RELEVANT TO:   Late   Refund", "late_refund"},
		{"no marker", "Keep all receipts.", ""},
		{"empty note", "", ""},
		{"unknown issue", "Relevant to: mold_damage", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := &entity.ProceduralStep{ApplicabilityNote: tt.note}
			got := LinkedLeveragePoint(r, step)
			if tt.wantKey == "" {
				if got != nil {
					t.Fatalf("want nil, got %q", got.Key())
				}
				return
			}
			if got == nil {
				t.Fatalf("want %q, got nil", tt.wantKey)
			}
			if got.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", got.Key(), tt.wantKey)
			}
		})
	}
}

func TestRelevantStatutes(t *testing.T) {
	r := sampleReport()

	t.Run("linked point narrows by section number", func(t *testing.T) {
		step := &entity.ProceduralStep{ApplicabilityNote: "Relevant to: missing_itemization"}
		got := RelevantStatutes(r, step)
		if len(got) != 1 || got[0].Citation != "Tex. Prop. Code § 92.104" {
			t.Fatalf("got %+v, want the § 92.104 reference", got)
		}
	})

	t.Run("no link falls back to first two", func(t *testing.T) {
		step := &entity.ProceduralStep{Description: "File in small claims court."}
		got := RelevantStatutes(r, step)
		if len(got) != 2 {
			t.Fatalf("got %d references, want 2", len(got))
		}
		if got[0].Citation != "Tex. Prop. Code § 92.103" {
			t.Errorf("fallback[0] = %q", got[0].Citation)
		}
	})

	t.Run("nil statutory references never panics", func(t *testing.T) {
		bare := &entity.Report{}
		got := RelevantStatutes(bare, &entity.ProceduralStep{})
		if len(got) != 0 {
			t.Fatalf("got %d references, want 0", len(got))
		}
	})

	t.Run("nil report never panics", func(t *testing.T) {
		if got := RelevantStatutes(nil, nil); len(got) != 0 {
			t.Fatalf("got %d references, want 0", len(got))
		}
	})
}

func TestSectionNumber(t *testing.T) {
	tests := []struct {
		citation string
		want     string
	}{
		{"Tex. Prop. Code § 92.109(a)", "92.109"},
		{"§ 92.103", "92.103"},
		{"Section 92.104", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sectionNumber(tt.citation); got != tt.want {
			t.Errorf("sectionNumber(%q) = %q, want %q", tt.citation, got, tt.want)
		}
	}
}

func TestRelevantLeaseClauses(t *testing.T) {
	r := sampleReport()

	t.Run("linked point citations returned verbatim", func(t *testing.T) {
		step := &entity.ProceduralStep{ApplicabilityNote: "Relevant to: missing_itemization"}
		got, noneFound := RelevantLeaseClauses(r, step)
		if noneFound {
			t.Fatal("noneFound should be false when the point carries citations")
		}
		if len(got) != 1 || got[0].Section != "14" {
			t.Fatalf("got %+v, want the point's own clause", got)
		}
	})

	t.Run("category table drives the fallback", func(t *testing.T) {
		step := &entity.ProceduralStep{Category: entity.CategoryDocumentation}
		got, noneFound := RelevantLeaseClauses(r, step)
		if noneFound {
			t.Fatal("report has clauses, noneFound must be false")
		}
		if len(got) != 2 {
			t.Fatalf("got %d clauses, want security_deposit + move_out", len(got))
		}
	})

	t.Run("empty match list is not the sentinel", func(t *testing.T) {
		step := &entity.ProceduralStep{Category: "unknown_category"}
		got, noneFound := RelevantLeaseClauses(r, step)
		if noneFound {
			t.Fatal("sentinel is reserved for a report with no clauses at all")
		}
		if len(got) != 0 {
			t.Fatalf("got %d clauses, want 0", len(got))
		}
	})

	t.Run("report without clauses yields the sentinel", func(t *testing.T) {
		bare := &entity.Report{}
		_, noneFound := RelevantLeaseClauses(bare, &entity.ProceduralStep{Category: entity.CategoryReview})
		if !noneFound {
			t.Fatal("want noneFound=true when the report carries no clauses")
		}
	})
}
