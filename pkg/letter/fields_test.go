package letter

import (
	"strings"
	"testing"
	"time"

	"deposit-defender-be/internal/entity"
)

func f64(v float64) *float64 { return &v }

func TestBuildFields(t *testing.T) {
	caseCtx := &entity.CaseContext{
		TenantName:           "Maria Gonzalez",
		TenantMailingAddress: "500 Oak Ln, Austin TX 78704",
		LandlordName:         "Hill Country Rentals LLC",
		PropertyAddress:      "123 Main St Apt 4, Austin TX 78701",
		MoveOutDate:          "2024-03-01",
	}

	t.Run("prefers amount still owed", func(t *testing.T) {
		r := &entity.Report{RecoveryEstimate: &entity.RecoveryEstimate{
			AmountStillOwed: f64(1500),
			LikelyCase:      f64(1200),
		}}
		got := BuildFields(caseCtx, r)
		if got.DemandAmount == nil || *got.DemandAmount != 1500 {
			t.Fatalf("DemandAmount = %v, want 1500", got.DemandAmount)
		}
		if got.DeadlineDays != DefaultDeadlineDays {
			t.Errorf("DeadlineDays = %d, want %d", got.DeadlineDays, DefaultDeadlineDays)
		}
	})

	t.Run("falls back to likely case", func(t *testing.T) {
		r := &entity.Report{RecoveryEstimate: &entity.RecoveryEstimate{LikelyCase: f64(1200)}}
		got := BuildFields(caseCtx, r)
		if got.DemandAmount == nil || *got.DemandAmount != 1200 {
			t.Fatalf("DemandAmount = %v, want 1200", got.DemandAmount)
		}
	})

	t.Run("nil inputs produce an empty but usable field set", func(t *testing.T) {
		got := BuildFields(nil, nil)
		if got.DemandAmount != nil {
			t.Errorf("DemandAmount = %v, want nil", got.DemandAmount)
		}
		if got.DeadlineDays != DefaultDeadlineDays {
			t.Errorf("DeadlineDays = %d, want %d", got.DeadlineDays, DefaultDeadlineDays)
		}
	})
}

func TestResponseDeadlineText(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	f := Fields{DeadlineDays: 14}
	if got := f.ResponseDeadlineText(now); got != "March 15, 2024" {
		t.Errorf("ResponseDeadlineText = %q, want %q", got, "March 15, 2024")
	}

	f.DeadlineDays = 30
	if got := f.ResponseDeadlineText(now); got != "March 31, 2024" {
		t.Errorf("edited window: got %q, want %q", got, "March 31, 2024")
	}

	f.DeadlineDays = 0 // cleared input falls back to the default
	if got := f.ResponseDeadlineText(now); got != "March 15, 2024" {
		t.Errorf("zero window: got %q, want %q", got, "March 15, 2024")
	}
}

func TestRenderBody(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("substitutes present fields", func(t *testing.T) {
		f := Fields{
			TenantName:           "Maria Gonzalez",
			TenantMailingAddress: "500 Oak Ln, Austin TX 78704",
			LandlordName:         "Hill Country Rentals LLC",
			LandlordAddress:      "800 Congress Ave, Austin TX",
			PropertyAddress:      "123 Main St Apt 4",
			MoveOutDate:          "2024-03-01",
			DemandAmount:         f64(1500),
			DeadlineDays:         14,
		}
		body := RenderBody(f, now)
		for _, want := range []string{
			"March 1, 2024",
			"March 15, 2024",
			"Maria Gonzalez",
			"$1500.00",
			"123 Main St Apt 4",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
		if strings.Contains(body, "[") {
			t.Error("fully populated letter should contain no placeholders")
		}
	})

	t.Run("absent fields stay as visible placeholders", func(t *testing.T) {
		body := RenderBody(Fields{}, now)
		for _, want := range []string{
			"[Landlord Name]",
			"[Property Address]",
			"[Demand Amount]",
			"[Tenant Mailing Address]",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing placeholder %q", want)
			}
		}
	})
}
