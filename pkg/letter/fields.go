// Package letter derives the pre-filled, user-editable field set for the
// demand letter and renders its preview body. The letter must always be
// renderable: an absent value falls back to a visible bracketed placeholder
// rather than blocking the preview. The mailing-address hard requirement for
// the final download is enforced at the HTTP boundary, not here.
package letter

import (
	"fmt"
	"strings"
	"time"

	"deposit-defender-be/internal/entity"
)

// DefaultDeadlineDays is the response window written into the letter until
// the user edits it.
const DefaultDeadlineDays = 14

const longDateLayout = "January 2, 2006"

type Fields struct {
	TenantName           string   `json:"tenant_name"`
	TenantMailingAddress string   `json:"tenant_mailing_address"`
	LandlordName         string   `json:"landlord_name"`
	LandlordAddress      string   `json:"landlord_address"`
	PropertyAddress      string   `json:"property_address"`
	MoveOutDate          string   `json:"move_out_date"`
	DemandAmount         *float64 `json:"demand_amount,omitempty"`
	DeadlineDays         int      `json:"deadline_days"`
}

// BuildFields pre-fills the letter from the case intake facts and the
// report's recovery estimate. The demand amount prefers the backend's
// amount-still-owed figure and falls back to the likely-case estimate.
func BuildFields(caseCtx *entity.CaseContext, r *entity.Report) Fields {
	f := Fields{DeadlineDays: DefaultDeadlineDays}
	if caseCtx != nil {
		f.TenantName = caseCtx.TenantName
		f.TenantMailingAddress = caseCtx.TenantMailingAddress
		f.LandlordName = caseCtx.LandlordName
		f.LandlordAddress = caseCtx.LandlordAddress
		f.PropertyAddress = caseCtx.PropertyAddress
		f.MoveOutDate = caseCtx.MoveOutDate
	}
	if r != nil && r.RecoveryEstimate != nil {
		if r.RecoveryEstimate.AmountStillOwed != nil {
			f.DemandAmount = r.RecoveryEstimate.AmountStillOwed
		} else if r.RecoveryEstimate.LikelyCase != nil {
			f.DemandAmount = r.RecoveryEstimate.LikelyCase
		}
	}
	return f
}

// TodayText formats the letter date. Recomputed on every render so the
// preview tracks the clock, not the page load.
func TodayText(now time.Time) string {
	return now.Format(longDateLayout)
}

// ResponseDeadlineText is today plus the (user-editable) deadline window.
func (f Fields) ResponseDeadlineText(now time.Time) string {
	days := f.DeadlineDays
	if days <= 0 {
		days = DefaultDeadlineDays
	}
	return now.AddDate(0, 0, days).Format(longDateLayout)
}

const bodyTemplate = `{today}

{landlord_name}
{landlord_address}

RE: Demand for Return of Security Deposit — {property_address}

Dear {landlord_name}:

I vacated the property at {property_address} on {move_out_date}. Under
Texas Property Code § 92.103 you were required to refund my security
deposit, or provide a written itemized list of deductions, within 30 days.

I demand payment of {demand_amount} on or before {deadline_date}. If I do
not receive payment by that date, I intend to pursue all remedies available
under Texas Property Code § 92.109, including statutory penalties of $100
plus three times the amount wrongfully withheld, court costs, and
reasonable attorney's fees.

Please send payment to:

{tenant_name}
{tenant_mailing_address}

Sincerely,

{tenant_name}`

// RenderBody substitutes the field values into the letter template. Absent
// values stay as visible bracketed placeholders so the preview never blocks
// on missing data.
func RenderBody(f Fields, now time.Time) string {
	sub := func(value, placeholder string) string {
		if strings.TrimSpace(value) == "" {
			return "[" + placeholder + "]"
		}
		return value
	}
	amount := ""
	if f.DemandAmount != nil {
		amount = fmt.Sprintf("$%.2f", *f.DemandAmount)
	}
	replacer := strings.NewReplacer(
		"{today}", TodayText(now),
		"{deadline_date}", f.ResponseDeadlineText(now),
		"{landlord_name}", sub(f.LandlordName, "Landlord Name"),
		"{landlord_address}", sub(f.LandlordAddress, "Landlord Address"),
		"{property_address}", sub(f.PropertyAddress, "Property Address"),
		"{move_out_date}", sub(f.MoveOutDate, "Move-Out Date"),
		"{demand_amount}", sub(amount, "Demand Amount"),
		"{tenant_name}", sub(f.TenantName, "Tenant Name"),
		"{tenant_mailing_address}", sub(f.TenantMailingAddress, "Tenant Mailing Address"),
	)
	return replacer.Replace(bodyTemplate)
}
