package entity

// CaseContext is the intake-side snapshot the case API returns alongside a
// report. Used only to pre-fill the demand letter; all fields optional.
type CaseContext struct {
	TenantName           string   `json:"tenant_name,omitempty"`
	TenantEmail          string   `json:"tenant_email,omitempty"`
	TenantMailingAddress string   `json:"tenant_mailing_address,omitempty"`
	LandlordName         string   `json:"landlord_name,omitempty"`
	LandlordAddress      string   `json:"landlord_address,omitempty"`
	PropertyAddress      string   `json:"property_address,omitempty"`
	DepositAmount        *float64 `json:"deposit_amount,omitempty"`
	AmountReturned       *float64 `json:"amount_returned,omitempty"`
	MoveOutDate          string   `json:"move_out_date,omitempty"`
}

// ExtractedLeaseData is the raw, low-confidence output of the lease OCR
// service. Nothing here may reach a form field without validation.
type ExtractedLeaseData struct {
	PropertyAddress string `json:"property_address,omitempty"`
	TenantName      string `json:"tenant_name,omitempty"`
	LandlordName    string `json:"landlord_name,omitempty"`
	LeaseStartDate  string `json:"lease_start_date,omitempty"`
	LeaseEndDate    string `json:"lease_end_date,omitempty"`
	DepositAmount   string `json:"deposit_amount,omitempty"`
}
