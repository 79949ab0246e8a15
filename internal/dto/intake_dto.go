package dto

// LeaseExtractResponse returns only the extracted values that survived
// validation; everything else is dropped so the form never pre-fills with
// extractor garbage. Preview and sections pass through untouched.
type LeaseExtractResponse struct {
	Defaults LeaseDefaults `json:"defaults"`
	Preview  string        `json:"preview,omitempty"`
	Sections []string      `json:"sections,omitempty"`
}

type LeaseDefaults struct {
	PropertyAddress string `json:"property_address,omitempty"`
	TenantName      string `json:"tenant_name,omitempty"`
	LandlordName    string `json:"landlord_name,omitempty"`
	LeaseStartDate  string `json:"lease_start_date,omitempty"`
	LeaseEndDate    string `json:"lease_end_date,omitempty"`
	DepositAmount   string `json:"deposit_amount,omitempty"`
}
