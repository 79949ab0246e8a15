package entity

import (
	"encoding/json"
	"testing"
)

func TestEscalationPathDecodesObjectForm(t *testing.T) {
	var ep EscalationPath
	body := `{"demand":"Send a written demand","small_claims":"File in justice court","attorney":"Hire counsel"}`
	if err := json.Unmarshal([]byte(body), &ep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(ep) != 3 {
		t.Fatalf("got %d phases, want 3", len(ep))
	}
	if ep[0].Phase != "demand" || ep[1].Phase != "small_claims" || ep[2].Phase != "attorney" {
		t.Errorf("phase order = %q, %q, %q", ep[0].Phase, ep[1].Phase, ep[2].Phase)
	}
}

func TestEscalationPathSkipsNonStringBodyWithoutDesync(t *testing.T) {
	var ep EscalationPath
	body := `{"phase1":{"nested":"object"},"phase2":"Second step","phase3":"Third step"}`
	if err := json.Unmarshal([]byte(body), &ep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The malformed first value is dropped; the phases after it survive.
	if len(ep) != 2 {
		t.Fatalf("got %d phases, want 2: %+v", len(ep), ep)
	}
	if ep[0].Phase != "phase2" || ep[0].Description != "Second step" {
		t.Errorf("first surviving phase = %+v", ep[0])
	}
	if ep[1].Phase != "phase3" || ep[1].Description != "Third step" {
		t.Errorf("second surviving phase = %+v", ep[1])
	}
}

func TestEscalationPathDecodesListForm(t *testing.T) {
	var ep EscalationPath
	body := `[{"phase":"demand","description":"Send a written demand"},{"phase":"small_claims","description":"File"}]`
	if err := json.Unmarshal([]byte(body), &ep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(ep) != 2 || ep[0].Phase != "demand" || ep[1].Phase != "small_claims" {
		t.Errorf("phases = %+v", ep)
	}
}

func TestEscalationPathToleratesGarbage(t *testing.T) {
	for _, body := range []string{`null`, `"just a string"`, `42`, `[{"phase":3}]`} {
		var ep EscalationPath
		if err := json.Unmarshal([]byte(body), &ep); err != nil {
			t.Errorf("body %s must decode without error, got %v", body, err)
		}
	}
}
