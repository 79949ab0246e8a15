package store

import "testing"

func TestToggleLane(t *testing.T) {
	s := NewViewState()

	s.ToggleLane(2)
	if s.OpenLane != 2 {
		t.Fatalf("OpenLane = %d, want 2", s.OpenLane)
	}

	// Clicking the open lane closes it.
	s.ToggleLane(2)
	if s.OpenLane != 0 {
		t.Fatalf("OpenLane = %d, want 0 after second click", s.OpenLane)
	}

	// Clicking a different lane swaps; the previous lane collapses.
	s.ToggleLane(1)
	s.ToggleLane(3)
	if s.OpenLane != 3 {
		t.Fatalf("OpenLane = %d, want 3", s.OpenLane)
	}

	// Out-of-range lanes are ignored.
	s.ToggleLane(4)
	s.ToggleLane(0)
	if s.OpenLane != 3 {
		t.Fatalf("OpenLane = %d, want 3 after invalid toggles", s.OpenLane)
	}
}

func TestNavigate(t *testing.T) {
	s := NewViewState()
	if s.Nav != NavHub {
		t.Fatalf("initial Nav = %q, want hub", s.Nav)
	}

	if !s.Navigate(NavSteps) {
		t.Fatal("Navigate(steps) rejected")
	}
	if s.Nav != NavSteps {
		t.Fatalf("Nav = %q, want steps", s.Nav)
	}

	// Back always lands on the hub, never the previous spoke.
	s.Navigate(NavEscalate)
	s.Back()
	if s.Nav != NavHub {
		t.Fatalf("Nav = %q after Back, want hub", s.Nav)
	}

	if s.Navigate("settings") {
		t.Fatal("unknown target must be rejected")
	}
	if s.Nav != NavHub {
		t.Fatalf("Nav = %q, rejected target must not move the machine", s.Nav)
	}
}

func TestErrorNodeIsSystemEntered(t *testing.T) {
	s := NewViewState()

	// Clients cannot navigate into the error node.
	if s.Navigate(NavError) {
		t.Fatal("Navigate(error) must be rejected")
	}

	s.Fail()
	if s.Nav != NavError {
		t.Fatalf("Nav = %q after Fail, want error", s.Nav)
	}

	s.Back()
	if s.Nav != NavHub {
		t.Fatalf("Nav = %q, Back must leave the error node for the hub", s.Nav)
	}
}

func TestTogglesAreIndependent(t *testing.T) {
	s := NewViewState()

	s.ToggleDisclosure(DisclosureKey(2, "statutes"))
	s.ToggleDisclosure(DisclosureKey(2, "lease"))
	s.ToggleStep(2)
	s.SetChecklistItem(2, 0, true)

	if !s.Disclosures["2-statutes"] || !s.Disclosures["2-lease"] {
		t.Fatal("both disclosures should be open")
	}

	s.ToggleDisclosure(DisclosureKey(2, "statutes"))
	if s.Disclosures["2-statutes"] {
		t.Fatal("statutes disclosure should have closed")
	}
	if !s.Disclosures["2-lease"] {
		t.Fatal("closing one disclosure must not affect another")
	}
	if !s.ExpandedSteps[2] {
		t.Fatal("step expansion must be untouched by disclosure toggles")
	}
	if !s.Checklist["2-0"] {
		t.Fatal("checklist tick must be untouched by disclosure toggles")
	}
}
