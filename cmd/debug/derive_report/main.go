package main

import (
	"encoding/json"
	"log"
	"os"

	"deposit-defender-be/internal/entity"
	"deposit-defender-be/pkg/report"

	"github.com/fatih/color"
)

// Feed this a report JSON file (either the raw report or the full API
// envelope) and it prints every derived structure: resolved key dates and the
// per-step cross references. Useful when the backend changes its output shape
// and a report page suddenly renders empty sections.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: derive_report <report.json>")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("read %s: %v", os.Args[1], err)
	}

	r := decodeReport(raw)
	if r == nil {
		log.Fatal("input contains no report object")
	}

	color.Cyan("🔍 Report derivation for %s\n", os.Args[1])

	color.Yellow("\n[1] Key dates")
	dates := report.ResolveKeyDates(r.Timeline)
	if len(dates) == 0 {
		color.Red("  none resolved (timeline missing or unparseable)")
	}
	for _, d := range dates {
		days := "-"
		if d.DaysRemaining != nil {
			days = color.GreenString("%d days remaining", *d.DaysRemaining)
			if d.IsPast {
				days = color.RedString("%d days (past)", *d.DaysRemaining)
			}
		}
		color.White("  %-28s %s  %s", d.Label, d.Date, days)
	}

	color.Yellow("\n[2] Step cross references")
	if len(r.ProceduralSteps) == 0 {
		color.Red("  no procedural steps in report")
	}
	for i := range r.ProceduralSteps {
		step := &r.ProceduralSteps[i]
		color.White("  Step %d: %s (%s)", step.StepNumber, step.Title, step.Category)

		if lp := report.LinkedLeveragePoint(r, step); lp != nil {
			color.Green("    linked point: %s", lp.Key())
		} else {
			color.Red("    linked point: none")
		}

		statutes := report.RelevantStatutes(r, step)
		for _, ref := range statutes {
			color.Green("    statute: %s", ref.Citation)
		}
		if len(statutes) == 0 {
			color.Red("    statutes: none")
		}

		clauses, noneFound := report.RelevantLeaseClauses(r, step)
		for _, clause := range clauses {
			color.Green("    lease clause: section %s", clause.Section)
		}
		if noneFound {
			color.Red("    lease clauses: none found in lease")
		}
	}
}

func decodeReport(raw []byte) *entity.Report {
	var envelope struct {
		Data struct {
			Report *entity.Report `json:"report"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data.Report != nil {
		return envelope.Data.Report
	}

	var r entity.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	return &r
}
