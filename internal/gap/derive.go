package gap

import "github.com/erpforensic/reconstructor/internal/coverage"

// categoryExtractors maps each of the seven confidence-scoring categories
// to the extractor IDs whose coverage feeds it. "process" draws on every
// extractor the process gap check treats as foundational evidence, plus
// batch jobs (scheduling evidence the same reconstruction depends on).
var categoryExtractors = map[string][]string{
	"config":      {"configuration"},
	"master_data": {"master_data"},
	"transaction": {"financials"},
	"code":        {"custom_code"},
	"security":    {"security"},
	"interface":   {"interfaces"},
	"process":     {"change_documents", "usage_statistics", "workflows", "batch_jobs"},
}

// DeriveInputs builds confidence-scoring Inputs from a coverage tracker and
// an already-computed gap Report, using the fixed category→extractor
// mapping above.
func DeriveInputs(tracker *coverage.Tracker, report Report) Inputs {
	return Inputs{
		Config:      categoryInput(tracker, report, "config"),
		MasterData:  categoryInput(tracker, report, "master_data"),
		Transaction: categoryInput(tracker, report, "transaction"),
		Code:        categoryInput(tracker, report, "code"),
		Security:    categoryInput(tracker, report, "security"),
		Interface:   categoryInput(tracker, report, "interface"),
		Process:     categoryInput(tracker, report, "process"),
	}
}

func categoryInput(tracker *coverage.Tracker, report Report, category string) CategoryInput {
	ids := categoryExtractors[category]
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	var totalPct float64
	var n int
	for _, id := range ids {
		totalPct += float64(tracker.Report(id).CoveragePct)
		n++
	}
	avgPct := 0.0
	if n > 0 {
		avgPct = totalPct / float64(n)
	}

	var missingCritical, authGaps, volumeGaps int
	for _, g := range report.Gaps {
		if !idSet[g.ExtractorID] {
			continue
		}
		switch g.Category {
		case CategoryExtraction:
			if g.Severity == SeverityCritical {
				missingCritical++
			}
		case CategoryAuthorization:
			authGaps++
		case CategoryDataVolume:
			volumeGaps++
		}
	}

	return CategoryInput{
		CoveragePct:           avgPct,
		MissingCriticalTables: missingCritical,
		AuthorizationGaps:     authGaps,
		DataVolumeGaps:        volumeGaps,
	}
}
