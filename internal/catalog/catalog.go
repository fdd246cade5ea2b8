// Package catalog aggregates a completed run's coverage, extraction
// results, process-mining outputs, and gap/confidence analysis into a
// single ForensicReport with multiple rendered views, all derived from one
// canonical serializable tree.
package catalog

import (
	"sort"
	"time"

	"github.com/erpforensic/reconstructor/internal/coverage"
	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/gap"
	"github.com/erpforensic/reconstructor/internal/mining/intelligence"
)

// ProcessCatalog is the set of process-intelligence results computed for a
// run, keyed by reference-model (or custom process) ID.
type ProcessCatalog struct {
	Processes map[string]intelligence.Result
}

// ProcessIDs returns the catalog's process keys, sorted.
func (c ProcessCatalog) ProcessIDs() []string {
	ids := make([]string, 0, len(c.Processes))
	for id := range c.Processes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForensicReport is the top-level aggregation produced at the end of a run:
// every input a human reviewer or downstream tool needs to understand what
// was extracted, how the business actually operates, and what remains
// unknown.
type ForensicReport struct {
	SystemID      string
	GeneratedAt   time.Time
	Coverage      coverage.SystemReport
	ModuleResults map[string]extraction.Result
	Catalog       ProcessCatalog
	Gaps          gap.Report
	Confidence    gap.Score
	DataDictionary *extraction.DataDictionary
}

// ToSerializable is the canonical nested-record view of the report. The
// executive summary, the module report, and the gaps/confidence part of the
// gap report read from this tree; the process map, the dependency graph,
// the human-validation checklist, and the Markdown per-process section read
// the report's fields (Catalog, DataDictionary, Gaps) directly.
func (r ForensicReport) ToSerializable() map[string]interface{} {
	modules := make(map[string]interface{}, len(r.ModuleResults))
	ids := make([]string, 0, len(r.ModuleResults))
	for id := range r.ModuleResults {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		result := r.ModuleResults[id]
		tableCount := 0
		for _, rows := range result.Tables {
			tableCount += len(rows)
		}
		modules[id] = map[string]interface{}{
			"status":      result.Status,
			"error":       result.Error,
			"table_count": len(result.Tables),
			"row_count":   tableCount,
			"coverage":    r.Coverage.Tables,
		}
	}

	processes := make(map[string]interface{}, len(r.Catalog.Processes))
	for _, id := range r.Catalog.ProcessIDs() {
		processes[id] = r.Catalog.Processes[id].ToSerializable()
	}

	return map[string]interface{}{
		"system_id":    r.SystemID,
		"generated_at": r.GeneratedAt,
		"coverage": map[string]interface{}{
			"extracted":    r.Coverage.Extracted,
			"failed":       r.Coverage.Failed,
			"skipped":      r.Coverage.Skipped,
			"partial":      r.Coverage.Partial,
			"total":        r.Coverage.Total,
			"coverage_pct": r.Coverage.CoveragePct,
			"extractor_count": r.Coverage.ExtractorCount,
		},
		"modules":    modules,
		"processes":  processes,
		"gaps":       r.Gaps.ToSerializable(),
		"confidence": r.Confidence.ToSerializable(),
	}
}
