// Package gap cross-references coverage telemetry, extraction results, and
// the data dictionary to surface what a run did not see, and reduces that
// picture to a weighted confidence score.
package gap

import (
	"regexp"
	"sort"
	"strings"

	"github.com/erpforensic/reconstructor/internal/coverage"
	"github.com/erpforensic/reconstructor/internal/extraction"
	ferrors "github.com/erpforensic/reconstructor/pkg/errors"
)

// Category is one of the eight gap categories.
type Category string

const (
	CategoryExtraction     Category = "extraction"
	CategoryAuthorization  Category = "authorization"
	CategorySystemType     Category = "system_type"
	CategoryDataVolume     Category = "data_volume"
	CategoryProcess        Category = "process"
	CategoryInterface      Category = "interface"
	CategoryTemporal       Category = "temporal"
	CategoryInterpretation Category = "interpretation"
)

// Severity ranks how much a gap should weigh on a human reviewer's
// attention, independent of its effect on the numeric confidence score.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Gap is one detected shortfall in coverage or interpretation.
type Gap struct {
	Category    Category
	Severity    Severity
	Message     string
	ExtractorID string
	Table       string
}

// Report is the full set of gaps detected in one run.
type Report struct {
	Gaps []Gap
}

// ByCategory groups gaps for presentation.
func (r Report) ByCategory() map[Category][]Gap {
	out := make(map[Category][]Gap)
	for _, g := range r.Gaps {
		out[g.Category] = append(out[g.Category], g)
	}
	return out
}

// Summary returns a flat per-category count digest.
func (r Report) Summary() map[string]interface{} {
	counts := make(map[string]int)
	for _, g := range r.Gaps {
		counts[string(g.Category)]++
	}
	return map[string]interface{}{
		"total_gaps":   len(r.Gaps),
		"by_category":  counts,
	}
}

// ToSerializable returns the full nested record.
func (r Report) ToSerializable() map[string]interface{} {
	return map[string]interface{}{"gaps": r.Gaps}
}

// criticalSystemTables flags known domain-indicator tables whose absence
// from the dictionary (not merely "not attempted") suggests the source ran
// a system generation this reconstruction was not tuned for.
var criticalSystemTables = map[string]string{
	"ACDOCA": "S/4HANA universal journal not present — likely an ECC-generation system",
	"BSEG":   "classic FI document table not present — likely an S/4HANA-generation system",
}

// authIndicator matches error text that points at a permissions failure
// rather than a transient transport fault.
var authIndicator = regexp.MustCompile(`(?i)authoriz|permission denied|access denied|S_TABU_DIS`)

// foundationalEvidenceExtractors are the extractor IDs whose absence robs
// process mining of its raw material regardless of what else extracted
// cleanly.
var foundationalEvidenceExtractors = []string{"change_documents", "usage_statistics", "workflows"}

// Analyzer cross-references a completed run's coverage tracker, extraction
// results, and data dictionary against the extractor registry's declared
// table expectations and a caller-supplied interpretation-rule set.
type Analyzer struct {
	Registry *extraction.Registry
	// InterpretationRules names the extractor IDs that have a matching
	// configuration-interpretation rule. An extractor absent from this set
	// whose results are otherwise present is flagged as uninterpreted.
	InterpretationRules map[string]bool
}

// NewAnalyzer constructs an Analyzer. interpretationRules may be nil, in
// which case every module is reported as uninterpreted.
func NewAnalyzer(registry *extraction.Registry, interpretationRules map[string]bool) *Analyzer {
	return &Analyzer{Registry: registry, InterpretationRules: interpretationRules}
}

// Analyze is pure and side-effect-free: it reads rc and results, and
// returns a Report, doing no I/O and mutating nothing. It fails with a
// precondition error if rc or its coverage tracker is not yet populated —
// i.e. if invoked before extraction has run at all.
func (a *Analyzer) Analyze(rc *extraction.Context, results map[string]extraction.Result) (Report, error) {
	if rc == nil || rc.Coverage == nil {
		return Report{}, ferrors.NewPreconditionError("gap analysis requires extraction to have run")
	}

	var gaps []Gap
	gaps = append(gaps, a.extractionGaps(rc)...)
	gaps = append(gaps, a.authorizationGaps(rc)...)
	gaps = append(gaps, a.systemTypeGaps(rc)...)
	gaps = append(gaps, a.dataVolumeGaps(rc)...)
	gaps = append(gaps, a.processGaps(results)...)
	gaps = append(gaps, a.interfaceGaps(rc, results)...)
	gaps = append(gaps, a.temporalGaps()...)
	gaps = append(gaps, a.interpretationGaps(results)...)

	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Category != gaps[j].Category {
			return gaps[i].Category < gaps[j].Category
		}
		if gaps[i].ExtractorID != gaps[j].ExtractorID {
			return gaps[i].ExtractorID < gaps[j].ExtractorID
		}
		return gaps[i].Table < gaps[j].Table
	})

	return Report{Gaps: gaps}, nil
}

func (a *Analyzer) extractionGaps(rc *extraction.Context) []Gap {
	known := make(map[string]struct{})
	for _, t := range rc.DataDictionary.KnownTables() {
		known[t] = struct{}{}
	}
	attempted := make(map[string]struct{})
	for _, rec := range rc.Coverage.All() {
		attempted[rec.Table] = struct{}{}
	}

	var gaps []Gap
	for _, id := range a.Registry.ModuleIDs() {
		ext, err := a.Registry.New(id)
		if err != nil {
			continue
		}
		for _, expect := range ext.Tables() {
			if _, ok := attempted[expect.Name]; ok {
				continue
			}
			if _, inDict := known[expect.Name]; !inDict && len(known) > 0 {
				continue
			}
			severity := SeverityWarning
			if expect.Critical {
				severity = SeverityCritical
			}
			gaps = append(gaps, Gap{
				Category:    CategoryExtraction,
				Severity:    severity,
				Message:     "table declared by extractor was never attempted",
				ExtractorID: id,
				Table:       expect.Name,
			})
		}
	}
	return gaps
}

func (a *Analyzer) authorizationGaps(rc *extraction.Context) []Gap {
	var gaps []Gap
	for _, rec := range rc.Coverage.All() {
		if rec.Status != coverage.StatusFailed {
			continue
		}
		if authIndicator.MatchString(rec.Detail.Error) {
			gaps = append(gaps, Gap{
				Category:    CategoryAuthorization,
				Severity:    SeverityWarning,
				Message:     "read failed with an authorization-shaped error: " + rec.Detail.Error,
				ExtractorID: rec.ExtractorID,
				Table:       rec.Table,
			})
		}
	}
	return gaps
}

func (a *Analyzer) systemTypeGaps(rc *extraction.Context) []Gap {
	var gaps []Gap
	for _, rec := range rc.Coverage.All() {
		if rec.Status != coverage.StatusSkipped {
			continue
		}
		reason := strings.ToLower(rec.Detail.Reason)
		if strings.Contains(reason, "gateway") || strings.Contains(reason, "odata") || strings.Contains(reason, "rfc") {
			gaps = append(gaps, Gap{
				Category:    CategorySystemType,
				Severity:    SeverityInfo,
				Message:     "NO_RFC: table skipped as unreachable on this system's interface layer",
				ExtractorID: rec.ExtractorID,
				Table:       rec.Table,
			})
		}
	}

	known := make(map[string]struct{})
	for _, t := range rc.DataDictionary.KnownTables() {
		known[t] = struct{}{}
	}
	attempted := make(map[string]struct{})
	for _, rec := range rc.Coverage.All() {
		attempted[rec.Table] = struct{}{}
	}
	indicatorNames := make([]string, 0, len(criticalSystemTables))
	for t := range criticalSystemTables {
		indicatorNames = append(indicatorNames, t)
	}
	sort.Strings(indicatorNames)
	for _, t := range indicatorNames {
		if _, attemptedAt := attempted[t]; attemptedAt {
			continue
		}
		if _, ok := known[t]; !ok {
			gaps = append(gaps, Gap{
				Category: CategorySystemType,
				Severity: SeverityInfo,
				Message:  criticalSystemTables[t],
				Table:    t,
			})
		}
	}
	return gaps
}

func (a *Analyzer) dataVolumeGaps(rc *extraction.Context) []Gap {
	var gaps []Gap
	for _, rec := range rc.Coverage.All() {
		if rec.Status != coverage.StatusPartial {
			continue
		}
		gaps = append(gaps, Gap{
			Category:    CategoryDataVolume,
			Severity:    SeverityWarning,
			Message:     "table read returned a truncated result set",
			ExtractorID: rec.ExtractorID,
			Table:       rec.Table,
		})
	}
	return gaps
}

func (a *Analyzer) processGaps(results map[string]extraction.Result) []Gap {
	var gaps []Gap
	for _, id := range foundationalEvidenceExtractors {
		result, ran := results[id]
		if !ran || result.Status != extraction.StatusSuccess || len(result.Tables) == 0 {
			gaps = append(gaps, Gap{
				Category:    CategoryProcess,
				Severity:    SeverityWarning,
				Message:     "foundational process-mining evidence was not successfully extracted",
				ExtractorID: id,
			})
		}
	}
	return gaps
}

func (a *Analyzer) interfaceGaps(rc *extraction.Context, results map[string]extraction.Result) []Gap {
	var gaps []Gap
	if _, ran := results["interfaces"]; !ran {
		gaps = append(gaps, Gap{
			Category:    CategoryInterface,
			Severity:    SeverityCritical,
			Message:     "interface extractor was never run; RFC/OData topology is unknown",
			ExtractorID: "interfaces",
		})
	}
	for _, rec := range rc.Coverage.All() {
		if rec.ExtractorID != "interfaces" || rec.Status != coverage.StatusFailed {
			continue
		}
		gaps = append(gaps, Gap{
			Category:    CategoryInterface,
			Severity:    SeverityWarning,
			Message:     "remote destination unreachable: " + rec.Detail.Error,
			ExtractorID: rec.ExtractorID,
			Table:       rec.Table,
		})
	}
	return gaps
}

func (a *Analyzer) temporalGaps() []Gap {
	return []Gap{{
		Category: CategoryTemporal,
		Severity: SeverityInfo,
		Message:  "historical coverage is bounded by the source system's own retention/archiving policy, not by this run",
	}}
}

func (a *Analyzer) interpretationGaps(results map[string]extraction.Result) []Gap {
	var gaps []Gap
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		result := results[id]
		if result.Status != extraction.StatusSuccess || len(result.Tables) == 0 {
			continue
		}
		if a.InterpretationRules != nil && a.InterpretationRules[id] {
			continue
		}
		gaps = append(gaps, Gap{
			Category:    CategoryInterpretation,
			Severity:    SeverityInfo,
			Message:     "extracted results have no matching interpretation rule",
			ExtractorID: id,
		})
	}
	return gaps
}
