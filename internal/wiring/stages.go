package wiring

import (
	"context"
	"sort"
	"time"

	"github.com/erpforensic/reconstructor/internal/catalog"
	"github.com/erpforensic/reconstructor/internal/extraction"
	"github.com/erpforensic/reconstructor/internal/gap"
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/intelligence"
	"github.com/erpforensic/reconstructor/internal/mining/kpi"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
	"github.com/erpforensic/reconstructor/internal/mining/social"
	"github.com/erpforensic/reconstructor/internal/orchestration"
)

// interpretedExtractors names the module extractor IDs that have a matching
// configuration-interpretation rule, per §4.3.1's "Interpretation" gap
// category: every other successfully-extracted module is flagged as having
// no rule to read its results against.
var interpretedExtractors = map[string]bool{
	"configuration":     true,
	"financials":        true,
	"master_data":       true,
	"security":          true,
	"interfaces":        true,
	"change_documents":  true,
	"usage_statistics":  true,
	"workflows":         true,
	"batch_jobs":        true,
	"custom_code":       true,
}

// Options configures the composed pipeline stages: caller-supplied SoD
// rules and custom KPI definitions feed every process's intelligence pass,
// and TimeZone feeds the event-log builder's date+time assembly.
type Options struct {
	SoDRules   []social.SoDRule
	CustomKPIs []kpi.CustomKPI
	TimeZone   *time.Location
}

// Accumulator holds the outputs of the sequential stages that don't fit the
// orchestrator's own results map: the process catalog, the gap report, the
// confidence score, and finally the assembled report. A pointer to one is
// shared by every stage closure built by BuildStages.
type Accumulator struct {
	Catalog    catalog.ProcessCatalog
	Gaps       gap.Report
	Confidence gap.Score
	Report     catalog.ForensicReport
}

// BuildStages composes the four sequential stages that run after module
// extraction: process mining over every built-in reference process,
// configuration interpretation (the fixed rule table above), gap analysis,
// and final report assembly. Returns the stages (in pipeline order, ready
// to assign to Orchestrator.Stages) and the accumulator they populate.
func BuildStages(systemID string, registry *extraction.Registry, opts Options) ([]orchestration.Stage, *Accumulator) {
	acc := &Accumulator{}
	models := referencemodel.Builtins()
	configs := ProcessConfigs()
	builder := eventlog.NewBuilder(opts.TimeZone)

	processMining := orchestration.Stage{
		Phase: orchestration.PhaseProcessMining,
		Run: func(ctx context.Context, rc *extraction.Context, results map[string]extraction.Result) error {
			tables := mergeTables(results)
			processes := make(map[string]intelligence.Result, len(configs))
			ids := make([]string, 0, len(configs))
			for id := range configs {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				cfg := configs[id]
				log, err := builder.Build(cfg, tables)
				if err != nil {
					return err
				}
				processes[id] = intelligence.Analyze(log, models[id], opts.SoDRules, opts.CustomKPIs)
			}
			acc.Catalog = catalog.ProcessCatalog{Processes: processes}
			return nil
		},
	}

	configInterpretation := orchestration.Stage{
		Phase: orchestration.PhaseConfigInterpretation,
		Run: func(ctx context.Context, rc *extraction.Context, results map[string]extraction.Result) error {
			// Purely declarative: interpretedExtractors above is consulted
			// directly by the gap stage. Nothing to compute here beyond
			// giving the phase its own progress notification.
			return nil
		},
	}

	gapAnalysis := orchestration.Stage{
		Phase: orchestration.PhaseGapAnalysis,
		Run: func(ctx context.Context, rc *extraction.Context, results map[string]extraction.Result) error {
			analyzer := gap.NewAnalyzer(registry, interpretedExtractors)
			report, err := analyzer.Analyze(rc, results)
			if err != nil {
				return err
			}
			acc.Gaps = report
			acc.Confidence = gap.ComputeScore(gap.DeriveInputs(rc.Coverage, report))
			return nil
		},
	}

	reportAssembly := orchestration.Stage{
		Phase: orchestration.PhaseReportAssembly,
		Run: func(ctx context.Context, rc *extraction.Context, results map[string]extraction.Result) error {
			acc.Report = catalog.ForensicReport{
				SystemID:       systemID,
				GeneratedAt:    time.Now(),
				Coverage:       rc.Coverage.SystemReport(),
				ModuleResults:  results,
				Catalog:        acc.Catalog,
				Gaps:           acc.Gaps,
				Confidence:     acc.Confidence,
				DataDictionary: rc.DataDictionary,
			}
			return nil
		},
	}

	return []orchestration.Stage{processMining, configInterpretation, gapAnalysis, reportAssembly}, acc
}

// mergeTables flattens every module result's table map into one lookup,
// keyed by table name, for the event-log builder. A table name present in
// more than one result (not expected, since extractors own disjoint table
// sets) keeps whichever result wins the map iteration; determinism is not
// required here since expectations never overlap in practice.
func mergeTables(results map[string]extraction.Result) map[string][]extraction.Row {
	tables := make(map[string][]extraction.Row)
	for _, result := range results {
		for table, rows := range result.Tables {
			tables[table] = rows
		}
	}
	return tables
}
