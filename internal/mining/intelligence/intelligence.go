// Package intelligence composes the individual process-mining analyses
// (heuristic discovery, conformance replay, performance, variant, social,
// and KPI) into a single pass over one event log.
package intelligence

import (
	"github.com/erpforensic/reconstructor/internal/mining/conformance"
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/heuristic"
	"github.com/erpforensic/reconstructor/internal/mining/kpi"
	"github.com/erpforensic/reconstructor/internal/mining/performance"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
	"github.com/erpforensic/reconstructor/internal/mining/social"
	"github.com/erpforensic/reconstructor/internal/mining/variant"
)

// Result bundles every analysis computed over one process's event log.
type Result struct {
	EventLog        *eventlog.EventLog
	DiscoveredModel *referencemodel.ReferenceModel
	Conformance     conformance.Result
	Performance     performance.Result
	Variant         variant.Result
	Social          social.Result
	KPI             kpi.Report
}

// ToSerializable returns the full nested record for the process report.
func (r Result) ToSerializable() map[string]interface{} {
	return map[string]interface{}{
		"conformance": r.Conformance.ToSerializable(),
		"performance": r.Performance.ToSerializable(),
		"variant":     r.Variant.ToSerializable(),
		"social":      r.Social.ToSerializable(),
		"kpi":         r.KPI.ToSerializable(),
	}
}

// Summary returns a flat scalar digest across every analysis.
func (r Result) Summary() map[string]interface{} {
	out := map[string]interface{}{
		"case_count":  r.EventLog.CaseCount(),
		"event_count": r.EventLog.EventCount(),
	}
	for k, v := range r.Conformance.Summary() {
		out["conformance_"+k] = v
	}
	for k, v := range r.Performance.Summary() {
		out["performance_"+k] = v
	}
	for k, v := range r.Variant.Summary() {
		out["variant_"+k] = v
	}
	for k, v := range r.Social.Summary() {
		out["social_"+k] = v
	}
	for k, v := range r.KPI.Summary() {
		out["kpi_"+k] = v
	}
	return out
}

// Analyze runs the full process-intelligence pipeline. If model is nil, the
// discovered heuristic model is used for both the conformance and
// conformance-KPI stages (replaying the log against its own discovered
// shape rather than a built-in reference process).
func Analyze(log *eventlog.EventLog, model *referencemodel.ReferenceModel, sodRules []social.SoDRule, customKPIs []kpi.CustomKPI) Result {
	discovered := heuristic.Mine(log, heuristic.DefaultOptions())

	conformanceModel := model
	if conformanceModel == nil {
		conformanceModel = discovered
	}

	conf := conformance.Replay(log, conformanceModel)
	perf := performance.Analyze(log)
	var_ := variant.Analyze(log)
	soc := social.Analyze(log, sodRules)
	kpiReport := kpi.Compute(log, conf, var_, soc, customKPIs)

	return Result{
		EventLog:        log,
		DiscoveredModel: discovered,
		Conformance:     conf,
		Performance:     perf,
		Variant:         var_,
		Social:          soc,
		KPI:             kpiReport,
	}
}
