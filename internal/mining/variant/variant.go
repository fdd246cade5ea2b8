// Package variant groups traces by activity sequence and ranks the
// resulting variants by frequency.
package variant

import (
	"sort"
	"strings"

	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
)

// Variant is one distinct activity sequence observed in the log, with the
// case IDs that followed it.
type Variant struct {
	Sequence []string
	CaseIDs  []string
	Count    int
}

// Key returns the variant's canonical grouping key.
func (v Variant) Key() string { return strings.Join(v.Sequence, " → ") }

// Result is the full variant-analysis outcome.
type Result struct {
	Variants     []Variant
	HappyPath    *Variant
	VariantCount int
}

// Summary returns a flat scalar digest.
func (r Result) Summary() map[string]interface{} {
	happy := ""
	if r.HappyPath != nil {
		happy = r.HappyPath.Key()
	}
	return map[string]interface{}{
		"variant_count": r.VariantCount,
		"happy_path":    happy,
	}
}

// ToSerializable returns the full nested record.
func (r Result) ToSerializable() map[string]interface{} {
	return map[string]interface{}{
		"variants":   r.Variants,
		"happy_path": r.HappyPath,
	}
}

// Analyze groups log's traces by activity sequence, ranks by frequency,
// and designates the most-frequent non-rework sequence (one with no
// repeated activity) as the happy path. If every variant contains rework,
// no happy path is designated.
func Analyze(log *eventlog.EventLog) Result {
	byKey := make(map[string]*Variant)
	var order []string

	for _, trace := range log.Traces() {
		seq := trace.ActivitySequence()
		key := strings.Join(seq, " → ")
		v, ok := byKey[key]
		if !ok {
			v = &Variant{Sequence: append([]string(nil), seq...)}
			byKey[key] = v
			order = append(order, key)
		}
		v.CaseIDs = append(v.CaseIDs, trace.CaseID)
		v.Count++
	}

	variants := make([]Variant, 0, len(order))
	for _, key := range order {
		variants = append(variants, *byKey[key])
	}
	sort.SliceStable(variants, func(i, j int) bool {
		if variants[i].Count != variants[j].Count {
			return variants[i].Count > variants[j].Count
		}
		return variants[i].Key() < variants[j].Key()
	})

	var happyPath *Variant
	for i := range variants {
		if !hasRework(variants[i].Sequence) {
			happyPath = &variants[i]
			break
		}
	}

	return Result{Variants: variants, HappyPath: happyPath, VariantCount: len(variants)}
}

func hasRework(seq []string) bool {
	seen := make(map[string]struct{}, len(seq))
	for _, a := range seq {
		if _, ok := seen[a]; ok {
			return true
		}
		seen[a] = struct{}{}
	}
	return false
}
