package extractors

import (
	"context"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

// tableOnly implements the common case of an extractor that does nothing
// but read a fixed list of tables, live or offline. Extractors whose only
// behaviour is "read these tables" (financials, master data, usage
// statistics, batch jobs, workflows, custom code, configuration) return a
// tableOnly value rather than repeating the same ExtractLive/ExtractOffline loop.
type tableOnly struct {
	identity extraction.Identity
	tables   []extraction.TableExpectation
	fixtures map[string][]extraction.Row
}

func (t tableOnly) Identity() extraction.Identity            { return t.identity }
func (t tableOnly) Tables() []extraction.TableExpectation     { return t.tables }

func (t tableOnly) ExtractLive(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	out := make(map[string][]extraction.Row, len(t.tables))
	for _, expect := range t.tables {
		res, err := h.ReadTable(ctx, expect.Name, extraction.ReadOptions{})
		if err != nil {
			continue
		}
		out[expect.Name] = res.Rows
	}
	return out, nil
}

func (t tableOnly) ExtractOffline(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	return offlineAll(h, t.fixtures), nil
}
