package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// UsageStatisticsID is the registry key for the usage statistics extractor.
const UsageStatisticsID = "usage_statistics"

// NewUsageStatistics constructs the extractor reading transaction-code
// usage statistics and the transaction code catalogue, the primary input
// for distinguishing live from dormant custom code.
func NewUsageStatistics() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: UsageStatisticsID, Name: "Usage Statistics", Module: "BC-CCM", Category: "usage_statistics"},
		tables: []extraction.TableExpectation{
			{Name: "USAGE_STATISTICS", Description: "Transaction code usage counts", Critical: true},
			{Name: "TCODE_CATALOG", Description: "Transaction code catalogue"},
		},
		fixtures: map[string][]extraction.Row{
			"USAGE_STATISTICS": {
				{"tcode": "VA01", "user_id": "JDOE", "count": 842, "last_used": "2026-07-29T00:00:00Z"},
				{"tcode": "Z_CUSTOM_REPORT", "user_id": "JDOE", "count": 0, "last_used": nil},
			},
			"TCODE_CATALOG": {
				{"tcode": "VA01", "description": "Create sales order"},
				{"tcode": "Z_CUSTOM_REPORT", "description": "Custom aging report"},
			},
		},
	}
}
