package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// ConfigurationID is the registry key for the configuration extractor.
const ConfigurationID = "configuration"

// NewConfiguration constructs the extractor reading customizing (IMG)
// tables and their values, the input to the "config" category of the
// confidence score.
func NewConfiguration() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: ConfigurationID, Name: "Configuration", Module: "BC-CUS", Category: "configuration"},
		tables: []extraction.TableExpectation{
			{Name: "CONFIG_TABLES", Description: "Customizing table catalogue"},
			{Name: "CONFIG_VALUES", Description: "Customizing values", Critical: true},
		},
		fixtures: map[string][]extraction.Row{
			"CONFIG_TABLES": {
				{"table": "T001", "description": "Company codes"},
			},
			"CONFIG_VALUES": {
				{"table": "T001", "key": "1000", "field": "WAERS", "value": "USD"},
			},
		},
	}
}
