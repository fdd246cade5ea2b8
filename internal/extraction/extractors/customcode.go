package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// CustomCodeID is the registry key for the custom code extractor.
const CustomCodeID = "custom_code"

// NewCustomCode constructs the extractor reading the inventory of
// custom-namespace programs, enhancements, and user exits — the input
// to the "code" category of the confidence score.
func NewCustomCode() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: CustomCodeID, Name: "Custom Code", Module: "BC-DWB", Category: "custom_code"},
		tables: []extraction.TableExpectation{
			{Name: "CUSTOM_PROGRAMS", Description: "Custom-namespace programs"},
			{Name: "ENHANCEMENTS", Description: "Enhancement framework implementations"},
			{Name: "USER_EXITS", Description: "Classic user exits"},
		},
		fixtures: map[string][]extraction.Row{
			"CUSTOM_PROGRAMS": {
				{"program_id": "Z_AR_DUNNING_RUN", "author": "JDOE", "created_at": "2019-03-11"},
			},
			"ENHANCEMENTS": {
				{"enhancement_id": "ZENH_PO_RELEASE", "spot": "ME_PROCESS_PO_CUST", "active": true},
			},
			"USER_EXITS": {
				{"exit_id": "MM06E005", "function_module": "EXIT_SAPMM06E_012", "active": false},
			},
		},
	}
}
