package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// MasterDataID is the registry key for the master data extractor.
const MasterDataID = "master_data"

// NewMasterData constructs the extractor reading customer, vendor,
// material, and bill-of-material master data.
func NewMasterData() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: MasterDataID, Name: "Master Data", Module: "MM/SD", Category: "master_data"},
		tables: []extraction.TableExpectation{
			{Name: "CUSTOMERS", Description: "Customer master"},
			{Name: "VENDORS", Description: "Vendor master"},
			{Name: "MATERIALS", Description: "Material master", Critical: true},
			{Name: "BOMS", Description: "Bills of material"},
		},
		fixtures: map[string][]extraction.Row{
			"CUSTOMERS": {
				{"customer_id": "C200", "name": "Acme Retail", "country": "US"},
			},
			"VENDORS": {
				{"vendor_id": "V100", "name": "Global Parts Co", "country": "DE"},
			},
			"MATERIALS": {
				{"material_id": "M1000", "description": "Steel bracket", "uom": "EA"},
			},
			"BOMS": {
				{"material_id": "M1000", "component_id": "M1001", "quantity": 4},
			},
		},
	}
}
