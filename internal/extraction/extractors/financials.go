package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// FinancialsID is the registry key for the GL/AP/AR extractor.
const FinancialsID = "financials"

// NewFinancials constructs the extractor feeding R2R/O2C/P2P process
// mining: general ledger accounts and postings, AP/AR invoices, and cost
// centers.
func NewFinancials() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: FinancialsID, Name: "Financials", Module: "FI/CO", Category: "financials"},
		tables: []extraction.TableExpectation{
			{Name: "GL_ACCOUNTS", Description: "General ledger chart of accounts", Critical: true},
			{Name: "GL_POSTINGS", Description: "General ledger line item postings", Critical: true},
			{Name: "AP_INVOICES", Description: "Accounts payable invoices"},
			{Name: "AR_INVOICES", Description: "Accounts receivable invoices"},
			{Name: "COST_CENTERS", Description: "Cost center master"},
		},
		fixtures: map[string][]extraction.Row{
			"GL_ACCOUNTS": {
				{"account_id": "100000", "name": "Cash", "type": "asset"},
				{"account_id": "400000", "name": "Revenue", "type": "revenue"},
			},
			"GL_POSTINGS": {
				{"posting_id": "P1", "account_id": "400000", "amount": 1250.00, "doc_type": "RV", "posted_at": "2026-01-05T09:00:00Z"},
				{"posting_id": "P2", "account_id": "100000", "amount": 1250.00, "doc_type": "RV", "posted_at": "2026-01-05T09:00:05Z"},
			},
			"AP_INVOICES": {
				{"invoice_id": "AP1001", "vendor_id": "V100", "amount": 540.00, "status": "cleared"},
			},
			"AR_INVOICES": {
				{"invoice_id": "AR2001", "customer_id": "C200", "amount": 1250.00, "status": "open"},
			},
			"COST_CENTERS": {
				{"cost_center_id": "CC100", "name": "Logistics"},
			},
		},
	}
}
