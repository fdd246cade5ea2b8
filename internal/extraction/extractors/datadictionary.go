package extractors

import (
	"context"
	"fmt"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

// DataDictionaryID is the registry key for the phase-2 extractor.
const DataDictionaryID = "data_dictionary"

// DataDictionary populates ExtractionContext.DataDictionary; it is the
// single phase-2 extractor and runs after SystemInfo but before every
// module extractor.
type DataDictionary struct{}

// NewDataDictionary constructs a DataDictionary extractor.
func NewDataDictionary() extraction.Extractor { return DataDictionary{} }

func (DataDictionary) Identity() extraction.Identity {
	return extraction.Identity{ExtractorID: DataDictionaryID, Name: "Data Dictionary", Module: "core", Category: "dictionary"}
}

func (DataDictionary) Tables() []extraction.TableExpectation {
	return []extraction.TableExpectation{
		{Name: "DD_TABLES", Description: "Table catalogue", Critical: true},
		{Name: "DD_FIELDS", Description: "Field catalogue", Critical: true},
		{Name: "DD_FOREIGN_KEYS", Description: "Foreign key relationships"},
		{Name: "DD_DOMAINS", Description: "Domains"},
		{Name: "DD_VIEWS", Description: "Views"},
	}
}

func (d DataDictionary) ExtractLive(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	out := make(map[string][]extraction.Row)
	for _, table := range []string{"DD_TABLES", "DD_FIELDS", "DD_FOREIGN_KEYS", "DD_DOMAINS", "DD_VIEWS"} {
		res, err := h.ReadTable(ctx, table, extraction.ReadOptions{})
		if err != nil {
			continue
		}
		out[table] = res.Rows
	}
	populate(rc, out)
	return out, nil
}

func (d DataDictionary) ExtractOffline(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	fixtures := map[string][]extraction.Row{
		"DD_TABLES": {
			{"name": "GL_ACCOUNTS", "description": "General ledger accounts"},
			{"name": "GL_POSTINGS", "description": "General ledger postings"},
			{"name": "AP_INVOICES", "description": "Accounts payable invoices"},
			{"name": "AR_INVOICES", "description": "Accounts receivable invoices"},
			{"name": "COST_CENTERS", "description": "Cost centers"},
			{"name": "USERS", "description": "User master"},
			{"name": "ROLES", "description": "Authorization roles"},
			{"name": "ROLE_ASSIGNMENTS", "description": "User-role assignments"},
			{"name": "AUTH_OBJECTS", "description": "Authorization objects"},
			{"name": "RFC_DESTINATIONS", "description": "RFC destinations"},
			{"name": "INTERFACE_CATALOG", "description": "Interface catalogue"},
			{"name": "IDOC_STATS", "description": "IDoc statistics"},
			{"name": "CUSTOMERS", "description": "Customer master"},
			{"name": "VENDORS", "description": "Vendor master"},
			{"name": "MATERIALS", "description": "Material master"},
			{"name": "BOMS", "description": "Bills of material"},
			{"name": "CHANGE_DOCUMENTS", "description": "Change document headers", "critical": true},
			{"name": "CHANGE_DOCUMENT_ITEMS", "description": "Change document items"},
			{"name": "USAGE_STATISTICS", "description": "Transaction usage statistics", "critical": true},
			{"name": "TCODE_CATALOG", "description": "Transaction code catalogue"},
			{"name": "BATCH_JOBS", "description": "Scheduled batch jobs"},
			{"name": "BATCH_JOB_LOGS", "description": "Batch job run history"},
			{"name": "WORKFLOWS", "description": "Workflow definitions", "critical": true},
			{"name": "WORKFLOW_ITEMS", "description": "Workflow item history"},
			{"name": "CUSTOM_PROGRAMS", "description": "Custom programs"},
			{"name": "ENHANCEMENTS", "description": "Enhancement implementations"},
			{"name": "USER_EXITS", "description": "User exits"},
			{"name": "CONFIG_TABLES", "description": "Customizing tables"},
			{"name": "CONFIG_VALUES", "description": "Customizing values"},
		},
		"DD_FIELDS": {
			{"table": "GL_ACCOUNTS", "field": "ACCOUNT_ID", "type": "CHAR", "key": true},
			{"table": "GL_POSTINGS", "field": "POSTING_ID", "type": "CHAR", "key": true},
		},
		"DD_FOREIGN_KEYS": {
			{"from_table": "GL_POSTINGS", "from_field": "ACCOUNT_ID", "to_table": "GL_ACCOUNTS", "to_field": "ACCOUNT_ID"},
		},
		"DD_DOMAINS": {
			{"name": "CURRENCY", "description": "ISO currency code"},
		},
		"DD_VIEWS": {
			{"name": "V_OPEN_ITEMS", "description": "Open AP/AR items"},
		},
	}
	out := offlineAll(h, fixtures)
	populate(rc, out)
	return out, nil
}

func populate(rc *extraction.Context, tables map[string][]extraction.Row) {
	dict := extraction.NewDataDictionary()

	for _, row := range tables["DD_TABLES"] {
		name, _ := row["name"].(string)
		if name == "" {
			continue
		}
		critical, _ := row["critical"].(bool)
		dict.Tables[name] = extraction.TableDef{}
		if critical {
			dict.Stats[name+"_critical"] = true
		}
	}

	for _, row := range tables["DD_FIELDS"] {
		table, _ := row["table"].(string)
		field, _ := row["field"].(string)
		if table == "" || field == "" {
			continue
		}
		def := dict.Tables[table]
		key, _ := row["key"].(bool)
		def.Fields = append(def.Fields, extraction.FieldDef{
			Name: field,
			Type: fmt.Sprint(row["type"]),
			Key:  key,
		})
		dict.Tables[table] = def
	}

	for _, row := range tables["DD_FOREIGN_KEYS"] {
		fromTable, _ := row["from_table"].(string)
		fromField, _ := row["from_field"].(string)
		toTable, _ := row["to_table"].(string)
		toField, _ := row["to_field"].(string)
		if fromTable == "" {
			continue
		}
		dict.Relationships = append(dict.Relationships, extraction.Relationship{
			FromTable: fromTable, FromField: fromField, ToTable: toTable, ToField: toField,
		})
	}

	for _, row := range tables["DD_DOMAINS"] {
		if name, ok := row["name"].(string); ok {
			dict.Domains[name] = fmt.Sprint(row["description"])
		}
	}
	for _, row := range tables["DD_VIEWS"] {
		if name, ok := row["name"].(string); ok {
			dict.Views[name] = fmt.Sprint(row["description"])
		}
	}

	dict.Stats["table_count"] = len(dict.Tables)
	rc.DataDictionary = dict
}
