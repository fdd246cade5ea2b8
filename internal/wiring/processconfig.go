// Package wiring is the bootstrap glue: it builds the per-process event-log
// configurations the mining core needs, and composes the orchestrator's
// sequential stages (process mining, configuration interpretation, gap
// analysis, report assembly) over a completed extraction run. Nothing in
// internal/mining or internal/gap depends on this package — it exists so
// cmd/erpforensic has a single place to assemble the pipeline rather than
// repeating the wiring inline.
package wiring

import (
	"github.com/erpforensic/reconstructor/internal/mining/eventlog"
	"github.com/erpforensic/reconstructor/internal/mining/referencemodel"
)

// processObjectMap maps a CHANGE_DOCUMENTS "object" value (the business
// object class SAP-style change document headers carry) to the activity a
// change against that object represents for one reference process. The
// object names are illustrative placeholders for the business-object types
// change documents are keyed on in the source system; they are not the
// handful of names the extractor fixtures happen to use, which model only
// one example object.
var processObjectMap = map[string]map[string]string{
	referencemodel.O2C: {
		"SALES_ORDER": "create_sales_order",
		"DELIVERY":    "create_delivery",
		"INVOICE":     "create_invoice",
	},
	referencemodel.P2P: {
		"PURCHASE_REQUISITION": "create_purchase_requisition",
		"PURCHASE_ORDER":       "create_purchase_order",
		"INVOICE_RECEIPT":      "invoice_receipt",
	},
	referencemodel.R2R: {
		"JOURNAL_ENTRY": "post_journal_entry",
		"GL_ACCOUNT":    "reconcile_account",
	},
	referencemodel.A2R: {
		"ASSET_MASTER": "create_asset_master",
		"ASSET":        "capitalize_asset",
	},
	referencemodel.H2R: {
		"HIRE_REQUEST": "create_hire_request",
		"EMPLOYEE":     "onboard_employee",
	},
	referencemodel.P2M: {
		"PRODUCTION_ORDER": "create_production_order",
		"MATERIAL":         "issue_components",
	},
	referencemodel.M2S: {
		"MAINTENANCE_NOTIFICATION": "create_maintenance_notification",
		"MAINTENANCE_ORDER":        "create_maintenance_order",
	},
}

// processWorkflowStepMap maps a WORKFLOW_ITEMS "step" value to the activity
// it represents for one reference process, for the approval/scheduling
// steps that are workflow-driven rather than change-document-driven.
var processWorkflowStepMap = map[string]map[string]string{
	referencemodel.O2C: {
		"CREDIT_CHECK": "check_credit",
		"DUNNING":      "dunning",
	},
	referencemodel.P2P: {
		"APPROVE":      "approve_requisition",
		"THREE_WAY_MATCH": "three_way_match",
	},
	referencemodel.R2R: {
		"PERIOD_CLOSE": "run_period_close",
	},
	referencemodel.A2R: {
		"TRANSFER": "transfer_asset",
		"RETIRE":   "retire_asset",
	},
	referencemodel.H2R: {
		"APPROVE":  "approve_hire",
		"OFFBOARD": "offboard_employee",
	},
	referencemodel.P2M: {
		"RELEASE": "release_order",
		"CLOSE":   "close_order",
	},
	referencemodel.M2S: {
		"SCHEDULE": "schedule_work",
		"SETTLE":   "settle_costs",
	},
}

// ProcessConfigs returns the builder configuration for every built-in
// reference process, folding CHANGE_DOCUMENTS (object-type driven) and
// WORKFLOW_ITEMS (step driven) into one event log per process. Both tables
// carry a case id directly (object_id, instance_id respectively); no join
// is required for either.
func ProcessConfigs() map[string]eventlog.ProcessConfig {
	out := make(map[string]eventlog.ProcessConfig, len(processObjectMap))
	for id, objectMap := range processObjectMap {
		out[id] = eventlog.ProcessConfig{
			ProcessID: id,
			Tables: []eventlog.TableMapping{
				{
					Table:             "CHANGE_DOCUMENTS",
					Class:             eventlog.ClassFlow,
					CaseID:            eventlog.CaseIDRule{Field: "object_id"},
					TimestampField:    "changed_at",
					ResourceField:     "changed_by",
					DocumentTypeField: "object",
					DocumentTypeMap:   objectMap,
				},
				{
					Table:          "WORKFLOW_ITEMS",
					Class:          eventlog.ClassStatus,
					CaseID:         eventlog.CaseIDRule{Field: "instance_id"},
					TimestampField: "completed_at",
					ResourceField:  "agent",
					StatusField:    "step",
					StatusMap:      processWorkflowStepMap[id],
				},
			},
		}
	}
	return out
}
