package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// WorkflowsID is the registry key for the workflows extractor.
const WorkflowsID = "workflows"

// NewWorkflows constructs the extractor reading workflow definitions and
// their step-level item history, whose steps feed the event log of every
// built-in reference process (internal/wiring).
func NewWorkflows() extraction.Extractor {
	return tableOnly{
		identity: extraction.Identity{ExtractorID: WorkflowsID, Name: "Workflows", Module: "BC-BMT-WFM", Category: "workflows"},
		tables: []extraction.TableExpectation{
			{Name: "WORKFLOWS", Description: "Workflow template definitions", Critical: true},
			{Name: "WORKFLOW_ITEMS", Description: "Workflow step execution history", Critical: true},
		},
		fixtures: map[string][]extraction.Row{
			"WORKFLOWS": {
				{"workflow_id": "WS20000060", "description": "Purchase requisition release"},
			},
			"WORKFLOW_ITEMS": {
				{"workflow_id": "WS20000060", "instance_id": "WI1", "step": "APPROVE", "agent": "JDOE", "status": "completed", "completed_at": "2026-07-28T14:30:00Z"},
			},
		},
	}
}
