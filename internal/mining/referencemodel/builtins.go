package referencemodel

// Registry of canonical model IDs, as listed in §4.2.4.
const (
	O2C = "O2C" // Order to Cash
	P2P = "P2P" // Procure to Pay
	R2R = "R2R" // Record to Report
	A2R = "A2R" // Acquire to Retire
	H2R = "H2R" // Hire to Retire
	P2M = "P2M" // Plan to Manufacture
	M2S = "M2S" // Maintain to Settle
)

// Builtins returns the seven standard ERP reference models, freshly
// constructed (ReferenceModel has no mutable shared state once built).
func Builtins() map[string]*ReferenceModel {
	models := []*ReferenceModel{
		orderToCash(),
		procureToPay(),
		recordToReport(),
		acquireToRetire(),
		hireToRetire(),
		planToManufacture(),
		maintainToSettle(),
	}
	out := make(map[string]*ReferenceModel, len(models))
	for _, m := range models {
		out[m.ID] = m
	}
	return out
}

func orderToCash() *ReferenceModel {
	return New(
		O2C, "Order to Cash",
		[]string{"create_sales_order", "check_credit", "create_delivery", "post_goods_issue", "create_invoice", "post_payment", "dunning"},
		[]Edge{
			{From: "create_sales_order", To: "check_credit", Type: EdgeSequence},
			{From: "check_credit", To: "create_delivery", Type: EdgeSequence},
			{From: "create_delivery", To: "post_goods_issue", Type: EdgeSequence},
			{From: "post_goods_issue", To: "create_invoice", Type: EdgeSequence},
			{From: "create_invoice", To: "post_payment", Type: EdgeSequence},
			{From: "create_invoice", To: "dunning", Type: EdgeChoice},
			{From: "dunning", To: "post_payment", Type: EdgeSequence},
		},
		[]string{"create_sales_order"},
		[]string{"post_payment"},
		map[string]SLATarget{
			"create_sales_order → check_credit":   {Target: 4, Unit: "hours", Severity: "medium"},
			"create_delivery → post_goods_issue":   {Target: 24, Unit: "hours", Severity: "high"},
			"create_invoice → post_payment":        {Target: 30, Unit: "days", Severity: "high"},
		},
		[]string{"create_invoice → post_payment"},
	)
}

func procureToPay() *ReferenceModel {
	return New(
		P2P, "Procure to Pay",
		[]string{"create_purchase_requisition", "approve_requisition", "create_purchase_order", "goods_receipt", "invoice_receipt", "three_way_match", "post_payment"},
		[]Edge{
			{From: "create_purchase_requisition", To: "approve_requisition", Type: EdgeSequence},
			{From: "approve_requisition", To: "create_purchase_order", Type: EdgeSequence},
			{From: "create_purchase_order", To: "goods_receipt", Type: EdgeSequence},
			{From: "goods_receipt", To: "invoice_receipt", Type: EdgeSequence},
			{From: "invoice_receipt", To: "three_way_match", Type: EdgeSequence},
			{From: "three_way_match", To: "post_payment", Type: EdgeSequence},
		},
		[]string{"create_purchase_requisition"},
		[]string{"post_payment"},
		map[string]SLATarget{
			"approve_requisition → create_purchase_order": {Target: 48, Unit: "hours", Severity: "medium"},
			"invoice_receipt → three_way_match":            {Target: 72, Unit: "hours", Severity: "high"},
		},
		[]string{"invoice_receipt → three_way_match"},
	)
}

func recordToReport() *ReferenceModel {
	return New(
		R2R, "Record to Report",
		[]string{"capture_transaction", "post_journal_entry", "reconcile_account", "run_period_close", "generate_financial_statement"},
		[]Edge{
			{From: "capture_transaction", To: "post_journal_entry", Type: EdgeSequence},
			{From: "post_journal_entry", To: "reconcile_account", Type: EdgeSequence},
			{From: "reconcile_account", To: "run_period_close", Type: EdgeSequence},
			{From: "run_period_close", To: "generate_financial_statement", Type: EdgeSequence},
			{From: "run_period_close", To: "capture_transaction", Type: EdgeSequence}, // next period, recurring
		},
		[]string{"capture_transaction"},
		[]string{"generate_financial_statement"},
		map[string]SLATarget{
			"run_period_close → generate_financial_statement": {Target: 5, Unit: "business days", Severity: "high"},
		},
		[]string{"run_period_close → generate_financial_statement"},
	)
}

func acquireToRetire() *ReferenceModel {
	return New(
		A2R, "Acquire to Retire",
		[]string{"create_asset_master", "capitalize_asset", "post_depreciation", "transfer_asset", "retire_asset"},
		[]Edge{
			{From: "create_asset_master", To: "capitalize_asset", Type: EdgeSequence},
			{From: "capitalize_asset", To: "post_depreciation", Type: EdgeSequence},
			{From: "post_depreciation", To: "post_depreciation", Type: EdgeParallel}, // monthly recurring run
			{From: "post_depreciation", To: "transfer_asset", Type: EdgeChoice},
			{From: "post_depreciation", To: "retire_asset", Type: EdgeChoice},
			{From: "transfer_asset", To: "post_depreciation", Type: EdgeSequence},
		},
		[]string{"create_asset_master"},
		[]string{"retire_asset"},
		map[string]SLATarget{},
		nil,
	)
}

func hireToRetire() *ReferenceModel {
	return New(
		H2R, "Hire to Retire",
		[]string{"create_hire_request", "approve_hire", "onboard_employee", "process_payroll", "manage_performance", "offboard_employee"},
		[]Edge{
			{From: "create_hire_request", To: "approve_hire", Type: EdgeSequence},
			{From: "approve_hire", To: "onboard_employee", Type: EdgeSequence},
			{From: "onboard_employee", To: "process_payroll", Type: EdgeSequence},
			{From: "process_payroll", To: "process_payroll", Type: EdgeSequence}, // recurring payroll run
			{From: "process_payroll", To: "manage_performance", Type: EdgeChoice},
			{From: "manage_performance", To: "process_payroll", Type: EdgeSequence},
			{From: "process_payroll", To: "offboard_employee", Type: EdgeChoice},
		},
		[]string{"create_hire_request"},
		[]string{"offboard_employee"},
		map[string]SLATarget{
			"create_hire_request → approve_hire": {Target: 3, Unit: "business days", Severity: "medium"},
		},
		nil,
	)
}

func planToManufacture() *ReferenceModel {
	return New(
		P2M, "Plan to Manufacture",
		[]string{"create_production_order", "release_order", "issue_components", "confirm_operation", "post_goods_receipt", "close_order"},
		[]Edge{
			{From: "create_production_order", To: "release_order", Type: EdgeSequence},
			{From: "release_order", To: "issue_components", Type: EdgeSequence},
			{From: "issue_components", To: "confirm_operation", Type: EdgeSequence},
			{From: "confirm_operation", To: "confirm_operation", Type: EdgeParallel}, // multiple parallel operations
			{From: "confirm_operation", To: "post_goods_receipt", Type: EdgeSequence},
			{From: "post_goods_receipt", To: "close_order", Type: EdgeSequence},
		},
		[]string{"create_production_order"},
		[]string{"close_order"},
		map[string]SLATarget{
			"release_order → issue_components": {Target: 24, Unit: "hours", Severity: "medium"},
		},
		nil,
	)
}

func maintainToSettle() *ReferenceModel {
	return New(
		M2S, "Maintain to Settle",
		[]string{"create_maintenance_notification", "create_maintenance_order", "schedule_work", "confirm_completion", "settle_costs"},
		[]Edge{
			{From: "create_maintenance_notification", To: "create_maintenance_order", Type: EdgeSequence},
			{From: "create_maintenance_order", To: "schedule_work", Type: EdgeSequence},
			{From: "schedule_work", To: "confirm_completion", Type: EdgeSequence},
			{From: "confirm_completion", To: "settle_costs", Type: EdgeSequence},
		},
		[]string{"create_maintenance_notification"},
		[]string{"settle_costs"},
		map[string]SLATarget{
			"create_maintenance_notification → create_maintenance_order": {Target: 24, Unit: "hours", Severity: "low"},
		},
		nil,
	)
}
