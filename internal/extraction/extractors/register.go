package extractors

import "github.com/erpforensic/reconstructor/internal/extraction"

// Register wires every concrete extractor into r: the two singleton phases
// (system info, data dictionary) and the ten parallel module extractors.
// This replaces the dynamic class-registration side effect a
// dynamically-typed ERP tool would rely on with an explicit call list.
func Register(r *extraction.Registry) error {
	r.RegisterSystemInfo(SystemInfoID, func() extraction.Extractor { return NewSystemInfo() })
	r.RegisterDataDictionary(DataDictionaryID, func() extraction.Extractor { return NewDataDictionary() })

	modules := []struct {
		id      string
		factory extraction.Factory
	}{
		{FinancialsID, func() extraction.Extractor { return NewFinancials() }},
		{SecurityID, func() extraction.Extractor { return NewSecurity() }},
		{InterfacesID, func() extraction.Extractor { return NewInterfaces() }},
		{MasterDataID, func() extraction.Extractor { return NewMasterData() }},
		{ChangeDocumentsID, func() extraction.Extractor { return NewChangeDocuments() }},
		{UsageStatisticsID, func() extraction.Extractor { return NewUsageStatistics() }},
		{BatchJobsID, func() extraction.Extractor { return NewBatchJobs() }},
		{WorkflowsID, func() extraction.Extractor { return NewWorkflows() }},
		{CustomCodeID, func() extraction.Extractor { return NewCustomCode() }},
		{ConfigurationID, func() extraction.Extractor { return NewConfiguration() }},
	}

	for _, m := range modules {
		if err := r.RegisterModule(m.id, m.factory); err != nil {
			return err
		}
	}
	return nil
}
