package extractors

import (
	"context"
	"testing"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

func TestRegisterWiresAllExtractors(t *testing.T) {
	r := extraction.NewRegistry()
	if err := Register(r); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !r.Has(SystemInfoID) || !r.Has(DataDictionaryID) {
		t.Fatalf("expected singleton extractors registered")
	}

	want := []string{
		FinancialsID, SecurityID, InterfacesID, MasterDataID, ChangeDocumentsID,
		UsageStatisticsID, BatchJobsID, WorkflowsID, CustomCodeID, ConfigurationID,
	}
	ids := r.ModuleIDs()
	if len(ids) != len(want) {
		t.Fatalf("expected %d module extractors, got %d: %v", len(want), len(ids), ids)
	}
	for _, id := range want {
		if !r.Has(id) {
			t.Fatalf("expected module extractor %q registered", id)
		}
	}
}

func TestOfflineExtractionCoversExpectedTables(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)

	for _, ext := range []extraction.Extractor{
		NewSystemInfo(), NewDataDictionary(), NewFinancials(), NewSecurity(),
		NewInterfaces(), NewMasterData(), NewChangeDocuments(), NewUsageStatistics(),
		NewBatchJobs(), NewWorkflows(), NewCustomCode(), NewConfiguration(),
	} {
		result := extraction.Run(context.Background(), rc, ext)
		if result.Status != extraction.StatusSuccess {
			t.Fatalf("%s: expected success offline, got %+v", ext.Identity().ExtractorID, result)
		}
		for _, expect := range ext.Tables() {
			if expect.Critical {
				if _, ok := result.Tables[expect.Name]; !ok {
					t.Errorf("%s: critical table %s missing from offline result", ext.Identity().ExtractorID, expect.Name)
				}
			}
		}
	}

	if rc.DataDictionary == nil {
		t.Fatalf("expected data dictionary extractor to populate rc.DataDictionary")
	}
	if rc.DataDictionary.Stats["table_count"].(int) == 0 {
		t.Fatalf("expected data dictionary to record a non-zero table count")
	}
}

func TestChangeDocumentsStreamsItemsOffline(t *testing.T) {
	rc := extraction.NewContext(extraction.ModeOffline, nil, nil, nil)
	result := extraction.Run(context.Background(), rc, NewChangeDocuments())

	if result.Status != extraction.StatusSuccess {
		t.Fatalf("expected success, got %+v", result)
	}
	if len(result.Tables["CHANGE_DOCUMENT_ITEMS"]) == 0 {
		t.Fatalf("expected at least one change document item row")
	}
}
