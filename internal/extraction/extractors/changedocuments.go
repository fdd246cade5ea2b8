package extractors

import (
	"context"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

// ChangeDocumentsID is the registry key for the change document extractor.
const ChangeDocumentsID = "change_documents"

// ChangeDocuments reads CHANGE_DOCUMENTS and CHANGE_DOCUMENT_ITEMS. Change
// document tables are typically the largest in the system (every field
// change to every business object, retained for years), so unlike the
// other extractors this one streams CHANGE_DOCUMENT_ITEMS in chunks rather
// than reading it in one call.
type ChangeDocuments struct{}

// NewChangeDocuments constructs a ChangeDocuments extractor.
func NewChangeDocuments() extraction.Extractor { return ChangeDocuments{} }

func (ChangeDocuments) Identity() extraction.Identity {
	return extraction.Identity{ExtractorID: ChangeDocumentsID, Name: "Change Documents", Module: "BC-SRV", Category: "change_documents"}
}

func (ChangeDocuments) Tables() []extraction.TableExpectation {
	return []extraction.TableExpectation{
		{Name: "CHANGE_DOCUMENTS", Description: "Change document headers", Critical: true},
		{Name: "CHANGE_DOCUMENT_ITEMS", Description: "Change document field-level items", Critical: true},
	}
}

func (c ChangeDocuments) ExtractLive(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	out := make(map[string][]extraction.Row)

	if res, err := h.ReadTable(ctx, "CHANGE_DOCUMENTS", extraction.ReadOptions{}); err == nil {
		out["CHANGE_DOCUMENTS"] = res.Rows
	}

	chunks, err := h.StreamTable(ctx, "CHANGE_DOCUMENT_ITEMS", extraction.StreamOptions{ChunkSize: 5000})
	if err != nil {
		return out, nil
	}
	var items []extraction.Row
	for chunk := range chunks {
		items = append(items, chunk.Rows...)
	}
	out["CHANGE_DOCUMENT_ITEMS"] = items

	return out, nil
}

func (c ChangeDocuments) ExtractOffline(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	fixtures := map[string][]extraction.Row{
		"CHANGE_DOCUMENTS": {
			{"change_id": "CD1", "object": "MATERIAL", "object_id": "M1000", "changed_by": "JDOE", "changed_at": "2026-01-04T08:00:00Z"},
		},
		"CHANGE_DOCUMENT_ITEMS": {
			{"change_id": "CD1", "field": "PRICE", "old_value": "10.00", "new_value": "12.50"},
		},
	}
	return offlineAll(h, fixtures), nil
}
