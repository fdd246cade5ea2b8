package extractors

import (
	"context"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

// InterfacesID is the registry key for the interfaces extractor.
const InterfacesID = "interfaces"

// Interfaces reads RFC destinations, the interface catalogue, and IDoc
// statistics via classic table reads, then attempts an OData probe of the
// gateway catalogue service. Systems without an active gateway have no
// OData service to read, which is exactly the NO_RFC gap category
// surfaces: the absence is itself a finding, not an error.
type Interfaces struct{}

// NewInterfaces constructs an Interfaces extractor.
func NewInterfaces() extraction.Extractor { return Interfaces{} }

func (Interfaces) Identity() extraction.Identity {
	return extraction.Identity{ExtractorID: InterfacesID, Name: "Interfaces", Module: "BC-MID", Category: "interfaces"}
}

func (Interfaces) Tables() []extraction.TableExpectation {
	return []extraction.TableExpectation{
		{Name: "RFC_DESTINATIONS", Description: "Configured RFC destinations", Critical: true},
		{Name: "INTERFACE_CATALOG", Description: "Interface catalogue"},
		{Name: "IDOC_STATS", Description: "IDoc processing statistics"},
	}
}

func (e Interfaces) ExtractLive(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	out := make(map[string][]extraction.Row)
	for _, table := range []string{"RFC_DESTINATIONS", "IDOC_STATS"} {
		res, err := h.ReadTable(ctx, table, extraction.ReadOptions{})
		if err != nil {
			continue
		}
		out[table] = res.Rows
	}

	// The interface catalogue is exposed as a gateway OData service on
	// systems with BC-MID configured; on RFC-only systems there is no
	// gateway to ask, which is the NO_RFC gap itself rather than a failure.
	rows, err := h.ReadOData(ctx, "IWFND", "InterfaceCatalog")
	if err != nil {
		h.Skip("INTERFACE_CATALOG", "no gateway/OData service exposed on this system")
	} else {
		out["INTERFACE_CATALOG"] = rows
	}

	return out, nil
}

func (e Interfaces) ExtractOffline(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	fixtures := map[string][]extraction.Row{
		"RFC_DESTINATIONS": {
			{"destination": "ECC_PRD", "type": "3", "target_host": "ecc-prd.internal"},
		},
		"INTERFACE_CATALOG": {
			{"interface_id": "IF-EDI-850", "description": "Inbound purchase order EDI"},
		},
		"IDOC_STATS": {
			{"message_type": "ORDERS", "status": "53", "count": 412},
		},
		"GATEWAY_SERVICES": {
			{"service": "API_PURCHASEORDER_PROCESS_SRV", "version": "0002"},
		},
	}
	return offlineAll(h, fixtures), nil
}
