package extraction

import "sort"

// FieldDef describes a single column in a data-dictionary table entry.
type FieldDef struct {
	Name   string
	Type   string
	Length int
	Key    bool
}

// TableDef describes one table's shape as recorded in the data dictionary.
type TableDef struct {
	Fields     []FieldDef
	ForeignKeys []string
	Indexes    []string
}

// DataDictionary is populated once, by the data-dictionary extractor in
// phase 2, and is read-only for the remainder of a run. After phase 2
// completes, ExtractionContext.DataDictionary is guaranteed non-nil.
type DataDictionary struct {
	Tables        map[string]TableDef
	DataElements  map[string]string
	Domains       map[string]string
	Views         map[string]string
	Relationships []Relationship
	Stats         map[string]interface{}
}

// Relationship records a foreign-key-shaped relationship between two tables
// discovered in the data dictionary.
type Relationship struct {
	FromTable string
	FromField string
	ToTable   string
	ToField   string
}

// NewDataDictionary returns an empty, ready-to-populate DataDictionary.
func NewDataDictionary() *DataDictionary {
	return &DataDictionary{
		Tables:       make(map[string]TableDef),
		DataElements: make(map[string]string),
		Domains:      make(map[string]string),
		Views:        make(map[string]string),
		Stats:        make(map[string]interface{}),
	}
}

// KnownTables returns the sorted list of table names the dictionary knows
// about. Used by gap analysis to distinguish "not in the system" from "not
// attempted".
func (d *DataDictionary) KnownTables() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Tables))
	for name := range d.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
