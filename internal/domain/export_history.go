package domain

// ExportHistoryEntry records one spreadsheet export. Append-only; entries are
// never mutated, only bulk-cleared.
type ExportHistoryEntry struct {
	Meta
	Filename string `json:"filename"`
	SavedAt  string `json:"savedAt"`
	Counts   string `json:"counts"` // human-readable summary, e.g. "현장:6, 직원:8, 배정:5"
	Operator string `json:"operator,omitempty"`
}
