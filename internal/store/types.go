package store

// Run outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Run is one row of run history.
type Run struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	ProgramHash   string `json:"program_hash"`
	SourcePath    string `json:"source_path"`
	StartedAt     string `json:"started_at"` // RFC 3339, informational only
	Steps         int64  `json:"steps"`
	InputBytes    int64  `json:"input_bytes"`
	OutputBytes   int64  `json:"output_bytes"`
	Outcome       string `json:"outcome"`
	ErrorCode     string `json:"error_code,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
	EngineVersion string `json:"engine_version"`
}

// ListOptions filters ListRuns.
type ListOptions struct {
	// Limit caps the number of rows; zero or less means no limit.
	Limit int

	// ProgramHash restricts the listing to one program when non-empty.
	ProgramHash string
}
