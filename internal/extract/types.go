package extract

// Marker values recorded when provenance could not be established.
const (
	// URLNotAvailable means the file carried no recognizable URL.
	URLNotAvailable = "Not available"
	// URLError means the file could not be processed at all.
	URLError = "Error extracting"
)

// DateRecord is one accepted date-like span together with its review
// context and provenance. Records are immutable once created; batching and
// prompt rendering only read them. The JSON shape is the batch metadata
// dump format.
type DateRecord struct {
	SourceFile string `json:"filename"`
	DateText   string `json:"date_found"`
	Context    string `json:"context"`
	Offset     int    `json:"position"`
	Pattern    string `json:"pattern_used"`
	SourceURL  string `json:"url"`
}

// PromptFileRef ties a source file to one generated prompt file. A file's
// records may land in several batches, so a summary carries a list of
// these.
type PromptFileRef struct {
	PromptFileName string `json:"prompt_file_name"`
	PromptFilePath string `json:"prompt_file_path"`
	BatchNumber    int    `json:"batch_number"`
}

// FileSummary is the per-file bookkeeping row of a run, serialized as one
// file_details entry of the comprehensive summary.
type FileSummary struct {
	FileName    string          `json:"scrap_file_name"`
	FilePath    string          `json:"scrap_file_location"`
	SourceURL   string          `json:"source_url"`
	DatesFound  int             `json:"dates_found_count"`
	HasDates    bool            `json:"has_business_dates"`
	PromptFiles []PromptFileRef `json:"prompt_files"`
	Error       string          `json:"processing_error,omitempty"`
}
