package domain

// IngestionResult summarises what happened to the statement text during one run.
type IngestionResult struct {
	SourcePath    string         `json:"sourcePath"`
	CandidateRows int            `json:"candidateRows"` // Lines that look like the start of a loan row
	ParsedRows    int            `json:"parsedRows"`
	SkippedRows   int            `json:"skippedRows"`
	AbsentFields  map[string]int `json:"absentFields"` // Field name -> rows where it did not parse
	StoredRows    int            `json:"storedRows"`
	Duplicates    int            `json:"duplicates"`
}

// RunSummary is what the pipeline reports back to the operator.
type RunSummary struct {
	RunID          string          `json:"runID"`
	Ingestion      IngestionResult `json:"ingestion"`
	Total          LoanTotal       `json:"total"`
	TopBroker      *BrokerMaxLoan  `json:"topBroker"`
	ReportsWritten []string        `json:"reportsWritten"`
}
