package domain

import "time"

// ContextType discriminates the stored context item variants.
type ContextType string

const (
	ContextTypePDFSummary ContextType = "pdf_summary"
	ContextTypeFileUpload ContextType = "file_upload"
	ContextTypePaste      ContextType = "paste"
)

// ContextItem is one piece of user-supplied or derived text held in
// session scope. Exactly one of the two shapes is populated depending on
// Type: pdf_summary items carry Summary/OriginalText, text items carry
// Title/Content.
type ContextItem struct {
	Key  string      `json:"key"`
	Type ContextType `json:"type"`

	Filename string `json:"filename,omitempty"`
	Title    string `json:"title,omitempty"`

	// pdf_summary fields
	Summary            string `json:"summary,omitempty"`
	OriginalText       string `json:"originalText,omitempty"`
	OriginalTextLength int    `json:"originalTextLength,omitempty"`

	// text fields
	Content       string `json:"content,omitempty"`
	ContentLength int    `json:"contentLength,omitempty"`

	UploadedAt time.Time `json:"uploadedAt"`
	StoredAt   time.Time `json:"storedAt"`
}

// ContextSummary is the preview row returned by context listings.
type ContextSummary struct {
	Key      string      `json:"key"`
	Type     ContextType `json:"type"`
	Title    string      `json:"title,omitempty"`
	Filename string      `json:"filename,omitempty"`
	Preview  string      `json:"preview"`
	StoredAt time.Time   `json:"storedAt"`
}

// ContextOverview is the full listing of a session's stored context.
type ContextOverview struct {
	Summary   []ContextSummary       `json:"summary"`
	TextCount int                    `json:"textCount"`
	PDFCount  int                    `json:"pdfCount"`
	Items     map[string]ContextItem `json:"items"`
}

// StorageStats reports counts and bookkeeping timestamps for one session's
// store.
type StorageStats struct {
	TextCount   int       `json:"textCount"`
	PDFCount    int       `json:"pdfCount"`
	TeamCount   int       `json:"teamCount"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}
