package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/comptlabs/waitlist/internal/adapter/llm"
	"github.com/comptlabs/waitlist/internal/domain"
	"github.com/comptlabs/waitlist/internal/pdfextract"
	"github.com/comptlabs/waitlist/internal/session"
)

const (
	// summaryTemperature is lower than team generation: summaries should be
	// near-deterministic.
	summaryTemperature = 0.1

	summaryMaxTokens = 500

	// summaryInputLimit caps how much extracted text is sent for
	// summarization.
	summaryInputLimit = 12000
)

// UploadPDF extracts text from a PDF, summarizes it, and stores both in the
// session. Summarization failure degrades to a fallback note rather than
// losing the extracted text.
func (s *Service) UploadPDF(ctx context.Context, store *session.Store, filename string, data []byte) (string, *domain.ContextItem, error) {
	text, err := pdfextract.Text(data)
	if err != nil {
		return "", nil, err
	}

	summary, err := s.summarize(ctx, text)
	if err != nil {
		s.logger.Warn("summarization failed, storing extraction only", "filename", filename, "error", err)
		summary = "[summary unavailable: " + err.Error() + "]"
	}

	key := store.StorePDFSummary(session.PDFSummaryInput{
		Filename:     filename,
		Summary:      summary,
		OriginalText: text,
		UploadedAt:   time.Now(),
	})
	item, _ := store.GetContext(key)
	return key, &item, nil
}

// UploadTextFile stores an uploaded plain-text file verbatim.
func (s *Service) UploadTextFile(store *session.Store, filename string, data []byte) (string, *domain.ContextItem, error) {
	if !utf8.Valid(data) {
		return "", nil, domain.NewValidationError("textFile", "file is not valid UTF-8 text")
	}
	key := store.StoreText(session.TextInput{
		Type:       domain.ContextTypeFileUpload,
		Title:      filename,
		Filename:   filename,
		Content:    string(data),
		UploadedAt: time.Now(),
	})
	item, _ := store.GetContext(key)
	return key, &item, nil
}

// PasteText stores pasted text under an optional title.
func (s *Service) PasteText(store *session.Store, title, text string) (string, *domain.ContextItem, error) {
	if text == "" {
		return "", nil, domain.NewValidationError("text", "text is required")
	}
	if title == "" {
		title = "Pasted Text"
	}
	key := store.StoreText(session.TextInput{
		Type:       domain.ContextTypePaste,
		Title:      title,
		Content:    text,
		UploadedAt: time.Now(),
	})
	item, _ := store.GetContext(key)
	return key, &item, nil
}

// summarize produces a bounded-length summary of extracted document text
// through the same model-access path as team generation.
func (s *Service) summarize(ctx context.Context, text string) (string, error) {
	if !s.llm.Configured() {
		return "", &domain.ConfigurationError{Setting: "OPENAI_API_KEY"}
	}
	if len(text) > summaryInputLimit {
		text = text[:summaryInputLimit]
	}

	temperature := summaryTemperature
	maxTokens := summaryMaxTokens
	resp, err := s.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: s.config.OpenAIModel,
		Messages: []llm.ChatMessage{
			{Role: "system", Content: "Summarize the following document in a few short paragraphs. Keep the key facts and drop boilerplate."},
			{Role: "user", Content: text},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}
