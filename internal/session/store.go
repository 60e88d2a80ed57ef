// Package session provides the session-scoped in-memory store for uploaded
// context and generated agent teams, plus the cookie-backed session manager.
package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/comptlabs/waitlist/internal/domain"
)

const (
	// originalTextLimit is the size above which a PDF's extracted text is
	// elided in storage. The summary is always kept verbatim.
	originalTextLimit = 50000

	previewLen = 100
)

// TextInput is the input to StoreText.
type TextInput struct {
	Type       domain.ContextType
	Title      string
	Filename   string
	Content    string
	UploadedAt time.Time
}

// PDFSummaryInput is the input to StorePDFSummary.
type PDFSummaryInput struct {
	Filename     string
	Summary      string
	OriginalText string
	UploadedAt   time.Time
}

// Store holds one session's context items and agent teams. All methods are
// safe for concurrent use, though within a session requests mutate it one at
// a time.
type Store struct {
	mu sync.RWMutex

	texts map[string]domain.ContextItem
	pdfs  map[string]domain.ContextItem
	teams []domain.AgentTeam

	createdAt   time.Time
	lastUpdated time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	now := time.Now()
	return &Store{
		texts:       make(map[string]domain.ContextItem),
		pdfs:        make(map[string]domain.ContextItem),
		createdAt:   now,
		lastUpdated: now,
	}
}

// StoreText stores a text context item and returns its generated key.
func (s *Store) StoreText(in TextInput) string {
	identifier := in.Filename
	if identifier == "" {
		identifier = in.Title
	}
	key := newStorageKey("text", identifier)

	uploadedAt := in.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}

	item := domain.ContextItem{
		Key:           key,
		Type:          in.Type,
		Title:         in.Title,
		Filename:      in.Filename,
		Content:       in.Content,
		ContentLength: len(in.Content),
		UploadedAt:    uploadedAt,
		StoredAt:      time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[key] = item
	s.touch()
	return key
}

// StorePDFSummary stores a PDF summary item and returns its generated key.
// Original text above the size limit is replaced with a placeholder; the
// summary is stored verbatim.
func (s *Store) StorePDFSummary(in PDFSummaryInput) string {
	key := newStorageKey("pdf", in.Filename)

	uploadedAt := in.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}

	original := in.OriginalText
	if len(original) > originalTextLimit {
		original = fmt.Sprintf("[original text elided: %d chars]", len(in.OriginalText))
	}

	item := domain.ContextItem{
		Key:                key,
		Type:               domain.ContextTypePDFSummary,
		Filename:           in.Filename,
		Summary:            in.Summary,
		OriginalText:       original,
		OriginalTextLength: len(in.OriginalText),
		UploadedAt:         uploadedAt,
		StoredAt:           time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pdfs[key] = item
	s.touch()
	return key
}

// GetContext looks up one item by key across both families.
func (s *Store) GetContext(key string) (domain.ContextItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.texts[key]; ok {
		return item, true
	}
	if item, ok := s.pdfs[key]; ok {
		return item, true
	}
	return domain.ContextItem{}, false
}

// AllContext returns previews of everything stored, newest first, plus counts
// and the raw items.
func (s *Store) AllContext() domain.ContextOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	overview := domain.ContextOverview{
		TextCount: len(s.texts),
		PDFCount:  len(s.pdfs),
		Items:     make(map[string]domain.ContextItem, len(s.texts)+len(s.pdfs)),
	}
	for k, v := range s.texts {
		overview.Items[k] = v
		overview.Summary = append(overview.Summary, summarize(v))
	}
	for k, v := range s.pdfs {
		overview.Items[k] = v
		overview.Summary = append(overview.Summary, summarize(v))
	}
	sort.Slice(overview.Summary, func(i, j int) bool {
		return overview.Summary[i].StoredAt.After(overview.Summary[j].StoredAt)
	})
	return overview
}

// SearchContext matches query case-insensitively against titles, filenames,
// and content/summaries. Exact title matches sort first, then recency.
func (s *Store) SearchContext(query string) []domain.ContextSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.ContextSummary
	exact := make(map[string]bool)
	for _, family := range []map[string]domain.ContextItem{s.texts, s.pdfs} {
		for _, item := range family {
			title := strings.ToLower(item.Title)
			filename := strings.ToLower(item.Filename)
			body := strings.ToLower(itemBody(item))
			if strings.Contains(title, q) || strings.Contains(filename, q) || strings.Contains(body, q) {
				matches = append(matches, summarize(item))
				if title == q || filename == q {
					exact[item.Key] = true
				}
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		ei, ej := exact[matches[i].Key], exact[matches[j].Key]
		if ei != ej {
			return ei
		}
		return matches[i].StoredAt.After(matches[j].StoredAt)
	})
	return matches
}

// DeleteContext removes one item by key.
func (s *Store) DeleteContext(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.texts[key]; ok {
		delete(s.texts, key)
		s.touch()
		return true
	}
	if _, ok := s.pdfs[key]; ok {
		delete(s.pdfs, key)
		s.touch()
		return true
	}
	return false
}

// ClearAllContext empties both context families and returns how many items
// of each kind were removed. Agent teams are untouched.
func (s *Store) ClearAllContext() (textCount, pdfCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	textCount, pdfCount = len(s.texts), len(s.pdfs)
	s.texts = make(map[string]domain.ContextItem)
	s.pdfs = make(map[string]domain.ContextItem)
	s.touch()
	return textCount, pdfCount
}

// StoreAgentTeam upserts a team by ID, preserving list position on replace.
func (s *Store) StoreAgentTeam(team *domain.AgentTeam) (string, error) {
	if team == nil || team.ID == "" {
		return "", fmt.Errorf("agent team must have an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teams {
		if s.teams[i].ID == team.ID {
			s.teams[i] = *team
			s.touch()
			return team.ID, nil
		}
	}
	s.teams = append(s.teams, *team)
	s.touch()
	return team.ID, nil
}

// GetAgentTeam returns one team by ID.
func (s *Store) GetAgentTeam(id string) (domain.AgentTeam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.teams {
		if s.teams[i].ID == id {
			return s.teams[i], true
		}
	}
	return domain.AgentTeam{}, false
}

// AllAgentTeams returns the teams in insertion order.
func (s *Store) AllAgentTeams() []domain.AgentTeam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AgentTeam, len(s.teams))
	copy(out, s.teams)
	return out
}

// DeleteAgentTeam removes one team by ID.
func (s *Store) DeleteAgentTeam(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teams {
		if s.teams[i].ID == id {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			s.touch()
			return true
		}
	}
	return false
}

// Stats returns counts and bookkeeping timestamps.
func (s *Store) Stats() domain.StorageStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.StorageStats{
		TextCount:   len(s.texts),
		PDFCount:    len(s.pdfs),
		TeamCount:   len(s.teams),
		CreatedAt:   s.createdAt,
		LastUpdated: s.lastUpdated,
	}
}

// touch must be called with the write lock held.
func (s *Store) touch() {
	s.lastUpdated = time.Now()
}

func summarize(item domain.ContextItem) domain.ContextSummary {
	return domain.ContextSummary{
		Key:      item.Key,
		Type:     item.Type,
		Title:    item.Title,
		Filename: item.Filename,
		Preview:  preview(itemBody(item)),
		StoredAt: item.StoredAt,
	}
}

func itemBody(item domain.ContextItem) string {
	if item.Type == domain.ContextTypePDFSummary {
		return item.Summary
	}
	return item.Content
}

func preview(text string) string {
	if len(text) <= previewLen {
		return text
	}
	return text[:previewLen] + "..."
}
