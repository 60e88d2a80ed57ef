package session

import (
	"strings"
	"testing"
	"time"

	"github.com/comptlabs/waitlist/internal/domain"
)

func TestStoreTextRoundTrip(t *testing.T) {
	s := NewStore()

	key := s.StoreText(TextInput{
		Type:    domain.ContextTypePaste,
		Title:   "Test",
		Content: "Hello world",
	})

	item, ok := s.GetContext(key)
	if !ok {
		t.Fatalf("stored item not found by key %q", key)
	}
	if item.Content != "Hello world" {
		t.Fatalf("content = %q, want %q", item.Content, "Hello world")
	}
	if item.Type != domain.ContextTypePaste {
		t.Fatalf("type = %q, want paste", item.Type)
	}
	if item.ContentLength != 11 {
		t.Fatalf("contentLength = %d, want 11", item.ContentLength)
	}
}

func TestStorePDFSummaryElidesLargeOriginal(t *testing.T) {
	s := NewStore()

	big := strings.Repeat("a", originalTextLimit+1)
	key := s.StorePDFSummary(PDFSummaryInput{
		Filename:     "big.pdf",
		Summary:      "a summary",
		OriginalText: big,
	})

	item, ok := s.GetContext(key)
	if !ok {
		t.Fatalf("stored item not found")
	}
	if item.Summary != "a summary" {
		t.Fatalf("summary must be kept verbatim, got %q", item.Summary)
	}
	if item.OriginalText == big {
		t.Fatalf("oversized original text should have been elided")
	}
	if !strings.Contains(item.OriginalText, "elided") {
		t.Fatalf("expected placeholder, got %q", item.OriginalText)
	}
	if item.OriginalTextLength != len(big) {
		t.Fatalf("originalTextLength = %d, want %d", item.OriginalTextLength, len(big))
	}
}

func TestStorePDFSummaryKeepsSmallOriginal(t *testing.T) {
	s := NewStore()
	key := s.StorePDFSummary(PDFSummaryInput{
		Filename:     "small.pdf",
		Summary:      "sum",
		OriginalText: "short original",
	})
	item, _ := s.GetContext(key)
	if item.OriginalText != "short original" {
		t.Fatalf("small original must be stored verbatim, got %q", item.OriginalText)
	}
}

func TestAllContextOrderedByRecency(t *testing.T) {
	s := NewStore()

	storeAt := func(title string, at time.Time) {
		key := s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: title, Content: title})
		item := s.texts[key]
		item.StoredAt = at
		s.texts[key] = item
	}
	base := time.Now()
	storeAt("A", base)
	storeAt("B", base.Add(time.Second))
	storeAt("C", base.Add(2*time.Second))

	overview := s.AllContext()
	if overview.TextCount != 3 {
		t.Fatalf("textCount = %d, want 3", overview.TextCount)
	}
	got := []string{overview.Summary[0].Title, overview.Summary[1].Title, overview.Summary[2].Title}
	want := []string{"C", "B", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAllContextPreviewTruncation(t *testing.T) {
	s := NewStore()
	long := strings.Repeat("x", 150)
	s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "long", Content: long})

	overview := s.AllContext()
	preview := overview.Summary[0].Preview
	if len(preview) != previewLen+3 {
		t.Fatalf("preview length = %d, want %d", len(preview), previewLen+3)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Fatalf("truncated preview should end with ellipsis: %q", preview)
	}

	s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "short", Content: "short text"})
	overview = s.AllContext()
	for _, sum := range overview.Summary {
		if sum.Title == "short" && sum.Preview != "short text" {
			t.Fatalf("short preview should be verbatim, got %q", sum.Preview)
		}
	}
}

func TestSearchContextExactTitleFirst(t *testing.T) {
	s := NewStore()
	s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "notes about go", Content: "go is fine"})
	time.Sleep(2 * time.Millisecond)
	s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "go", Content: "older but exact"})

	matches := s.SearchContext("GO")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Title != "go" {
		t.Fatalf("exact-title match should sort first, got %q", matches[0].Title)
	}
}

func TestSearchContextNoMatches(t *testing.T) {
	s := NewStore()
	s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "a", Content: "b"})
	if got := s.SearchContext("zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
	if got := s.SearchContext("   "); got != nil {
		t.Fatalf("blank query should return nil")
	}
}

func TestDeleteAndClearContext(t *testing.T) {
	s := NewStore()
	key := s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "t", Content: "c"})
	s.StorePDFSummary(PDFSummaryInput{Filename: "f.pdf", Summary: "s", OriginalText: "original text"})

	if !s.DeleteContext(key) {
		t.Fatalf("delete of existing key should succeed")
	}
	if s.DeleteContext(key) {
		t.Fatalf("second delete should report missing")
	}

	textCount, pdfCount := s.ClearAllContext()
	if textCount != 0 || pdfCount != 1 {
		t.Fatalf("clear counts = (%d,%d), want (0,1)", textCount, pdfCount)
	}
	if overview := s.AllContext(); len(overview.Items) != 0 {
		t.Fatalf("store should be empty after clear")
	}
}

func TestAgentTeamUpsert(t *testing.T) {
	s := NewStore()

	if _, err := s.StoreAgentTeam(&domain.AgentTeam{}); err == nil {
		t.Fatalf("team without id must be rejected")
	}

	id, err := s.StoreAgentTeam(&domain.AgentTeam{ID: "team_1", Goal: "launch"})
	if err != nil {
		t.Fatalf("StoreAgentTeam failed: %v", err)
	}
	s.StoreAgentTeam(&domain.AgentTeam{ID: "team_2", Goal: "grow"})

	// Upsert by the same ID overwrites in place.
	if _, err := s.StoreAgentTeam(&domain.AgentTeam{ID: "team_1", Goal: "relaunch"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	teams := s.AllAgentTeams()
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].ID != "team_1" || teams[0].Goal != "relaunch" {
		t.Fatalf("upsert should keep position and replace content: %+v", teams[0])
	}

	got, ok := s.GetAgentTeam(id)
	if !ok || got.Goal != "relaunch" {
		t.Fatalf("GetAgentTeam returned %+v, ok=%v", got, ok)
	}

	if !s.DeleteAgentTeam("team_2") {
		t.Fatalf("delete of existing team should succeed")
	}
	if s.DeleteAgentTeam("team_2") {
		t.Fatalf("second delete should report missing")
	}
}

func TestStatsTracksMutations(t *testing.T) {
	s := NewStore()
	before := s.Stats()

	time.Sleep(2 * time.Millisecond)
	s.StoreText(TextInput{Type: domain.ContextTypePaste, Title: "t", Content: "c"})

	after := s.Stats()
	if after.TextCount != 1 {
		t.Fatalf("textCount = %d, want 1", after.TextCount)
	}
	if !after.LastUpdated.After(before.LastUpdated) {
		t.Fatalf("lastUpdated should advance on mutation")
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("createdAt should not change")
	}
}
