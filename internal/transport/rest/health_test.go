package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/domain"
)

type itemListerMock struct {
	items []domain.StudyItem
}

func (m *itemListerMock) Items() []domain.StudyItem {
	return m.items
}

func loadedItems() *itemListerMock {
	return &itemListerMock{items: []domain.StudyItem{
		domain.Question{ID: uuid.New(), Statement: "q", Options: []string{"a", "b"}, Answer: "a"},
		domain.Question{ID: uuid.New(), Statement: "q", Options: []string{"a", "b"}, Answer: "b"},
		domain.Flashcard{ID: uuid.New(), Front: "f", Back: "b"},
	}}
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&itemListerMock{}, "test-version")

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		items      *itemListerMock
		wantCode   int
		wantStatus string
	}{
		{name: "items loaded", items: loadedItems(), wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "no items", items: &itemListerMock{}, wantCode: http.StatusServiceUnavailable, wantStatus: "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(tt.items, "test-version")
			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeHealth(t, rec); resp.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
		})
	}
}

func TestHealth_CountsPerKind(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(loadedItems(), "v1.2.3")
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Version != "v1.2.3" {
		t.Errorf("expected version 'v1.2.3', got %q", resp.Version)
	}
	if got := resp.Components["decks"].Items; got != 3 {
		t.Errorf("decks items = %d, want 3", got)
	}
	if got := resp.Components["question"].Items; got != 2 {
		t.Errorf("question items = %d, want 2", got)
	}
	if got := resp.Components["flashcard"].Items; got != 1 {
		t.Errorf("flashcard items = %d, want 1", got)
	}
}

func TestHealth_NoItems(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&itemListerMock{}, "test-version")
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Components["decks"].Status != "down" {
		t.Errorf("decks status = %q, want 'down'", resp.Components["decks"].Status)
	}
}
