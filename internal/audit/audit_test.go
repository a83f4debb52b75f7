package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:           "run-1",
		UserID:       "alice",
		ThreadID:     "thread-1",
		Style:        coach.StyleSocratic,
		ContractKind: coach.KindSocratic,
		Outcome:      OutcomeAccepted,
		Attempts:     2,
		Violations:   []string{"not_a_question"},
		InputTokens:  120,
		OutputTokens: 30,
	}
	if _, err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.UserID != "alice" || got.ThreadID != "thread-1" {
		t.Errorf("unexpected ids %+v", got)
	}
	if got.ContractKind != coach.KindSocratic || got.Outcome != OutcomeAccepted {
		t.Errorf("unexpected kind/outcome %s/%s", got.ContractKind, got.Outcome)
	}
	if got.Attempts != 2 || got.InputTokens != 120 || got.OutputTokens != 30 {
		t.Errorf("unexpected counters %+v", got)
	}
	if len(got.Violations) != 1 || got.Violations[0] != "not_a_question" {
		t.Errorf("Violations = %v", got.Violations)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestLogGeneratesUUID(t *testing.T) {
	store := setupStore(t)

	id, err := store.Log(context.Background(), Entry{UserID: "alice", Style: coach.StyleDirector, ContractKind: coach.KindDirectorStandard, Outcome: OutcomeAccepted})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected UUID, got %q", id)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)

	got, err := store.GetByID(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func logRuns(t *testing.T, store *Store, users []string, outcome Outcome) {
	t.Helper()
	for _, u := range users {
		if _, err := store.Log(context.Background(), Entry{
			UserID:       u,
			Style:        coach.StyleDirector,
			ContractKind: coach.KindDirectorStandard,
			Outcome:      outcome,
		}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	logRuns(t, store, []string{"alice", "bob"}, OutcomeAccepted)
	logRuns(t, store, []string{"alice"}, OutcomeExhausted)

	byUser, err := store.Query(ctx, QueryFilter{UserID: "alice"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("expected 2 entries for alice, got %d", len(byUser))
	}

	byOutcome, err := store.Query(ctx, QueryFilter{Outcome: OutcomeExhausted})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byOutcome) != 1 || byOutcome[0].UserID != "alice" {
		t.Errorf("unexpected exhausted entries %+v", byOutcome)
	}

	byStyle, err := store.Query(ctx, QueryFilter{Style: coach.StyleSocratic})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byStyle) != 0 {
		t.Errorf("expected no socratic entries, got %d", len(byStyle))
	}
}

func TestQueryLimitOffset(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	logRuns(t, store, []string{"a", "b", "c", "d", "e"}, OutcomeAccepted)

	entries, err := store.Query(ctx, QueryFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(entries))
	}

	entries, err = store.Query(ctx, QueryFilter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry past offset, got %d", len(entries))
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	logRuns(t, store, []string{"a", "b", "c"}, OutcomeAccepted)

	deleted, err := store.DeleteBefore(ctx, time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}
}

func TestFromRunAccepted(t *testing.T) {
	contract := coach.Resolve(coach.StyleSocratic, coach.IntentNone, "")
	res := &coach.Result{
		Text:     "Why now?",
		Contract: contract,
		Attempts: []coach.AttemptResult{
			{Index: 0, Violation: &coach.Violation{Kind: coach.NotAQuestion}},
			{Index: 1, Passed: true},
		},
		InputTokens:  40,
		OutputTokens: 5,
	}

	e := FromRun("alice", "t1", contract, res, nil)
	if e.Outcome != OutcomeAccepted || e.Attempts != 2 {
		t.Errorf("unexpected entry %+v", e)
	}
	if len(e.Violations) != 1 || e.Violations[0] != string(coach.NotAQuestion) {
		t.Errorf("Violations = %v", e.Violations)
	}
	if e.ContractKind != coach.KindSocratic || e.InputTokens != 40 {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestFromRunExhausted(t *testing.T) {
	contract := coach.Resolve(coach.StyleDirector, coach.IntentDiscussScene, "")
	err := &coach.ContractExhaustedError{
		Style: coach.StyleDirector,
		Attempts: []coach.AttemptResult{
			{Index: 0, Structural: coach.ProbeQuickRead},
			{Index: 1, Violation: &coach.Violation{Kind: coach.GeneratedDialogue, Detail: "MAYA"}},
			{Index: 2, Violation: &coach.Violation{Kind: coach.GeneratedDialogue, Detail: "MAYA"}},
		},
		Last: &coach.Violation{Kind: coach.GeneratedDialogue, Detail: "MAYA"},
	}

	e := FromRun("alice", "t1", contract, nil, err)
	if e.Outcome != OutcomeExhausted || e.Attempts != 3 {
		t.Errorf("unexpected entry %+v", e)
	}
	want := []string{coach.ProbeQuickRead, "generated_dialogue", "generated_dialogue"}
	if len(e.Violations) != len(want) {
		t.Fatalf("Violations = %v, want %v", e.Violations, want)
	}
	for i := range want {
		if e.Violations[i] != want[i] {
			t.Errorf("Violations[%d] = %q, want %q", i, e.Violations[i], want[i])
		}
	}
	if e.ContractKind != coach.KindDirectorDiscuss {
		t.Errorf("ContractKind = %s", e.ContractKind)
	}
}

func TestFromRunUpstream(t *testing.T) {
	contract := coach.Resolve(coach.StyleDirector, coach.IntentNone, "")
	err := &coach.UpstreamError{Attempt: 1, Err: errors.New("503")}

	e := FromRun("alice", "", contract, nil, err)
	if e.Outcome != OutcomeUpstreamError || e.Attempts != 2 {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Summary == "" {
		t.Error("expected summary")
	}
}

// --- HTTP handler tests ---

func setupRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestHTTPGetByID(t *testing.T) {
	r, store := setupRouter(t)

	if _, err := store.Log(context.Background(), Entry{
		ID: "http-1", UserID: "alice", Style: coach.StyleSocratic,
		ContractKind: coach.KindSocratic, Outcome: OutcomeAccepted, Attempts: 1,
	}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/audit/http-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got Entry
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "http-1" || got.UserID != "alice" {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestHTTPGetByIDNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/audit/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHTTPQueryWithFilter(t *testing.T) {
	r, store := setupRouter(t)

	logRuns(t, store, []string{"alice", "bob", "alice"}, OutcomeAccepted)

	req := httptest.NewRequest(http.MethodGet, "/api/audit?user=alice&limit=10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var entries []Entry
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries for alice, got %d", len(entries))
	}
}
