// Package agent runs coaching turns for the editor: it keeps the writer's
// profile and thread up to date around each call to the coach.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/audit"
	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/profile"
	"github.com/ziadkadry99/scenecoach/internal/screenplay"
	"github.com/ziadkadry99/scenecoach/internal/thread"
	"github.com/ziadkadry99/scenecoach/internal/transcript"
)

// Config holds the service's window sizes.
type Config struct {
	HistoryLimit int
	ThreadLimit  int
	NotesWindow  int
}

// DefaultConfig returns the stock windows.
func DefaultConfig() Config {
	return Config{
		HistoryLimit: 12,
		ThreadLimit:  thread.DefaultTranscriptLimit,
		NotesWindow:  profile.DefaultNotesWindow,
	}
}

// Service ties the coach to persistent profiles and threads.
type Service struct {
	coach    *coach.Coach
	profiles *profile.Store
	threads  *thread.Store
	runs     *audit.Store
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a Service. runs may be nil to skip the run log.
func NewService(c *coach.Coach, profiles *profile.Store, threads *thread.Store, runs *audit.Store, cfg Config, logger *zap.Logger) *Service {
	def := DefaultConfig()
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.ThreadLimit <= 0 {
		cfg.ThreadLimit = def.ThreadLimit
	}
	if cfg.NotesWindow <= 0 {
		cfg.NotesWindow = def.NotesWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		coach:    c,
		profiles: profiles,
		threads:  threads,
		runs:     runs,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Ask runs one coaching turn. The writer's message is stored and folded
// into their profile before the prompt is built, so the reply already
// reflects any preference it states. Only an accepted reply is stored.
func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	if strings.TrimSpace(req.ScriptID) == "" {
		return nil, fmt.Errorf("%w: script_id is required", ErrInvalidInput)
	}
	if req.Cursor != nil && req.Fountain == "" {
		return nil, fmt.Errorf("%w: cursor requires fountain", ErrInvalidInput)
	}
	if req.UserID == "" {
		req.UserID = AnonymousUser
	}

	p, err := s.profiles.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	th, err := s.threads.GetOrCreate(ctx, req.ScriptID, req.UserID)
	if err != nil {
		return nil, err
	}

	msg := strings.TrimSpace(req.UserMessage)
	if msg != "" {
		if _, err := s.threads.Append(ctx, th.ID, thread.RoleUser, msg); err != nil {
			return nil, err
		}
		updated := profile.ApplyUserText(*p, msg, s.now(), s.cfg.NotesWindow)
		if err := s.profiles.Save(ctx, updated); err != nil {
			return nil, err
		}
		p = &updated
	}

	recent, err := s.threads.Recent(ctx, th.ID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}
	history := make([]coach.Turn, 0, len(recent))
	for _, m := range recent {
		history = append(history, coach.Turn{Role: string(m.Role), Content: m.Content})
	}

	snapshot := p.Snapshot()
	creq := coach.Request{
		Style:         coach.ParseStyle(req.Style),
		Intent:        coach.ParseIntent(req.Intent),
		Mode:          coach.ParseMode(req.Mode),
		SelectionText: req.SelectionText,
		SceneText:     req.SceneText,
		SceneSlugline: req.SceneSlugline,
		ScriptTitle:   req.ScriptTitle,
		UserMessage:   msg,
		Cursor:        req.CursorContext,
		Profile:       &snapshot,
		History:       history,
		OnAttempt:     req.OnAttempt,
	}
	if req.Cursor != nil {
		FillFromDocument(&creq, req.Fountain, *req.Cursor)
	}

	log := s.logger.With(zap.String("thread", th.ID), zap.String("user", req.UserID))
	res, runErr := s.coach.Run(ctx, creq)
	s.logRun(ctx, log, audit.FromRun(req.UserID, th.ID, coach.Resolve(creq.Style, creq.Intent, msg), res, runErr))
	if runErr != nil {
		return nil, runErr
	}

	if _, err := s.threads.Append(ctx, th.ID, thread.RoleAssistant, res.Text); err != nil {
		return nil, err
	}
	log.Info("coach turn accepted",
		zap.String("contract", string(res.Contract.Kind())),
		zap.Int("attempts", len(res.Attempts)))

	return &AskResponse{
		ThreadID:      th.ID,
		Text:          res.Text,
		Contract:      res.Contract,
		ContractKind:  res.Contract.Kind(),
		Attempts:      len(res.Attempts),
		InputTokens:   res.InputTokens,
		OutputTokens:  res.OutputTokens,
		WriterProfile: snapshot,
	}, nil
}

// FillFromDocument derives cursor context and, where the caller left them
// empty, the scene text and slugline from the full document.
func FillFromDocument(req *coach.Request, fountain string, pos CursorPosition) {
	scenes := screenplay.ParseScenes(fountain)
	cc := screenplay.ComputeCursorContext(fountain, pos.Line, pos.Column, scenes)
	req.Cursor = &cc

	if cc.SceneIndex == 0 {
		return
	}
	if req.SceneText == "" {
		if text, ok := screenplay.SceneText(fountain, scenes, cc.SceneIndex); ok {
			req.SceneText = text
		}
	}
	if req.SceneSlugline == "" {
		req.SceneSlugline = cc.SceneSlugline
	}
}

func (s *Service) logRun(ctx context.Context, log *zap.Logger, e audit.Entry) {
	if s.runs == nil {
		return
	}
	// The run log outlives a cancelled request.
	if _, err := s.runs.Log(context.WithoutCancel(ctx), e); err != nil {
		log.Warn("recording coach run", zap.Error(err))
	}
}

// Thread returns the most recent messages of the writer's thread for a
// script, creating the thread if needed. limit <= 0 uses the configured
// transcript size.
func (s *Service) Thread(ctx context.Context, scriptID, userID string, limit int) (*ThreadView, error) {
	if strings.TrimSpace(scriptID) == "" {
		return nil, fmt.Errorf("%w: script_id is required", ErrInvalidInput)
	}
	if userID == "" {
		userID = AnonymousUser
	}
	if limit <= 0 {
		limit = s.cfg.ThreadLimit
	}

	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	th, err := s.threads.GetOrCreate(ctx, scriptID, userID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.threads.Recent(ctx, th.ID, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []thread.Message{}
	}

	snapshot := p.Snapshot()
	snapshot.Notes = ""
	return &ThreadView{ThreadID: th.ID, ScriptID: scriptID, Messages: msgs, WriterProfile: snapshot}, nil
}

// ThreadByID returns a stored thread's transcript. It only answers for the
// thread's owner.
func (s *Service) ThreadByID(ctx context.Context, id, userID string) (*ThreadView, error) {
	if userID == "" {
		userID = AnonymousUser
	}
	th, err := s.threads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if th == nil || th.UserID != userID {
		return nil, fmt.Errorf("thread %s: %w", id, ErrNotFound)
	}
	return s.Thread(ctx, th.ScriptID, userID, 0)
}

// ExportHTML renders the writer's thread for a script as an HTML page.
func (s *Service) ExportHTML(ctx context.Context, scriptID, userID, title string) (string, error) {
	view, err := s.Thread(ctx, scriptID, userID, 0)
	if err != nil {
		return "", err
	}
	return transcript.RenderHTML(title, view.Messages)
}

// Validate checks text against a style's rules without calling a model.
func Validate(req ValidateRequest) ValidateResponse {
	v := coach.Validate(coach.ParseStyle(req.Style), req.Text)
	return ValidateResponse{
		Valid:              v == nil,
		Violation:          v,
		StartsWithQuestion: coach.StartsWithQuestion(req.Text),
		HasQuickRead:       coach.HasQuickReadSection(req.Text),
	}
}
