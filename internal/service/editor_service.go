package service

import (
	"context"
	"sync"
	"time"

	"tagebuch/internal/logger"
	"tagebuch/internal/service/enrich"
)

// DefaultSessionTTL is how long an untouched editor session is kept.
const DefaultSessionTTL = 30 * time.Minute

// EditorSession is the state of one open editor.
type EditorSession struct {
	ID      string `json:"id"`
	EntryID string `json:"entryId,omitempty"`
	enrich.Snapshot
	OpenedAt   time.Time `json:"openedAt"`
	LastActive time.Time `json:"lastActive"`
}

//go:generate mockgen -source=editor_service.go -destination=mock/mock_editor_service.go -package=mock

// EditorService keeps one correction controller per open editor.
type EditorService interface {
	// Open starts a session, seeded from an existing entry when entryID is set.
	Open(ctx context.Context, entryID string) (EditorSession, error)
	Edit(ctx context.Context, id, text string) (EditorSession, error)
	CorrectNow(ctx context.Context, id string) (EditorSession, error)
	Get(ctx context.Context, id string) (EditorSession, error)
	Close(ctx context.Context, id string) error
	// SweepIdle closes sessions idle longer than the TTL and returns how many.
	SweepIdle(ctx context.Context) int
	// Shutdown closes every session.
	Shutdown()
}

// EditorOptions configure an EditorService. Zero values select defaults.
type EditorOptions struct {
	Debounce time.Duration
	Timeout  time.Duration
	TTL      time.Duration
	Clock    Clock
	Timers   enrich.Clock
}

type editorSession struct {
	id         string
	entryID    string
	ctrl       *enrich.Controller
	openedAt   time.Time
	lastActive time.Time
}

type editorService struct {
	entries   EntryService
	corrector enrich.Corrector
	ids       IDGenerator
	opts      EditorOptions

	mu       sync.Mutex
	sessions map[string]*editorSession
}

func NewEditorService(entries EntryService, corrector enrich.Corrector, ids IDGenerator, opts EditorOptions) EditorService {
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	return &editorService{
		entries:   entries,
		corrector: corrector,
		ids:       ids,
		opts:      opts,
		sessions:  make(map[string]*editorSession),
	}
}

func (s *editorService) Open(ctx context.Context, entryID string) (EditorSession, error) {
	ctrl := enrich.NewController(s.corrector, enrich.Options{
		Delay:   s.opts.Debounce,
		Timeout: s.opts.Timeout,
		Clock:   s.opts.Timers,
	})
	if entryID != "" {
		entry, err := s.entries.Get(ctx, entryID)
		if err != nil {
			ctrl.Close()
			return EditorSession{}, err
		}
		ctrl.Reset(entry.Body, entry.Correction)
	}

	now := s.opts.Clock.Now().UTC()
	sess := &editorSession{
		id:         s.ids.New(),
		entryID:    entryID,
		ctrl:       ctrl,
		openedAt:   now,
		lastActive: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	logger.Debug("editor session opened", "module", "service", "action", "create", "resource", "editor", "result", "ok", "session_id", sess.id, "entry_id", entryID, "sessions", count)
	return s.view(sess), nil
}

func (s *editorService) Edit(ctx context.Context, id, text string) (EditorSession, error) {
	sess, err := s.touch(id)
	if err != nil {
		return EditorSession{}, err
	}
	sess.ctrl.Edit(text)
	return s.view(sess), nil
}

func (s *editorService) CorrectNow(ctx context.Context, id string) (EditorSession, error) {
	sess, err := s.touch(id)
	if err != nil {
		return EditorSession{}, err
	}
	sess.ctrl.CorrectNow()
	return s.view(sess), nil
}

func (s *editorService) Get(ctx context.Context, id string) (EditorSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return EditorSession{}, ErrNotFound
	}
	return s.view(sess), nil
}

func (s *editorService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	sess.ctrl.Close()
	logger.Debug("editor session closed", "module", "service", "action", "delete", "resource", "editor", "result", "ok", "session_id", id)
	return nil
}

func (s *editorService) SweepIdle(ctx context.Context) int {
	cutoff := s.opts.Clock.Now().UTC().Add(-s.opts.TTL)

	s.mu.Lock()
	var idle []*editorSession
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.ctrl.Close()
	}
	if len(idle) > 0 {
		logger.Info("idle editor sessions closed", "module", "service", "action", "sweep", "resource", "editor", "result", "ok", "count", len(idle))
	}
	return len(idle)
}

func (s *editorService) Shutdown() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*editorSession)
	s.mu.Unlock()

	for _, sess := range all {
		sess.ctrl.Close()
	}
}

func (s *editorService) touch(id string) (*editorSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.lastActive = s.opts.Clock.Now().UTC()
	return sess, nil
}

func (s *editorService) view(sess *editorSession) EditorSession {
	s.mu.Lock()
	lastActive := sess.lastActive
	s.mu.Unlock()
	return EditorSession{
		ID:         sess.id,
		EntryID:    sess.entryID,
		Snapshot:   sess.ctrl.Snapshot(),
		OpenedAt:   sess.openedAt,
		LastActive: lastActive,
	}
}
