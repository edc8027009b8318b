package sessionsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/quorum/go/internal/models"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval matches the reference behavior of refreshing the
// question list every three seconds.
const DefaultPollInterval = 3 * time.Second

// ErrBlankQuestion is returned when a submission is rejected locally before
// any network call. Callers treat it as a no-op, not a user-facing failure.
var ErrBlankQuestion = errors.New("question text must not be blank")

// SessionAPI defines what the loop needs from the transport layer.
// session_client.SessionClient satisfies it.
type SessionAPI interface {
	GetQuestions(ctx context.Context, sessionID string) ([]models.Question, error)
	SubmitQuestion(ctx context.Context, sessionID, text string) error
	VoteQuestion(ctx context.Context, sessionID, questionID string) error
	EndSession(ctx context.Context, sessionID string) error
	CheckAdminStatus(ctx context.Context, sessionID string) (bool, error)
}

// Navigator receives the single navigation side effect this loop produces:
// returning to the landing view when the session is gone or was ended.
type Navigator interface {
	NavigateHome()
}

// Notifier surfaces failures and confirmations to the user.
type Notifier interface {
	Notify(message string)
}

// Confirmer gates the destructive end-session call behind an explicit
// user confirmation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Loop owns the authoritative in-memory view of one voting session and keeps
// it consistent with server truth via a fixed-interval poll plus forced
// refreshes after mutations. The view layer only reads the Snapshot; all
// writes happen here.
//
// Concurrent fetches (a scheduled tick overlapping a forced refresh) are not
// serialized: the later response to resolve wins and replaces the question
// list wholesale. Each applied update bumps Snapshot.Version so a future
// push-based UpdateSource can discard out-of-order deliveries.
type Loop struct {
	api       SessionAPI
	source    UpdateSource
	sessionID string
	interval  time.Duration
	clock     clockwork.Clock
	nav       Navigator
	notifier  Notifier
	confirmer Confirmer

	mu   sync.Mutex
	snap Snapshot

	refreshCh chan struct{}
	stopped   chan struct{}
	stopOnce  sync.Once
	navOnce   sync.Once
}

// NewLoop builds a loop for one session. The clock defaults to the real
// clock and the poll interval to DefaultPollInterval; tests swap both before
// calling Run.
func NewLoop(api SessionAPI, sessionID string, nav Navigator, notifier Notifier, confirmer Confirmer) *Loop {
	return &Loop{
		api:       api,
		source:    NewPollSource(api, sessionID),
		sessionID: sessionID,
		interval:  DefaultPollInterval,
		clock:     clockwork.NewRealClock(),
		nav:       nav,
		notifier:  notifier,
		confirmer: confirmer,
		snap: Snapshot{
			Phase:   PhaseInitializing,
			Loading: true,
		},
		refreshCh: make(chan struct{}, 1),
		stopped:   make(chan struct{}),
	}
}

// SetClock replaces the clock. Must be called before Run.
func (l *Loop) SetClock(clock clockwork.Clock) {
	l.clock = clock
}

// SetInterval replaces the poll interval. Must be called before Run.
func (l *Loop) SetInterval(interval time.Duration) {
	l.interval = interval
}

// SetSource replaces the update source. Must be called before Run.
func (l *Loop) SetSource(source UpdateSource) {
	l.source = source
}

// Snapshot returns a copy of the current view state.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Run drives the loop until ctx is cancelled or the loop terminates itself
// (explicit Stop, or navigation away after a not-found failure). The admin
// check and the first question fetch launch concurrently; Ready is entered as
// soon as the first fetch resolves, without waiting on the admin check.
func (l *Loop) Run(ctx context.Context) {
	log.Debug().Str("session_id", l.sessionID).Msg("session sync loop starting")

	go l.resolveAdminStatus(ctx)
	go func() {
		l.fetch(ctx)
		l.markReady()
	}()

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return
		case <-l.stopped:
			return
		case <-ticker.Chan():
			go l.fetch(ctx)
		case <-l.refreshCh:
			go l.fetch(ctx)
		}
	}
}

// Stop terminates the loop. In-flight requests are not cancelled; their
// results are discarded because the terminated snapshot no longer accepts
// updates.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.snap.Phase = PhaseTerminated
		l.mu.Unlock()
		close(l.stopped)
		log.Debug().Str("session_id", l.sessionID).Msg("session sync loop terminated")
	})
}

// ForceRefresh requests one immediate out-of-band question fetch, bypassing
// the poll timer. Coalesces if a forced refresh is already pending.
func (l *Loop) ForceRefresh() {
	select {
	case l.refreshCh <- struct{}{}:
	default:
	}
}

// SubmitQuestion validates locally, performs the mutation, then forces an
// immediate refresh so the caller's own question is visible before the next
// scheduled tick. Blank text never reaches the transport.
func (l *Loop) SubmitQuestion(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankQuestion
	}

	if err := l.api.SubmitQuestion(ctx, l.sessionID, text); err != nil {
		l.notifier.Notify(err.Error())
		return err
	}

	l.ForceRefresh()
	return nil
}

// VoteQuestion registers an up-vote and forces a refresh. No optimistic
// increment: the displayed count only ever reflects a server-confirmed
// snapshot, and double-vote rejection is the server's call.
func (l *Loop) VoteQuestion(ctx context.Context, questionID string) error {
	if err := l.api.VoteQuestion(ctx, l.sessionID, questionID); err != nil {
		l.notifier.Notify(err.Error())
		return err
	}

	l.ForceRefresh()
	return nil
}

// EndSession asks for confirmation, ends the session, and navigates back to
// the landing view. Declining the confirmation issues no network call.
func (l *Loop) EndSession(ctx context.Context) error {
	if !l.confirmer.Confirm("Are you sure you want to end this voting session? This will delete all questions.") {
		return nil
	}

	if err := l.api.EndSession(ctx, l.sessionID); err != nil {
		l.notifier.Notify(fmt.Sprintf("Failed to end session: %v", err))
		return err
	}

	l.notifier.Notify("Session ended and data deleted successfully!")
	l.navigateHome()
	return nil
}

// fetch pulls one question snapshot and applies it. A failure surfaces to the
// user but does not stop the recurring timer; only a not-found failure does,
// by navigating away.
func (l *Loop) fetch(ctx context.Context) {
	questions, err := l.source.Pull(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Str("session_id", l.sessionID).Msg("question fetch failed")
		l.clearLoading()
		l.notifier.Notify(err.Error())
		if isNotFound(err) {
			l.navigateHome()
		}
		return
	}

	l.applyQuestions(questions)
}

// resolveAdminStatus runs the one-shot authoritative admin check. IsAdmin
// stays false until this resolves; a failure is logged, never surfaced, and
// never inferred from cookie presence instead.
func (l *Loop) resolveAdminStatus(ctx context.Context) {
	isAdmin, err := l.api.CheckAdminStatus(ctx, l.sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", l.sessionID).Msg("admin status check failed")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.snap.Phase == PhaseTerminated {
		return
	}
	l.snap.IsAdmin = isAdmin
	l.snap.Version++
}

func (l *Loop) applyQuestions(questions []models.Question) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.snap.Phase == PhaseTerminated {
		return
	}
	l.snap.Questions = questions
	l.snap.Loading = false
	l.snap.Version++
}

func (l *Loop) clearLoading() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.snap.Phase == PhaseTerminated {
		return
	}
	l.snap.Loading = false
	l.snap.Version++
}

func (l *Loop) markReady() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.snap.Phase != PhaseInitializing {
		return
	}
	l.snap.Phase = PhaseReady
	l.snap.Version++
}

// navigateHome fires the landing-view navigation exactly once and terminates
// the loop so no further polls are scheduled.
func (l *Loop) navigateHome() {
	l.navOnce.Do(func() {
		l.Stop()
		l.nav.NavigateHome()
	})
}

// The server signals a missing session through its error text, not a
// structured code.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
