// Package session owns the conversation core: the append-only transcript, the
// UI-facing session state and the intent dispatcher that maps classified
// utterances onto commerce gateway calls.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderchat-poc/server/internal/assistant/classifier"
	"github.com/orderchat-poc/server/internal/assistant/fallback"
	"github.com/orderchat-poc/server/internal/assistant/gateway"
	"github.com/orderchat-poc/server/internal/assistant/model"
	logx "github.com/orderchat-poc/server/pkg/logger"
)

// Snapshot is the read-only view handed to the presentation layer after every
// mutation. The presentation layer never touches the session directly.
type Snapshot struct {
	ConversationID string
	Turns          []model.Turn
	QuickReplies   []string
	PendingInput   string
	IsOpen         bool
	IsExpanded     bool
	IsComposing    bool
}

// Options configures a Session. Gateway and Classifier are required; the
// transcript repository and the change observer are optional.
type Options struct {
	Gateway        gateway.Gateway
	Classifier     classifier.Classifier
	Repo           model.TranscriptRepository
	Prompt         model.AssistantPromptConfig
	ConversationID string // generated when empty; also the gateway customer key
	OnChange       func(Snapshot)
}

// Session is the orchestrator for one chat session. All mutations of the
// transcript and session state go through it; dispatches for distinct
// utterances never interleave (a submission that arrives while a response is
// being composed is queued and processed after the current one resolves).
type Session struct {
	gw             gateway.Gateway
	cls            classifier.Classifier
	repo           model.TranscriptRepository
	conversationID string
	onChange       func(Snapshot)
	handlers       map[model.Action]handlerFunc
	now            func() time.Time

	mu           sync.Mutex
	turns        []model.Turn
	nextTurnID   int64
	quickReplies []string
	pendingInput string
	isOpen       bool
	isExpanded   bool
	isComposing  bool
	queue        []string
}

type handlerFunc func(ctx context.Context, intent model.Intent) error

var defaultQuickReplies = []string{"show products", "show cart", "checkout", "need help"}

const (
	apologyMessage          = "⚠️ Sorry, I encountered an error. Please try again."
	didNotUnderstandMessage = "🤖 Sorry, I didn't understand that. Type 'help' to see what I can do."
)

// New creates a session and appends the welcome turn with the standard quick
// replies.
func New(opts Options) (*Session, error) {
	if opts.Gateway == nil {
		return nil, fmt.Errorf("session: gateway is nil")
	}
	if opts.Classifier == nil {
		return nil, fmt.Errorf("session: classifier is nil")
	}
	if opts.ConversationID == "" {
		opts.ConversationID = uuid.NewString()
	}

	s := &Session{
		gw:             opts.Gateway,
		cls:            opts.Classifier,
		repo:           opts.Repo,
		conversationID: opts.ConversationID,
		onChange:       opts.OnChange,
		now:            time.Now,
		nextTurnID:     1,
	}
	s.handlers = map[model.Action]handlerFunc{
		model.ActionBrowseCatalog: s.handleBrowseCatalog,
		model.ActionSearchCatalog: s.handleSearchCatalog,
		model.ActionAddItem:       s.handleAddItem,
		model.ActionRemoveItem:    s.handleRemoveItem,
		model.ActionViewCart:      s.handleViewCart,
		model.ActionCheckout:      s.handleCheckout,
		model.ActionHelp:          s.handleHelp,
	}

	// A conversation with a stored transcript already opens with a welcome
	// turn; appending another would duplicate it in storage and restart turn
	// numbering. Resume picks the transcript back up with its numbering.
	if s.hasStoredTranscript() {
		s.quickReplies = defaultQuickReplies
		return s, nil
	}

	name := opts.Prompt.BusinessName
	if name == "" {
		name = "DMS"
	}
	s.appendAssistantTurn(context.Background(),
		fmt.Sprintf("Welcome to the %s Ordering Assistant! How can I help you today?", name),
		assistantOpts{quickReplies: defaultQuickReplies})
	return s, nil
}

func (s *Session) hasStoredTranscript() bool {
	if s.repo == nil {
		return false
	}
	n, err := s.repo.TurnCount(context.Background(), s.conversationID)
	if err != nil {
		logx.Warn().Err(err).
			Str("conversation_id", s.conversationID).
			Msg("could not check stored transcript")
		return false
	}
	return n > 0
}

// ConversationID returns the identifier used for transcript storage and as
// the gateway customer key.
func (s *Session) ConversationID() string {
	return s.conversationID
}

// Resume replaces the in-memory transcript with the stored one. Used to pick
// a session back up within its TTL; a session without a repository resumes to
// its current state.
func (s *Session) Resume(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	turns, err := s.repo.LoadTurns(ctx, s.conversationID)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		return nil
	}

	var maxID int64
	for _, turn := range turns {
		if turn.ID > maxID {
			maxID = turn.ID
		}
	}

	s.mu.Lock()
	s.turns = turns
	s.nextTurnID = maxID + 1
	s.mu.Unlock()
	s.notify()
	return nil
}

// HandleUtterance consumes one user utterance end to end: user turn, intent
// classification, handler dispatch, assistant turn(s). Empty and
// whitespace-only input is ignored outright. The composing flag doubles as
// the dispatch token, claimed atomically under the session mutex: an
// utterance submitted while a response is composing (from the change observer
// or from another goroutine) is queued, and the claiming call drains the
// queue before releasing the token, so turn ordering always follows
// submission order.
func (s *Session) HandleUtterance(ctx context.Context, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}

	s.mu.Lock()
	if s.isComposing {
		s.queue = append(s.queue, raw)
		s.mu.Unlock()
		return
	}
	s.isComposing = true
	s.mu.Unlock()
	s.notify()

	next := raw
	for {
		s.dispatch(ctx, next)

		s.mu.Lock()
		if len(s.queue) == 0 {
			s.isComposing = false
			s.mu.Unlock()
			s.notify()
			return
		}
		next = s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
	}
}

// dispatch runs one utterance to completion. Handler panics degrade to an
// apology turn; the pending input is cleared on every exit path. The history
// handed to the classifier is captured before the user turn is appended so
// the current utterance appears in the prompt exactly once.
func (s *Session) dispatch(ctx context.Context, raw string) {
	history := s.history()
	s.appendUserTurn(ctx, raw)

	defer func() {
		if r := recover(); r != nil {
			logx.Error().
				Str("conversation_id", s.conversationID).
				Msgf("handler panic recovered: %v", r)
			s.appendAssistantTurn(ctx, apologyMessage, assistantOpts{})
		}
		s.SetPendingInput("")
	}()

	intent := s.classify(ctx, raw, history)
	s.route(ctx, raw, intent)
}

func (s *Session) classify(ctx context.Context, raw string, history []model.Turn) model.Intent {
	intent, err := s.cls.Classify(ctx, raw, history)
	if err != nil {
		// Classifier failure is never a dispatch failure; the fallback
		// resolver takes over.
		logx.Warn().Err(err).
			Str("conversation_id", s.conversationID).
			Msg("classification failed, treating as unrecognized")
		return model.Intent{Action: model.ActionUnrecognized}
	}
	intent.Action = model.ParseAction(string(intent.Action))
	return intent
}

func (s *Session) route(ctx context.Context, raw string, intent model.Intent) {
	handler, ok := s.handlers[intent.Action]
	if !ok {
		s.resolveFallback(ctx, raw)
		return
	}
	s.run(ctx, handler, intent)
}

// resolveFallback handles unrecognized intents with keyword rules over the
// raw utterance. A miss is terminal: the canned turn is appended directly.
func (s *Session) resolveFallback(ctx context.Context, raw string) {
	action, ok := fallback.Resolve(raw)
	if !ok {
		s.appendAssistantTurn(ctx, didNotUnderstandMessage, assistantOpts{})
		return
	}
	logx.Debug().
		Str("conversation_id", s.conversationID).
		Str("action", string(action)).
		Msg("fallback resolved action")
	s.run(ctx, s.handlers[action], model.Intent{Action: action})
}

func (s *Session) run(ctx context.Context, handler handlerFunc, intent model.Intent) {
	if err := handler(ctx, intent); err != nil {
		logx.Error().Err(err).
			Str("conversation_id", s.conversationID).
			Str("action", string(intent.Action)).
			Msg("handler failed")
		s.appendAssistantTurn(ctx, apologyMessage, assistantOpts{})
	}
}

// ==================== produced surface ====================

// SubmitText is the presentation-layer submit operation.
func (s *Session) SubmitText(ctx context.Context, text string) {
	s.HandleUtterance(ctx, text)
}

// SelectQuickReply is behaviorally identical to typing the reply and
// submitting it.
func (s *Session) SelectQuickReply(ctx context.Context, label string) {
	s.SetPendingInput(label)
	s.HandleUtterance(ctx, label)
}

// ToggleOpen flips widget visibility. Closing always collapses.
func (s *Session) ToggleOpen() {
	s.mu.Lock()
	s.isOpen = !s.isOpen
	if !s.isOpen {
		s.isExpanded = false
	}
	s.mu.Unlock()
	s.notify()
}

// ToggleExpanded flips the expanded state; only meaningful while open.
func (s *Session) ToggleExpanded() {
	s.mu.Lock()
	if !s.isOpen {
		s.mu.Unlock()
		return
	}
	s.isExpanded = !s.isExpanded
	s.mu.Unlock()
	s.notify()
}

// SetPendingInput stores not-yet-submitted input text. Also the sink for
// voice capture results.
func (s *Session) SetPendingInput(text string) {
	s.mu.Lock()
	s.pendingInput = text
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a copy of the transcript and session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	turns := make([]model.Turn, len(s.turns))
	copy(turns, s.turns)
	replies := make([]string, len(s.quickReplies))
	copy(replies, s.quickReplies)
	return Snapshot{
		ConversationID: s.conversationID,
		Turns:          turns,
		QuickReplies:   replies,
		PendingInput:   s.pendingInput,
		IsOpen:         s.isOpen,
		IsExpanded:     s.isExpanded,
		IsComposing:    s.isComposing,
	}
}

// ==================== transcript mutation ====================

type assistantOpts struct {
	// quickReplies replaces the suggestion list when non-nil; an empty
	// non-nil slice clears it, nil leaves the prior suggestions untouched.
	quickReplies []string
	structured   bool
}

func (s *Session) appendUserTurn(ctx context.Context, text string) {
	s.appendTurn(ctx, model.SpeakerUser, text, false, nil)
}

func (s *Session) appendAssistantTurn(ctx context.Context, content string, opts assistantOpts) {
	s.appendTurn(ctx, model.SpeakerAssistant, content, opts.structured, opts.quickReplies)
}

func (s *Session) appendTurn(ctx context.Context, speaker model.Speaker, content string, structured bool, quickReplies []string) {
	s.mu.Lock()
	turn := model.Turn{
		ID:         s.nextTurnID,
		Speaker:    speaker,
		Content:    content,
		Structured: structured,
		CreatedAt:  s.now(),
	}
	s.nextTurnID++
	s.turns = append(s.turns, turn)
	if quickReplies != nil {
		s.quickReplies = quickReplies
	}
	s.mu.Unlock()

	s.persist(ctx, turn)
	s.notify()
}

// persist is best-effort: storage trouble never fails a dispatch.
func (s *Session) persist(ctx context.Context, turn model.Turn) {
	if s.repo == nil {
		return
	}
	if err := s.repo.AppendTurn(ctx, s.conversationID, turn); err != nil {
		logx.Error().Err(err).
			Str("conversation_id", s.conversationID).
			Int64("turn_id", turn.ID).
			Msg("failed to persist turn")
	}
}

func (s *Session) history() []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]model.Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

func (s *Session) notify() {
	if s.onChange == nil {
		return
	}
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.onChange(snap)
}
