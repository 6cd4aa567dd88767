package conversation

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"oceandash/internal/logging"
	"oceandash/internal/schedule"
	"oceandash/internal/voice"

	"github.com/google/uuid"
)

const (
	// DefaultLatency is the simulated time the assistant takes to reply.
	DefaultLatency = 1500 * time.Millisecond
	// DefaultSuggestionProbability is the chance a reply carries follow-up chips.
	DefaultSuggestionProbability = 0.5
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Scheduler             schedule.Scheduler // required
	Clock                 schedule.Clock     // defaults to schedule.SystemClock
	Rand                  *rand.Rand         // defaults to a time-seeded source
	Voice                 voice.Capture      // defaults to voice.Disabled
	Corpus                *Corpus            // defaults to DefaultCorpus()
	Latency               time.Duration      // defaults to DefaultLatency
	SuggestionProbability *float64           // defaults to DefaultSuggestionProbability
	IDFunc                func() string      // defaults to uuid.NewString
}

// Engine owns a conversation. All state changes go through Reduce and are
// published to subscribers as immutable snapshots.
//
// The deferred reply is the only suspension point: Submit schedules it on the
// injected Scheduler and at most one is outstanding. Close cancels it.
type Engine struct {
	mu sync.Mutex

	state   State
	corpus  Corpus
	sched   schedule.Scheduler
	clock   schedule.Clock
	rng     *rand.Rand
	capture voice.Capture
	latency time.Duration
	prob    float64
	newID   func() string

	timer    schedule.TimerID
	hasTimer bool
	closed   bool

	subs    map[int]func(State)
	nextSub int
}

// NewEngine creates an engine whose history starts with the greeting.
func NewEngine(opts Options) *Engine {
	if opts.Scheduler == nil {
		panic("conversation: Options.Scheduler is required")
	}
	e := &Engine{
		sched:   opts.Scheduler,
		clock:   opts.Clock,
		rng:     opts.Rand,
		capture: opts.Voice,
		latency: opts.Latency,
		prob:    DefaultSuggestionProbability,
		newID:   opts.IDFunc,
		subs:    make(map[int]func(State)),
	}
	if e.clock == nil {
		e.clock = schedule.SystemClock{}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.capture == nil {
		e.capture = voice.Disabled{}
	}
	if e.latency <= 0 {
		e.latency = DefaultLatency
	}
	if opts.SuggestionProbability != nil {
		e.prob = *opts.SuggestionProbability
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if opts.Corpus != nil {
		e.corpus = *opts.Corpus
	} else {
		e.corpus = DefaultCorpus()
	}

	e.state = State{History: []Message{e.greeting()}}
	return e
}

func (e *Engine) greeting() Message {
	return Message{
		ID:          e.newID(),
		Content:     e.corpus.Greeting,
		Author:      AuthorAssistant,
		Timestamp:   e.clock.Now(),
		Suggestions: append([]string(nil), e.corpus.StarterSuggestions...),
	}
}

// State returns the latest snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Pending reports whether a reply is outstanding.
func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Pending
}

// QuickActions returns the always-visible prompt cards.
func (e *Engine) QuickActions() []QuickAction {
	return append([]QuickAction(nil), e.corpus.QuickActions...)
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription.
func (e *Engine) Subscribe(fn func(State)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Submit appends a user message and schedules the assistant reply. Blank
// text, a pending reply, or a closed engine make it a no-op. It reports
// whether the message was accepted.
func (e *Engine) Submit(text string) bool {
	content := strings.TrimSpace(text)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	if content == "" {
		e.mu.Unlock()
		logging.ConversationDebug("blank submission dropped")
		return false
	}
	if e.state.Pending {
		e.mu.Unlock()
		logging.ConversationDebug("submission rejected: reply pending")
		return false
	}

	msg := Message{
		ID:        e.newID(),
		Content:   content,
		Author:    AuthorUser,
		Timestamp: e.clock.Now(),
	}
	e.state = Reduce(e.state, UserSubmitted{Message: msg})
	e.timer = e.sched.AfterFunc(e.latency, e.complete)
	e.hasTimer = true
	snap, subs := e.publishLocked()
	e.mu.Unlock()

	logging.Conversation("user message %s accepted, reply in %v", msg.ID, e.latency)
	notify(subs, snap)
	return true
}

// SelectSuggestion submits a suggestion chip. It behaves exactly like Submit.
func (e *Engine) SelectSuggestion(text string) bool {
	return e.Submit(text)
}

// SelectQuickAction submits the prompt of the i-th quick action.
func (e *Engine) SelectQuickAction(i int) bool {
	if i < 0 || i >= len(e.corpus.QuickActions) {
		return false
	}
	return e.Submit(e.corpus.QuickActions[i].Prompt)
}

// complete is the deferred reply. It runs once per accepted Submit.
func (e *Engine) complete() {
	e.mu.Lock()
	if e.closed || !e.state.Pending {
		e.mu.Unlock()
		return
	}
	e.hasTimer = false

	reply := Message{
		ID:        e.newID(),
		Content:   e.corpus.Responses[e.rng.Intn(len(e.corpus.Responses))],
		Author:    AuthorAssistant,
		Timestamp: e.clock.Now(),
	}
	if e.rng.Float64() < e.prob && len(e.corpus.FollowUps) > 0 {
		reply.Suggestions = append([]string(nil), e.corpus.FollowUps...)
	}
	e.state = Reduce(e.state, ReplyDelivered{Message: reply})
	snap, subs := e.publishLocked()
	e.mu.Unlock()

	logging.Conversation("assistant reply %s delivered (suggestions=%d)", reply.ID, len(reply.Suggestions))
	notify(subs, snap)
}

// ToggleVoiceCapture flips the capture flag. Stopping a capture routes a
// non-empty transcript into Submit. Collaborator failures are logged and
// leave the flag flipped.
func (e *Engine) ToggleVoiceCapture() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.state = Reduce(e.state, VoiceToggled{})
	listening := e.state.Listening
	capture := e.capture
	snap, subs := e.publishLocked()
	e.mu.Unlock()

	notify(subs, snap)

	if listening {
		if err := capture.Start(); err != nil {
			logging.VoiceWarn("failed to start capture: %v", err)
		}
		return
	}

	transcript, err := capture.Stop()
	if err != nil {
		logging.VoiceWarn("failed to stop capture: %v", err)
		return
	}
	if strings.TrimSpace(transcript) != "" {
		e.Submit(transcript)
	}
}

// Close cancels a scheduled reply and detaches subscribers. Every later
// operation is a no-op. Safe to call multiple times.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.hasTimer {
		e.sched.Cancel(e.timer)
		e.hasTimer = false
		logging.ConversationDebug("pending reply cancelled on close")
	}
	e.subs = make(map[int]func(State))
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) publishLocked() (State, []func(State)) {
	subs := make([]func(State), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	return e.state.clone(), subs
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}
