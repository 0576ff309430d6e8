package state

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

const (
	// maxScrollback bounds the chat log; the oldest line is dropped first.
	maxScrollback = 100

	// EmojiLifetime is how long a scrolling emoji stays on screen.
	EmojiLifetime = 3000 * time.Millisecond

	// defaultCountdown is the advisory round timer, matching the server's
	// auto-progress interval.
	defaultCountdown = 30
)

// ScrollingEmoji is one transient overlay entry. Purely cosmetic; entries
// may be duplicated or dropped on reconnect without correctness impact.
type ScrollingEmoji struct {
	ID       string
	Emoji    string
	UserID   string
	Offset   int
	Deadline time.Time
}

// Store holds the ephemeral, client-owned UI state: the card selection, the
// chat scrollback, the emoji overlay and the advisory countdown. Nothing in
// here is authoritative. It is reconciled against each incoming snapshot,
// never merged into one, and all of it can be rebuilt from the next snapshot
// after a reconnect.
//
// Store is not safe for concurrent use; the session loop is its only caller.
type Store struct {
	selectedCardID string
	hadPlacedCard  bool

	chat     [maxScrollback]string
	chatHist int

	emojis []ScrollingEmoji

	secondsRemaining int
	seeded           bool
	lastRoundStatus  protocol.RoundStatus
	inProgress       bool
}

func NewStore() *Store {
	return &Store{secondsRemaining: defaultCountdown}
}

// ToggleSelect selects a card, or clears the selection when the same card is
// toggled twice. Selecting a different card replaces the selection. This is
// local-only and reversible; the server hears nothing until the play is
// confirmed.
func (s *Store) ToggleSelect(cardID string) {
	if s.selectedCardID == cardID {
		s.selectedCardID = ""
		return
	}
	s.selectedCardID = cardID
}

func (s *Store) SelectedCardID() string { return s.selectedCardID }

func (s *Store) ClearSelection() { s.selectedCardID = "" }

// ApplySnapshot reconciles local state against a freshly arrived snapshot.
//
// The selection is cleared only once the server confirms the play, i.e. the
// local player's placed_card goes from nil to non-nil. Clearing on send
// would lose the selection if the server rejected the command.
//
// The countdown is seeded from next_auto_progress_at on the first snapshot
// and thereafter reset to the default only when round_status changes value
// (edge-triggered). A snapshot that leaves round_status untouched leaves the
// countdown to its natural one-per-second decrement.
func (s *Store) ApplySnapshot(snap *protocol.GameSnapshot, localUserID string, now time.Time) {
	if snap == nil {
		return
	}

	self := snap.FindPlayer(localUserID)
	placed := self != nil && self.PlacedCard != nil
	if placed && !s.hadPlacedCard {
		s.ClearSelection()
	}
	s.hadPlacedCard = placed

	if !s.seeded {
		s.seeded = true
		s.lastRoundStatus = snap.RoundStatus
		s.secondsRemaining = defaultCountdown
		if !snap.NextAutoProgressAt.IsZero() {
			remaining := int(snap.NextAutoProgressAt.Sub(now) / time.Second)
			if remaining < 0 {
				remaining = 0
			}
			s.secondsRemaining = remaining
		}
	} else if snap.RoundStatus != s.lastRoundStatus {
		s.lastRoundStatus = snap.RoundStatus
		s.secondsRemaining = defaultCountdown
	}

	s.inProgress = snap.Status == protocol.StatusInProgress
}

// Tick advances the one-second heartbeat: the countdown decrements while the
// game is in progress, and expired emoji entries are pruned.
func (s *Store) Tick(now time.Time) {
	if s.inProgress && s.secondsRemaining > 0 {
		s.secondsRemaining--
	}

	active := s.emojis[:0]
	for _, e := range s.emojis {
		if now.Before(e.Deadline) {
			active = append(active, e)
		}
	}
	s.emojis = active
}

func (s *Store) SecondsRemaining() int { return s.secondsRemaining }

// AddChat appends one line to the scrollback, dropping the oldest line once
// the buffer is full.
func (s *Store) AddChat(msg string) {
	s.chat[s.chatHist%maxScrollback] = msg
	s.chatHist++
}

// ChatMessages returns the retained scrollback, oldest first.
func (s *Store) ChatMessages() []string {
	n := s.chatHist
	if n > maxScrollback {
		n = maxScrollback
	}
	out := make([]string, 0, n)
	start := 0
	if s.chatHist > maxScrollback {
		start = s.chatHist % maxScrollback
	}
	for i := 0; i < n; i++ {
		out = append(out, s.chat[(start+i)%maxScrollback])
	}
	return out
}

// AddEmoji inserts an overlay entry with a client-generated id and a fixed
// lifetime.
func (s *Store) AddEmoji(emoji, userID string, now time.Time) ScrollingEmoji {
	e := ScrollingEmoji{
		ID:       uuid.New().String(),
		Emoji:    emoji,
		UserID:   userID,
		Offset:   rand.Intn(300),
		Deadline: now.Add(EmojiLifetime),
	}
	s.emojis = append(s.emojis, e)
	return e
}

// ActiveEmojis returns the entries still inside their lifetime. An entry
// inserted at T is present for queries before T+3000ms and absent from then
// on.
func (s *Store) ActiveEmojis(now time.Time) []ScrollingEmoji {
	out := make([]ScrollingEmoji, 0, len(s.emojis))
	for _, e := range s.emojis {
		if now.Before(e.Deadline) {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything ephemeral. Called when the channel is
// re-established; the next snapshot fully resynchronizes the view.
func (s *Store) Reset() {
	s.selectedCardID = ""
	s.hadPlacedCard = false
	s.emojis = nil
	s.seeded = false
	s.secondsRemaining = defaultCountdown
	s.inProgress = false
}
