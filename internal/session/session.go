package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/MatthewTroke/neural-decks-client/internal/client"
	"github.com/MatthewTroke/neural-decks-client/internal/command"
	"github.com/MatthewTroke/neural-decks-client/internal/state"
	"github.com/MatthewTroke/neural-decks-client/internal/view"
	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

type Msg interface{ isSessionMsg() }

// Server-originated messages, forwarded from the channel's reader goroutine.

type Connected struct{}

func (Connected) isSessionMsg() {}

type SnapshotReceived struct{ Snapshot *protocol.GameSnapshot }

func (SnapshotReceived) isSessionMsg() {}

type ChatReceived struct{ Text string }

func (ChatReceived) isSessionMsg() {}

type EmojiReceived struct{ Payload protocol.EmojiPayload }

func (EmojiReceived) isSessionMsg() {}

// User gestures.

type JoinGame struct{}

func (JoinGame) isSessionMsg() {}

type BeginGame struct{}

func (BeginGame) isSessionMsg() {}

type ToggleCard struct{ CardID string }

func (ToggleCard) isSessionMsg() {}

type ConfirmPlay struct{}

func (ConfirmPlay) isSessionMsg() {}

type PickWinner struct{ CardID string }

func (PickWinner) isSessionMsg() {}

type ContinueRound struct{}

func (ContinueRound) isSessionMsg() {}

type SendEmoji struct{ Emoji string }

func (SendEmoji) isSessionMsg() {}

type GetView struct{ Reply chan View }

func (GetView) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

// View is what a renderer receives after every state change: the latest
// snapshot, its derived model, and the ephemeral UI state alongside it.
type View struct {
	Snapshot         *protocol.GameSnapshot
	Model            view.ViewModel
	SelectedCardID   string
	Chat             []string
	Emojis           []state.ScrollingEmoji
	SecondsRemaining int
}

// Sender is the outbound half of the connection channel.
type Sender interface {
	Send(protocol.Envelope) error
}

// Session is the single logical consumer of one game's channel. It owns the
// current snapshot and the local UI store, and processes inbound messages,
// user gestures and the one-second tick strictly one at a time on its own
// goroutine. Snapshots are applied in arrival order, last one wins.
type Session struct {
	inbox   chan Msg
	updates chan View

	snap  *protocol.GameSnapshot
	store *state.Store
	enc   command.Encoder

	userID string
	sender Sender
	log    *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, enc command.Encoder, sender Sender, log *zap.SugaredLogger) *Session {
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		inbox:   make(chan Msg, 64),
		updates: make(chan View, 1),
		store:   state.NewStore(),
		enc:     enc,
		userID:  enc.UserID,
		sender:  sender,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Updates delivers a fresh View after every state change. The buffer holds
// only the newest view; a slow renderer just skips intermediate frames.
func (s *Session) Updates() <-chan View { return s.updates }

// Events returns the channel callbacks wired into this session's inbox, so
// every server message is serialized through the loop.
func (s *Session) Events() client.Events {
	return client.Events{
		OnConnected:  func() { s.inbox <- Connected{} },
		OnGameUpdate: func(snap *protocol.GameSnapshot) { s.inbox <- SnapshotReceived{Snapshot: snap} },
		OnChat:       func(text string) { s.inbox <- ChatReceived{Text: text} },
		OnEmoji:      func(p protocol.EmojiPayload) { s.inbox <- EmojiReceived{Payload: p} },
	}
}

func (s *Session) loop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return

		case <-ticker.C:
			s.store.Tick(time.Now())
			s.publish()

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Connected:
				// Ephemeral state does not survive the old connection;
				// the next snapshot resynchronizes everything visible.
				s.store.Reset()

			case SnapshotReceived:
				s.snap = msg.Snapshot
				s.store.ApplySnapshot(s.snap, s.userID, time.Now())
				s.publish()

			case ChatReceived:
				s.store.AddChat(msg.Text)
				s.publish()

			case EmojiReceived:
				s.store.AddEmoji(msg.Payload.Emoji, msg.Payload.UserID, time.Now())
				s.publish()

			case JoinGame:
				s.trySend(func(vm view.ViewModel) (protocol.Envelope, error) {
					return s.enc.Join(vm)
				})

			case BeginGame:
				s.trySend(func(vm view.ViewModel) (protocol.Envelope, error) {
					return s.enc.BeginGame(vm)
				})

			case ToggleCard:
				s.store.ToggleSelect(msg.CardID)
				s.publish()

			case ConfirmPlay:
				cardID := s.store.SelectedCardID()
				if cardID == "" {
					s.log.Infow("no card selected")
					break
				}
				// The selection stays put until a snapshot shows the card
				// was actually placed; the server may still reject this.
				s.trySend(func(vm view.ViewModel) (protocol.Envelope, error) {
					return s.enc.PlayCard(vm, cardID)
				})

			case PickWinner:
				s.trySend(func(vm view.ViewModel) (protocol.Envelope, error) {
					return s.enc.PickWinningCard(vm, msg.CardID)
				})

			case ContinueRound:
				s.trySend(func(vm view.ViewModel) (protocol.Envelope, error) {
					return s.enc.ContinueRound(vm)
				})

			case SendEmoji:
				env, err := s.enc.Emoji(msg.Emoji)
				if err != nil {
					s.log.Infow("refusing gesture", "reason", err)
					break
				}
				s.send(env)

			case GetView:
				msg.Reply <- s.currentView()

			case Shutdown:
				s.cancel()
				return
			}
		}
	}
}

// trySend derives the view model from the latest snapshot, asks the encoder
// for an envelope and transmits it. A guard refusal is a no-op, not an
// error: nothing invalid is ever put on the wire.
func (s *Session) trySend(encode func(view.ViewModel) (protocol.Envelope, error)) {
	vm := view.Derive(s.snap, s.userID)
	env, err := encode(vm)
	if err != nil {
		s.log.Infow("refusing gesture", "reason", err)
		return
	}
	s.send(env)
}

func (s *Session) send(env protocol.Envelope) {
	if err := s.sender.Send(env); err != nil {
		s.log.Warnw("dropping command", "type", env.Type, "error", err)
	}
}

func (s *Session) currentView() View {
	now := time.Now()
	return View{
		Snapshot:         s.snap,
		Model:            view.Derive(s.snap, s.userID),
		SelectedCardID:   s.store.SelectedCardID(),
		Chat:             s.store.ChatMessages(),
		Emojis:           s.store.ActiveEmojis(now),
		SecondsRemaining: s.store.SecondsRemaining(),
	}
}

func (s *Session) publish() {
	v := s.currentView()
	for {
		select {
		case s.updates <- v:
			return
		default:
			// Evict the stale frame so the renderer always sees the newest.
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

// Close tears the session down, cancelling the tick so no timers leak
// across navigation or reconnect.
func (s *Session) Close() {
	s.cancel()
}
