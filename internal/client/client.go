package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

var ErrSendBufferFull = errors.New("outbound send buffer is full")

const writeTimeout = 3 * time.Second

// Events are the inbound callbacks a consumer registers on the channel. They
// are invoked from the channel's reader goroutine; consumers that need
// single-threaded processing should forward into their own inbox.
// A nil callback means the message type is silently dropped.
type Events struct {
	// OnConnected fires every time the socket is (re-)established, before
	// any message is delivered. Local ephemeral state should be reset here;
	// the next GAME_UPDATE fully resynchronizes the view.
	OnConnected  func()
	OnGameUpdate func(*protocol.GameSnapshot)
	OnChat       func(string)
	OnEmoji      func(protocol.EmojiPayload)
}

// Channel is the duplex message stream to the game server: it delivers
// inbound JSON envelopes and accepts outbound commands as individual text
// frames. Commands are fire-and-forget; the authoritative result is only
// ever observed via a later snapshot. On transport failure the channel
// redials automatically with capped exponential backoff.
type Channel struct {
	url    string
	header http.Header
	log    *zap.SugaredLogger
	out    chan protocol.Envelope
}

func NewChannel(url, authToken string, log *zap.SugaredLogger) *Channel {
	header := http.Header{}
	if authToken != "" {
		header.Set("Authorization", "Bearer "+authToken)
	}
	return &Channel{
		url:    url,
		header: header,
		log:    log,
		out:    make(chan protocol.Envelope, 8),
	}
}

// Send enqueues one command for transmission. It never blocks: at-most-once,
// no retry. If the writer cannot keep up the command is refused.
func (c *Channel) Send(env protocol.Envelope) error {
	select {
	case c.out <- env:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Run dials the server and pumps messages to events until ctx is cancelled.
// A dropped connection triggers a redial, not an error; Run only returns
// once the context is done.
func (c *Channel) Run(ctx context.Context, events Events) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0

	for {
		conn, _, err := websocket.Dial(ctx, c.url, &websocket.DialOptions{
			HTTPHeader: c.header,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := bo.NextBackOff()
			c.log.Warnw("dial failed, retrying", "url", c.url, "wait", wait, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		bo.Reset()
		c.log.Infow("connected", "url", c.url)
		if events.OnConnected != nil {
			events.OnConnected()
		}

		err = c.serve(ctx, conn, events)
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warnw("connection lost, reconnecting", "error", err)
	}
}

// serve runs a writer goroutine draining the outbox while the calling
// goroutine reads frames, returning once either side fails.
func (c *Channel) serve(ctx context.Context, conn *websocket.Conn, events Events) error {
	writeCtx, writeCancel := context.WithCancel(ctx)
	defer writeCancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-writeCtx.Done():
				return
			case env := <-c.out:
				payload, _ := json.Marshal(env)
				wctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err := conn.Write(wctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			writeCancel()
			<-writerDone
			return err
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Warnw("dropping malformed frame", "error", err)
			continue
		}
		c.dispatch(events, env)
	}
}

// dispatch fans an inbound envelope out by type. Unrecognized types are
// ignored, not errors; a payload that fails to decode is logged and dropped
// with the current snapshot left unchanged.
func (c *Channel) dispatch(events Events, env protocol.Envelope) {
	switch env.Type {
	case protocol.TypeGameUpdate:
		var snap protocol.GameSnapshot
		if err := json.Unmarshal(env.Payload, &snap); err != nil {
			c.log.Warnw("dropping malformed game update", "error", err)
			return
		}
		if events.OnGameUpdate != nil {
			events.OnGameUpdate(&snap)
		}

	case protocol.TypeChatMessage:
		var msg string
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			c.log.Warnw("dropping malformed chat message", "error", err)
			return
		}
		if events.OnChat != nil {
			events.OnChat(msg)
		}

	case protocol.TypeEmojiClicked:
		var emoji protocol.EmojiPayload
		if err := json.Unmarshal(env.Payload, &emoji); err != nil {
			c.log.Warnw("dropping malformed emoji broadcast", "error", err)
			return
		}
		if events.OnEmoji != nil {
			events.OnEmoji(emoji)
		}

	default:
		c.log.Debugw("ignoring unrecognized message type", "type", env.Type)
	}
}
