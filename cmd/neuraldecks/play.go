package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MatthewTroke/neural-decks-client/internal/auth"
	"github.com/MatthewTroke/neural-decks-client/internal/client"
	"github.com/MatthewTroke/neural-decks-client/internal/command"
	"github.com/MatthewTroke/neural-decks-client/internal/config"
	"github.com/MatthewTroke/neural-decks-client/internal/render"
	"github.com/MatthewTroke/neural-decks-client/internal/session"
)

func newPlayCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id>",
		Short: "Connect to a game and play it from the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			log := newLogger(cfg.Verbose)
			defer func() { _ = log.Sync() }()

			token, err := cfg.ResolveToken()
			if err != nil {
				return err
			}
			ident, err := auth.ParseIdentity(token)
			if err != nil {
				return err
			}
			if ident.UserID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no session token; joining as spectator (run `neuraldecks login` to play)")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			enc := command.Encoder{GameID: gameID, UserID: ident.UserID}
			ch := client.NewChannel(cfg.WebSocketURL(gameID), token, log)

			sess := session.New(ctx, enc, ch, log)
			defer sess.Close()

			go func() { _ = ch.Run(ctx, sess.Events()) }()

			renderer := &render.Renderer{Out: cmd.OutOrStdout()}
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case v := <-sess.Updates():
						renderer.Render(v)
					}
				}
			}()

			go runGestures(ctx, cancel, sess, cmd.InOrStdin(), cmd.OutOrStdout())

			<-ctx.Done()
			return nil
		},
	}
}

// runGestures translates stdin lines into session gestures. Card positions
// are resolved against the latest view so indices always mean what is on
// screen.
func runGestures(ctx context.Context, cancel context.CancelFunc, sess *session.Session, in io.Reader, out io.Writer) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "join":
			sess.Inbox() <- session.JoinGame{}
		case "begin":
			sess.Inbox() <- session.BeginGame{}
		case "select":
			id, ok := handCardID(askView(ctx, sess), fields)
			if !ok {
				fmt.Fprintln(out, "usage: select <hand position>")
				continue
			}
			sess.Inbox() <- session.ToggleCard{CardID: id}
		case "play":
			sess.Inbox() <- session.ConfirmPlay{}
		case "pick":
			id, ok := boardCardID(askView(ctx, sess), fields)
			if !ok {
				fmt.Fprintln(out, "usage: pick <board position>")
				continue
			}
			sess.Inbox() <- session.PickWinner{CardID: id}
		case "continue":
			sess.Inbox() <- session.ContinueRound{}
		case "emoji":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: emoji <emoji>")
				continue
			}
			sess.Inbox() <- session.SendEmoji{Emoji: fields[1]}
		case "quit", "exit":
			cancel()
			return
		default:
			fmt.Fprintf(out, "unknown action %q\n", fields[0])
		}
	}
}

func askView(ctx context.Context, sess *session.Session) session.View {
	reply := make(chan session.View, 1)
	sess.Inbox() <- session.GetView{Reply: reply}
	select {
	case v := <-reply:
		return v
	case <-ctx.Done():
		return session.View{}
	case <-time.After(time.Second):
		return session.View{}
	}
}

func handCardID(v session.View, fields []string) (string, bool) {
	n, err := position(fields)
	if err != nil || v.Model.SelfPlayer == nil {
		return "", false
	}
	deck := v.Model.SelfPlayer.Deck
	if n < 1 || n > len(deck) || deck[n-1] == nil {
		return "", false
	}
	return deck[n-1].ID, true
}

func boardCardID(v session.View, fields []string) (string, bool) {
	n, err := position(fields)
	if err != nil {
		return "", false
	}
	board := v.Model.DisplayedWhiteCards
	if n < 1 || n > len(board) {
		return "", false
	}
	return board[n-1].Card.ID, true
}

func position(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("missing position")
	}
	return strconv.Atoi(fields[1])
}
