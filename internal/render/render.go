package render

import (
	"fmt"
	"io"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/MatthewTroke/neural-decks-client/internal/session"
	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

// Renderer writes a plain-text frame of the current view. It is a dumb
// consumer of the derived view model: every decision about what is legal or
// highlighted was already made upstream.
type Renderer struct {
	Out io.Writer
}

func (r *Renderer) Render(v session.View) {
	w := r.Out
	snap := v.Snapshot
	if snap == nil {
		fmt.Fprintln(w, "waiting for game state...")
		return
	}

	fmt.Fprintf(w, "\n=== %s (round %d, %s/%s)", snap.Name, snap.CurrentGameRound, snap.Status, snap.RoundStatus)
	if snap.Status == protocol.StatusInProgress {
		fmt.Fprintf(w, "  ⏱ %ds", v.SecondsRemaining)
	}
	fmt.Fprintln(w)

	r.renderPlayers(w, v)
	r.renderBoard(w, v)
	r.renderHand(w, v)
	r.renderChat(w, v)
	r.renderEmojis(w, v)
	r.renderPrompt(w, v)
}

func (r *Renderer) renderPlayers(w io.Writer, v session.View) {
	snap := v.Snapshot
	fmt.Fprintf(w, "players (%d/%d):\n", len(snap.Players), snap.MaxPlayerCount)
	for _, p := range snap.Players {
		if p == nil {
			continue
		}
		marks := make([]string, 0, 3)
		if p.IsJudge {
			marks = append(marks, "judge")
		}
		if p.PlacedCard != nil {
			marks = append(marks, "played")
		}
		if p.IsGameWinner {
			marks = append(marks, "winner")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " [" + strings.Join(marks, ", ") + "]"
		}
		fmt.Fprintf(w, "  %-20s %3d pts%s\n", p.Name, p.Score, suffix)
	}
}

func (r *Renderer) renderBoard(w io.Writer, v session.View) {
	snap := v.Snapshot
	if snap.BlackCard != nil {
		fmt.Fprintf(w, "\nblack card: %s\n", snap.BlackCard.CardValue)
	}
	if len(v.Model.DisplayedWhiteCards) > 0 {
		fmt.Fprintln(w, "board:")
		for i, wc := range v.Model.DisplayedWhiteCards {
			mark := " "
			if wc.IsWinning {
				mark = "🏆"
			}
			fmt.Fprintf(w, "  %2d. %s %s\n", i+1, wc.Card.CardValue, mark)
		}
	}
	if v.Model.WinningCard != nil && snap.RoundWinner != nil {
		fmt.Fprintf(w, "round winner: %s\n", snap.RoundWinner.Name)
	}
}

func (r *Renderer) renderHand(w io.Writer, v session.View) {
	self := v.Model.SelfPlayer
	if self == nil {
		return
	}
	if v.Model.IsJudge {
		fmt.Fprintln(w, "\nyou are the judge this round")
		return
	}
	if len(self.Deck) == 0 {
		return
	}
	fmt.Fprintln(w, "\nyour hand:")
	for i, c := range self.Deck {
		if c == nil {
			continue
		}
		mark := " "
		if c.ID == v.SelectedCardID {
			mark = "*"
		}
		fmt.Fprintf(w, " %s%2d. %s\n", mark, i+1, c.CardValue)
	}
}

func (r *Renderer) renderChat(w io.Writer, v session.View) {
	if len(v.Chat) == 0 {
		return
	}
	// Only the tail; the store already bounds the scrollback.
	tail := v.Chat
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	fmt.Fprintln(w, "\nevents:")
	for _, line := range tail {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func (r *Renderer) renderEmojis(w io.Writer, v session.View) {
	if len(v.Emojis) == 0 {
		return
	}
	parts := make([]string, 0, len(v.Emojis))
	for _, e := range v.Emojis {
		parts = append(parts, e.Emoji)
	}
	fmt.Fprintf(w, "\n%s\n", strings.Join(parts, " "))
}

func (r *Renderer) renderPrompt(w io.Writer, v session.View) {
	actions := make([]string, 0, 4)
	if v.Model.Joinable {
		actions = append(actions, "join")
	}
	if v.Model.CanBeginGame {
		actions = append(actions, "begin")
	}
	if v.Model.CanPlayCard {
		actions = append(actions, "select <n> / play")
	}
	if v.Model.CanPickWinner {
		actions = append(actions, "pick <n>")
	}
	if v.Model.CanContinueRound {
		actions = append(actions, "continue")
	}
	actions = append(actions, "emoji <e>", "quit")
	fmt.Fprintf(w, "\n[%s] > ", strings.Join(actions, " | "))
}

// InviteQR renders a terminal QR code for the game's join URL so players on
// phones can scan their way in.
func InviteQR(w io.Writer, gameURL string) error {
	qr, err := qrcode.New(gameURL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("unable to build invite QR: %w", err)
	}
	fmt.Fprintln(w, gameURL)
	fmt.Fprint(w, qr.ToSmallString(false))
	return nil
}
