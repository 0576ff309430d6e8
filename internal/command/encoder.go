package command

import (
	"errors"

	"github.com/MatthewTroke/neural-decks-client/internal/view"
	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

var ErrAlreadyJoined = errors.New("already joined this game")
var ErrNotInGame = errors.New("not a player in this game")
var ErrNotJudge = errors.New("only the judge may pick the winning card")
var ErrCannotPlayCard = errors.New("cannot play a card right now")
var ErrCannotContinue = errors.New("round cannot be continued yet")
var ErrCardNotInHand = errors.New("card is not in your hand")
var ErrEmptyEmoji = errors.New("emoji cannot be empty")

// Encoder maps user gestures onto outbound command envelopes. Each method
// checks the view model derived from the latest snapshot and refuses to
// produce anything when the gesture is not currently legal. The guard is a
// UX nicety only; the server re-validates every command it receives.
type Encoder struct {
	GameID string
	UserID string
}

func (e Encoder) Join(vm view.ViewModel) (protocol.Envelope, error) {
	if !vm.Joinable {
		return protocol.Envelope{}, ErrAlreadyJoined
	}
	return protocol.NewEnvelope(protocol.TypeJoinedGame, protocol.JoinedGamePayload{
		GameID: e.GameID,
		UserID: e.UserID,
	}), nil
}

func (e Encoder) BeginGame(vm view.ViewModel) (protocol.Envelope, error) {
	if !vm.CanBeginGame {
		return protocol.Envelope{}, ErrNotInGame
	}
	return protocol.NewEnvelope(protocol.TypeGameBegins, protocol.GameBeginsPayload{
		GameID: e.GameID,
		UserID: e.UserID,
	}), nil
}

// PlayCard is the confirm half of select-then-confirm. Selection itself is
// local-only and reversible; nothing reaches the server until here.
func (e Encoder) PlayCard(vm view.ViewModel, cardID string) (protocol.Envelope, error) {
	if !vm.CanPlayCard {
		return protocol.Envelope{}, ErrCannotPlayCard
	}
	if !vm.CardInHand(cardID) {
		return protocol.Envelope{}, ErrCardNotInHand
	}
	return protocol.NewEnvelope(protocol.TypeCardPlayed, protocol.CardPlayedPayload{
		CardID: cardID,
		GameID: e.GameID,
	}), nil
}

func (e Encoder) PickWinningCard(vm view.ViewModel, cardID string) (protocol.Envelope, error) {
	if !vm.CanPickWinner {
		return protocol.Envelope{}, ErrNotJudge
	}
	return protocol.NewEnvelope(protocol.TypeJudgeChoseWinningCard, protocol.JudgeChoseWinningCardPayload{
		CardID: cardID,
		GameID: e.GameID,
	}), nil
}

func (e Encoder) ContinueRound(vm view.ViewModel) (protocol.Envelope, error) {
	if !vm.CanContinueRound {
		return protocol.Envelope{}, ErrCannotContinue
	}
	return protocol.NewEnvelope(protocol.TypeRoundContinued, protocol.RoundContinuedPayload{
		GameID: e.GameID,
	}), nil
}

func (e Encoder) Emoji(emoji string) (protocol.Envelope, error) {
	if emoji == "" {
		return protocol.Envelope{}, ErrEmptyEmoji
	}
	return protocol.NewEnvelope(protocol.TypeEmojiClickedCommand, protocol.EmojiPayload{
		Emoji:  emoji,
		GameID: e.GameID,
		UserID: e.UserID,
	}), nil
}
