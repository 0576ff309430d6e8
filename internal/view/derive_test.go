package view

import (
	"reflect"
	"testing"

	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

func card(id string) *protocol.Card {
	return &protocol.Card{ID: id, Type: protocol.CardWhite, CardValue: "card " + id}
}

func snapshot(status protocol.GameStatus, round protocol.RoundStatus, players ...*protocol.Player) *protocol.GameSnapshot {
	return &protocol.GameSnapshot{
		ID:             "g1",
		Name:           "test game",
		MaxPlayerCount: 8,
		Status:         status,
		RoundStatus:    round,
		Players:        players,
	}
}

func TestDerive_ActionFlags(t *testing.T) {
	cases := []struct {
		name          string
		snap          *protocol.GameSnapshot
		userID        string
		canPlayCard   bool
		canPickWinner bool
		isJudge       bool
		joinable      bool
	}{
		{
			name: "player may play during picking phase",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard,
				&protocol.Player{UserID: "u1"}),
			userID:      "u1",
			canPlayCard: true,
		},
		{
			name: "judge may pick during judging phase",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundJudgePickingWinningCard,
				&protocol.Player{UserID: "u1", IsJudge: true}),
			userID:        "u1",
			isJudge:       true,
			canPickWinner: true,
		},
		{
			name: "judge may not play a card",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard,
				&protocol.Player{UserID: "u1", IsJudge: true}),
			userID:  "u1",
			isJudge: true,
		},
		{
			name: "player with placed card may not play again",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard,
				&protocol.Player{UserID: "u1", PlacedCard: card("c1")}),
			userID: "u1",
		},
		{
			name: "non-judge may not pick a winner",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundJudgePickingWinningCard,
				&protocol.Player{UserID: "u1"}),
			userID: "u1",
		},
		{
			name: "judge may not pick outside judging phase",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard,
				&protocol.Player{UserID: "u1", IsJudge: true}),
			userID:  "u1",
			isJudge: true,
		},
		{
			name: "game in setup is joinable for outsiders",
			snap: snapshot(protocol.StatusSetup, protocol.RoundWaiting,
				&protocol.Player{UserID: "u2"}),
			userID:   "u1",
			joinable: true,
		},
		{
			name: "game in setup is not joinable for members",
			snap: snapshot(protocol.StatusSetup, protocol.RoundWaiting,
				&protocol.Player{UserID: "u1"}),
			userID: "u1",
		},
		{
			name:   "game in progress is not joinable",
			snap:   snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard),
			userID: "u1",
		},
		{
			name: "spectator gets no action flags",
			snap: snapshot(protocol.StatusInProgress, protocol.RoundJudgePickingWinningCard,
				&protocol.Player{UserID: "u1", IsJudge: true}),
			userID: "",
		},
		{
			name:   "empty player list must not panic",
			snap:   snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard),
			userID: "u1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm := Derive(tc.snap, tc.userID)

			if vm.CanPlayCard != tc.canPlayCard {
				t.Errorf("CanPlayCard = %v, want %v", vm.CanPlayCard, tc.canPlayCard)
			}
			if vm.CanPickWinner != tc.canPickWinner {
				t.Errorf("CanPickWinner = %v, want %v", vm.CanPickWinner, tc.canPickWinner)
			}
			if vm.IsJudge != tc.isJudge {
				t.Errorf("IsJudge = %v, want %v", vm.IsJudge, tc.isJudge)
			}
			if vm.Joinable != tc.joinable {
				t.Errorf("Joinable = %v, want %v", vm.Joinable, tc.joinable)
			}
		})
	}
}

func TestDerive_WinningCardAnnotation(t *testing.T) {
	winner := &protocol.Player{UserID: "u2", PlacedCard: card("c2")}
	snap := snapshot(protocol.StatusInProgress, protocol.RoundJudgeChoseWinningCard,
		&protocol.Player{UserID: "u1", IsJudge: true}, winner)
	snap.WhiteCards = []*protocol.Card{card("c1"), card("c2"), card("c3")}
	snap.RoundWinner = winner

	vm := Derive(snap, "u1")

	if vm.WinningCard == nil || vm.WinningCard.ID != "c2" {
		t.Fatalf("WinningCard = %+v, want c2", vm.WinningCard)
	}

	winning := 0
	for _, wc := range vm.DisplayedWhiteCards {
		if wc.IsWinning {
			winning++
			if wc.Card.ID != "c2" {
				t.Errorf("wrong card annotated as winning: %s", wc.Card.ID)
			}
		}
	}
	if winning != 1 {
		t.Errorf("expected exactly one winning card, got %d", winning)
	}
}

func TestDerive_NoWinnerOutsideChoseWinningCard(t *testing.T) {
	winner := &protocol.Player{UserID: "u2", PlacedCard: card("c2")}
	snap := snapshot(protocol.StatusInProgress, protocol.RoundJudgePickingWinningCard, winner)
	snap.WhiteCards = []*protocol.Card{card("c2")}
	snap.RoundWinner = winner

	vm := Derive(snap, "u2")

	if vm.WinningCard != nil {
		t.Errorf("WinningCard = %+v, want nil before the judge chooses", vm.WinningCard)
	}
	for _, wc := range vm.DisplayedWhiteCards {
		if wc.IsWinning {
			t.Errorf("card %s annotated winning before the judge chose", wc.Card.ID)
		}
	}
}

func TestDerive_IsPure(t *testing.T) {
	snap := snapshot(protocol.StatusInProgress, protocol.RoundPlayersPickingCard,
		&protocol.Player{UserID: "u1", Deck: []*protocol.Card{card("c1")}})
	snap.WhiteCards = []*protocol.Card{card("c9")}

	first := Derive(snap, "u1")
	second := Derive(snap, "u1")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("derive is not referentially transparent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDerive_NilSnapshot(t *testing.T) {
	vm := Derive(nil, "u1")
	if vm.CanPlayCard || vm.CanPickWinner || vm.Joinable || vm.SelfPlayer != nil {
		t.Errorf("nil snapshot should derive an empty view model, got %+v", vm)
	}
}
