package view

import (
	"github.com/MatthewTroke/neural-decks-client/pkg/protocol"
)

// WhiteCard is a board card annotated with whether it is the card the judge
// picked this round.
type WhiteCard struct {
	Card      *protocol.Card
	IsWinning bool
}

// ViewModel is a read-only projection of one snapshot plus the local
// identity. Every renderer and every command guard works off this value and
// nothing else, so the snapshot itself never has to be consulted twice.
type ViewModel struct {
	SelfPlayer          *protocol.Player
	IsJudge             bool
	CanPickWinner       bool
	CanPlayCard         bool
	CanBeginGame        bool
	CanContinueRound    bool
	Joinable            bool
	WinningCard         *protocol.Card
	DisplayedWhiteCards []WhiteCard
}

// Derive computes the view model for localUserID. It is pure: no side
// effects, no clock, safe to re-run on every snapshot. An empty localUserID
// means an unauthenticated spectator, so every action flag comes out false.
func Derive(snap *protocol.GameSnapshot, localUserID string) ViewModel {
	var vm ViewModel
	if snap == nil {
		return vm
	}

	vm.SelfPlayer = snap.FindPlayer(localUserID)
	vm.Joinable = snap.Status == protocol.StatusSetup && vm.SelfPlayer == nil

	if vm.SelfPlayer != nil {
		vm.IsJudge = vm.SelfPlayer.IsJudge

		vm.CanPickWinner = snap.Status == protocol.StatusInProgress &&
			snap.RoundStatus.CanPickWinningCard() &&
			vm.IsJudge

		vm.CanPlayCard = vm.SelfPlayer.PlacedCard == nil &&
			!vm.IsJudge &&
			snap.RoundStatus.CanPlayCards()

		vm.CanBeginGame = snap.Status == protocol.StatusSetup

		vm.CanContinueRound = snap.Status == protocol.StatusInProgress &&
			snap.RoundStatus.CanContinueRound()
	}

	if snap.RoundStatus == protocol.RoundJudgeChoseWinningCard && snap.RoundWinner != nil {
		vm.WinningCard = snap.RoundWinner.PlacedCard
	}

	vm.DisplayedWhiteCards = make([]WhiteCard, 0, len(snap.WhiteCards))
	for _, c := range snap.WhiteCards {
		if c == nil {
			continue
		}
		vm.DisplayedWhiteCards = append(vm.DisplayedWhiteCards, WhiteCard{
			Card:      c,
			IsWinning: vm.WinningCard != nil && c.ID == vm.WinningCard.ID,
		})
	}

	return vm
}

// CardInHand reports whether the local player's deck holds the given card.
func (vm ViewModel) CardInHand(cardID string) bool {
	if vm.SelfPlayer == nil {
		return false
	}
	for _, c := range vm.SelfPlayer.Deck {
		if c != nil && c.ID == cardID {
			return true
		}
	}
	return false
}
