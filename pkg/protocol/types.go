package protocol

import "time"

type GameStatus string

const (
	StatusSetup      GameStatus = "Setup"
	StatusInProgress GameStatus = "InProgress"
	StatusFinished   GameStatus = "Finished"
)

func (g GameStatus) IsValid() bool {
	switch g {
	case StatusSetup, StatusInProgress, StatusFinished:
		return true
	default:
		return false
	}
}

// RoundStatus is the server's round state machine as observed by the client.
// The client never transitions it; it only renders the current value and
// sends commands that request transitions.
type RoundStatus string

const (
	RoundWaiting                 RoundStatus = "Waiting"
	RoundPlayersPickingCard      RoundStatus = "PlayersPickingCard"
	RoundJudgePickingWinningCard RoundStatus = "JudgePickingWinningCard"
	RoundJudgeChoseWinningCard   RoundStatus = "JudgeChoseWinningCard"
	RoundGameOver                RoundStatus = "GameOver"
)

func (r RoundStatus) IsValid() bool {
	switch r {
	case RoundWaiting, RoundPlayersPickingCard, RoundJudgePickingWinningCard, RoundJudgeChoseWinningCard, RoundGameOver:
		return true
	default:
		return false
	}
}

func (r RoundStatus) CanPlayCards() bool {
	return r == RoundPlayersPickingCard
}

func (r RoundStatus) CanPickWinningCard() bool {
	return r == RoundJudgePickingWinningCard
}

func (r RoundStatus) CanContinueRound() bool {
	return r == RoundJudgeChoseWinningCard
}

type CardType string

const (
	CardBlack CardType = "Black"
	CardWhite CardType = "White"
)

// Card is immutable and compared by ID.
type Card struct {
	ID        string   `json:"id"`
	Type      CardType `json:"type"`
	CardValue string   `json:"card_value"`
}

type Player struct {
	Score         int     `json:"score"`
	IsOwner       bool    `json:"is_owner"`
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Image         string  `json:"image"`
	Deck          []*Card `json:"deck"`
	IsJudge       bool    `json:"is_judge"`
	WasJudge      bool    `json:"was_judge"`
	PlacedCard    *Card   `json:"placed_card"`
	IsRoundWinner bool    `json:"is_round_winner"`
	IsGameWinner  bool    `json:"is_game_winner"`
}

// GameSnapshot is the full authoritative game state pushed by the server on
// every change. Each snapshot replaces the previous one wholesale; it is
// never patched or merged client-side. The server only includes a player's
// deck in the copy delivered to that player, so Deck may be nil for everyone
// but the local user.
type GameSnapshot struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	WinnerCount        int         `json:"winner_count"`
	MaxPlayerCount     int         `json:"max_player_count"`
	Status             GameStatus  `json:"status"`
	Players            []*Player   `json:"players"`
	WhiteCards         []*Card     `json:"white_cards"`
	BlackCard          *Card       `json:"black_card"`
	RoundStatus        RoundStatus `json:"round_status"`
	CurrentGameRound   int         `json:"current_game_round"`
	RoundWinner        *Player     `json:"round_winner"`
	NextAutoProgressAt time.Time   `json:"next_auto_progress_at"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// FindPlayer returns the player with the given user id, or nil. A nil
// receiver and an empty id are both fine; spectators simply get nil back.
func (g *GameSnapshot) FindPlayer(userID string) *Player {
	if g == nil || userID == "" {
		return nil
	}
	for _, p := range g.Players {
		if p != nil && p.UserID == userID {
			return p
		}
	}
	return nil
}
