package protocol

import "encoding/json"

// Envelope is the wire framing for every message in both directions:
// a type tag plus an opaque payload. Inbound payloads are decoded lazily
// once the type is known.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Server -> client message types. Anything else is ignored, not an error.
const (
	TypeGameUpdate   = "GAME_UPDATE"   // payload: GameSnapshot
	TypeChatMessage  = "CHAT_MESSAGE"  // payload: plain string
	TypeEmojiClicked = "EMOJI_CLICKED" // payload: EmojiPayload
)

// Client -> server command types.
const (
	TypeJoinedGame            = "JoinedGame"
	TypeGameBegins            = "GameBegins"
	TypeCardPlayed            = "CardPlayed"
	TypeJudgeChoseWinningCard = "JudgeChoseWinningCard"
	TypeRoundContinued        = "RoundContinued"
	TypeEmojiClickedCommand   = "EmojiClicked"
)

type JoinedGamePayload struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type GameBeginsPayload struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type CardPlayedPayload struct {
	CardID string `json:"card_id"`
	GameID string `json:"game_id"`
}

type JudgeChoseWinningCardPayload struct {
	CardID string `json:"card_id"`
	GameID string `json:"game_id"`
}

type RoundContinuedPayload struct {
	GameID string `json:"game_id"`
}

// EmojiPayload doubles as the outbound EmojiClicked command payload and the
// broadcast the server echoes back to every connected client.
type EmojiPayload struct {
	Emoji  string `json:"emoji"`
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

// NewEnvelope wraps a payload for transmission. Marshal errors are
// impossible for the payload structs above, so they are swallowed the same
// way the server side does when it builds broadcasts.
func NewEnvelope(msgType string, payload any) Envelope {
	raw, _ := json.Marshal(payload)
	return Envelope{Type: msgType, Payload: raw}
}
