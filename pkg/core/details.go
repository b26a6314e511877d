package core

import "time"

// GameResult is a player's recorded outcome.
type GameResult uint8

const (
	ResultUndecided GameResult = iota
	ResultWin
	ResultTie
	ResultLoss
)

// String returns the display form used by the stat panels.
func (r GameResult) String() string {
	switch r {
	case ResultWin:
		return "Winner"
	case ResultTie:
		return "Tie"
	case ResultLoss:
		return "Lost"
	default:
		return "Undecided"
	}
}

// Toon identifies a player profile on the game service.
type Toon struct {
	Region    uint8
	Realm     uint8
	ProfileID uint64
}

// PlayerColor is the lobby color assigned to a player, as decoded from the
// replay details record (independent of the analyser palette).
type PlayerColor struct {
	R, G, B, A uint8
}

// PlayerDetails is one entry of the replay's player list.
type PlayerDetails struct {
	Name           string
	Race           string
	TeamID         uint8
	WorkingSetSlot *uint8
	Color          PlayerColor
	Result         GameResult
	Toon           Toon
}

// ReplayDetails is the decoded details record of one replay: map identity,
// players, and the recorded end-of-game timestamp.
type ReplayDetails struct {
	Title         string
	MapFileName   string
	Description   string
	IsOfficialMap bool
	TimeUTC       time.Time
	Players       []PlayerDetails
}

// MapName returns the map file name, falling back to the title when the
// file name is empty. Both fields are unreliable across replay versions.
func (d ReplayDetails) MapName() string {
	if d.MapFileName != "" {
		return d.MapFileName
	}
	return d.Title
}

// MessageRecipient is the scope of a chat message.
type MessageRecipient uint8

const (
	RecipientAll MessageRecipient = iota
	RecipientAllies
	RecipientIndividual
	RecipientBattlenet
	RecipientObservers
)

// String returns the display form used by the message panel.
func (m MessageRecipient) String() string {
	switch m {
	case RecipientAll:
		return "To All"
	case RecipientAllies:
		return "To Allies"
	case RecipientIndividual:
		return "To Individual"
	case RecipientBattlenet:
		return "To Battlenet"
	case RecipientObservers:
		return "To Observers"
	}
	return "Unknown"
}

// ChatMessage is one decoded message event. Like tracker events, messages
// are delta-encoded against the previous message.
type ChatMessage struct {
	Delta     uint32
	UserID    uint8
	Recipient MessageRecipient
	Text      string
}
