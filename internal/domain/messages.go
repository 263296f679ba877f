package domain

// messages exchanged with the browser over the websocket

// Column is a pointer so a drop without one is rejected, not read as 0.
type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type    string              `json:"type"`
	Message string              `json:"message,omitempty"`
	GameID  string              `json:"gameId,omitempty"`
	Move    *DropResult         `json:"move,omitempty"`
	State   *Snapshot           `json:"state,omitempty"`
	Colors  map[PlayerID]string `json:"colors,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
