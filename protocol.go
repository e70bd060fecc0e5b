package main

import "math"

// Protocol uses single-character JSON keys to minimize wire size.
// All x,y coordinates are rounded to 1 decimal place.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "j" = join    {"t":"j","n":"PlayerName"}
//     "i" = input   {"t":"i","a":1.57,"b":1}   (a=desired heading radians, b=boost 0/1)
//     "r" = respawn {"t":"r","n":"PlayerName"}
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","r":4000}  (r=world radius)
//     "s" = state   {"t":"s","s":[snakes],"f":[food],"u":[powerups],"e":[particles],"l":[leaderboard]}
//     "d" = death   {"t":"d","k":"KillerName","p":score}

// Message type identifiers — single-char for compact protocol
const (
	MsgJoin    = "j"
	MsgInput   = "i"
	MsgRespawn = "r"
	MsgWelcome = "w"
	MsgState   = "s"
	MsgDeath   = "d"
	MsgError   = "e"
)

// ClientMessage is the base incoming message from the browser.
//   {"t":"j","n":"name"}          join / respawn
//   {"t":"i","a":1.57,"b":1}      input (a=desired heading, b=boost)
type ClientMessage struct {
	Type  string  `json:"t"`
	Name  string  `json:"n,omitempty"`
	Angle float64 `json:"a,omitempty"`
	Boost int     `json:"b,omitempty"` // 0 or 1 (client sends int, not bool)
}

// WelcomeMsg is sent to a player immediately on WebSocket connect.
type WelcomeMsg struct {
	Type        string  `json:"t"`
	ID          string  `json:"i"`
	WorldRadius float64 `json:"r"`
}

// SnakeDTO is the compact snake for per-tick state updates.
// Path points are encoded as flat [x,y] float64 pairs, downsampled for the
// wire; "h" is the heading so the client can orient the head sprite.
type SnakeDTO struct {
	ID         string       `json:"i"`
	Name       string       `json:"n"`
	Path       [][2]float64 `json:"s"`
	Heading    float64      `json:"h"`
	Color      string       `json:"c"`
	Pattern    string       `json:"q"`
	Score      int          `json:"p"`
	Width      float64      `json:"w"`
	Boosting   int          `json:"b,omitempty"` // 1 if boosting, omitted if not
	Multiplier int          `json:"m,omitempty"` // omitted when 1
}

// FoodDTO is the compact food pellet.
type FoodDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Value  float64 `json:"v"`
	Radius float64 `json:"r"`
	Color  string  `json:"c"`
}

// PowerUpDTO is the compact power-up.
type PowerUpDTO struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Multiplier int     `json:"m"`
	Radius     float64 `json:"r"`
}

// ParticleDTO is a cosmetic death-burst fragment.
type ParticleDTO struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Life  float64 `json:"l"`
	Color string  `json:"c"`
}

// LeaderboardEntry is a single leaderboard row.
type LeaderboardEntry struct {
	ID    string `json:"i"`
	Name  string `json:"n"`
	Score int    `json:"p"`
}

// StateMsg is the per-tick state update sent to the client.
type StateMsg struct {
	Type        string             `json:"t"`
	Snakes      []SnakeDTO         `json:"s"`
	Food        []FoodDTO          `json:"f"`
	PowerUps    []PowerUpDTO       `json:"u"`
	Particles   []ParticleDTO      `json:"e,omitempty"`
	Leaderboard []LeaderboardEntry `json:"l"`
}

// DeathMsg is sent when the player snake dies.
// k = killer name (or "Boundary"), p = final score
type DeathMsg struct {
	Type   string `json:"t"`
	Killer string `json:"k"`
	Score  int    `json:"p"`
}

// ErrorMsg is sent before closing a rejected connection.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// roundTo1 rounds a float64 to 1 decimal place to save protocol bytes.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
