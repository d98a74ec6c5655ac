package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/ws"
)

var ErrDuplicateConnection = errors.New("connection already exists")

// Observer is a live client of a game, in practice a websocket connection.
type Observer interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Observer // playerID -> connection
	mu          sync.RWMutex

	// sendMu orders broadcasts; states older than sent are dropped
	sendMu sync.Mutex
	sent   int
}

// Game is one human against the engine. The board is only touched under mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	human       Color
	players     Players
	plies       []Ply
	sound       string
	resolve     *string
	version     int
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type BoardState struct {
	Board       [][]*Piece `json:"board"`
	Labels      [][]string `json:"labels"`
	Orientation Color      `json:"orientation"`
	FEN         string     `json:"fen"`
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          BoardState     `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	CheckSquares   []string       `json:"checkSquares"`
	Status         Status         `json:"status"`
	Resolve        *string        `json:"resolve"`
	Winner         *Color         `json:"winner"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// NewGame seats the human on humanColor; the other side belongs to the
// engine. timeControl of zero leaves both clocks untimed.
func NewGame(id string, humanColor Color, timeControl time.Duration) *Game {
	return &Game{
		ID:    id,
		board: NewBoard(humanColor),
		human: humanColor,
		players: Players{
			White: ClientPlayer{Color: White, IsEngine: humanColor != White},
			Black: ClientPlayer{Color: Black, IsEngine: humanColor != Black},
		},
		plies:       make([]Ply, 0),
		connections: NewGameConnections(),
		whiteClock:  NewClock(timeControl),
		blackClock:  NewClock(timeControl),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Observer),
	}
}

func (g *Game) HumanColor() Color {
	return g.human
}

func (g *Game) EngineColor() Color {
	return g.human.Opponent()
}

func (g *Game) seat(color Color) *ClientPlayer {
	if color == White {
		return &g.players.White
	}
	return &g.players.Black
}

// AddPlayer gives the human seat to the first caller. Later callers of a
// different id get an error; the same id rejoining is fine.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seat(g.human)
	if seat.ID == "" || seat.ID == playerID {
		seat.ID = playerID
		return g.human, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	seat := g.seat(g.human)
	return seat.ID != "" && seat.ID == playerID
}

// Spectators may always watch.
func (g *Game) CanSpectate() bool {
	return true
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	b := g.board
	state := GameState{
		Sound:          g.sound,
		Board:          g.boardStateLocked(),
		ToMove:         b.Turn,
		MoveHistory:    append([]Ply(nil), g.plies...),
		CapturedPieces: g.capturedLocked(),
		IsCheck:        b.IsInCheck(b.Turn),
		CheckSquares:   []string{},
		Status:         b.Status(b.Turn),
		Resolve:        g.resolve,
		Players:        g.players,
	}
	for _, check := range b.Checks(b.Turn) {
		state.CheckSquares = append(state.CheckSquares, b.SquaresBetween(check)...)
	}
	if mated, ok := b.Mated(); ok {
		winner := mated.Opponent()
		state.Winner = &winner
	}
	if g.resolve != nil && *g.resolve == "timeout" {
		winner := b.Turn.Opponent()
		state.Winner = &winner
	}
	if last, ok := b.LastMove(); ok {
		state.LastMove = &SimpleMove{From: b.Label(last.From), To: b.Label(last.To)}
	}
	state.Players.White.TimeLeft = g.whiteClock.tenths()
	state.Players.Black.TimeLeft = g.blackClock.tenths()
	return state
}

func (g *Game) boardStateLocked() BoardState {
	labels := make([][]string, Rows)
	for row := range labels {
		labels[row] = make([]string, Cols)
		for col := range labels[row] {
			labels[row][col] = g.board.Square(row, col).Label
		}
	}
	return BoardState{
		Board:       g.board.Pieces(),
		Labels:      labels,
		Orientation: g.board.Orientation(),
		FEN:         g.board.FEN(),
	}
}

func (g *Game) capturedLocked() CapturedPieces {
	captured := CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)}
	for _, p := range g.board.Captured {
		if p.Color == White {
			captured.White = append(captured.White, *p)
		} else {
			captured.Black = append(captured.Black, *p)
		}
	}
	return captured
}

// Snapshot returns a private copy of the board, safe to search without the
// game lock, and the ply count it was taken at.
func (g *Game) Snapshot() (*Board, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone(), len(g.board.History)
}

// IsOver reports whether the game has ended, or will end on the next move
// attempt because the side to move ran out of time.
func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve != nil || g.board.IsGameOver() || g.clockFor(g.board.Turn).Expired()
}

// EngineToMove reports whether the engine should reply now.
func (g *Game) EngineToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve == nil && g.board.Turn != g.human
}

// LegalDestinations lists where the piece standing on label may go.
func (g *Game) LegalDestinations(label string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sq, err := g.board.SquareByLabel(label)
	if err != nil {
		return nil, err
	}
	destinations := []string{}
	for _, m := range g.board.LegalMovesFor(sq.Piece) {
		if m.From == sq.Position() {
			destinations = append(destinations, g.board.Label(m.To))
		}
	}
	return destinations, nil
}

// MakeMove plays a human move given as labels.
func (g *Game) MakeMove(playerID string, move SimpleMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotAuthorized
	}
	if g.resolve != nil {
		return ErrGameOver
	}
	if g.board.Turn != g.human {
		return ErrNotYourTurn
	}
	m, err := g.board.MoveFromLabels(move.From, move.To)
	if err != nil {
		return err
	}
	return g.playLocked(m)
}

// ApplyEngineMove plays a move the engine found on a snapshot taken at
// atPly. A move for a position that has since changed is rejected.
func (g *Game) ApplyEngineMove(m Move, atPly int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.Turn == g.human || len(g.board.History) != atPly {
		return ErrNotYourTurn
	}
	return g.playLocked(m)
}

func (g *Game) playLocked(m Move) error {
	if g.resolve != nil {
		return ErrGameOver
	}
	if g.clockFor(g.board.Turn).Expired() {
		g.finishLocked("timeout")
		g.publishLocked()
		return ErrGameOver
	}

	m, ok := g.board.Resolve(m)
	if !ok {
		return ErrInvalidMove
	}
	ply := g.board.ply(m)
	sound := "move"
	if m.Captured != nil {
		sound = "capture"
	}
	g.board.commit(m)

	g.clockFor(g.board.Turn.Opponent()).Stop()
	g.clockFor(g.board.Turn).Start()

	ply.Notation += g.board.checkSuffix()
	g.plies = append(g.plies, ply)

	switch g.board.Status(g.board.Turn) {
	case Checkmate:
		g.finishLocked("checkmate")
	case Stalemate:
		g.finishLocked("stalemate")
	case InCheck:
		sound = "check"
	}
	g.sound = sound
	log.Printf("game %s: %s played %s", g.ID, g.board.Turn.Opponent(), ply.Notation)

	g.version++
	g.publishLocked()
	return nil
}

func (g *Game) finishLocked(result string) {
	g.resolve = &result
	g.version++
	g.whiteClock.Stop()
	g.blackClock.Stop()
}

func (g *Game) clockFor(color Color) *Clock {
	if color == White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) RegisterConnection(playerID string, conn Observer) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	g.mu.Lock()
	g.publishLocked()
	g.mu.Unlock()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Printf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// publishLocked snapshots the state and hands it to a broadcast stamped
// with the current version.
func (g *Game) publishLocked() {
	go g.broadcastState(g.stateLocked(), g.version)
}

// broadcastState pushes a state snapshot to every observer, dropping the
// ones that fail. A snapshot older than one already sent is discarded, so
// observers always end on the latest position.
func (g *Game) broadcastState(state GameState, version int) {
	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	if version < g.connections.sent {
		return
	}
	g.connections.sent = version

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]Observer, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}
