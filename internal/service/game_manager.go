package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type Config struct {
	EngineDepth int
	HintDepth   int
	TimeControl time.Duration
}

func DefaultConfig() Config {
	return Config{EngineDepth: 2, HintDepth: 3}
}

type GameManager struct {
	games     map[string]*model.Game
	config    Config
	suggester Suggester
	mu        sync.RWMutex
}

func NewGameManager(config Config, suggester Suggester) *GameManager {
	if suggester == nil {
		suggester = MinimaxSuggester{}
	}
	return &GameManager{
		games:     make(map[string]*model.Game),
		config:    config,
		suggester: suggester,
	}
}

// CreateGame starts a game with the human on humanColor. When the engine
// has the first move it is played before returning.
func (gm *GameManager) CreateGame(humanColor model.Color) (string, error) {
	if !humanColor.Valid() {
		return "", fmt.Errorf("unknown color %q", humanColor)
	}
	gameID := uuid.New().String()
	game := model.NewGame(gameID, humanColor, gm.config.TimeControl)

	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return "", errors.New("game already exists")
	}
	gm.games[gameID] = game
	gm.mu.Unlock()

	log.Printf("created game %s, human plays %s", gameID, humanColor)
	gm.engineReply(game)
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// MakeMove plays the human move and then the engine's answer. The search
// runs on a snapshot, outside both the manager and the game lock. The
// result only reports on the human move; a failed reply is logged.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.SimpleMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	gm.engineReply(game)
	return nil
}

func (gm *GameManager) engineReply(game *model.Game) {
	if !game.EngineToMove() {
		return
	}
	board, atPly := game.Snapshot()
	move, ok := gm.suggester.Suggest(board, game.EngineColor(), gm.config.EngineDepth)
	if !ok {
		return
	}
	if err := game.ApplyEngineMove(move, atPly); err != nil {
		log.Printf("game %s: engine move rejected: %v", game.ID, err)
	}
}

// Hint suggests a move for the human, as a pair of labels.
func (gm *GameManager) Hint(gameID string) (model.SimpleMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.SimpleMove{}, err
	}
	if game.IsOver() {
		return model.SimpleMove{}, model.ErrGameOver
	}
	board, _ := game.Snapshot()
	if board.Turn != game.HumanColor() {
		return model.SimpleMove{}, model.ErrNotYourTurn
	}
	move, ok := gm.suggester.Suggest(board, board.Turn, gm.config.HintDepth)
	if !ok {
		return model.SimpleMove{}, model.ErrGameOver
	}
	return model.SimpleMove{From: board.Label(move.From), To: board.Label(move.To)}, nil
}

func (gm *GameManager) LegalDestinations(gameID, label string) ([]string, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalDestinations(label)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Observer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if !game.IsPlayerInGame(playerID) && !game.CanSpectate() {
		return model.ErrNotAuthorized
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}
