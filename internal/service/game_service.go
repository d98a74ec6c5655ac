package service

import (
	"fmt"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame opens a game against the engine and seats playerID as the
// human on humanColor.
func (gs *GameService) CreateGame(playerID string, humanColor model.Color) (string, error) {
	gameID, err := gs.gameManager.CreateGame(humanColor)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if _, err := gs.gameManager.AddPlayerToGame(gameID, playerID); err != nil {
		return "", fmt.Errorf("failed to seat player: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.SimpleMove) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return fmt.Errorf("move %s-%s: %w", move.From, move.To, err)
	}
	return nil
}

func (gs *GameService) Hint(gameID string) (model.SimpleMove, error) {
	return gs.gameManager.Hint(gameID)
}

func (gs *GameService) LegalDestinations(gameID, label string) ([]string, error) {
	return gs.gameManager.LegalDestinations(gameID, label)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Observer) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
