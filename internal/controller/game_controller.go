package controller

import (
	"errors"
	"log"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color string `json:"color"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidMove),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrLabelNotFound):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	req := createGameRequest{Color: string(model.White)}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	color, ok := model.ParseColor(req.Color)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "color must be white or black",
		})
	}

	gameID, err := gc.gameService.CreateGame(playerID, color)
	if err != nil {
		log.Printf("create game for %s: %v", playerID, err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil || move.From == "" || move.To == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "from and to are required",
		})
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return fail(c, err)
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	destinations, err := gc.gameService.LegalDestinations(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square": c.Params("square"),
		"moves":  destinations,
	})
}

func (gc *GameController) Hint(c *fiber.Ctx) error {
	hint, err := gc.gameService.Hint(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(hint)
}
