package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errPlayerRequired = errors.New("player is required")

// clientErrors are shown to the player as is, anything else is reported as an internal error.
var clientErrors = []error{
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNoActiveGames,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidCell,
	apperror.ErrInvalidMark,
	apperror.ErrNoAvailableMoves,
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	player, err := that.gameManager.GetOrCreatePlayer(ctx, payloadReq.playerID())
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameManager.GetGame(ctx, player.ID)
		if err != nil && !errors.Is(err, apperror.ErrNoActiveGames) {
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
		}

		payloadResp.Game = game
	}

	log.Info("player connected", "playerID", player.ID)

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePlayerPayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	mark := entity.EmptyCell
	if payloadReq.Mark != "" {
		if mark, err = entity.ParseMark(payloadReq.Mark); err != nil {
			return that.sendErrorResponse(conn, msg.Action, err.Error())
		}
	}

	game, err := that.gameManager.NewGame(ctx, payloadReq.playerID(), mark)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, clientMessage(err, "failed to create a new game"))
	}

	return that.sendGame(ctx, conn, msg.Action, payloadReq.playerID(), game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePlayerPayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "cell is required")
	}

	game, err := that.gameManager.MakeTurn(ctx, payloadReq.playerID(), *payloadReq.Cell)
	if errors.Is(err, apperror.ErrGameFinished) && game != nil {
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
		return that.sendGame(ctx, conn, msg.Action, payloadReq.playerID(), game)
	}

	if err != nil {
		log.Info("turn rejected", "error", err)
		return that.sendErrorResponse(conn, msg.Action, clientMessage(err, "failed to make turn"))
	}

	return that.sendGame(ctx, conn, msg.Action, payloadReq.playerID(), game)
}

func (that *Server) handleGameHint(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameHint")

	payloadReq, err := decodePlayerPayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	game, err := that.gameManager.Hint(ctx, payloadReq.playerID())
	if err != nil {
		log.Info("hint refused", "error", err)
		return that.sendErrorResponse(conn, msg.Action, clientMessage(err, "failed to get a hint"))
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game, Hint: game.Hint})
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePlayerPayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	player, err := that.gameManager.LeaveGame(ctx, payloadReq.playerID())
	if err != nil {
		log.Info("leave refused", "error", err)
		return that.sendErrorResponse(conn, msg.Action, clientMessage(err, "failed to leave the game"))
	}

	log.Info("player left the game", "playerID", player.ID)

	return that.sendMessage(conn, msg.Action, Payload{Player: player})
}

// sendGame - replies with the game and the player's refreshed state.
func (that *Server) sendGame(ctx context.Context, conn *websocket.Conn, action, playerID string, game *entity.Game) error {
	player, err := that.gameManager.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		that.logger.With("method", "sendGame").Error("failed to get player", "playerID", playerID, "error", err)
		return that.sendMessage(conn, action, Payload{Game: game})
	}

	return that.sendMessage(conn, action, Payload{Player: player, Game: game})
}

func decodePlayerPayload(msg *Message) (*Payload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payloadReq.playerID() == "" {
		return nil, errPlayerRequired
	}

	return payloadReq, nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payloadReq Payload

	if len(msg.Payload) == 0 {
		return &payloadReq, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}

	return &payloadReq, nil
}

func clientMessage(err error, fallback string) string {
	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			return clientErr.Error()
		}
	}

	return fallback
}
