package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const maxBodyBytes = 1 << 12

type searchEngine interface {
	BestMove(board entity.Board, mover entity.Mark) tictactoe.SearchResult
	Hint(board entity.Board, human entity.Mark) tictactoe.SearchResult
}

type EngineHandler interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	BestMove(w http.ResponseWriter, r *http.Request)
	Hint(w http.ResponseWriter, r *http.Request)
}

type boardRequest struct {
	Board []string `json:"board"`
	Mover string   `json:"mover,omitempty"`
	Human string   `json:"human,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type engineHandler struct {
	logger *slog.Logger
	engine searchEngine
}

func NewEngineHandler(logger *slog.Logger, engine searchEngine) EngineHandler {
	return &engineHandler{
		logger: logger,
		engine: engine,
	}
}

// Evaluate - outcome of a board.
func (that *engineHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	_, board, err := decodeBoard(w, r)
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	that.logger.With("method", "Evaluate").Debug("evaluating board", "board", board.String())

	that.writeJSON(w, r, http.StatusOK, entity.Evaluate(board))
}

// BestMove - optimal move for mover.
func (that *engineHandler) BestMove(w http.ResponseWriter, r *http.Request) {
	req, board, err := decodeBoard(w, r)
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	mover, err := entity.ParseMark(req.Mover)
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, fmt.Errorf("mover: %w", err))
		return
	}

	result := that.engine.BestMove(board, mover)

	that.logger.With("method", "BestMove").Debug("search finished",
		"board", board.String(), "mover", mover, "index", result.Index, "score", result.Score, "nodes", result.Nodes)

	that.writeJSON(w, r, http.StatusOK, result)
}

// Hint - the move the engine suggests for the human. Finished boards and boards where
// the other side is to move are refused.
func (that *engineHandler) Hint(w http.ResponseWriter, r *http.Request) {
	req, board, err := decodeBoard(w, r)
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	human, err := entity.ParseMark(req.Human)
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, fmt.Errorf("human: %w", err))
		return
	}

	if entity.Evaluate(board).IsTerminal() {
		that.writeError(w, r, http.StatusConflict, apperror.ErrGameFinished)
		return
	}

	mover, err := board.NextMover()
	if err != nil {
		that.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if mover != human {
		that.writeError(w, r, http.StatusConflict, apperror.ErrNotYourTurn)
		return
	}

	that.writeJSON(w, r, http.StatusOK, that.engine.Hint(board, human))
}

func decodeBoard(w http.ResponseWriter, r *http.Request) (*boardRequest, entity.Board, error) {
	var req boardRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return nil, entity.Board{}, fmt.Errorf("malformed request body: %w", err)
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		return nil, entity.Board{}, err
	}

	return &req, board, nil
}

func (that *engineHandler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if !errors.Is(err, apperror.ErrGameFinished) && !errors.Is(err, apperror.ErrNotYourTurn) {
		that.logger.With("method", "writeError").Info("rejected request", "path", r.URL.Path, "error", err)
	}

	that.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (that *engineHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.With("method", "writeJSON").Error("failed to write response", "path", r.URL.Path, "error", err)
	}
}
