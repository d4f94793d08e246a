package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"game_inventory/internal/middleware"
	"game_inventory/internal/models"
	"game_inventory/internal/services"
	"game_inventory/internal/views"

	"github.com/go-chi/chi/v5"
)

const maxFormMemory = 1 << 20

type GameServicer interface {
	ListForView(ctx context.Context, view models.View) ([]models.Game, error)
	Get(ctx context.Context, id int64) (*models.Game, error)
	Create(ctx context.Context, form models.GameForm) (*models.Game, error)
	Update(ctx context.Context, id int64, form models.GameForm) (*models.Game, error)
	Remove(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (models.GameStatus, error)
}

type PageRenderer interface {
	List(w http.ResponseWriter, status int, data views.ListPage) error
	Form(w http.ResponseWriter, status int, data views.FormPage) error
}

// JSONResponse is the body of the delete and toggle endpoints.
type JSONResponse struct {
	OK     bool               `json:"ok"`
	Status *models.GameStatus `json:"status,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type GameController struct {
	service GameServicer
	views   PageRenderer
	log     *slog.Logger
}

func NewGameController(s GameServicer, v PageRenderer, log *slog.Logger) *GameController {
	return &GameController{
		service: s,
		views:   v,
		log:     log,
	}
}

func (c *GameController) Index(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, models.ViewActive)
}

func (c *GameController) ListInactive(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, models.ViewInactive)
}

func (c *GameController) ListAll(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, models.ViewAll)
}

func (c *GameController) list(w http.ResponseWriter, r *http.Request, view models.View) {
	const op = "controllers.games.list"

	log := c.logger(r)

	games, err := c.service.ListForView(context.WithoutCancel(r.Context()), view)
	if err != nil {
		log.Error(
			ErrGetGames.Error(),
			slog.String("operation", op),
			slog.String("view", string(view)),
			slog.String("error", err.Error()))
		c.renderList(w, log, http.StatusInternalServerError, views.ListPage{View: view, Error: ErrGetGames.Error()})
		return
	}

	c.renderList(w, log, http.StatusOK, views.ListPage{View: view, Games: games})
}

func (c *GameController) NewForm(w http.ResponseWriter, r *http.Request) {
	c.renderForm(w, c.logger(r), http.StatusOK, views.FormPage{Mode: views.ModeNew})
}

func (c *GameController) Create(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Create"

	log := c.logger(r)

	form, err := parseGameForm(r)
	if err != nil {
		log.Error(ErrBadRequest.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	if _, err := c.service.Create(context.WithoutCancel(r.Context()), form); err != nil {
		c.formError(w, log, op, views.ModeNew, ErrCreate, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *GameController) EditForm(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.EditForm"

	log := c.logger(r)

	id, err := parseID(r)
	if err != nil {
		http.Error(w, ErrInvalidID.Error(), http.StatusBadRequest)
		return
	}

	game, err := c.service.Get(context.WithoutCancel(r.Context()), id)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error(
			ErrGetGame.Error(),
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		http.Error(w, ErrGetGame.Error(), http.StatusInternalServerError)
		return
	}

	c.renderForm(w, log, http.StatusOK, views.FormPage{Mode: views.ModeEdit, Game: game})
}

func (c *GameController) Update(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Update"

	log := c.logger(r)

	id, err := parseID(r)
	if err != nil {
		http.Error(w, ErrInvalidID.Error(), http.StatusBadRequest)
		return
	}

	form, err := parseGameForm(r)
	if err != nil {
		log.Error(ErrBadRequest.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	_, err = c.service.Update(context.WithoutCancel(r.Context()), id, form)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		c.formError(w, log, op, views.ModeEdit, ErrUpdate, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *GameController) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Delete"

	log := c.logger(r)

	id, err := parseID(r)
	if err != nil {
		c.writeJSON(w, log, http.StatusBadRequest, JSONResponse{Error: ErrInvalidID.Error()})
		return
	}

	err = c.service.Remove(context.WithoutCancel(r.Context()), id)
	if errors.Is(err, services.ErrNotFound) {
		c.writeJSON(w, log, http.StatusNotFound, JSONResponse{Error: ErrNotFound.Error()})
		return
	}
	if err != nil {
		log.Error(
			ErrDelete.Error(),
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		c.writeJSON(w, log, http.StatusBadRequest, JSONResponse{Error: prefixed(ErrDelete, err)})
		return
	}

	c.writeJSON(w, log, http.StatusOK, JSONResponse{OK: true})
}

func (c *GameController) Toggle(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.Toggle"

	log := c.logger(r)

	id, err := parseID(r)
	if err != nil {
		c.writeJSON(w, log, http.StatusBadRequest, JSONResponse{Error: ErrInvalidID.Error()})
		return
	}

	status, err := c.service.ToggleStatus(context.WithoutCancel(r.Context()), id)
	if errors.Is(err, services.ErrNotFound) {
		c.writeJSON(w, log, http.StatusNotFound, JSONResponse{Error: ErrNotFound.Error()})
		return
	}
	if err != nil {
		log.Error(
			ErrToggle.Error(),
			slog.String("operation", op),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		c.writeJSON(w, log, http.StatusBadRequest, JSONResponse{Error: prefixed(ErrToggle, err)})
		return
	}

	c.writeJSON(w, log, http.StatusOK, JSONResponse{OK: true, Status: &status})
}

// formError re-renders the form for a rejected create or update. Validation
// messages are shown as is, store failures behind the given prefix.
func (c *GameController) formError(w http.ResponseWriter, log *slog.Logger, op string, mode views.Mode, prefix, err error) {
	var (
		verr *services.ValidationError
		perr *services.PersistenceError
	)

	switch {
	case errors.As(err, &verr):
		log.Debug("form rejected", slog.String("operation", op), slog.String("reason", verr.Message))
		c.renderForm(w, log, http.StatusBadRequest, views.FormPage{Mode: mode, Game: &verr.Game, Error: verr.Message})
	case errors.As(err, &perr):
		log.Error(prefix.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		c.renderForm(w, log, http.StatusBadRequest, views.FormPage{Mode: mode, Game: &perr.Game, Error: prefixed(prefix, perr)})
	default:
		log.Error(prefix.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		http.Error(w, prefix.Error(), http.StatusInternalServerError)
	}
}

func (c *GameController) renderList(w http.ResponseWriter, log *slog.Logger, status int, page views.ListPage) {
	if err := c.views.List(w, status, page); err != nil {
		log.Error(ErrRender.Error(), slog.String("error", err.Error()))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
	}
}

func (c *GameController) renderForm(w http.ResponseWriter, log *slog.Logger, status int, page views.FormPage) {
	if err := c.views.Form(w, status, page); err != nil {
		log.Error(ErrRender.Error(), slog.String("error", err.Error()))
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
	}
}

func (c *GameController) writeJSON(w http.ResponseWriter, log *slog.Logger, status int, res JSONResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error(ErrEncoding.Error(), slog.String("error", err.Error()))
	}
}

func (c *GameController) logger(r *http.Request) *slog.Logger {
	if id, ok := middleware.RequestIDFromContext(r.Context()); ok {
		return c.log.With(slog.String("request_id", id))
	}
	return c.log
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseGameForm accepts urlencoded and multipart bodies.
func parseGameForm(r *http.Request) (models.GameForm, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.GameForm{}, err
	}

	return models.GameForm{
		Code:     r.PostForm.Get("code"),
		Title:    r.PostForm.Get("title"),
		Platform: r.PostForm.Get("platform"),
		Genre:    r.PostForm.Get("genre"),
		Price:    r.PostForm.Get("price"),
		Stock:    r.PostForm.Get("stock"),
		Status:   r.PostForm.Get("status"),
	}, nil
}

func prefixed(prefix, err error) string {
	var perr *services.PersistenceError
	if errors.As(err, &perr) {
		return prefix.Error() + ": " + perr.Error()
	}
	return prefix.Error() + ": " + err.Error()
}
