package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/articles/internal/apperror"
	"github.com/sakif/articles/internal/model"
)

// maxBodyBytes caps request bodies. The longest valid article text is far
// below this.
const maxBodyBytes = 1 << 20

// ArticleService is what ArticleHandler needs from the service layer.
// *service.ArticleService implements it; tests pass a fake.
type ArticleService interface {
	List(ctx context.Context) ([]model.Article, error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, partial model.PartialArticle) (*model.Article, error)
	Update(ctx context.Context, id int64, partial model.PartialArticle) (*model.Article, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ArticleHandler serves the /articles resource.
type ArticleHandler struct {
	service ArticleService
	logger  *slog.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(service ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{service: service, logger: logger}
}

// Routes returns the /articles sub-router. guard wraps the write routes
// (POST, PATCH, DELETE); pass nil to leave them open.
//
//	GET    /       → HandleList
//	POST   /       → HandleCreate
//	GET    /{id}   → HandleGet
//	PATCH  /{id}   → HandleUpdate
//	DELETE /{id}   → HandleDelete
func (h *ArticleHandler) Routes(guard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(r chi.Router) {
		if guard != nil {
			r.Use(guard)
		}
		r.Post("/", h.HandleCreate)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})

	return r
}

// =========================================================================
// PAYLOADS
// =========================================================================

// ArticleRequest is the body of POST and PATCH. Both fields are optional on
// the wire; the service decides which combinations are acceptable.
//
//	{"title": "Hello", "text": "..."}
type ArticleRequest struct {
	model.PartialArticle
}

// Bind runs after the JSON has been decoded.
func (a *ArticleRequest) Bind(r *http.Request) error {
	return nil
}

// ArticleResponse is an article plus its canonical path:
//
//	{"id":1,"text":"...","title":"Hello","created":"...","updated":"...","path":"/articles/1"}
type ArticleResponse struct {
	*model.Article

	Path string `json:"path"`
}

func NewArticleResponse(a *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: a}
}

// Render fills in the computed fields just before encoding.
func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.Article == nil {
		return errors.New("handler: rendering nil article")
	}
	rd.Path = rd.Article.Route()
	return nil
}

func NewArticleListResponse(articles []model.Article) []render.Renderer {
	list := make([]render.Renderer, 0, len(articles))
	for i := range articles {
		list = append(list, NewArticleResponse(&articles[i]))
	}
	return list
}

// =========================================================================
// HANDLERS
// =========================================================================

// HandleList returns every article. An empty store yields [].
//
// HTTP: GET /articles
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := render.RenderList(w, r, NewArticleListResponse(articles)); err != nil {
		writeError(w, r, h.logger, err)
	}
}

// HandleGet returns one article.
//
// HTTP: GET /articles/{id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeRender(w, r, h.logger, NewArticleResponse(article))
}

// HandleCreate stores a new article and answers 201 with a Location header
// pointing at it.
//
// HTTP: POST /articles
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	data := &ArticleRequest{}
	if err := h.bind(w, r, data); err != nil {
		writeRender(w, r, h.logger, errInvalidRequest(err))
		return
	}

	article, err := h.service.Create(r.Context(), data.PartialArticle)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", article.Route())
	render.Status(r, http.StatusCreated)
	writeRender(w, r, h.logger, NewArticleResponse(article))
}

// HandleUpdate applies a partial update. Fields missing from the body keep
// their stored value; {} only refreshes the updated timestamp.
//
// HTTP: PATCH /articles/{id}
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	data := &ArticleRequest{}
	if err := h.bind(w, r, data); err != nil {
		writeRender(w, r, h.logger, errInvalidRequest(err))
		return
	}

	article, err := h.service.Update(r.Context(), id, data.PartialArticle)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeRender(w, r, h.logger, NewArticleResponse(article))
}

// HandleDelete removes an article. Deleting an id that does not exist is
// still 204, so a retried DELETE does not turn into an error.
//
// HTTP: DELETE /articles/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	render.NoContent(w, r)
}

func (h *ArticleHandler) bind(w http.ResponseWriter, r *http.Request, v render.Binder) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return render.Bind(r, v)
}

// articleID parses the {id} URL parameter. Anything that is not a base-10
// int64 is a 400, never a 404.
func articleID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "article id must be an integer, got "+strconv.Quote(raw))
	}
	return id, nil
}
