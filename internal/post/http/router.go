package http

import (
	"net/http"
	"strings"

	"github.com/asafonov/blog-backend/internal/common/config"
	commonhttp "github.com/asafonov/blog-backend/internal/common/http"
	"github.com/asafonov/blog-backend/internal/common/jwtverify"
	"github.com/asafonov/blog-backend/internal/common/logger"
	"github.com/asafonov/blog-backend/internal/post/domain"
	"github.com/asafonov/blog-backend/internal/post/service"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updatePostRequest distinguishes an omitted field from an empty one:
// nil pointers keep the stored value.
type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type postResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`
}

func newPostResponse(post domain.Post) postResponse {
	return postResponse{
		ID:       string(post.ID),
		Title:    post.Title,
		Content:  post.Content,
		AuthorID: string(post.AuthorID),
	}
}

func newPostListResponse(posts []domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

type Handler struct {
	posts *service.PostService
	cfg   config.Config
	log   *logger.Logger
}

func NewHandler(posts *service.PostService, cfg config.Config, log *logger.Logger) *Handler {
	return &Handler{
		posts: posts,
		cfg:   cfg,
		log:   log,
	}
}

// Register wires the post routes. Reads are open; mutations go through the
// supplied auth middleware so only verified callers reach them.
func (h *Handler) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	timeout := commonhttp.WithTimeout(h.cfg.RequestTimeout)

	create := requireAuth(http.HandlerFunc(timeout(h.create)))
	update := requireAuth(http.HandlerFunc(timeout(h.update)))
	remove := requireAuth(http.HandlerFunc(timeout(h.delete)))

	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			timeout(h.list)(w, r)
		case http.MethodPost:
			create.ServeHTTP(w, r)
		default:
			commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/posts/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			timeout(h.get)(w, r)
		case http.MethodPut:
			update.ServeHTTP(w, r)
		case http.MethodDelete:
			remove.ServeHTTP(w, r)
		default:
			commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create post failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	post, err := h.posts.Create(r.Context(), caller.UserID, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newPostResponse(post))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newPostListResponse(posts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), postIDFromPath(r))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newPostResponse(post))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	caller, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req updatePostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update post failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	post, err := h.posts.Update(r.Context(), caller.UserID, postIDFromPath(r), service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newPostResponse(post))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.posts.Delete(r.Context(), caller.UserID, postIDFromPath(r)); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postIDFromPath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/posts/")
}
