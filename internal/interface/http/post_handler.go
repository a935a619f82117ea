package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-platform/internal/application"
	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
	"github.com/oksasatya/go-blog-platform/internal/interface/middleware"
	"github.com/oksasatya/go-blog-platform/pkg/validation"
)

type PostHandler struct {
	Svc          *application.BlogService
	Logger       *logrus.Logger
	DefaultLimit int64
	MaxLimit     int64
}

func NewPostHandler(svc *application.BlogService, logger *logrus.Logger, defaultLimit, maxLimit int64) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func authorID(c *gin.Context) int64 {
	return c.GetInt64(middleware.CtxUserIDKey)
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return id, true
}

// Create handles POST /api/v1/posts.
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	post, err := h.Svc.CreatePost(c.Request.Context(), authorID(c), entity.CreatePostCommand{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

// Get handles GET /api/v1/posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.Svc.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Update handles PUT /api/v1/posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	post, err := h.Svc.UpdatePost(c.Request.Context(), id, authorID(c), entity.UpdatePostCommand{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /api/v1/posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.Svc.DeletePost(c.Request.Context(), id, authorID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /api/v1/posts?limit=&offset=.
// limit defaults to DefaultLimit and is clamped to [1, MaxLimit];
// offset is clamped to >= 0.
func (h *PostHandler) List(c *gin.Context) {
	limit := h.DefaultLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > h.MaxLimit {
		limit = h.MaxLimit
	}

	var offset int64
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			offset = n
		}
	}

	posts, total, err := h.Svc.ListPosts(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}

	c.JSON(http.StatusOK, postsListResponse{
		Posts:  out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
