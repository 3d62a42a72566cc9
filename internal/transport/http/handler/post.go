package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"miniblog/internal/app"
	"miniblog/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

type CreatePostRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
	Status  string `json:"status" binding:"max=20"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
	Status  string `json:"status" binding:"required,max=20"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.Create(c.Request.Context(), app.CreatePostInput{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		h.writePostError(c, err, "create post failed")
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), postID)
	if err != nil {
		h.writePostError(c, err, "get post failed")
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	posts, err := h.postService.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.writePostError(c, err, "list posts failed")
		return
	}

	response.OK(c, posts)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	post, err := h.postService.Update(c.Request.Context(), postID, app.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		h.writePostError(c, err, "update post failed")
		return
	}

	response.OK(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if _, err := h.postService.Delete(c.Request.Context(), postID); err != nil {
		h.writePostError(c, err, "delete post failed")
		return
	}

	response.OK(c, gin.H{"message": "post deleted"})
}

func (h *PostHandler) postID(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid post id")
		return 0, false
	}
	return uint(parsed), true
}

func (h *PostHandler) writePostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.CodePostNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
