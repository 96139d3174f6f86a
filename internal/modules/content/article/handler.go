package article

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/modules/content/publish"
	"github.com/jkco/site-core/internal/modules/storage/media"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/pkg/pagination"
	"github.com/jkco/site-core/internal/pkg/response"
	"github.com/jkco/site-core/internal/repository"
)

// DefaultPageSize is the list size when the client sends no limit.
const DefaultPageSize = 10

// Service is the part of the publishing service the handler calls.
type Service interface {
	ListArticles(ctx context.Context, f repository.ArticleFilter, page repository.Page) (repository.ListResult[models.Article], error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, in publish.ArticleInput, upload *media.Upload) (*models.Article, error)
	UpdateArticle(ctx context.Context, id string, in publish.ArticlePatchInput, upload *media.Upload) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	UploadContentImage(ctx context.Context, u media.Upload) (media.Object, error)
}

// Handler handles article (newsletter) HTTP requests.
type Handler struct {
	svc       Service
	maxUpload int64
}

func NewHandler(svc Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// RegisterRoutes mounts article routes under /articles and the legacy
// /newsletters prefix.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	for _, prefix := range []string{"/articles", "/newsletters"} {
		g := rg.Group(prefix)

		g.GET("", h.list)
		g.GET("/categories", h.categories)
		g.GET("/:id", h.get)

		authed := g.Group("", authMW)
		authed.POST("", h.create)
		authed.POST("/upload-image", h.uploadImage)
		authed.PUT("/:id", h.update)
		authed.DELETE("/:id", h.delete)
	}
}

// list GET /articles
func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	q := pagination.FromContext(c, DefaultPageSize)

	filter := repository.ArticleFilter{IncludeUnpublished: lq.Published == "all"}
	if lq.Category != "" && lq.Category != "all" {
		filter.Category = models.ArticleCategory(lq.Category)
	}

	res, err := h.svc.ListArticles(c.Request.Context(), filter, repository.Page{Limit: q.Size, Offset: q.Offset()})
	if err != nil {
		response.Error(c, "Failed to fetch newsletters", err)
		return
	}

	items := make([]articleResponse, len(res.Items))
	for i := range res.Items {
		items[i] = toResponse(&res.Items[i], false)
	}
	response.Paged(c, items, q.Meta(res.Total, len(items)))
}

// categories GET /articles/categories
func (h *Handler) categories(c *gin.Context) {
	response.OK(c, models.ArticleCategories)
}

// get GET /articles/:id
func (h *Handler) get(c *gin.Context) {
	a, err := h.svc.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Failed to fetch newsletter", err)
		return
	}
	response.OK(c, toResponse(a, true))
}

// create POST /articles  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto CreateArticleDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	upload, err := media.FromRequest(c.Request, "image", h.maxUpload)
	if err != nil {
		response.Error(c, "Failed to create newsletter", err)
		return
	}

	a, err := h.svc.CreateArticle(c.Request.Context(), dto.input(), upload)
	if err != nil {
		response.Error(c, "Failed to create newsletter", err)
		return
	}
	response.Created(c, "Newsletter created successfully", toResponse(a, false))
}

// update PUT /articles/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateArticleDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	upload, err := media.FromRequest(c.Request, "image", h.maxUpload)
	if err != nil {
		response.Error(c, "Failed to update newsletter", err)
		return
	}

	a, err := h.svc.UpdateArticle(c.Request.Context(), c.Param("id"), dto.input(), upload)
	if err != nil {
		fail(c, "Failed to update newsletter", err)
		return
	}
	response.OKMsg(c, "Newsletter updated successfully", toResponse(a, false))
}

// delete DELETE /articles/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Failed to delete newsletter", err)
		return
	}
	response.OKMsg(c, "Newsletter deleted successfully", nil)
}

// uploadImage POST /articles/upload-image  [auth]
func (h *Handler) uploadImage(c *gin.Context) {
	upload, err := media.FromRequest(c.Request, "image", h.maxUpload)
	if err != nil {
		response.Error(c, "Failed to upload image", err)
		return
	}
	if upload == nil {
		response.BadRequest(c, "Please upload an image file")
		return
	}

	obj, err := h.svc.UploadContentImage(c.Request.Context(), *upload)
	if err != nil {
		response.Error(c, "Failed to upload image", err)
		return
	}
	response.OKMsg(c, "Image uploaded successfully", gin.H{
		"imageUrl": obj.URL,
		"mediaId":  obj.MediaID,
	})
}

func fail(c *gin.Context, message string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		response.NotFoundMsg(c, "Newsletter not found")
		return
	}
	response.Error(c, message, err)
}
