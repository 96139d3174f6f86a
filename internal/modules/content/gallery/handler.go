package gallery

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
const DefaultPageSize = 50

// Service is the part of the publishing service the handler calls.
type Service interface {
	ListGallery(ctx context.Context, f repository.GalleryFilter, page repository.Page) (repository.ListResult[models.GalleryImage], error)
	GetGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, in publish.GalleryInput, upload *media.Upload) (*models.GalleryImage, error)
	CreateGalleryImageByURL(ctx context.Context, in publish.GalleryInput) (*models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, id string, in publish.GalleryPatchInput, upload *media.Upload) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id string) error
}

// Handler handles gallery image HTTP requests.
type Handler struct {
	svc       Service
	maxUpload int64
}

func NewHandler(svc Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// RegisterRoutes mounts gallery routes under /images and the legacy
// /gallery prefix.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	for _, prefix := range []string{"/images", "/gallery"} {
		g := rg.Group(prefix)

		g.GET("", h.list)
		g.GET("/categories", h.categories)
		g.GET("/:id", h.get)

		authed := g.Group("", authMW)
		authed.POST("", h.create)
		authed.POST("/url", h.createByURL)
		authed.PUT("/:id", h.update)
		authed.DELETE("/:id", h.delete)
	}
}

// list GET /images
func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	q := pagination.FromContext(c, DefaultPageSize)

	filter := repository.GalleryFilter{
		Category:      filterFrom(lq),
		IncludeHidden: lq.Visible == "all",
	}
	res, err := h.svc.ListGallery(c.Request.Context(), filter, repository.Page{Limit: q.Size, Offset: q.Offset()})
	if err != nil {
		response.Error(c, "Failed to fetch gallery images", err)
		return
	}
	items := res.Items
	if items == nil {
		items = []models.GalleryImage{}
	}
	response.Paged(c, items, q.Meta(res.Total, len(items)))
}

// categories GET /images/categories
func (h *Handler) categories(c *gin.Context) {
	response.OK(c, models.GalleryCategories)
}

// get GET /images/:id
func (h *Handler) get(c *gin.Context) {
	g, err := h.svc.GetGalleryImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Failed to fetch image", err)
		return
	}
	response.OK(c, g)
}

// create POST /images  [auth]
// A multipart file wins over an imageUrl field.
func (h *Handler) create(c *gin.Context) {
	var dto CreateImageDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	upload, err := media.FromRequest(c.Request, "image", h.maxUpload)
	if err != nil {
		response.Error(c, "Failed to upload image", err)
		return
	}

	var g *models.GalleryImage
	if upload == nil && dto.ImageURL != "" {
		g, err = h.svc.CreateGalleryImageByURL(c.Request.Context(), dto.input())
	} else {
		g, err = h.svc.CreateGalleryImage(c.Request.Context(), dto.input(), upload)
	}
	if err != nil {
		response.Error(c, "Failed to upload image", err)
		return
	}
	response.Created(c, "Image uploaded successfully", g)
}

// createByURL POST /images/url  [auth]
func (h *Handler) createByURL(c *gin.Context) {
	var dto CreateImageDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	g, err := h.svc.CreateGalleryImageByURL(c.Request.Context(), dto.input())
	if err != nil {
		response.Error(c, "Failed to add image", err)
		return
	}
	response.Created(c, "Image added successfully", g)
}

// update PUT /images/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateImageDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	upload, err := media.FromRequest(c.Request, "image", h.maxUpload)
	if err != nil {
		response.Error(c, "Failed to update image", err)
		return
	}

	g, err := h.svc.UpdateGalleryImage(c.Request.Context(), c.Param("id"), dto.input(), upload)
	if err != nil {
		fail(c, "Failed to update image", err)
		return
	}
	response.OKMsg(c, "Image updated successfully", g)
}

// delete DELETE /images/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteGalleryImage(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Failed to delete image", err)
		return
	}
	response.OKMsg(c, "Image deleted successfully", nil)
}

func fail(c *gin.Context, message string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		response.NotFoundMsg(c, "Image not found")
		return
	}
	response.Error(c, message, err)
}
