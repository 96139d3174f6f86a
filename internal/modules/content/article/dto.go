package article

import (
	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/modules/content/publish"
	"github.com/jkco/site-core/internal/modules/processing/render"
)

// CreateArticleDTO is the request body for a new article. It binds from
// JSON or from the fields of a multipart form.
type CreateArticleDTO struct {
	Title       string `json:"title"       form:"title"`
	Category    string `json:"category"    form:"category"`
	Summary     string `json:"summary"     form:"summary"`
	Content     string `json:"content"     form:"content"`
	Author      string `json:"author"      form:"author"`
	ImageURL    string `json:"imageUrl"    form:"imageUrl"`
	IsPublished *bool  `json:"isPublished" form:"isPublished"`
}

func (d CreateArticleDTO) input() publish.ArticleInput {
	return publish.ArticleInput{
		Title:       d.Title,
		Category:    d.Category,
		Summary:     d.Summary,
		Content:     d.Content,
		Author:      d.Author,
		ImageURL:    d.ImageURL,
		IsPublished: d.IsPublished,
	}
}

// UpdateArticleDTO is the request body for an edit (all fields optional).
type UpdateArticleDTO struct {
	Title       *string `json:"title"       form:"title"`
	Category    *string `json:"category"    form:"category"`
	Summary     *string `json:"summary"     form:"summary"`
	Content     *string `json:"content"     form:"content"`
	Author      *string `json:"author"      form:"author"`
	ImageURL    *string `json:"imageUrl"    form:"imageUrl"`
	IsPublished *bool   `json:"isPublished" form:"isPublished"`
}

func (d UpdateArticleDTO) input() publish.ArticlePatchInput {
	return publish.ArticlePatchInput{
		Title:       d.Title,
		Category:    d.Category,
		Summary:     d.Summary,
		Content:     d.Content,
		Author:      d.Author,
		ImageURL:    d.ImageURL,
		IsPublished: d.IsPublished,
	}
}

// ListQuery holds query params for listing articles.
type ListQuery struct {
	Category  string `form:"category"`
	Published string `form:"published"`
}

type articleResponse struct {
	models.Article
	FormattedDate string `json:"formattedDate"`
	ContentHTML   string `json:"contentHtml,omitempty"`
}

func toResponse(a *models.Article, withHTML bool) articleResponse {
	resp := articleResponse{Article: *a, FormattedDate: a.FormattedDate()}
	if withHTML {
		resp.ContentHTML = render.HTML(a.Content)
	}
	return resp
}
