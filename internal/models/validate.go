package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jkco/site-core/internal/pkg/apperr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("articlecategory", func(fl validator.FieldLevel) bool {
			return ArticleCategory(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("gallerycategory", func(fl validator.FieldLevel) bool {
			return GalleryCategory(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// fieldName reports the JSON spelling of a struct field. Patch structs carry
// no json tags, so their Go names are lower-camel-cased.
func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return lowerCamel(f.Name)
}

func lowerCamel(s string) string {
	switch s {
	case "ImageURL":
		return "imageUrl"
	case "MediaID":
		return "mediaId"
	}
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var labels = map[string]string{
	"title":       "Title",
	"summary":     "Summary",
	"category":    "Category",
	"author":      "Author",
	"description": "Description",
	"imageUrl":    "Image URL",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return name + " cannot be empty"
	case "max":
		return name + " cannot exceed " + fe.Param() + " characters"
	case "articlecategory", "gallerycategory":
		return "Invalid category"
	default:
		return name + " is invalid"
	}
}

func check(v interface{}) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := apperr.NewValidation()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

// Normalize trims the text fields of a and applies defaults.
func (a *Article) Normalize(defaultAuthor string) {
	a.Title = strings.TrimSpace(a.Title)
	a.Summary = strings.TrimSpace(a.Summary)
	a.Author = strings.TrimSpace(a.Author)
	if a.Author == "" {
		a.Author = defaultAuthor
	}
}

// ValidateArticle reports the field-level problems of a complete article.
func ValidateArticle(a *Article) error {
	return check(a)
}

// ValidateArticlePatch validates only the fields a patch supplies.
func ValidateArticlePatch(p ArticlePatch) error {
	return check(p)
}

// Normalize trims the text fields of g and applies defaults.
func (g *GalleryImage) Normalize() {
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
	g.ImageURL = strings.TrimSpace(g.ImageURL)
	if g.Category == "" {
		g.Category = GalleryOther
	}
}

// ValidateGalleryImage reports the field-level problems of a complete gallery
// image, including the external/managed exclusivity.
func ValidateGalleryImage(g *GalleryImage) error {
	err := check(g)
	if err != nil && !apperr.IsValidation(err) {
		return err
	}
	if g.IsExternal && g.MediaID != "" {
		var verr *apperr.ValidationError
		if !errors.As(err, &verr) {
			verr = apperr.NewValidation()
		}
		verr.Add("mediaId", "External images cannot reference stored media")
		return verr
	}
	return err
}

// ValidateGalleryPatch validates only the fields a patch supplies.
func ValidateGalleryPatch(p GalleryPatch) error {
	return check(p)
}
