package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var articleCols = []string{
	"id", "created_at", "updated_at", "title", "category", "summary", "content",
	"image_url", "media_id", "author", "is_published", "published_at",
}

func TestArticleRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `articles`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))
	mock.ExpectQuery("SELECT \\* FROM `articles` WHERE is_published = \\? AND category = \\? ORDER BY published_at DESC").
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(
			"a1", now, now, "ITR deadlines", "Income Tax", "Dates", "", "", "", models.DefaultAuthor, true, now,
		))

	got, err := NewArticleRepo(db, "").List(context.Background(),
		repository.ArticleFilter{Category: "Income Tax"}, repository.Page{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "ITR deadlines", got.Items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `articles`").WillReturnRows(sqlmock.NewRows(articleCols))

	_, err := NewArticleRepo(db, "").GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestArticleRepo_CreateAssignsIDAndDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `articles`").WillReturnResult(sqlmock.NewResult(0, 1))

	a := &models.Article{Title: " Budget 2025 ", Category: models.ArticleAdvisory, Summary: "Highlights", IsPublished: true}
	require.NoError(t, NewArticleRepo(db, "").Create(context.Background(), a))

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Budget 2025", a.Title)
	assert.Equal(t, models.DefaultAuthor, a.Author)
	assert.False(t, a.PublishedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_CreateValidationSkipsInsert(t *testing.T) {
	db, mock := newMockDB(t)

	err := NewArticleRepo(db, "").Create(context.Background(), &models.Article{Title: "x", Category: "Rumours", Summary: "y"})
	assert.True(t, apperr.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepo_UpdateWritesOnlySuppliedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `articles`").
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(
			"a1", now, now, "Old", "Audit & Assurance", "Old summary", "body", "https://cdn/x.jpg", "f/x.jpg", "JK", true, now,
		))
	mock.ExpectExec("UPDATE `articles` SET `summary`=\\?,`updated_at`=\\? WHERE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	summary := "New summary"
	got, err := NewArticleRepo(db, "").Update(context.Background(), "a1", models.ArticlePatch{Summary: &summary})
	require.NoError(t, err)
	assert.Equal(t, "New summary", got.Summary)
	assert.Equal(t, "Old", got.Title)
	assert.Equal(t, "f/x.jpg", got.MediaID)
	assert.Equal(t, now, got.PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var galleryCols = []string{
	"id", "created_at", "updated_at", "title", "description", "image_url", "media_id",
	"is_external", "category", "display_order", "is_visible",
}

func TestGalleryRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `gallery_images` WHERE is_visible = \\?").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))
	mock.ExpectQuery("SELECT \\* FROM `gallery_images` WHERE is_visible = \\? ORDER BY display_order ASC,created_at DESC LIMIT \\S+ OFFSET \\S+").
		WillReturnRows(sqlmock.NewRows(galleryCols).
			AddRow("g1", now, now, "Front desk", "", "https://cdn/a.jpg", "", true, "Office", 1, true).
			AddRow("g2", now.Add(-time.Hour), now, "Partners", "", "https://cdn/b.jpg", "", true, "Team", 2, true))

	got, err := NewGalleryRepo(db).List(context.Background(), repository.GalleryFilter{}, repository.Page{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "g1", got.Items[0].ID)
	assert.Equal(t, models.GalleryTeam, got.Items[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepo_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM `gallery_images`").WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewGalleryRepo(db).Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGalleryRepo_DependencyFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `gallery_images`").WillReturnError(assert.AnError)

	_, err := NewGalleryRepo(db).List(context.Background(), repository.GalleryFilter{}, repository.Page{Limit: 50})
	assert.True(t, apperr.IsDependency(err))
}

func TestGalleryColumns(t *testing.T) {
	empty, visible := "", false
	cols := galleryColumns(models.GalleryPatch{MediaID: &empty, IsVisible: &visible})
	assert.Equal(t, map[string]interface{}{"media_id": "", "is_visible": false}, cols)
}
