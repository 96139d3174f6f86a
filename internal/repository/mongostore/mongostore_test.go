package mongostore

import (
	"context"
	"testing"
	"time"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestArticleFilter(t *testing.T) {
	assert.Equal(t, bson.M{"isPublished": true}, articleFilter(repository.ArticleFilter{}))
	assert.Equal(t, bson.M{"category": "Audit & Assurance"},
		articleFilter(repository.ArticleFilter{Category: "Audit & Assurance", IncludeUnpublished: true}))
}

func TestGalleryFilter(t *testing.T) {
	assert.Equal(t, bson.M{"isVisible": true, "category": "Team"},
		galleryFilter(repository.GalleryFilter{Category: "Team"}))
	assert.Empty(t, galleryFilter(repository.GalleryFilter{IncludeHidden: true}))
}

func TestArticleUpdateOnlySuppliedFields(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	summary := "new summary"
	update := articleUpdate(models.ArticlePatch{Summary: &summary}, ts)

	assert.Equal(t, bson.M{"$set": bson.M{"summary": summary, "updatedAt": ts}}, update)
}

func TestArticleUpdateClearsMediaID(t *testing.T) {
	ts := time.Now()
	url, empty := "https://example.com/x.jpg", ""
	update := articleUpdate(models.ArticlePatch{ImageURL: &url, MediaID: &empty}, ts)

	assert.Equal(t, bson.M{"mediaId": ""}, update["$unset"])
	assert.Equal(t, url, update["$set"].(bson.M)["imageUrl"])
}

func TestGalleryUpdate(t *testing.T) {
	ts := time.Now()
	order, external := 3, true
	update := galleryUpdate(models.GalleryPatch{DisplayOrder: &order, IsExternal: &external}, ts)

	set := update["$set"].(bson.M)
	assert.Equal(t, 3, set["displayOrder"])
	assert.Equal(t, true, set["isExternal"])
	assert.NotContains(t, update, "$unset")
}

func TestMalformedIDIsNotFound(t *testing.T) {
	_, err := objectID("not-a-hex-id")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRepoAgainstMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get article", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "site.articles", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "TDS due dates"},
			{Key: "category", Value: "Income Tax"},
			{Key: "summary", Value: "Dates"},
			{Key: "isPublished", Value: true},
		}))

		got, err := NewArticleRepo(mt.DB, "").GetByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), got.ID)
		assert.Equal(mt, models.ArticleIncomeTax, got.Category)
	})

	mt.Run("list gallery counts and pages in display order", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "site.gallery_images", mtest.FirstBatch, bson.D{{Key: "n", Value: int64(12)}}),
			mtest.CreateCursorResponse(0, "site.gallery_images", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: first}, {Key: "title", Value: "Office"}, {Key: "category", Value: "Office"}, {Key: "displayOrder", Value: 1}, {Key: "isVisible", Value: true}},
				bson.D{{Key: "_id", Value: second}, {Key: "title", Value: "Team"}, {Key: "category", Value: "Team"}, {Key: "displayOrder", Value: 2}, {Key: "isVisible", Value: true}},
			),
		)

		got, err := NewGalleryRepo(mt.DB).List(context.Background(), repository.GalleryFilter{}, repository.Page{Limit: 2, Offset: 10})
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), got.Total)
		require.Len(mt, got.Items, 2)
		assert.Equal(mt, first.Hex(), got.Items[0].ID)
		assert.Equal(mt, second.Hex(), got.Items[1].ID)

		assert.Equal(mt, "aggregate", mt.GetStartedEvent().CommandName)
		find := mt.GetStartedEvent()
		require.Equal(mt, "find", find.CommandName)
		assertSort(mt, find, bson.E{Key: "displayOrder", Value: 1}, bson.E{Key: "createdAt", Value: -1})
		assert.Equal(mt, int64(10), find.Command.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(2), find.Command.Lookup("limit").AsInt64())
		assert.True(mt, find.Command.Lookup("filter", "isVisible").Boolean())
	})

	mt.Run("list articles newest first", func(mt *mtest.T) {
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "site.articles", mtest.FirstBatch, bson.D{{Key: "n", Value: int64(2)}}),
			mtest.CreateCursorResponse(0, "site.articles", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: newer}, {Key: "title", Value: "GST returns"}, {Key: "category", Value: "GST Update"}, {Key: "isPublished", Value: true}},
				bson.D{{Key: "_id", Value: older}, {Key: "title", Value: "ITR filing"}, {Key: "category", Value: "GST Update"}, {Key: "isPublished", Value: true}},
			),
		)

		got, err := NewArticleRepo(mt.DB, "").List(context.Background(),
			repository.ArticleFilter{Category: models.ArticleGSTUpdate}, repository.Page{Limit: 10})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), got.Total)
		require.Len(mt, got.Items, 2)
		assert.Equal(mt, newer.Hex(), got.Items[0].ID)
		assert.Equal(mt, older.Hex(), got.Items[1].ID)

		assert.Equal(mt, "aggregate", mt.GetStartedEvent().CommandName)
		find := mt.GetStartedEvent()
		require.Equal(mt, "find", find.CommandName)
		assertSort(mt, find, bson.E{Key: "publishedAt", Value: -1})
		assert.Equal(mt, "GST Update", find.Command.Lookup("filter", "category").StringValue())
		_, hasSkip := find.Command.Lookup("skip").Int64OK()
		assert.False(mt, hasSkip)
	})

	mt.Run("delete unknown gallery image", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewGalleryRepo(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("update gallery image returns stored document", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Annual day"},
			{Key: "imageUrl", Value: "https://example.com/a.jpg"},
			{Key: "category", Value: "Events"},
			{Key: "isVisible", Value: false},
		}}))

		hidden := false
		got, err := NewGalleryRepo(mt.DB).Update(context.Background(), oid.Hex(), models.GalleryPatch{IsVisible: &hidden})
		require.NoError(mt, err)
		assert.False(mt, got.IsVisible)
		assert.Equal(mt, "Annual day", got.Title)
	})

	mt.Run("create article stamps timestamps once", func(mt *mtest.T) {
		ts := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		restore := now
		now = func() time.Time { return ts }
		defer func() { now = restore }()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		imported := ts.AddDate(-1, 0, 0)
		a := &models.Article{Base: models.Base{CreatedAt: imported}, Title: "Advance tax", Category: models.ArticleIncomeTax, Summary: "Instalments"}
		require.NoError(mt, NewArticleRepo(mt.DB, "").Create(context.Background(), a))
		assert.NotEmpty(mt, a.ID)
		assert.Equal(mt, imported, a.CreatedAt)
		assert.Equal(mt, ts, a.UpdatedAt)
		assert.Equal(mt, ts, a.PublishedAt)
		assert.Equal(mt, "insert", mt.GetStartedEvent().CommandName)
	})

	mt.Run("create rejects invalid article before writing", func(mt *mtest.T) {
		err := NewArticleRepo(mt.DB, "").Create(context.Background(), &models.Article{Title: "x"})
		assert.True(mt, apperr.IsValidation(err))
	})
}

func assertSort(mt *mtest.T, started *event.CommandStartedEvent, want ...bson.E) {
	mt.Helper()
	elems, err := started.Command.Lookup("sort").Document().Elements()
	require.NoError(mt, err)
	require.Len(mt, elems, len(want))
	for i, w := range want {
		assert.Equal(mt, w.Key, elems[i].Key())
		assert.Equal(mt, int64(w.Value.(int)), elems[i].Value().AsInt64())
	}
}
