package models

// ArticleCategory is the closed set of newsletter categories.
type ArticleCategory string

const (
	ArticleGSTUpdate       ArticleCategory = "GST Update"
	ArticleIncomeTax       ArticleCategory = "Income Tax"
	ArticleMCAROC          ArticleCategory = "MCA & ROC"
	ArticleAudit           ArticleCategory = "Audit & Assurance"
	ArticleComplianceAlert ArticleCategory = "Compliance Alert"
	ArticleAdvisory        ArticleCategory = "Advisory"
	ArticleOther           ArticleCategory = "Other"
)

// ArticleCategories lists every valid article category in display order.
var ArticleCategories = []ArticleCategory{
	ArticleGSTUpdate,
	ArticleIncomeTax,
	ArticleMCAROC,
	ArticleAudit,
	ArticleComplianceAlert,
	ArticleAdvisory,
	ArticleOther,
}

// Valid reports whether c is a known article category.
func (c ArticleCategory) Valid() bool {
	for _, v := range ArticleCategories {
		if v == c {
			return true
		}
	}
	return false
}

// GalleryCategory is the closed set of gallery image categories.
type GalleryCategory string

const (
	GalleryOffice      GalleryCategory = "Office"
	GalleryTeam        GalleryCategory = "Team"
	GalleryEvents      GalleryCategory = "Events"
	GalleryEngagements GalleryCategory = "Engagements"
	GalleryOther       GalleryCategory = "Other"
)

// GalleryCategories lists every valid gallery category in display order.
var GalleryCategories = []GalleryCategory{
	GalleryOffice,
	GalleryTeam,
	GalleryEvents,
	GalleryEngagements,
	GalleryOther,
}

// Valid reports whether c is a known gallery category.
func (c GalleryCategory) Valid() bool {
	for _, v := range GalleryCategories {
		if v == c {
			return true
		}
	}
	return false
}
