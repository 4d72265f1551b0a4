package response

import "github.com/Guyuepp/conduit-feed/domain"

type Article struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Body           string   `json:"body,omitempty"`
	TagList        []string `json:"tagList"`
	Image          string   `json:"image"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Favorited      bool     `json:"favorited"`
	Bookmarked     bool     `json:"bookmarked"`
	FavoritesCount int64    `json:"favoritesCount"`
	Author         Profile  `json:"author"`
}

// NewArticleFromDomain: Domain -> Response
func NewArticleFromDomain(a *domain.Article, withBody bool) Article {
	tags := a.TagList
	if tags == nil {
		tags = []string{}
	}
	res := Article{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		TagList:        tags,
		Image:          a.Image,
		CreatedAt:      a.CreatedAt.UTC().Format(DateTimeFormat),
		UpdatedAt:      a.UpdatedAt.UTC().Format(DateTimeFormat),
		Favorited:      a.Favorited,
		Bookmarked:     a.Bookmarked,
		FavoritesCount: a.FavoritesCount,
		Author:         NewProfileFromDomain(&a.Author),
	}
	if withBody {
		res.Body = a.Body
	}
	return res
}

type SingleArticle struct {
	Article Article `json:"article"`
}

// FeedPage 列表不返回正文
type FeedPage struct {
	Articles []Article `json:"articles"`
	HasMore  bool      `json:"hasMore"`
}

func NewFeedPage(p domain.FeedPage) FeedPage {
	res := make([]Article, len(p.Articles))
	for i := range p.Articles {
		res[i] = NewArticleFromDomain(&p.Articles[i], false)
	}
	return FeedPage{Articles: res, HasMore: p.HasMore}
}

type Tags struct {
	Tags []string `json:"tags"`
}
