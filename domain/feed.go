package domain

import "time"

// FeedOrder is the ordering strategy of an article listing.
type FeedOrder string

const (
	OrderAsc  FeedOrder = "ASC"
	OrderDesc FeedOrder = "DESC"
	// OrderTop sorts by favorites count, most favorited first.
	OrderTop FeedOrder = "TOP"
)

// Valid reports whether o is a known order. The zero value is not valid;
// callers default it to OrderDesc before validating.
func (o FeedOrder) Valid() bool {
	switch o {
	case OrderAsc, OrderDesc, OrderTop:
		return true
	default:
		return false
	}
}

// FilterKind enumerates the closed set of feed filters.
type FilterKind int8

const (
	FilterTag FilterKind = iota + 1
	FilterAuthor
	FilterFavoritedBy
	FilterSearch
	FilterFollowedBy
	FilterBookmarkedBy
)

func (k FilterKind) String() string {
	switch k {
	case FilterTag:
		return "tag"
	case FilterAuthor:
		return "author"
	case FilterFavoritedBy:
		return "favorited"
	case FilterSearch:
		return "search"
	case FilterFollowedBy:
		return "followed_by"
	case FilterBookmarkedBy:
		return "bookmarked_by"
	default:
		return "unknown"
	}
}

// FeedFilter is one predicate of an article listing. The set of
// implementations is closed to this package.
type FeedFilter interface {
	Kind() FilterKind
	isFeedFilter()
}

// TagFilter matches articles whose tag list contains Tag, case-insensitively.
type TagFilter struct{ Tag string }

// AuthorFilter matches articles written by the user named Username.
type AuthorFilter struct{ Username string }

// FavoritedByFilter matches articles favorited by the user named Username.
type FavoritedByFilter struct{ Username string }

// SearchFilter matches Text against title or description, case-insensitively.
type SearchFilter struct{ Text string }

// FollowedByFilter matches articles whose author is followed by UserID.
type FollowedByFilter struct{ UserID int64 }

// BookmarkedByFilter matches articles bookmarked by UserID.
type BookmarkedByFilter struct{ UserID int64 }

func (TagFilter) Kind() FilterKind          { return FilterTag }
func (AuthorFilter) Kind() FilterKind       { return FilterAuthor }
func (FavoritedByFilter) Kind() FilterKind  { return FilterFavoritedBy }
func (SearchFilter) Kind() FilterKind       { return FilterSearch }
func (FollowedByFilter) Kind() FilterKind   { return FilterFollowedBy }
func (BookmarkedByFilter) Kind() FilterKind { return FilterBookmarkedBy }

func (TagFilter) isFeedFilter()          {}
func (AuthorFilter) isFeedFilter()       {}
func (FavoritedByFilter) isFeedFilter()  {}
func (SearchFilter) isFeedFilter()       {}
func (FollowedByFilter) isFeedFilter()   {}
func (BookmarkedByFilter) isFeedFilter() {}

// PageRequest is the raw paging input of a listing.
type PageRequest struct {
	Limit  int        // 0 means default
	Page   int        // 1-based page index, <= 1 means first page
	Cursor *time.Time // only articles created strictly before Cursor
}

// PageWindow is a normalized PageRequest. Cursor and Offset are never both set.
type PageWindow struct {
	Limit  int
	Offset int
	Cursor *time.Time
}

// Fetch is the number of rows to read: one more than Limit, so that the
// presence of a following page is known without counting.
func (w PageWindow) Fetch() int {
	return w.Limit + 1
}

// FeedPlan is the storage-facing predicate and ordering of a listing.
// Nil id slices mean "unconstrained"; Empty means the result is known to be
// empty without touching the store.
type FeedPlan struct {
	Empty         bool
	TagContains   string
	AuthorIDs     []int64
	ArticleIDs    []int64
	Search        string
	CreatedBefore *time.Time
	Order         FeedOrder
}

// FeedPage is one page of a listing.
type FeedPage struct {
	Articles []Article
	HasMore  bool
}
