package response

import "github.com/Guyuepp/conduit-feed/domain"

type Comment struct {
	ID        int64    `json:"id"`
	Body      string   `json:"body"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Author    *Profile `json:"author,omitempty"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) Comment {
	res := Comment{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.UTC().Format(DateTimeFormat),
		UpdatedAt: c.UpdatedAt.UTC().Format(DateTimeFormat),
	}
	if c.Author != nil {
		p := NewProfileFromDomain(c.Author)
		res.Author = &p
	}
	return res
}

type SingleComment struct {
	Comment Comment `json:"comment"`
}

type MultipleComments struct {
	Comments []Comment `json:"comments"`
}

func NewComments(cs []domain.Comment) MultipleComments {
	res := make([]Comment, len(cs))
	for i := range cs {
		res[i] = NewCommentFromDomain(&cs[i])
	}
	return MultipleComments{Comments: res}
}
