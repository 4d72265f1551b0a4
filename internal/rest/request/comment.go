package request

type NewComment struct {
	Body string `json:"body" binding:"required"`
}

// CreateComment is the body of POST /articles/:slug/comments.
type CreateComment struct {
	Comment NewComment `json:"comment" binding:"required"`
}
