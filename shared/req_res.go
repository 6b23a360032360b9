package shared

// FormView is a form echoed back to the client: the submitted values plus a
// field → message map. An empty Errors map means the form is fresh or valid.
type FormView struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

type FeedResponse struct {
	Posts []*Post  `json:"posts"`
	Page  PageInfo `json:"page"`
}

type GroupFeedResponse struct {
	Group *Group   `json:"group"`
	Posts []*Post  `json:"posts"`
	Page  PageInfo `json:"page"`
}

type ProfileResponse struct {
	User      *User    `json:"user"`
	PostCount int      `json:"postCount"`
	Following bool     `json:"following"`
	Posts     []*Post  `json:"posts"`
	Page      PageInfo `json:"page"`
}

type PostDetailResponse struct {
	Post            *Post      `json:"post"`
	AuthorPostCount int        `json:"authorPostCount"`
	Comments        []*Comment `json:"comments"`
	CommentForm     *FormView  `json:"commentForm"`
}
