package domain

// PageSize is the number of repositories shown per page.
const PageSize = 10

// MaxPageLinks is the widest window of page numbers ever displayed.
const MaxPageLinks = 5

// PageWindow describes the repository pagination currently on display.
// Pages is empty when Total is zero, in which case no pagination is shown.
type PageWindow struct {
	Current int   `json:"current"`
	Total   int   `json:"total"`
	Pages   []int `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}
