package catalog

import "fdrs/internal/domain"

// DetailResponse is a resource with its comment thread, oldest first.
type DetailResponse struct {
	Resource     *domain.Resource `json:"resource"`
	Comments     []domain.Comment `json:"comments"`
	CommentCount int64            `json:"comment_count"`
}

// SearchResult distinguishes an empty result set from an error: NoMatch is
// a valid outcome, not a failure.
type SearchResult struct {
	Resources []domain.Resource `json:"resources"`
	NoMatch   bool              `json:"no_match"`
}
