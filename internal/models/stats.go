package models

// Stats aggregates exact row counts across the collections.
type Stats struct {
	Projects    int64 `json:"projects"`
	Images      int64 `json:"images"`
	Unread      int64 `json:"unread"`
	Experiences int64 `json:"experiences"`
	Comments    int64 `json:"comments"`
	BlogPosts   int64 `json:"blog_posts"`
}
