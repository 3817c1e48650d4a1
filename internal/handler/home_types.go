package handler

type Counts struct {
	BookCount                  int64 `json:"book_count"`
	BookInstanceCount          int64 `json:"book_instance_count"`
	BookInstanceAvailableCount int64 `json:"book_instance_available_count"`
	AuthorCount                int64 `json:"author_count"`
	GenreCount                 int64 `json:"genre_count"`
}

type HomeResponse struct {
	Title string `json:"title"`
	Data  Counts `json:"data"`
}
