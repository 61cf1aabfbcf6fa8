package tmdb

// Wire types for the TMDB v3 JSON payloads. Only the fields the service
// consumes are mapped.

type searchResponse struct {
	Page    int             `json:"page"`
	Results []movieResponse `json:"results"`
}

type movieResponse struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	OriginalTitle string          `json:"original_title"`
	Overview      string          `json:"overview"`
	PosterPath    string          `json:"poster_path"`
	ReleaseDate   string          `json:"release_date"`
	GenreIDs      []int           `json:"genre_ids"`
	Genres        []genreResponse `json:"genres"`
}

type genreResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListResponse struct {
	Genres []genreResponse `json:"genres"`
}
