package httpserver

type AddFavoriteRequest struct {
	MovieID int `json:"movie_id" validate:"required,gt=0"`
}
