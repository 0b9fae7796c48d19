package handlers

type RegisterRequest struct {
	Username string `json:"username" example:"salim"`
	Password string `json:"password" example:"secret"`
}

type LoginRequest struct {
	Username string `json:"username" example:"salim"`
	Password string `json:"password" example:"secret"`
}

type MediaRequest struct {
	Title          string   `json:"title" example:"Blade Runner"`
	Description    string   `json:"description,omitempty"`
	MediaType      string   `json:"media_type" example:"movie"`
	ReleaseYear    *int     `json:"release_year,omitempty" example:"1982"`
	AgeRestriction string   `json:"age_restriction" example:"16+"`
	Genres         []string `json:"genres"`
	PosterPath     string   `json:"poster_path,omitempty"`
}

type RatingRequest struct {
	MediaID   uint   `json:"media_id" example:"1"`
	StarValue int    `json:"star_value" example:"4"`
	Comment   string `json:"comment,omitempty"`
}

type RatingUpdateRequest struct {
	StarValue int    `json:"star_value" example:"4"`
	Comment   string `json:"comment,omitempty"`
}
