package handler

import "gameforge-server/internal/models"

// --- Requests ---

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type generateRequest struct {
	Title      string `json:"title" binding:"required,max=120"`
	Genre      string `json:"genre" binding:"required"`
	Ambiance   string `json:"ambiance" binding:"required,max=120"`
	Keywords   string `json:"keywords" binding:"max=200"`
	References string `json:"references" binding:"max=200"`
}

func (r generateRequest) toBrief() models.GenerationBrief {
	return models.GenerationBrief{
		Title:      r.Title,
		Genre:      r.Genre,
		Ambiance:   r.Ambiance,
		Keywords:   r.Keywords,
		References: r.References,
	}
}

// --- Responses ---

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type conceptListResponse struct {
	Concepts []*models.Concept `json:"concepts"`
}

type conceptDetailResponse struct {
	*models.Concept
	IsFavorite bool `json:"isFavorite"`
}

type visibilityResponse struct {
	ID       string `json:"id"`
	IsPublic bool   `json:"isPublic"`
}

type favoriteResponse struct {
	ConceptID string `json:"conceptId"`
	Favorited bool   `json:"favorited"`
}

type usageResponse struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

type messageResponse struct {
	Message string `json:"message"`
}
