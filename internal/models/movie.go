package models

// Movie represents a movie in the catalog
type Movie struct {
	MovieID int    `json:"movieId"`
	Title   string `json:"title"`
	Genres  string `json:"genres"`
}

// Link holds external database identifiers for a movie, keyed by movieId
type Link struct {
	MovieID int     `json:"movieId"`
	ImdbID  string  `json:"imdbId"`
	TmdbID  *string `json:"tmdbId"`
}

// Rating is a user's rating of a movie
type Rating struct {
	ID        int     `json:"id"`
	UserID    int     `json:"userId"`
	MovieID   int     `json:"movieId"`
	Rating    float64 `json:"rating"`
	Timestamp int64   `json:"timestamp"`
}

// Tag is a free-text tag a user attached to a movie
type Tag struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	MovieID   int    `json:"movieId"`
	Tag       string `json:"tag"`
	Timestamp int64  `json:"timestamp"`
}

// MovieRequest is the payload for creating or updating a movie
type MovieRequest struct {
	Title  string `json:"title"`
	Genres string `json:"genres"`
}

// LinkRequest is the payload for creating or updating a link
type LinkRequest struct {
	MovieID int     `json:"movieId"`
	ImdbID  string  `json:"imdbId"`
	TmdbID  *string `json:"tmdbId"`
}

// RatingRequest is the payload for creating or updating a rating.
// The user is taken from the authenticated request, not the payload.
type RatingRequest struct {
	MovieID   int     `json:"movieId"`
	Rating    float64 `json:"rating"`
	Timestamp int64   `json:"timestamp"`
}

// TagRequest is the payload for creating or updating a tag
type TagRequest struct {
	MovieID   int    `json:"movieId"`
	Tag       string `json:"tag"`
	Timestamp int64  `json:"timestamp"`
}
