package server

import "time"

// APIResponse is the standard mutation response envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse reports whether an installation was found. Not finding one
// is a normal state for this endpoint, never an HTTP error.
type StatusResponse struct {
	Connected     bool   `json:"connected"`
	PeacockPath   string `json:"peacock_path,omitempty"`
	ProfilesCount int    `json:"profiles_count"`
	Message       string `json:"message"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// LocationInfo is one row of the locations listing: catalog data joined
// with the active profile's progress.
type LocationInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MaxLevel     int    `json:"max_level"`
	CurrentLevel int    `json:"current_level"`
	XP           int    `json:"xp"`
	Game         string `json:"game"`
}

// Pagination describes one page of a catalog listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// mutationRequest is the shared body of the unlock and lock endpoints. A
// nil id list means "everything".
type mutationRequest struct {
	ProfileID string   `json:"profile_id"`
	IDs       []string `json:"ids"`
}

// masteryRequest selects either one location or, with no location given,
// every location at once.
type masteryRequest struct {
	ProfileID  string `json:"profile_id"`
	LocationID string `json:"location_id"`
	Level      *int   `json:"level"`
}

// activityRequest covers both appending a record and clearing the log.
type activityRequest struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
