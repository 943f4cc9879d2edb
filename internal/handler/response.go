package handler

import "github.com/mediashelf/collection-helper/internal/catalog"

// SearchRequest is the POST /search body. Emby and Booklore default to
// true when omitted.
type SearchRequest struct {
	Query    string `json:"query" validate:"required,max=500"`
	Emby     *bool  `json:"emby,omitempty"`
	Booklore *bool  `json:"booklore,omitempty"`
}

// InfoResponse describes the service at the root endpoint.
type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse reports per-backend reachability.
type HealthResponse struct {
	Emby     bool `json:"emby"`
	Booklore bool `json:"booklore"`
}

// LibrariesResponse wraps the video library listing.
type LibrariesResponse struct {
	Libraries []catalog.LibraryInfo `json:"libraries"`
}

// ItemsResponse wraps catalog item listings.
type ItemsResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
