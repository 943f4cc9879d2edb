package emby

// Wire models for the Emby REST API. Emby returns PascalCase field names.

// MediaItem is one entry from the /Items endpoint.
type MediaItem struct {
	ID              string     `json:"Id"`
	Name            string     `json:"Name"`
	Type            string     `json:"Type"`
	MediaType       string     `json:"MediaType"`
	ProductionYear  int        `json:"ProductionYear"`
	CommunityRating float64    `json:"CommunityRating"`
	Genres          []string   `json:"Genres"`
	Studios         []NamedRef `json:"Studios"`
	Overview        string     `json:"Overview"`
	DateCreated     string     `json:"DateCreated"`
}

// NamedRef is Emby's {Name, Id} reference shape used for studios and people.
type NamedRef struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Library is one entry from /Library/MediaFolders.
type Library struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	CollectionType string `json:"CollectionType"`
}

// SystemInfo is the /System/Info response, used for health checks.
type SystemInfo struct {
	ServerName string `json:"ServerName"`
	Version    string `json:"Version"`
	ID         string `json:"Id"`
}

// itemsEnvelope wraps list responses: {"Items": [...], "TotalRecordCount": n}.
type itemsEnvelope struct {
	Items            []MediaItem `json:"Items"`
	TotalRecordCount int         `json:"TotalRecordCount"`
}

type librariesEnvelope struct {
	Items []Library `json:"Items"`
}
