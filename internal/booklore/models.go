package booklore

// Wire models for the Booklore API. Booklore returns camelCase field names.

// Book is one entry from /api/books.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	ISBN        string   `json:"isbn,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	PageCount   int      `json:"pageCount,omitempty"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	AddedAt     string   `json:"addedAt,omitempty"`
}

// Collection is one entry from /api/collections.
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BookCount   int    `json:"bookCount"`
}

// booksEnvelope wraps the /api/books response: {"books": [...]}.
type booksEnvelope struct {
	Books []Book `json:"books"`
}

type collectionsEnvelope struct {
	Collections []Collection `json:"collections"`
}
