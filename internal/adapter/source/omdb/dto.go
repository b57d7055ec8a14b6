package omdb

// Envelope carries the discriminator every OMDb response has
type Envelope struct {
	Response string `json:"Response"` // "True" or "False"
	Error    string `json:"Error,omitempty"`
}

// OK reports whether the provider accepted the query
func (e Envelope) OK() bool {
	return e.Response == "True"
}

// SearchResponse is the payload of an s=<title> lookup
type SearchResponse struct {
	Envelope
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults,omitempty"`
}

// SearchItem is one row of a search payload
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailResponse is the payload of an i=<id> lookup
type DetailResponse struct {
	Envelope
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer,omitempty"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language,omitempty"`
	Country    string `json:"Country,omitempty"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes,omitempty"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type,omitempty"`
}
