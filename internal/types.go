package internal

import "time"

type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	Favicon   string    `json:"favicon"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLink is the total form of a link as it is written to storage.
type NewLink struct {
	URL     string
	Title   string
	Tags    []string
	Favicon string
}

type Model struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type NewModel struct {
	Name string
	URL  string
}
