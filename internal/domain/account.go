package domain

import "errors"

// ErrNoAccount is returned by operations that need an account to be set first.
var ErrNoAccount = errors.New("no account selected")

// Profile is the summary of a single account as reported by the remote platform.
// A profile is replaced wholesale whenever it is fetched again.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Repos     int    `json:"public_repos"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
}

// Repository is one entry of an account's repository listing.
// Description and Language are empty when the remote omits them.
type Repository struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
}
