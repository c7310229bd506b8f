// Package domain holds DTOs for images http and service contracts
package domain

import "net/url"

// ValidImageRef reports whether s is an absolute http(s) URL. The probe
// client only speaks http, so other schemes are rejected before binding.
// Registered as the http_url validate tag by the images module
func ValidImageRef(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateInput asks the service to check a batch of image URLs
type ValidateInput struct {
	URLs []string `json:"urls" validate:"required,min=1,max=100,dive,http_url"`
}

// ValidateOutput maps every requested URL to its verdict
type ValidateOutput struct {
	Results map[string]bool `json:"results"`
	Valid   int             `json:"valid" example:"8"`
	Invalid int             `json:"invalid" example:"2"`
}

// FilterItem is one display candidate in a filter request
type FilterItem struct {
	ID       string `json:"id" validate:"required,min=1,max=200" example:"artwork-8842"`
	ImageURL string `json:"image_url" validate:"required,http_url" example:"https://cdn.example.com/art/8842.jpg"`
}

// FilterInput asks the service to drop candidates whose image is dead or not an image
type FilterInput struct {
	Items []FilterItem `json:"items" validate:"required,min=1,max=100,dive"`
}

// FilterOutput returns the surviving candidates in their original order
type FilterOutput struct {
	Items   []FilterItem `json:"items"`
	Dropped int          `json:"dropped" example:"3"`
}

// StatusOutput reports a single URL's verdict
type StatusOutput struct {
	URL   string `json:"url" example:"https://cdn.example.com/art/8842.jpg"`
	Valid bool   `json:"valid" example:"true"`
}
