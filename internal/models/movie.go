// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package models defines the wire types shared between the metadata
// client, the catalog service, and the HTTP API layer.
package models

// Movie is a single catalog entry as returned by the upstream metadata
// provider's list endpoints. Genre membership arrives as numeric IDs;
// use GenreNames to resolve them for display.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
}

// MovieList is one page of upstream list results (discover/popular).
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre is a named genre as it appears in detail responses.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the upstream single-movie payload. Unlike list
// entries it carries full genre objects instead of bare IDs.
type MovieDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Genres      []Genre `json:"genres"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	Runtime     int     `json:"runtime"`
	Tagline     string  `json:"tagline"`
}

// Flatten converts a detail payload into the list-entry shape so both
// code paths feed the same downstream types.
func (d *MovieDetail) Flatten() *Movie {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return &Movie{
		ID:          d.ID,
		Title:       d.Title,
		Overview:    d.Overview,
		PosterPath:  d.PosterPath,
		ReleaseDate: d.ReleaseDate,
		GenreIDs:    ids,
		VoteAverage: d.VoteAverage,
		VoteCount:   d.VoteCount,
		Popularity:  d.Popularity,
	}
}

// ReleaseYear returns the four-digit year from ReleaseDate, or 0 when
// the date is missing or malformed.
func (m *Movie) ReleaseYear() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year := 0
	for _, c := range m.ReleaseDate[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	return year
}
