// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package models

import "sort"

// genreRegistry maps the upstream provider's movie genre IDs to their
// display names. The set is stable upstream and ships as a constant so
// genre resolution never needs a network round trip.
var genreRegistry = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName resolves a genre ID to its display name. The second return
// is false for IDs outside the registry.
func GenreName(id int) (string, bool) {
	name, ok := genreRegistry[id]
	return name, ok
}

// GenreNames resolves a list of genre IDs, silently dropping unknown
// IDs so a stale upstream payload cannot poison a response.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := genreRegistry[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Genres returns the full registry sorted by ID for stable output.
func Genres() []Genre {
	genres := make([]Genre, 0, len(genreRegistry))
	for id, name := range genreRegistry {
		genres = append(genres, Genre{ID: id, Name: name})
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres
}
