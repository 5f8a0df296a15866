package main

import "researchpub/internal/publication"

func samplePeople() []publication.Author {
	return []publication.Author{
		{Name: "Ada Lovelace"},
		{Name: "Grace Hopper"},
		{Name: "Alan Turing"},
	}
}

// samplePublications returns one publication of each type credited to people.
func samplePublications(people []publication.Author) []publication.Publication {
	return []publication.Publication{
		{
			Title:        "Sketch of the Analytical Engine",
			Variant:      publication.Book,
			Authors:      people[:1],
			Contributors: []string{"Charles Babbage"},
			Publisher:    "Richard and John E. Taylor",
			AdvancedInfo: "Scientific Memoirs, Vol. 3",
			Year:         "18430101",
		},
		{
			Title:           "The Education of a Computer",
			Variant:         publication.Journal,
			Authors:         people[1:2],
			JournalTitle:    "Proceedings of the ACM National Meeting",
			AdvancedInfo:    "pp. 243-249",
			PublicationDate: "19520502",
		},
		{
			Title:           "Computing Machinery and Intelligence",
			Variant:         publication.Digital,
			Authors:         []publication.Author{people[2], people[0]},
			WebsiteName:     "Mind Archive",
			URL:             "https://example.org/mind/1950/turing",
			PublicationDate: "19501001",
		},
	}
}
