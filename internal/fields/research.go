package fields

import (
	"researchpub/internal/hook"
)

// Hook names the field schema is passed through.
const (
	HookFields    = "research_publications_fields"
	HookFieldArgs = "research_publication_field_args"
)

// GroupKey identifies the research publication field group.
const GroupKey = "research_publications_fields"

// Field keys of the research publication schema.
const (
	KeyType         = "publication_type"
	KeyJournalTitle = "journal_title"
	KeyURL          = "publication_url"
	KeyWebsiteName  = "website_name"
	KeyAdvancedInfo = "publication_advanced_info"
	KeyPublisher    = "publication_publisher"
	KeyAuthors      = "publication_authors"
	KeyContributors = "publication_contributors"
	KeyContributor  = "publication_contributor"
	KeyYear         = "publication_year"
	KeyDate         = "publication_date"
)

func typeIs(variants ...string) Logic {
	l := make(Logic, 0, len(variants))
	for _, v := range variants {
		l = append(l, []Rule{{Field: KeyType, Operator: OpEqual, Value: v}})
	}
	return l
}

func typeSet() Logic {
	return Logic{{{Field: KeyType, Operator: OpNotEmpty}}}
}

// ResearchPublicationFields returns the base field list, before filters.
func ResearchPublicationFields() []Field {
	return []Field{
		{
			Key:          KeyType,
			Label:        "Publication Type",
			Name:         KeyType,
			Type:         TypeRadio,
			Instructions: "Choose the type of publication.",
			Required:     true,
			Choices: []Choice{
				{Value: "book", Label: "Book"},
				{Value: "journal", Label: "Journal"},
				{Value: "digital", Label: "Digital"},
			},
			DefaultValue: "book",
			Layout:       "vertical",
			ReturnFormat: "value",
		},
		{
			Key:              KeyJournalTitle,
			Label:            "Journal",
			Name:             KeyJournalTitle,
			Type:             TypeText,
			Instructions:     "The name of the journal.",
			Required:         true,
			ConditionalLogic: typeIs("journal"),
		},
		{
			Key:              KeyURL,
			Label:            "Publication URL",
			Name:             KeyURL,
			Type:             TypeURL,
			Instructions:     "The URL to the publication, if available.",
			ConditionalLogic: typeSet(),
		},
		{
			Key:              KeyWebsiteName,
			Label:            "Website Name",
			Name:             KeyWebsiteName,
			Type:             TypeText,
			Instructions:     "The website name of the digital publication.",
			Required:         true,
			ConditionalLogic: typeIs("digital"),
		},
		{
			Key:              KeyAdvancedInfo,
			Label:            "Advanced Info",
			Name:             KeyAdvancedInfo,
			Type:             TypeText,
			Instructions:     "Additional information that identifies the source. This may include a volume number or page range.",
			ConditionalLogic: typeIs("book", "journal"),
		},
		{
			Key:              KeyPublisher,
			Label:            "Publisher",
			Name:             KeyPublisher,
			Type:             TypeText,
			Instructions:     "Enter the publisher's information.",
			ConditionalLogic: typeIs("book"),
		},
		{
			Key:              KeyAuthors,
			Label:            "Authors",
			Name:             KeyAuthors,
			Type:             TypeRelationship,
			Instructions:     "Select the authors that are affiliated with UCF.",
			Required:         true,
			PostTypes:        []string{"person"},
			Filters:          []string{"search"},
			Min:              1,
			Max:              5,
			ReturnFormat:     "object",
			ConditionalLogic: typeSet(),
		},
		{
			Key:          KeyContributors,
			Label:        "Contributors",
			Name:         KeyContributors,
			Type:         TypeRepeater,
			Instructions: "Add publication contributors.",
			Min:          0,
			Max:          10,
			Layout:       "table",
			SubFields: []Field{
				{
					Key:          KeyContributor,
					Label:        "Contributor",
					Name:         KeyContributor,
					Type:         TypeText,
					Instructions: "Add publication contributor.",
				},
			},
			ConditionalLogic: typeSet(),
		},
		{
			Key:              KeyYear,
			Label:            "Publication Year",
			Name:             KeyYear,
			Type:             TypeDatePicker,
			Instructions:     "Choose the date of the publication.",
			Required:         true,
			DisplayFormat:    "Y",
			ReturnFormat:     "Y",
			ConditionalLogic: typeIs("book"),
		},
		{
			Key:              KeyDate,
			Label:            "Publication Date",
			Name:             KeyDate,
			Type:             TypeDatePicker,
			Instructions:     "Choose the date of the publication.",
			Required:         true,
			DisplayFormat:    "M, Y",
			ReturnFormat:     "M, Y",
			ConditionalLogic: typeIs("journal", "digital"),
		},
	}
}

// BuildGroup assembles the research publication field group for postType,
// passing the field list and then the whole group through their hooks.
func BuildGroup(hooks *hook.Registry, postType string) Group {
	list := hook.Apply(hooks, HookFields, ResearchPublicationFields())

	g := Group{
		Key:    GroupKey,
		Title:  "Research Publication Fields",
		Fields: list,
		Location: [][]LocationRule{
			{{Param: "post_type", Operator: OpEqual, Value: postType}},
		},
	}
	return hook.Apply(hooks, HookFieldArgs, g)
}
