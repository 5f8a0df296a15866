package posttype

import (
	"fmt"
	"strings"

	"researchpub/internal/hook"
)

// DefaultLabels are used unless a label-defaults filter says otherwise.
var DefaultLabels = LabelDefaults{
	Singular:   "Research Publication",
	Plural:     "Research Publications",
	TextDomain: "ucf_research_publications",
}

// ResolveLabelDefaults runs DefaultLabels through the label-defaults hook.
func ResolveLabelDefaults(hooks *hook.Registry) LabelDefaults {
	return hook.Apply(hooks, HookLabelDefaults, DefaultLabels)
}

// BuildLabels derives the label table from a singular/plural pair.
func BuildLabels(d LabelDefaults) Labels {
	s, p := d.Singular, d.Plural
	sl, pl := strings.ToLower(s), strings.ToLower(p)

	return Labels{
		Name:                p,
		SingularName:        s,
		MenuName:            p,
		NameAdminBar:        s,
		Archives:            fmt.Sprintf("%s Archives", s),
		ParentItemColon:     fmt.Sprintf("Parent %s:", s),
		AllItems:            fmt.Sprintf("All %s", p),
		AddNewItem:          fmt.Sprintf("Add New %s", s),
		AddNew:              "Add New",
		NewItem:             fmt.Sprintf("New %s", s),
		EditItem:            fmt.Sprintf("Edit %s", s),
		UpdateItem:          fmt.Sprintf("Update %s", s),
		ViewItem:            fmt.Sprintf("View %s", s),
		SearchItems:         fmt.Sprintf("Search %s", p),
		NotFound:            "Not found",
		NotFoundInTrash:     "Not found in Trash",
		FeaturedImage:       "Featured Image",
		SetFeaturedImage:    "Set featured image",
		RemoveFeaturedImage: "Remove featured image",
		UseFeaturedImage:    "Use as featured image",
		InsertIntoItem:      fmt.Sprintf("Insert into %s", sl),
		UploadedToThisItem:  fmt.Sprintf("Uploaded to this %s", sl),
		ItemsList:           fmt.Sprintf("%s list", p),
		ItemsListNavigation: fmt.Sprintf("%s list navigation", p),
		FilterItemsList:     fmt.Sprintf("Filter %s list", pl),
	}
}

// Build assembles the descriptor, giving each hook a chance to change its
// part. The result depends only on hooks, so building twice with the same
// filters yields equal descriptors.
func Build(hooks *hook.Registry) Descriptor {
	defaults := ResolveLabelDefaults(hooks)
	labels := hook.Apply(hooks, HookLabels, BuildLabels(defaults))
	taxonomies := hook.Apply(hooks, HookTaxonomies, []string{})

	d := Descriptor{
		Name:              Name,
		Label:             defaults.Singular,
		Description:       defaults.Plural,
		TextDomain:        defaults.TextDomain,
		Labels:            labels,
		Supports:          []string{SupportTitle, SupportEditor, SupportExcerpt, SupportRevisions},
		Taxonomies:        taxonomies,
		Hierarchical:      false,
		Public:            true,
		ShowUI:            true,
		ShowInMenu:        true,
		ShowInREST:        true,
		RESTBase:          "research-publications",
		MenuPosition:      8,
		MenuIcon:          "dashicons-book-alt",
		ShowInAdminBar:    true,
		ShowInNavMenus:    true,
		CanExport:         true,
		HasArchive:        false,
		ExcludeFromSearch: false,
		PubliclyQueryable: true,
		CapabilityType:    "post",
	}

	return hook.Apply(hooks, HookArgs, d)
}
