package posttype

// Name is the internal name the content type is registered under.
const Name = "research_publication"

// Hook names the descriptor is passed through while it is built.
const (
	HookLabelDefaults = "ucf_research_project_label_defaults"
	HookLabels        = "ucf_research_publication_labels"
	HookArgs          = "ucf_research_publication_args"
	HookTaxonomies    = "ucf_research_publication_taxonomies"
)

// Supported capabilities.
const (
	SupportTitle     = "title"
	SupportEditor    = "editor"
	SupportExcerpt   = "excerpt"
	SupportRevisions = "revisions"
)

// LabelDefaults is the singular/plural pair every label is derived from.
type LabelDefaults struct {
	Singular   string `json:"singular" yaml:"singular"`
	Plural     string `json:"plural" yaml:"plural"`
	TextDomain string `json:"text_domain" yaml:"text_domain"`
}

// Labels is the human-facing label table of the content type.
type Labels struct {
	Name                string `json:"name" yaml:"name"`
	SingularName        string `json:"singular_name" yaml:"singular_name"`
	MenuName            string `json:"menu_name" yaml:"menu_name"`
	NameAdminBar        string `json:"name_admin_bar" yaml:"name_admin_bar"`
	Archives            string `json:"archives" yaml:"archives"`
	ParentItemColon     string `json:"parent_item_colon" yaml:"parent_item_colon"`
	AllItems            string `json:"all_items" yaml:"all_items"`
	AddNewItem          string `json:"add_new_item" yaml:"add_new_item"`
	AddNew              string `json:"add_new" yaml:"add_new"`
	NewItem             string `json:"new_item" yaml:"new_item"`
	EditItem            string `json:"edit_item" yaml:"edit_item"`
	UpdateItem          string `json:"update_item" yaml:"update_item"`
	ViewItem            string `json:"view_item" yaml:"view_item"`
	SearchItems         string `json:"search_items" yaml:"search_items"`
	NotFound            string `json:"not_found" yaml:"not_found"`
	NotFoundInTrash     string `json:"not_found_in_trash" yaml:"not_found_in_trash"`
	FeaturedImage       string `json:"featured_image" yaml:"featured_image"`
	SetFeaturedImage    string `json:"set_featured_image" yaml:"set_featured_image"`
	RemoveFeaturedImage string `json:"remove_featured_image" yaml:"remove_featured_image"`
	UseFeaturedImage    string `json:"use_featured_image" yaml:"use_featured_image"`
	InsertIntoItem      string `json:"insert_into_item" yaml:"insert_into_item"`
	UploadedToThisItem  string `json:"uploaded_to_this_item" yaml:"uploaded_to_this_item"`
	ItemsList           string `json:"items_list" yaml:"items_list"`
	ItemsListNavigation string `json:"items_list_navigation" yaml:"items_list_navigation"`
	FilterItemsList     string `json:"filter_items_list" yaml:"filter_items_list"`
}

// Descriptor holds everything the host needs to register the content type.
type Descriptor struct {
	Name              string   `json:"name" yaml:"name"`
	Label             string   `json:"label" yaml:"label"`
	Description       string   `json:"description" yaml:"description"`
	TextDomain        string   `json:"text_domain" yaml:"text_domain"`
	Labels            Labels   `json:"labels" yaml:"labels"`
	Supports          []string `json:"supports" yaml:"supports"`
	Taxonomies        []string `json:"taxonomies" yaml:"taxonomies"`
	Hierarchical      bool     `json:"hierarchical" yaml:"hierarchical"`
	Public            bool     `json:"public" yaml:"public"`
	ShowUI            bool     `json:"show_ui" yaml:"show_ui"`
	ShowInMenu        bool     `json:"show_in_menu" yaml:"show_in_menu"`
	ShowInREST        bool     `json:"show_in_rest" yaml:"show_in_rest"`
	RESTBase          string   `json:"rest_base" yaml:"rest_base"`
	MenuPosition      int      `json:"menu_position" yaml:"menu_position"`
	MenuIcon          string   `json:"menu_icon" yaml:"menu_icon"`
	ShowInAdminBar    bool     `json:"show_in_admin_bar" yaml:"show_in_admin_bar"`
	ShowInNavMenus    bool     `json:"show_in_nav_menus" yaml:"show_in_nav_menus"`
	CanExport         bool     `json:"can_export" yaml:"can_export"`
	HasArchive        bool     `json:"has_archive" yaml:"has_archive"`
	ExcludeFromSearch bool     `json:"exclude_from_search" yaml:"exclude_from_search"`
	PubliclyQueryable bool     `json:"publicly_queryable" yaml:"publicly_queryable"`
	CapabilityType    string   `json:"capability_type" yaml:"capability_type"`
}

// Has reports whether the descriptor lists the capability.
func (d Descriptor) Has(capability string) bool {
	for _, s := range d.Supports {
		if s == capability {
			return true
		}
	}
	return false
}
