package model

// NavigationKind discriminates navigation tree nodes.
type NavigationKind string

const (
	// NavigationKindLink is an addressable entry pointing at a page.
	NavigationKindLink NavigationKind = "link"
	// NavigationKindHeader is a section header.
	NavigationKindHeader NavigationKind = "header"
	// NavigationKindDivider is a visual divider.
	NavigationKindDivider NavigationKind = "divider"
)

// NavigationItem is a node in a per-locale navigation tree.
// A parent exclusively owns its children.
type NavigationItem struct {
	// ID is the stable item identifier.
	ID ID `json:"id"`

	// Kind is one of link, header or divider.
	Kind NavigationKind `json:"kind"`

	// Label is the text shown in the navigation.
	Label string `json:"label,omitempty"`

	// Icon is the optional icon name.
	Icon string `json:"icon,omitempty"`

	// Target is the page path. Only link items carry one.
	Target string `json:"target,omitempty"`

	// VisibilityGroups restricts the item to the listed groups.
	// Absent or empty means the item is public.
	VisibilityGroups []ID `json:"visibilityGroups,omitempty"`

	// Children are the nested items, in display order.
	Children []NavigationItem `json:"children,omitempty"`
}

// IsPublic reports whether the item is visible to everyone.
func (n NavigationItem) IsPublic() bool {
	return len(n.VisibilityGroups) == 0
}

// NavigationTree is the navigation root of a single locale.
type NavigationTree struct {
	Locale string           `json:"locale"`
	Items  []NavigationItem `json:"items"`
}
