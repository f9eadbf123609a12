package models

import "slices"

// categories is the fixed category set, in display order.
var categories = []string{
	"Announcements",
	"Events",
	"Maintenance",
	"News",
	"Policies",
	"General",
}

// Categories returns a copy of the fixed category list.
func Categories() []string {
	return slices.Clone(categories)
}

func IsCategory(name string) bool {
	return slices.Contains(categories, name)
}
