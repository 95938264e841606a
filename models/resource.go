package models

import "fmt"

// ResourceType names a collection managed from the admin dashboard. The value
// doubles as the collection's REST path segment.
type ResourceType string

const (
	ResourceTeam       ResourceType = "team"
	ResourceProjects   ResourceType = "projects"
	ResourceSlides     ResourceType = "slides"
	ResourceCategories ResourceType = "categories"
)

// ResourceTypes lists the dashboard tabs in display order.
var ResourceTypes = []ResourceType{ResourceTeam, ResourceProjects, ResourceSlides, ResourceCategories}

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTeam, ResourceProjects, ResourceSlides, ResourceCategories:
		return true
	}
	return false
}

func ParseResourceType(s string) (ResourceType, error) {
	t := ResourceType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown resource type %q", s)
	}
	return t, nil
}
