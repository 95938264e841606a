package dashboard

import (
	"fmt"
	"strings"

	"github.com/rpupo63/studio-site-backend/models"
)

// Payload is the form body as sent to the API. JSON sub-lists travel as
// strings holding the encoded array.
type Payload map[string]any

func (p Payload) clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Payload) String(field string) string {
	s, _ := p[field].(string)
	return s
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Variant carries everything that differs between resource types.
type Variant struct {
	Type models.ResourceType
	// Label is the singular noun used in messages.
	Label       string
	ImageFields []string
	Defaults    func() Payload
	Validate    func(Payload) error
	// Adapt normalizes a validated payload right before it is sent.
	Adapt func(Payload) Payload
}

var variants = map[models.ResourceType]Variant{
	models.ResourceTeam: {
		Type:        models.ResourceTeam,
		Label:       "team member",
		ImageFields: []string{"image_url"},
		Defaults: func() Payload {
			return Payload{
				"name":         "",
				"position":     "",
				"bio":          "",
				"icon":         models.DefaultMemberIcon,
				"image_url":    "",
				"skills":       "[]",
				"social_media": "[]",
			}
		},
		Validate: requireField("name"),
		Adapt:    adaptTeamMember,
	},
	models.ResourceProjects: {
		Type:        models.ResourceProjects,
		Label:       "project",
		ImageFields: []string{"banner_image", "image_url"},
		Defaults: func() Payload {
			return Payload{
				"title":         "",
				"description":   "",
				"content":       "",
				"category":      "",
				"author":        "",
				"banner_image":  "",
				"image_url":     "",
				"display_order": 0,
			}
		},
		Validate: requireField("title"),
		Adapt:    func(p Payload) Payload { return p },
	},
	models.ResourceSlides: {
		Type:        models.ResourceSlides,
		Label:       "slide",
		ImageFields: []string{"image_url"},
		Defaults: func() Payload {
			return Payload{
				"title":       "",
				"subtitle":    "",
				"description": "",
				"image_url":   "",
				"order":       0,
			}
		},
		Validate: requireField("title"),
		Adapt:    func(p Payload) Payload { return p },
	},
	models.ResourceCategories: {
		Type:  models.ResourceCategories,
		Label: "category",
		Defaults: func() Payload {
			return Payload{
				"name":        "",
				"slug":        "",
				"description": "",
			}
		},
		Validate: requireField("name"),
		Adapt: func(p Payload) Payload {
			p["slug"] = models.Slugify(p.String("name"))
			return p
		},
	},
}

// VariantFor looks up the variant of a resource type.
func VariantFor(rt models.ResourceType) (Variant, error) {
	v, ok := variants[rt]
	if !ok {
		return Variant{}, fmt.Errorf("unknown resource type %q", rt)
	}
	return v, nil
}

func (v Variant) hasImageField(field string) bool {
	for _, f := range v.ImageFields {
		if f == field {
			return true
		}
	}
	return false
}

func requireField(field string) func(Payload) error {
	return func(p Payload) error {
		if strings.TrimSpace(p.String(field)) == "" {
			return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
		}
		return nil
	}
}

func adaptTeamMember(p Payload) Payload {
	skills := models.ParseJSONList[models.Skill](p.String("skills"))
	for i := range skills {
		skills[i].Rating = models.ClampRating(skills[i].Rating)
	}
	p["skills"] = skills.String()
	p["social_media"] = models.ParseJSONList[models.SocialLink](p.String("social_media")).String()
	if strings.TrimSpace(p.String("icon")) == "" {
		p["icon"] = models.DefaultMemberIcon
	}
	return p
}
