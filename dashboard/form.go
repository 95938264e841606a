package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rpupo63/studio-site-backend/models"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Form is the create/edit modal for one resource. Skills and social links are
// edited in place on the payload's JSON strings.
type Form struct {
	Mode    Mode
	ID      uint
	variant Variant
	payload Payload
	upload  Uploader
}

// NewCreateForm starts a form from the resource type's defaults.
func NewCreateForm(rt models.ResourceType, upload Uploader) (*Form, error) {
	v, err := VariantFor(rt)
	if err != nil {
		return nil, err
	}
	return &Form{Mode: ModeCreate, variant: v, payload: v.Defaults(), upload: upload}, nil
}

// NewEditForm fills a form from a stored record.
func NewEditForm(rt models.ResourceType, id uint, record any, upload Uploader) (*Form, error) {
	v, err := VariantFor(rt)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding %s %d: %w", v.Label, id, err)
	}
	payload := v.Defaults()
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s %d: %w", v.Label, id, err)
	}
	for _, field := range []string{"id", "created_at", "updated_at"} {
		delete(payload, field)
	}
	return &Form{Mode: ModeEdit, ID: id, variant: v, payload: payload, upload: upload}, nil
}

func (f *Form) Type() models.ResourceType { return f.variant.Type }

func (f *Form) Get(field string) any { return f.payload[field] }

func (f *Form) Set(field string, value any) { f.payload[field] = value }

// Payload returns a copy of the current form body.
func (f *Form) Payload() Payload { return f.payload.clone() }

// Prepared validates the form and returns the payload as it will be sent.
func (f *Form) Prepared() (Payload, error) {
	if err := f.variant.Validate(f.payload); err != nil {
		return nil, err
	}
	return f.variant.Adapt(f.payload.clone()), nil
}

func (f *Form) requireTeam() error {
	if f.variant.Type != models.ResourceTeam {
		return fmt.Errorf("%s forms have no skills or social links", f.variant.Label)
	}
	return nil
}

func (f *Form) Skills() []models.Skill {
	return models.ParseJSONList[models.Skill](f.payload.String("skills"))
}

func (f *Form) SocialLinks() []models.SocialLink {
	return models.ParseJSONList[models.SocialLink](f.payload.String("social_media"))
}

func (f *Form) setSkills(skills models.JSONList[models.Skill]) {
	for i := range skills {
		skills[i].Rating = models.ClampRating(skills[i].Rating)
	}
	f.payload["skills"] = skills.String()
}

func (f *Form) setSocialLinks(links models.JSONList[models.SocialLink]) {
	f.payload["social_media"] = links.String()
}

func (f *Form) AddSkill(name string, rating int) error {
	if err := f.requireTeam(); err != nil {
		return err
	}
	f.setSkills(append(f.Skills(), models.Skill{Name: name, Rating: rating}))
	return nil
}

func (f *Form) UpdateSkill(index int, skill models.Skill) error {
	if err := f.requireTeam(); err != nil {
		return err
	}
	skills := f.Skills()
	if index < 0 || index >= len(skills) {
		return fmt.Errorf("skill index %d out of range", index)
	}
	skills[index] = skill
	f.setSkills(skills)
	return nil
}

func (f *Form) RemoveSkill(index int) error {
	if err := f.requireTeam(); err != nil {
		return err
	}
	skills := f.Skills()
	if index < 0 || index >= len(skills) {
		return fmt.Errorf("skill index %d out of range", index)
	}
	f.setSkills(append(skills[:index], skills[index+1:]...))
	return nil
}

func (f *Form) AddSocialLink(platform, handle string) error {
	if err := f.requireTeam(); err != nil {
		return err
	}
	f.setSocialLinks(append(f.SocialLinks(), models.SocialLink{Platform: platform, Handle: handle}))
	return nil
}

func (f *Form) UpdateSocialLink(index int, link models.SocialLink) error {
	if err := f.requireTeam(); err != nil {
		return err
	}
	links := f.SocialLinks()
	if index < 0 || index >= len(links) {
		return fmt.Errorf("social link index %d out of range", index)
	}
	links[index] = link
	f.setSocialLinks(links)
	return nil
}

func (f *Form) RemoveSocialLink(index int) error {
	if err := f.requireTeam(); err != nil {
		return err
	}
	links := f.SocialLinks()
	if index < 0 || index >= len(links) {
		return fmt.Errorf("social link index %d out of range", index)
	}
	f.setSocialLinks(append(links[:index], links[index+1:]...))
	return nil
}

// SetImageURL fills an image field with a pasted URL.
func (f *Form) SetImageURL(field, url string) error {
	if !f.variant.hasImageField(field) {
		return fmt.Errorf("%s has no image field %q", f.variant.Label, field)
	}
	f.payload[field] = url
	return nil
}

// UploadImage uploads a file and stores the returned URL in field. size is
// what the file picker reports and is only a first check; the bytes are
// counted as well, and nothing over MaxImageBytes reaches the network.
func (f *Form) UploadImage(ctx context.Context, field, filename string, size int64, image io.Reader) error {
	if !f.variant.hasImageField(field) {
		return fmt.Errorf("%s has no image field %q", f.variant.Label, field)
	}
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}
	if f.upload == nil {
		return fmt.Errorf("no uploader configured")
	}

	data, err := io.ReadAll(io.LimitReader(image, MaxImageBytes+1))
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	if int64(len(data)) > MaxImageBytes {
		return ErrImageTooLarge
	}

	url, err := f.upload.Upload(ctx, filename, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("uploading %s: %w", filename, err)
	}
	f.payload[field] = url
	return nil
}
