package api

import (
	"strings"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
)

func newTeamHandler(store resourceStore[models.TeamMember]) resourceHandler[models.TeamMember] {
	return newResourceHandler("team member", store,
		func(m *models.TeamMember, id uint) { m.ID = id },
		prepareTeamMember,
	)
}

func prepareTeamMember(m *models.TeamMember) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if strings.TrimSpace(m.Icon) == "" {
		m.Icon = models.DefaultMemberIcon
	}
	if m.Skills == nil {
		m.Skills = models.JSONList[models.Skill]{}
	}
	for i := range m.Skills {
		m.Skills[i].Rating = models.ClampRating(m.Skills[i].Rating)
	}
	if m.SocialMedia == nil {
		m.SocialMedia = models.JSONList[models.SocialLink]{}
	}
	return nil
}
