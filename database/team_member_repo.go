package database

import (
	"github.com/rpupo63/studio-site-backend/models"
	"gorm.io/gorm"
)

type TeamMemberRepo struct {
	crudRepo[models.TeamMember]
}

func NewTeamMemberRepo(db *gorm.DB) *TeamMemberRepo {
	return &TeamMemberRepo{newCRUDRepo[models.TeamMember](db, "id ASC")}
}
