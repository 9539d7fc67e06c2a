package user

import (
	"time"

	profileDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/profile"
)

// Profile holds the public-facing details attached to an identity record.
// The credential side (email, password hash, flags) lives in the auth package.
type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Website   string    `json:"website,omitempty"`
	Location  string    `json:"location,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(p *Profile) *profileDatamodel.UserProfile {
	return &profileDatamodel.UserProfile{
		ID:        p.ID,
		UserID:    p.UserID,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Website:   p.Website,
		Location:  p.Location,
		Company:   p.Company,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromDataModel(p *profileDatamodel.UserProfile) *Profile {
	return &Profile{
		ID:        p.ID,
		UserID:    p.UserID,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Website:   p.Website,
		Location:  p.Location,
		Company:   p.Company,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
