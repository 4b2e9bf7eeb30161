package models

import "time"

type Role string

const (
	RoleUnassigned Role = "UNASSIGNED"
	RolePatient    Role = "PATIENT"
	RoleDoctor     Role = "DOCTOR"
	RoleAdmin      Role = "ADMIN"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// User is a platform account. Doctors and patients share the collection and
// the credit balance field.
type User struct {
	ID         string `bson:"id" json:"id"`
	ExternalID string `bson:"externalId" json:"-"` // subject issued by the identity provider
	Email      string `bson:"email" json:"email"`
	Name       string `bson:"name" json:"name"`
	Role       Role   `bson:"role" json:"role"`
	Credits    int    `bson:"credits" json:"credits"`

	// Doctor profile.
	Specialty          string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Experience         int                `bson:"experience,omitempty" json:"experience,omitempty"` // years
	CredentialURL      string             `bson:"credentialUrl,omitempty" json:"credentialUrl,omitempty"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	VerificationStatus VerificationStatus `bson:"verificationStatus,omitempty" json:"verificationStatus,omitempty"`

	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsVerifiedDoctor() bool {
	return u != nil && u.Role == RoleDoctor && u.VerificationStatus == VerificationVerified
}

// DoctorProfile is the onboarding payload for a doctor.
type DoctorProfile struct {
	Specialty   string `form:"specialty" json:"specialty" binding:"required"`
	Experience  int    `form:"experience" json:"experience" binding:"min=1,max=70"`
	Description string `form:"description" json:"description" binding:"required,max=1000"`
}

// PublicDoctor is the directory view of a verified doctor.
type PublicDoctor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Experience  int    `json:"experience"`
	Description string `json:"description"`
}

func (u *User) Public() PublicDoctor {
	return PublicDoctor{
		ID:          u.ID,
		Name:        u.Name,
		Specialty:   u.Specialty,
		Experience:  u.Experience,
		Description: u.Description,
	}
}
