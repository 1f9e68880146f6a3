package domain

type InstructorStatus string

const (
	StatusInvited   InstructorStatus = "INVITED"
	StatusActive    InstructorStatus = "ACTIVE"
	StatusSuspended InstructorStatus = "SUSPENDED"
)

var InstructorStatusLabel = map[InstructorStatus]string{
	StatusInvited:   "Invité",
	StatusActive:    "Actif",
	StatusSuspended: "Suspendu",
}

func (s InstructorStatus) Label() string {
	if l, ok := InstructorStatusLabel[s]; ok {
		return l
	}
	return string(s)
}

type SkateSpecialty string

const (
	SpecialtyStreet    SkateSpecialty = "STREET"
	SpecialtyBowl      SkateSpecialty = "BOWL"
	SpecialtyVert      SkateSpecialty = "VERT"
	SpecialtyPark      SkateSpecialty = "PARK"
	SpecialtyLongboard SkateSpecialty = "LONGBOARD"
	SpecialtyFreestyle SkateSpecialty = "FREESTYLE"
	SpecialtyCruising  SkateSpecialty = "CRUISING"
)

// Specialties offered by the invitation form, in display order.
var Specialties = []SkateSpecialty{
	SpecialtyStreet, SpecialtyVert, SpecialtyPark, SpecialtyFreestyle, SpecialtyBowl, SpecialtyLongboard,
}

var SkateSpecialtyLabel = map[SkateSpecialty]string{
	SpecialtyStreet:    "Street",
	SpecialtyBowl:      "Bowl",
	SpecialtyVert:      "Vert",
	SpecialtyPark:      "Park",
	SpecialtyLongboard: "Longboard",
	SpecialtyFreestyle: "Freestyle",
	SpecialtyCruising:  "Cruising",
}

var SkateSpecialtyDescription = map[SkateSpecialty]string{
	SpecialtyStreet:    "Tricks sur mobilier urbain : rails, marches, gaps, ledges...",
	SpecialtyVert:      "Rampes verticales, half-pipes et figures aériennes",
	SpecialtyPark:      "Skateparks avec modules variés : bowls, quarters, spines...",
	SpecialtyFreestyle: "Tricks techniques au sol : flips, rotations, combos...",
	SpecialtyBowl:      "Bowls et piscines : carving, grinds, airs...",
	SpecialtyLongboard: "Longboard : dancing, downhill...",
	SpecialtyCruising:  "Longboard : dancing, downhill...",
}

func (s SkateSpecialty) Label() string {
	if l, ok := SkateSpecialtyLabel[s]; ok {
		return l
	}
	return string(s)
}

type Instructor struct {
	ID                int64            `json:"id"`
	Email             string           `json:"email"`
	Firstname         string           `json:"firstname"`
	Lastname          string           `json:"lastname"`
	Phone             string           `json:"phone"`
	Status            InstructorStatus `json:"status"`
	Bio               string           `json:"bio"`
	Specialty         *SkateSpecialty  `json:"specialty"`
	YearsOfExperience int              `json:"yearsOfExperience"`
	InstagramHandle   string           `json:"instagramHandle"`
	YoutubeChannel    string           `json:"youtubeChannel"`
	CreatedAt         Timestamp        `json:"createdAt"`
	UpdatedAt         Timestamp        `json:"updatedAt"`
	InvitedAt         Timestamp        `json:"invitedAt"`
	ActivatedAt       Timestamp        `json:"activatedAt"`
}

func (i Instructor) RecordID() int64 { return i.ID }

func (i Instructor) FullName() string { return i.Firstname + " " + i.Lastname }

// Lifecycle: INVITED -> ACTIVE <-> SUSPENDED.
func (i Instructor) CanResendInvite() bool { return i.Status == StatusInvited }
func (i Instructor) CanSuspend() bool      { return i.Status == StatusActive }
func (i Instructor) CanReactivate() bool   { return i.Status == StatusSuspended }

// InstructorCreateRequest invites a new instructor. Only the basics are
// required; the instructor completes the profile after activation.
type InstructorCreateRequest struct {
	Firstname         string          `json:"firstname"`
	Lastname          string          `json:"lastname"`
	Email             string          `json:"email"`
	Phone             *string         `json:"phone"`
	Specialty         *SkateSpecialty `json:"specialty"`
	YearsOfExperience *int            `json:"yearsOfExperience"`
}

type InstructorAction string

const (
	ActionResendInvitation InstructorAction = "resend-invitation"
	ActionSuspend          InstructorAction = "suspend"
	ActionReactivate       InstructorAction = "reactivate"
)
