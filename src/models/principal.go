package models

// Kind is the explicit discriminant of an authenticated principal.
type Kind string

const (
	KindSuperadmin  Kind = "superadmin"
	KindSchool      Kind = "school"
	KindAdminOffice Kind = "admin_office"
	KindTeacher     Kind = "teacher"
	KindStudent     Kind = "student"
)

// ParseKind validates a raw role string.
func ParseKind(raw string) (Kind, bool) {
	switch k := Kind(raw); k {
	case KindSuperadmin, KindSchool, KindAdminOffice, KindTeacher, KindStudent:
		return k, true
	}
	return "", false
}

// IsStaff reports whether the kind may author quizzes.
func (k Kind) IsStaff() bool {
	return k == KindSchool || k == KindAdminOffice || k == KindTeacher
}

// Principal is resolved once at authentication time and carried in the request context.
type Principal struct {
	Kind      Kind   `json:"kind"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	SchoolID  string `json:"schoolId,omitempty"`
	ClassID   string `json:"classId,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
}

// OwningSchoolID is the principal's own id for school accounts, otherwise the associated school.
func (p Principal) OwningSchoolID() string {
	if p.Kind == KindSchool {
		return p.ID
	}
	return p.SchoolID
}
