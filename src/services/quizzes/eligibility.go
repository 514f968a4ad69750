package quizzes

import "strings"

// IsEligible decides whether a student in the given class/section may take a quiz restricted to
// allowedClassIDs/allowedSectionIDs. Empty allow-lists mean the quiz is open to the whole school.
// Ids are compared in normalised string form.
func IsEligible(studentClassID, studentSectionID string, allowedClassIDs, allowedSectionIDs []string) bool {
	if len(allowedClassIDs) == 0 && len(allowedSectionIDs) == 0 {
		return true
	}

	classID := normalizeID(studentClassID)
	sectionID := normalizeID(studentSectionID)

	if len(allowedClassIDs) > 0 && (classID == "" || !containsID(allowedClassIDs, classID)) {
		return false
	}
	if len(allowedSectionIDs) > 0 && (sectionID == "" || !containsID(allowedSectionIDs, sectionID)) {
		return false
	}
	return true
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func containsID(ids []string, want string) bool {
	for _, id := range ids {
		if normalizeID(id) == want {
			return true
		}
	}
	return false
}
