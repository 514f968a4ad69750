package seeder

import (
	"bytes"
	"testing"

	"Backend-Schoolhub/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoAccountsAreConsistent(t *testing.T) {
	demo := Demo()
	seen := map[string]bool{}
	kinds := map[models.Kind]int{}
	for _, acc := range demo.Accounts {
		assert.False(t, seen[acc.Email], "duplicate email %s", acc.Email)
		seen[acc.Email] = true

		_, ok := models.ParseKind(string(acc.Kind))
		assert.True(t, ok, acc.Email)
		kinds[acc.Kind]++

		if acc.Kind == models.KindStudent {
			assert.Less(t, acc.Section, len(demo.Sections), acc.Email)
			assert.NotEmpty(t, acc.RollNumber, acc.Email)
		}
	}
	for _, k := range []models.Kind{models.KindSuperadmin, models.KindSchool, models.KindAdminOffice, models.KindTeacher, models.KindStudent} {
		assert.Positive(t, kinds[k], string(k))
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	a, err := generateRandomPassword(12)
	require.NoError(t, err)
	b, err := generateRandomPassword(12)
	require.NoError(t, err)
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestPrintGeneratedPasswords(t *testing.T) {
	var buf bytes.Buffer
	PrintGeneratedPasswords(&buf, nil)
	assert.Contains(t, buf.String(), "No new users")

	buf.Reset()
	PrintGeneratedPasswords(&buf, []GeneratedPassword{{Email: "malee@riverside.example", Password: "pw", Kind: models.KindTeacher}})
	assert.Contains(t, buf.String(), "malee@riverside.example")
	assert.Contains(t, buf.String(), "teacher")
}
