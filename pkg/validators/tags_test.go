package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"pet", "cute"}, CleanTags([]string{" pet ", "", "  ", "cute", "pet"}))
	assert.Empty(t, CleanTags([]string{"", "   "}))
	assert.Empty(t, CleanTags(nil))
}

func TestValidateTags(t *testing.T) {
	assert.NoError(t, ValidateTags(nil))
	assert.NoError(t, ValidateTags([]string{"pet", "cute"}))
	assert.ErrorIs(t, ValidateTags([]string{"pet", "a,b"}), ErrTagUnsafe)
}

func TestMergeTags_Union(t *testing.T) {
	got := MergeTags([]string{"pet"}, []string{"cute", "pet", " fluffy "})
	assert.Equal(t, []string{"pet", "cute", "fluffy"}, got)
}

func TestMergeTags_Idempotent(t *testing.T) {
	once := MergeTags([]string{"pet"}, []string{"cute"})
	twice := MergeTags(once, []string{"cute"})
	assert.Equal(t, once, twice)
}

func TestMergeTags_CaseSensitive(t *testing.T) {
	got := MergeTags([]string{"Pet"}, []string{"pet"})
	assert.Equal(t, []string{"Pet", "pet"}, got)
}
