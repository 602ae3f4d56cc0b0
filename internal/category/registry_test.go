package category

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrySeedsDefaults(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"work", "personal", "shopping", "other"}, r.Labels())
}

func TestAddNormalizesLabel(t *testing.T) {
	r := NewRegistry()
	got, err := r.Add("  Fitness ")
	require.NoError(t, err)
	assert.Equal(t, "fitness", got)
	assert.True(t, r.Contains("FITNESS"))
	assert.Equal(t, 5, r.Len())
}

func TestAddRejectsDuplicateCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	before := r.Labels()

	_, err := r.Add("Work")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateCategory))
	assert.Equal(t, before, r.Labels())
}

func TestAddIgnoresBlank(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("   ")
	assert.ErrorIs(t, err, ErrBlankLabel)
	assert.Equal(t, 4, r.Len())
}

func TestValidate(t *testing.T) {
	r := NewRegistry()
	got, err := r.Validate("Shopping")
	require.NoError(t, err)
	assert.Equal(t, "shopping", got)

	_, err = r.Validate("garden")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestRestoreKeepsDefaultsAndOrder(t *testing.T) {
	r := Restore([]string{"work", "garden", "", "Garden", "reading"})
	assert.Equal(t, []string{"work", "personal", "shopping", "other", "garden", "reading"}, r.Labels())
}

func TestLabelsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	labels := r.Labels()
	labels[0] = "mutated"
	assert.True(t, r.Contains("work"))
}

func TestAddFoldsInnerWhitespace(t *testing.T) {
	r := NewRegistry()
	got, err := r.Add("  Home   Chores ")
	require.NoError(t, err)
	assert.Equal(t, "home-chores", got)
	assert.True(t, r.Contains("home chores"))
	assert.True(t, r.Contains("home-chores"))

	label, err := r.Validate("Home Chores")
	require.NoError(t, err)
	assert.Equal(t, "home-chores", label)

	_, err = r.Add("home-chores")
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestAddRejectsWildcard(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add(" ALL ")
	assert.ErrorIs(t, err, ErrReservedLabel)
	assert.False(t, r.Contains(Wildcard))

	_, err = r.Validate(Wildcard)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestRestoreDropsWildcardAndFoldsLegacyLabels(t *testing.T) {
	r := Restore([]string{"all", "Side Project"})
	assert.Equal(t, []string{"work", "personal", "shopping", "other", "side-project"}, r.Labels())
}
