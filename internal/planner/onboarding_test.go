package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboarding_HappyPath(t *testing.T) {
	var o Onboarding
	assert.Equal(t, NotStarted, o.State())
	assert.False(t, o.Completion().IsEstablished())

	o, err := o.Begin()
	require.NoError(t, err)
	assert.Equal(t, InProgress, o.State())

	o, err = o.Toggle("CS 141")
	require.NoError(t, err)
	o, err = o.Toggle("MATH 180")
	require.NoError(t, err)

	// The draft is invisible until confirmed.
	assert.True(t, o.IsChecked("CS 141"))
	assert.False(t, o.Completion().IsEstablished())

	o, err = o.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Confirmed, o.State())
	assert.True(t, o.Completion().Has("CS 141"))
	assert.True(t, o.Completion().Has("MATH 180"))
}

func TestOnboarding_ToggleFromNotStartedBegins(t *testing.T) {
	o, err := Onboarding{}.Toggle("CS 141")

	require.NoError(t, err)
	assert.Equal(t, InProgress, o.State())
}

func TestOnboarding_ConfirmEmpty(t *testing.T) {
	o, err := Onboarding{}.Confirm()

	require.NoError(t, err)
	assert.True(t, o.Completion().IsEstablished())
	assert.Equal(t, 0, o.Completion().Codes().Len())
}

func TestOnboarding_EditRetainsSelections(t *testing.T) {
	o, _ := Onboarding{}.Toggle("CS 141")
	o, _ = o.Confirm()

	o, err := o.Edit()
	require.NoError(t, err)
	assert.Equal(t, InProgress, o.State())
	assert.True(t, o.IsChecked("CS 141"))

	// While editing, the last confirmed set stays authoritative.
	o, _ = o.Toggle("CS 141")
	o, _ = o.Toggle("CS 151")
	assert.True(t, o.Completion().Has("CS 141"))
	assert.False(t, o.Completion().Has("CS 151"))

	o, err = o.Confirm()
	require.NoError(t, err)
	assert.False(t, o.Completion().Has("CS 141"))
	assert.True(t, o.Completion().Has("CS 151"))
}

func TestOnboarding_InvalidTransitions(t *testing.T) {
	confirmed, _ := Onboarding{}.Confirm()

	_, err := confirmed.Confirm()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = confirmed.Toggle("CS 141")
	assert.ErrorIs(t, err, ErrChecklistLocked)

	_, err = confirmed.Begin()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Onboarding{}.Edit()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOnboarding_Reset(t *testing.T) {
	o, _ := Onboarding{}.Toggle("CS 141")
	o, _ = o.Confirm()

	o = o.Reset()

	assert.Equal(t, NotStarted, o.State())
	assert.Equal(t, 0, o.Draft().Len())
	assert.False(t, o.Completion().IsEstablished())
}

func TestOnboarding_ConfirmSnapshotsDraft(t *testing.T) {
	o, _ := Onboarding{}.Toggle("CS 141")
	confirmed, _ := o.Confirm()

	// A later toggle on the old draft value must not leak into the
	// committed set.
	_, _ = o.Toggle("CS 151")

	assert.False(t, confirmed.Completion().Has("CS 151"))
}

func TestOnboardingState_String(t *testing.T) {
	assert.Equal(t, "not started", NotStarted.String())
	assert.Equal(t, "in progress", InProgress.String())
	assert.Equal(t, "confirmed", Confirmed.String())
}
