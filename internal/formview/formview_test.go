package formview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/resources"
)

func validRoomDraft(form *Form) {
	form.SetAll(map[string]string{
		FieldRoomNo:       "101",
		FieldRoomType:     "Deluxe Room",
		FieldPrice:        "8999",
		FieldCapacity:     "2",
		FieldAvailability: "available",
		FieldDescription:  "Sea view deluxe room.",
	})
}

func TestRules(t *testing.T) {
	t.Run("non-empty", func(t *testing.T) {
		rule := NonEmpty("required")
		assert.Equal(t, "required", rule(""))
		assert.Equal(t, "required", rule("   "))
		assert.Equal(t, "", rule("x"))
	})

	t.Run("positive number", func(t *testing.T) {
		rule := PositiveNumber("invalid")
		assert.Equal(t, "invalid", rule(""))
		assert.Equal(t, "invalid", rule("abc"))
		assert.Equal(t, "invalid", rule("0"))
		assert.Equal(t, "invalid", rule("-5"))
		assert.Equal(t, "", rule("4.5"))
	})

	t.Run("one of", func(t *testing.T) {
		rule := OneOf([]string{"a", "b"}, "pick one")
		assert.Equal(t, "pick one", rule(""))
		assert.Equal(t, "pick one", rule("c"))
		assert.Equal(t, "", rule("b"))
	})
}

func TestVisibleErrorsFollowTouch(t *testing.T) {
	form := NewRoomForm(ModeCreate)

	// Untouched fields hide their messages even when invalid.
	assert.NotEmpty(t, form.Errors())
	assert.Empty(t, form.VisibleErrors())

	form.Touch(FieldPrice)
	visible := form.VisibleErrors()
	require.Len(t, visible, 1)
	assert.Equal(t, "Enter a valid price.", visible[FieldPrice])
}

func TestSubmitInvalidTouchesEverything(t *testing.T) {
	form := NewRoomForm(ModeCreate)

	err := form.Submit(context.Background(), func(context.Context, map[string]interface{}) error {
		t.Fatal("submit func must not run for an invalid draft")
		return nil
	})
	require.ErrorIs(t, err, ErrInvalid)

	// All messages revealed at once.
	assert.Equal(t, form.Errors(), form.VisibleErrors())
}

func TestSubmitPayloadMapping(t *testing.T) {
	form := NewRoomForm(ModeCreate)
	validRoomDraft(form)
	form.Set(FieldRoomNo, "  101 ")

	var got map[string]interface{}
	err := form.Submit(context.Background(), func(_ context.Context, payload map[string]interface{}) error {
		got = payload
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"roomNumber":    "101",
		"type":          "Deluxe Room",
		"pricePerNight": 8999.0,
		"capacity":      2,
		"available":     true,
		"description":   "Sea view deluxe room.",
	}, got)

	// No imageUrl key at all when no image was uploaded.
	_, present := got["imageUrl"]
	assert.False(t, present)
}

func TestSubmitIncludesUploadedImage(t *testing.T) {
	form := NewRoomForm(ModeCreate)
	validRoomDraft(form)
	form.Set(FieldImageURL, "https://cdn/room.jpg")
	form.Set(FieldAvailability, "unavailable")

	var got map[string]interface{}
	require.NoError(t, form.Submit(context.Background(), func(_ context.Context, payload map[string]interface{}) error {
		got = payload
		return nil
	}))
	assert.Equal(t, "https://cdn/room.jpg", got["imageUrl"])
	assert.Equal(t, false, got["available"])
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	form := NewRoomForm(ModeCreate)
	validRoomDraft(form)

	err := form.Submit(context.Background(), func(context.Context, map[string]interface{}) error {
		return &apiclient.HTTPError{Status: 409, Body: []byte(`{"message":"room number taken"}`)}
	})
	require.Error(t, err)

	assert.Equal(t, "room number taken", form.Banner())
	assert.Equal(t, "101", form.Value(FieldRoomNo), "draft stays intact for correction")
	assert.False(t, form.Submitting())
}

func TestSubmitFallbackBanner(t *testing.T) {
	form := NewRoomForm(ModeCreate)
	validRoomDraft(form)

	_ = form.Submit(context.Background(), func(context.Context, map[string]interface{}) error {
		return errors.New("dial tcp: refused")
	})
	assert.Equal(t, "failed to save room", form.Banner())
}

func TestEditingClearsBanner(t *testing.T) {
	form := NewRoomForm(ModeCreate)
	validRoomDraft(form)
	_ = form.Submit(context.Background(), func(context.Context, map[string]interface{}) error {
		return errors.New("boom")
	})
	require.NotEmpty(t, form.Banner())

	form.Set(FieldPrice, "7999")
	assert.Empty(t, form.Banner())
}

func TestPopulateRoomForm(t *testing.T) {
	form := NewRoomForm(ModeEdit)
	PopulateRoomForm(form, resources.Record{
		"roomNumber":    "204",
		"type":          "Family Room",
		"pricePerNight": float64(6999),
		"capacity":      float64(4),
		"available":     false,
		"description":   "Hillside family room.",
		"imageUrl":      "https://cdn/204.jpg",
	})

	assert.Equal(t, "204", form.Value(FieldRoomNo))
	assert.Equal(t, "6999", form.Value(FieldPrice))
	assert.Equal(t, "4", form.Value(FieldCapacity))
	assert.Equal(t, "unavailable", form.Value(FieldAvailability))
	assert.Equal(t, "https://cdn/204.jpg", form.Value(FieldImageURL))
	assert.True(t, form.Valid())
}
