package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc", ""))
	assert.Equal(t, "42", ToString(42, ""))
	assert.Equal(t, "42", ToString(float64(42), ""))
	assert.Equal(t, "4.5", ToString(4.5, ""))
	assert.Equal(t, "true", ToString(true, ""))
	assert.Equal(t, "fallback", ToString(nil, "fallback"))
	assert.Equal(t, "fallback", ToString([]string{"x"}, "fallback"))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 4.5, ToFloat("4.5", 0))
	assert.Equal(t, 4.5, ToFloat(" 4.5 ", 0))
	assert.Equal(t, 7.0, ToFloat(7, 0))
	assert.Equal(t, -1.0, ToFloat("not a number", -1))
	assert.Equal(t, -1.0, ToFloat(nil, -1))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, ToInt("3", 0))
	assert.Equal(t, 3, ToInt(float64(3), 0))
	assert.Equal(t, 9, ToInt(nil, 9))
}

func TestToBool(t *testing.T) {
	t.Run("booleans and numbers", func(t *testing.T) {
		assert.True(t, ToBool(true, false))
		assert.False(t, ToBool(0, true))
		assert.True(t, ToBool(1, false))
	})

	t.Run("availability vocabulary", func(t *testing.T) {
		assert.True(t, ToBool("Available", false))
		assert.False(t, ToBool("unavailable", true))
		assert.True(t, ToBool("yes", false))
		assert.False(t, ToBool("no", true))
	})

	t.Run("fallback", func(t *testing.T) {
		assert.True(t, ToBool("sometimes", true))
		assert.False(t, ToBool(nil, false))
	})
}
