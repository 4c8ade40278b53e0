package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedNormalizeFillsMissingFromPrimary(t *testing.T) {
	in := Localized{"ru": "  Концерт ", "de": "Konzert"}

	out := in.Normalize([]string{"ru", "fr"}, "ru")

	assert.Equal(t, Localized{"ru": "Концерт", "fr": "Концерт"}, out)
}

func TestLocalizedNormalizeFallsBackToFirstNonBlank(t *testing.T) {
	out := Localized{"fr": "Concert", "ru": " "}.Normalize([]string{"ru", "fr"}, "ru")

	assert.Equal(t, "Concert", out["ru"])
	assert.Equal(t, "Concert", out["fr"])
}

func TestLocalizedNormalizeBlankIsNonNil(t *testing.T) {
	var in Localized

	out := in.Normalize([]string{"ru", "fr"}, "ru")

	require.NotNil(t, out)
	assert.True(t, out.IsBlank())
}

func TestLocalizedGet(t *testing.T) {
	l := Localized{"ru": "Гамлет", "fr": "Hamlet"}

	assert.Equal(t, "Hamlet", l.Get("fr", "ru"))
	assert.Equal(t, "Гамлет", l.Get("en", "ru"))
	assert.Equal(t, "", Localized{}.Get("ru", "fr"))
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PAID", "EXPIRED", "CANCELLED"} {
		st, err := ParseOrderStatus(s)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(s), st)
	}

	for _, s := range []string{"", "paid", "REFUNDED", "Paid "} {
		_, err := ParseOrderStatus(s)
		assert.True(t, errors.Is(err, ErrValidation), s)
	}
}
