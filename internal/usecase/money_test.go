package usecase_test

import (
	"encoding/json"
	"testing"

	"backoffice/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(usecase.NewMoney(dec("12.3")))
	require.NoError(t, err)
	assert.Equal(t, `"12.30"`, string(b))

	for _, in := range []string{`"12.30"`, `12.3`} {
		var m usecase.Money
		require.NoError(t, json.Unmarshal([]byte(in), &m), in)
		assert.Equal(t, "12.30", m.String())
	}

	var m usecase.Money
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}

func TestHTTPError_Kinds(t *testing.T) {
	err := usecase.NewHTTPError(418, "teapot")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 418, he.Status)
	assert.Equal(t, "418: teapot", err.Error())
	assert.NotErrorIs(t, err, usecase.ErrValidation)
}
