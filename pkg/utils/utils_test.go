package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "zero", input: 0, want: 0},
		{name: "arredonda para cima", input: 10.005001, want: 10.01},
		{name: "arredonda para baixo", input: 10.004, want: 10},
		{name: "negativo", input: -3.456, want: -3.46},
		{name: "meio centavo", input: 1.005, want: 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundWithTwoDecimalPlace(tt.input))
		})
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "TX-"))
	assert.Len(t, id, 13)

	other, err := GenerateID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestParseDate(t *testing.T) {
	t.Run("vazio retorna nil", func(t *testing.T) {
		got, dateOnly, err := ParseDate("")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.False(t, dateOnly)
	})

	t.Run("data simples", func(t *testing.T) {
		got, dateOnly, err := ParseDate("2023-03-15")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, dateOnly)
		assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), *got)
	})

	t.Run("RFC3339", func(t *testing.T) {
		got, dateOnly, err := ParseDate("2023-03-15T10:30:00Z")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, dateOnly)
		assert.Equal(t, 10, got.Hour())
	})

	t.Run("formato inválido", func(t *testing.T) {
		_, _, err := ParseDate("15/03/2023")
		assert.Error(t, err)
	})
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(day)

	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Add(time.Nanosecond).Equal(day.AddDate(0, 0, 1)))
}
