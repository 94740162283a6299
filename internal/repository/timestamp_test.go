package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 12, 30, 15, 123456000, time.UTC)

	inputs := []any{
		"2024-05-01T12:30:15.123456+00:00",
		"2024-05-01T14:30:15.123456+02:00",
		"2024-05-01T12:30:15.123456Z",
		"2024-05-01T12:30:15.123456",
		"2024-05-01 12:30:15.123456",
		[]byte("2024-05-01 12:30:15.123456+00:00"),
		want.In(time.FixedZone("X", 3600)),
	}

	for _, in := range inputs {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, "input %v", in)
		assert.True(t, want.Equal(got), "input %v: got %v", in, got)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)

	_, err = ParseTimestamp(nil)
	assert.Error(t, err)

	_, err = ParseTimestamp(42)
	assert.Error(t, err)
}
