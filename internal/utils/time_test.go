package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDateInt(t *testing.T) {
	got := EncodeDateInt(time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local))
	assert.Equal(t, 20240305, got)
}

func TestDecodeDateInt(t *testing.T) {
	got, err := DecodeDateInt(20241231)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), got)
}

func TestDateIntRoundTripAllDays(t *testing.T) {
	d := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	for !d.After(end) {
		back, err := DecodeDateInt(EncodeDateInt(d))
		if err != nil {
			t.Fatalf("decode %s: %v", FormatDate(d), err)
		}
		if !back.Equal(d) {
			t.Fatalf("round trip %s: got %s", FormatDate(d), FormatDate(back))
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestDecodeDateIntRejectsImpossibleDates(t *testing.T) {
	for _, v := range []int{0, -20240101, 20241301, 20240001, 20240100, 20240230, 20230229, 20240132} {
		_, err := DecodeDateInt(v)
		assert.Errorf(t, err, "value %d", v)
	}
}

func TestDecodeDateIntLeapDay(t *testing.T) {
	got, err := DecodeDateInt(20240229)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(got))
}
