package numerology_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/eos/internal/numerology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	t.Parallel()

	cases := map[int]int{
		0:   0,
		5:   5,
		9:   9,
		10:  1,
		24:  6,
		29:  2, // 2+9=11 -> 1+1=2
		99:  9,
		123: 6,
	}

	for input, want := range cases {
		assert.Equal(t, want, numerology.Reduce(input), "Reduce(%d)", input)
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	t.Run("typical date", func(t *testing.T) {
		t.Parallel()
		// 12.03.1991: day 1+2=3, all 1+2+0+3+1+9+9+1=26->8, day+month 1+2+0+3=6.
		numbers := numerology.Calculate(time.Date(1991, time.March, 12, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, 3, numbers.Soul)
		assert.Equal(t, 8, numbers.Destiny)
		assert.Equal(t, 6, numbers.Purpose)
	})

	t.Run("reduction cascades", func(t *testing.T) {
		t.Parallel()
		// 29.09.1999: day 2+9=11->2, all 2+9+0+9+1+9+9+9=48->12->3, day+month 2+9+0+9=20->2.
		numbers := numerology.Calculate(time.Date(1999, time.September, 29, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, 2, numbers.Soul)
		assert.Equal(t, 3, numbers.Destiny)
		assert.Equal(t, 2, numbers.Purpose)
	})
}

func TestVedicYear(t *testing.T) {
	t.Parallel()

	t.Run("documented example", func(t *testing.T) {
		t.Parallel()
		// 12.05.2021 fell on a Wednesday, planet number 5.
		// 12 + 5 + 21 + 5 = 43 -> 7.
		forecast, err := numerology.VedicYear(12, time.May, 2021)

		require.NoError(t, err)
		assert.Equal(t, time.Wednesday, forecast.Weekday)
		assert.Equal(t, 5, forecast.PlanetNumber)
		assert.Equal(t, 21, forecast.YearLastTwo)
		assert.Equal(t, 43, forecast.RawSum)
		assert.Equal(t, 7, forecast.Reduced)
	})

	t.Run("sunday maps to the sun", func(t *testing.T) {
		t.Parallel()
		// 01.01.2023 was a Sunday: 1 + 1 + 23 + 1 = 26 -> 8.
		forecast, err := numerology.VedicYear(1, time.January, 2023)

		require.NoError(t, err)
		assert.Equal(t, time.Sunday, forecast.Weekday)
		assert.Equal(t, 1, forecast.PlanetNumber)
		assert.Equal(t, 8, forecast.Reduced)
	})

	t.Run("rejects impossible date", func(t *testing.T) {
		t.Parallel()
		_, err := numerology.VedicYear(29, time.February, 2023)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})

	t.Run("leap day valid in leap year", func(t *testing.T) {
		t.Parallel()
		forecast, err := numerology.VedicYear(29, time.February, 2024)

		require.NoError(t, err)
		assert.Equal(t, 29, forecast.Day)
	})
}
