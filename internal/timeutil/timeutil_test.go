package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClockTimezoneInvalida(t *testing.T) {
	_, err := NewClock("No/Existe")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	clock, err := NewClock("America/Lima")
	require.NoError(t, err)

	// 03:00 UTC del 15 de marzo son las 22:00 del 14 en Lima (UTC-5).
	instant := time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)
	start, end := clock.DayBounds(instant)

	assert.Equal(t, 14, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestSameDayCruzaMedianocheUTC(t *testing.T) {
	clock, err := NewClock("America/Lima")
	require.NoError(t, err)

	// Ambos instantes caen el 14 en Lima aunque en UTC sean días distintos.
	a := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)
	assert.True(t, clock.SameDay(a, b))

	c := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.False(t, clock.SameDay(a, c))
}

func TestDayBoundsContienenVentaDeLaMananaConsultadaDeNoche(t *testing.T) {
	clock, err := NewClock("America/Lima")
	require.NoError(t, err)

	// Consulta a las 20:00 de Lima: en UTC ya es el día siguiente, pero los
	// límites del día local deben seguir conteniendo la venta de las 10:00.
	consulta := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC) // 29/08 20:00 Lima
	venta := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)   // 29/08 10:00 Lima

	start, end := clock.DayBounds(consulta)
	assert.False(t, venta.Before(start))
	assert.True(t, venta.Before(end))
	assert.True(t, clock.SameDay(consulta, venta))
}
