package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "2025-06", Period{Year: 2025, Month: 6}.String())
	assert.Equal(t, "2024-12", Period{Year: 2024, Month: 12}.String())
}

func TestPeriod_Valid(t *testing.T) {
	assert.True(t, Period{Year: 2025, Month: 1}.Valid())
	assert.False(t, Period{Year: 2025, Month: 0}.Valid())
	assert.False(t, Period{Year: 2025, Month: 13}.Valid())
	assert.False(t, Period{Year: 1999, Month: 5}.Valid())
}
