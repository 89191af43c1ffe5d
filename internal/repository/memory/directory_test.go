package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
)

func TestNMIDirectory(t *testing.T) {
	dir := NewNMIDirectory(SeedNMIRecords())

	t.Run("preserves directory order", func(t *testing.T) {
		all := dir.All()
		require.Len(t, all, 3)
		assert.Equal(t, "NMI001", all[0].Identifier)
		assert.Equal(t, "NMI002", all[1].Identifier)
		assert.Equal(t, "NMI003", all[2].Identifier)
	})

	t.Run("lookup by identifier", func(t *testing.T) {
		record, ok := dir.Get("NMI002")
		require.True(t, ok)
		assert.Equal(t, -37.8136, record.Lat)
		assert.Equal(t, 144.9631, record.Lng)

		_, ok = dir.Get("UNKNOWN")
		assert.False(t, ok)
	})

	t.Run("detached from the source slice", func(t *testing.T) {
		source := []domain.NMIRecord{{Identifier: "A", Lat: 1, Lng: 2}}
		d := NewNMIDirectory(source)
		source[0].Identifier = "MUTATED"

		record, ok := d.Get("A")
		require.True(t, ok)
		assert.Equal(t, "A", record.Identifier)
	})
}

func TestAddressDirectory(t *testing.T) {
	dir := NewAddressDirectory(SeedAddressRecords())

	addr, ok := dir.Get("NMI003")
	require.True(t, ok)
	assert.Equal(t, "71 Eagle Street, Brisbane QLD 4000", addr)

	_, ok = dir.Get("UNKNOWN")
	assert.False(t, ok)
}
