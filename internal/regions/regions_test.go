package regions

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelHoltonPrice/pyseshat/internal/dataset"
)

func regionSizes(regs []Region) []int {
	sizes := make([]int, len(regs))
	for i, r := range regs {
		sizes[i] = len(r.Sites)
	}
	return sizes
}

func TestForEquinox(t *testing.T) {
	regs, err := For(dataset.Equinox)
	require.NoError(t, err)
	require.Len(t, regs, 10)
	assert.Equal(t, []int{3, 4, 3, 5, 4, 3, 3, 4, 3, 3}, regionSizes(regs))
	assert.Equal(t, "Africa", regs[0].Name)
	assert.Equal(t, "Oceania-Australia", regs[9].Name)
}

func TestForPNAS2017(t *testing.T) {
	regs, err := For(dataset.PNAS2017)
	require.NoError(t, err)
	require.Len(t, regs, 10)
	assert.Equal(t, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, regionSizes(regs))
}

func TestEquinoxDiffersFromPNAS2017(t *testing.T) {
	eq, err := Map(dataset.Equinox)
	require.NoError(t, err)
	pnas, err := Map(dataset.PNAS2017)
	require.NoError(t, err)

	assert.Len(t, eq["Europe"], len(pnas["Europe"])+1)
	assert.Len(t, eq["Southwest Asia"], len(pnas["Southwest Asia"])+2)
	assert.Equal(t, pnas["Africa"], eq["Africa"])
}

func TestAllSites(t *testing.T) {
	for version, want := range map[string]int{dataset.Equinox: 35, dataset.PNAS2017: 30} {
		sites, err := AllSites(version)
		require.NoError(t, err)
		assert.Len(t, sites, want, version)
		assert.True(t, sort.StringsAreSorted(sites), version)
		seen := map[string]bool{}
		for _, s := range sites {
			assert.False(t, seen[s], "duplicate site %q in %s", s, version)
			seen[s] = true
		}
	}
}

func TestUnsupportedVersion(t *testing.T) {
	for _, v := range []string{"Bad Version", "", "PNAS"} {
		_, err := For(v)
		assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
		_, err = Map(v)
		assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
		_, err = AllSites(v)
		assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
		_, err = RegionOf(v, "Latium")
		assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
	}
}

func TestRegionOf(t *testing.T) {
	r, err := RegionOf(dataset.Equinox, "Crete")
	require.NoError(t, err)
	assert.Equal(t, "Europe", r)

	_, err = RegionOf(dataset.PNAS2017, "Crete")
	assert.ErrorIs(t, err, dataset.ErrInvalidArgument)
}

func TestForReturnsCopies(t *testing.T) {
	regs, err := For(dataset.PNAS2017)
	require.NoError(t, err)
	regs[0].Sites[0] = "mutated"

	again, err := For(dataset.PNAS2017)
	require.NoError(t, err)
	assert.Equal(t, "Ghanaian Coast", again[0].Sites[0])
}

func TestDecodeRejectsDuplicateSites(t *testing.T) {
	doc := []byte(`
versions:
  PNAS2017:
    - name: A
      sites: [X, Y]
    - name: B
      sites: [Y]
  Equinox: []
`)
	_, err := decode(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `site "Y" listed under both "A" and "B"`)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	_, err := decode([]byte("versions:\n  Axial: []\n"))
	assert.ErrorIs(t, err, dataset.ErrInvalidArgument)

	_, err = decode([]byte("versions:\n  PNAS2017: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no regions for version Equinox")
}
