package address_test

import (
	"testing"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDataset struct {
	districts    map[string][]string
	subDistricts map[string][]string
	lookups      int
}

func newStubDataset() *stubDataset {
	return &stubDataset{
		districts: map[string][]string{
			"Dhaka":      {"Dhaka", "Gazipur", "Narayanganj"},
			"Chattogram": {"Chattogram", "Cox's Bazar"},
		},
		subDistricts: map[string][]string{
			"Dhaka":       {"Dhamrai", "Savar"},
			"Gazipur":     {"Kaliakair", "Sreepur"},
			"Cox's Bazar": {"Teknaf", "Ukhia"},
		},
	}
}

func (s *stubDataset) Divisions() []string { return []string{"Chattogram", "Dhaka"} }

func (s *stubDataset) DistrictsOf(division string) []string {
	s.lookups++
	return s.districts[division]
}

func (s *stubDataset) SubDistrictsOf(district string) []string {
	return s.subDistricts[district]
}

func TestResolver_Districts_MatchDataset(t *testing.T) {
	ds := newStubDataset()
	for _, division := range ds.Divisions() {
		r := address.NewResolver(ds, address.Selection{})
		require.NoError(t, r.SetDivision(division))
		assert.Equal(t, ds.districts[division], r.Districts(), division)
	}
}

func TestResolver_SetDivision_ClearsNarrowerUnits(t *testing.T) {
	ds := newStubDataset()
	r := address.NewResolver(ds, address.Selection{})
	require.NoError(t, r.SetDivision("Dhaka"))
	require.NoError(t, r.SetDistrict("Gazipur"))
	require.NoError(t, r.SetSubDistrict("Sreepur"))

	t.Run("different division", func(t *testing.T) {
		require.NoError(t, r.SetDivision("Chattogram"))
		assert.Equal(t, "Chattogram", r.Selection().Division())
		assert.Empty(t, r.Selection().District())
		assert.Empty(t, r.Selection().SubDistrict())
		assert.Nil(t, r.SubDistricts())
	})

	t.Run("same division again", func(t *testing.T) {
		require.NoError(t, r.SetDistrict("Cox's Bazar"))
		require.NoError(t, r.SetDivision("Chattogram"))
		assert.Empty(t, r.Selection().District())
	})
}

func TestResolver_SetDivision_RejectsUnknown(t *testing.T) {
	r := address.NewResolver(newStubDataset(), address.Selection{})
	require.NoError(t, r.SetDivision("Dhaka"))
	require.NoError(t, r.SetDistrict("Gazipur"))

	err := r.SetDivision("Atlantis")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "Dhaka", r.Selection().Division())
	assert.Equal(t, "Gazipur", r.Selection().District())
}

func TestResolver_SetDistrict(t *testing.T) {
	t.Run("clears sub-district", func(t *testing.T) {
		r := address.NewResolver(newStubDataset(), address.Selection{})
		require.NoError(t, r.SetDivision("Dhaka"))
		require.NoError(t, r.SetDistrict("Dhaka"))
		require.NoError(t, r.SetSubDistrict("Savar"))

		require.NoError(t, r.SetDistrict("Gazipur"))

		assert.Empty(t, r.Selection().SubDistrict())
		assert.Equal(t, []string{"Kaliakair", "Sreepur"}, r.SubDistricts())
	})

	t.Run("rejects district of another division", func(t *testing.T) {
		r := address.NewResolver(newStubDataset(), address.Selection{})
		require.NoError(t, r.SetDivision("Dhaka"))

		err := r.SetDistrict("Cox's Bazar")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, r.Selection().District())
	})

	t.Run("without division is kept as incomplete", func(t *testing.T) {
		r := address.NewResolver(newStubDataset(), address.Selection{})

		require.NoError(t, r.SetDistrict("Gazipur"))

		assert.Equal(t, "Gazipur", r.Selection().District())
		assert.Empty(t, r.Selection().Division())
		assert.Nil(t, r.Districts())
	})
}

func TestResolver_SetSubDistrict_RejectsForeignUnit(t *testing.T) {
	r := address.NewResolver(newStubDataset(), address.Selection{})
	require.NoError(t, r.SetDivision("Dhaka"))
	require.NoError(t, r.SetDistrict("Gazipur"))

	err := r.SetSubDistrict("Teknaf")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, r.Selection().SubDistrict())
}

func TestResolver_Set_DispatchesByLevel(t *testing.T) {
	r := address.NewResolver(newStubDataset(), address.Selection{})

	require.NoError(t, r.Set(address.DivisionLevel, "Dhaka"))
	require.NoError(t, r.Set(address.DistrictLevel, "Dhaka"))
	require.NoError(t, r.Set(address.SubDistrictLevel, "Dhamrai"))
	require.ErrorIs(t, r.Set(address.UnknownLevel, "x"), errs.ErrValueIsInvalid)

	sel := r.Selection()
	assert.Equal(t, []string{"Dhaka", "Dhaka", "Dhamrai"}, []string{sel.Division(), sel.District(), sel.SubDistrict()})
}

func TestResolver_Districts_ComputedLazily(t *testing.T) {
	ds := newStubDataset()
	r := address.NewResolver(ds, address.Selection{})
	require.NoError(t, r.SetDivision("Dhaka"))
	assert.Equal(t, 0, ds.lookups)

	r.Districts()
	r.Districts()
	assert.Equal(t, 1, ds.lookups)

	require.NoError(t, r.SetDivision("Chattogram"))
	r.Districts()
	assert.Equal(t, 2, ds.lookups)
}

func TestResolver_Districts_ReturnsCopy(t *testing.T) {
	ds := newStubDataset()
	r := address.NewResolver(ds, address.Selection{})
	require.NoError(t, r.SetDivision("Dhaka"))

	view := r.Districts()
	view[0] = "tampered"

	assert.Equal(t, "Dhaka", r.Districts()[0])
	assert.Equal(t, "Dhaka", ds.districts["Dhaka"][0])
}
