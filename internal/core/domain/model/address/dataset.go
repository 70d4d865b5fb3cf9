package address

// Dataset is the geographic reference lookup. Implementations are pure and
// return empty slices for unknown names instead of failing.
type Dataset interface {
	// Divisions returns all known divisions in display order.
	Divisions() []string
	// DistrictsOf returns the ordered districts of a division.
	DistrictsOf(division string) []string
	// SubDistrictsOf returns the ordered sub-districts (upazilas) of a district.
	SubDistrictsOf(district string) []string
}
