// Package address models the delivery address of a checkout draft.
//
// The package includes:
//   - Selection: the division/district/sub-district choice plus street and postal code
//   - Resolver: the single owner of the cascading selection rules
//   - Dataset: the reference lookup of the three-level geographic hierarchy
//
// Key business rules:
//   - Changing the division clears the district and sub-district
//   - Changing the district clears the sub-district
//   - A district must belong to the selected division, and a sub-district to the selected district
//   - A district picked before any division is kept; the draft is then incomplete, not invalid
package address
