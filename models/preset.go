package models

// LevelsEqual reports element-wise equality of two brightness level
// sequences. Preset equality is exactly this: order- and
// length-sensitive, independent of the preset's file name.
func LevelsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
