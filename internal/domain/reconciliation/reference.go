package reconciliation

import "fmt"

// SequenceName is the counter row used for reference numbers of a year
func SequenceName(year int) string {
	return fmt.Sprintf("reconciliation:%d", year)
}

// FormatReference renders MUT-<year>-<seq>, zero-padded to three digits
func FormatReference(year int, seq int64) string {
	return fmt.Sprintf("MUT-%d-%03d", year, seq)
}
