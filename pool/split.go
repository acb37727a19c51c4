package pool

// Section is a contiguous [Offset, Offset+Amount) range of work items.
type Section struct {
	Offset int
	Amount int
}

// End returns the exclusive upper bound of the section.
func (s Section) End() int {
	return s.Offset + s.Amount
}

// SplitWork divides work items into parts contiguous, near-equal sections. The
// remainder is spread over the first sections, so sizes differ by at most one.
// Sections may be empty when work < parts.
func SplitWork(work, parts int) []Section {
	if parts < 1 {
		parts = 1
	}
	if work < 0 {
		work = 0
	}
	size := work / parts
	remainder := work % parts
	sections := make([]Section, parts)

	start := 0
	for i := range sections {
		amount := size
		if i < remainder {
			amount++
		}
		sections[i] = Section{Offset: start, Amount: amount}
		start += amount
	}
	return sections
}
