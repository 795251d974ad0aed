package pdf

import (
	"strconv"
	"strings"
)

// AllPages is the keyword that selects every page of a document.
const AllPages = "all"

// Selection is an ordered set of zero-based page indices in the order the
// user typed them.
type Selection []int

// ParseSelection parses a comma separated list of 1-based page numbers into a
// Selection for a document with pageCount pages.
//
// Tokens that are not integers or fall outside 1..pageCount are skipped.
// Repeated pages keep their first position. The keyword "all", either as the
// whole input or as a single token, expands to every page in ascending order.
func ParseSelection(pages string, pageCount int) Selection {
	sel := Selection{}
	seen := make(map[int]bool)
	add := func(index int) {
		if index < 0 || index >= pageCount || seen[index] {
			return
		}
		seen[index] = true
		sel = append(sel, index)
	}

	for _, part := range strings.Split(pages, ",") {
		part = strings.TrimSpace(part)
		if part == AllPages {
			for _, i := range SelectAll(pageCount) {
				add(i)
			}
			continue
		}
		pageNum, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		add(pageNum - 1)
	}

	return sel
}

// SelectAll returns every index of a document with pageCount pages.
func SelectAll(pageCount int) Selection {
	sel := make(Selection, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		sel = append(sel, i)
	}
	return sel
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s) == 0
}

// Set returns the selection as a lookup table.
func (s Selection) Set() map[int]bool {
	set := make(map[int]bool, len(s))
	for _, i := range s {
		set[i] = true
	}
	return set
}

// PageNumbers returns the selected pages as 1-based numbers, in selection order.
func (s Selection) PageNumbers() []int {
	nums := make([]int, len(s))
	for i, index := range s {
		nums[i] = index + 1
	}
	return nums
}

// String renders the 1-based page numbers as "3, 1, 4".
func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, n := range s.PageNumbers() {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
