package pagination

// Button is one entry of the page selector: either a page number or an
// ellipsis marking skipped pages.
type Button struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Nav describes the Previous/Next controls around the page selector.
type Nav struct {
	PreviousPage    int  `json:"previousPage"`
	NextPage        int  `json:"nextPage"`
	PreviousEnabled bool `json:"previousEnabled"`
	NextEnabled     bool `json:"nextEnabled"`
}

// Buttons lays out the page selector for currentPage of totalPages: the first
// page, a window of up to three pages centred on the current one, ellipses
// where pages are skipped, and the last page. The result depends only on its
// arguments. It returns nil when totalPages < 1.
//
// Examples:
//
//	Buttons(1, 5)  // 1 2 … 5
//	Buttons(5, 10) // 1 … 4 5 6 … 10
//	Buttons(3, 5)  // 1 2 3 4 5
func Buttons(currentPage, totalPages int) []Button {
	if totalPages < 1 {
		return nil
	}
	current := Clamp(currentPage, totalPages)

	buttons := make([]Button, 0, 7)
	buttons = append(buttons, Button{Page: 1, Current: current == 1})

	start := max(2, current-1)
	end := min(totalPages-1, current+1)

	if start > 2 {
		buttons = append(buttons, Button{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		buttons = append(buttons, Button{Page: p, Current: current == p})
	}
	if end < totalPages-1 {
		buttons = append(buttons, Button{Ellipsis: true})
	}
	if totalPages > 1 {
		buttons = append(buttons, Button{Page: totalPages, Current: current == totalPages})
	}
	return buttons
}

// NavFor returns the Previous/Next state for currentPage of totalPages.
// Previous is disabled on the first page and Next on the last.
func NavFor(currentPage, totalPages int) Nav {
	current := Clamp(currentPage, totalPages)
	return Nav{
		PreviousPage:    max(1, current-1),
		NextPage:        min(max(totalPages, 1), current+1),
		PreviousEnabled: current > 1,
		NextEnabled:     current < totalPages,
	}
}
