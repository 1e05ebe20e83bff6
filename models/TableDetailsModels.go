package models

// DetailsKind tags which shape a table-details payload was parsed as.
type DetailsKind int

const (
	// DetailsRaw is text that is not JSON or matches no known shape.
	DetailsRaw DetailsKind = iota
	// DetailsSectioned is [{title, items: [...]}], sent by the cost calculator form.
	DetailsSectioned
	// DetailsRowBased is [{item, qty, price, total}], shown on the admin dashboard.
	DetailsRowBased
)

func (k DetailsKind) String() string {
	switch k {
	case DetailsSectioned:
		return "sectioned"
	case DetailsRowBased:
		return "row-based"
	default:
		return "raw"
	}
}

type DetailSection struct {
	Title string
	Items []string
}

type DetailRow struct {
	Item  string
	Qty   string
	Price string
	Total string
}

// TableDetails is the parsed form of a table-details payload.
// Only the fields matching Kind are populated; Raw always keeps the input.
type TableDetails struct {
	Kind     DetailsKind
	Sections []DetailSection
	Rows     []DetailRow
	Raw      string
}
