package request

// SearchField selects what the list page query is matched against.
type SearchField int

const (
	SearchFieldEntry SearchField = iota
	SearchFieldName
	SearchFieldDescription
)

func (s SearchField) String() string {
	switch s {
	case SearchFieldEntry:
		return "entry"
	case SearchFieldName:
		return "name"
	case SearchFieldDescription:
		return "description"
	default:
		return "entry"
	}
}

func NewSearchField(field string) SearchField {
	switch field {
	case "entry", "identifier":
		return SearchFieldEntry
	case "name":
		return SearchFieldName
	case "description":
		return SearchFieldDescription
	default:
		return SearchFieldEntry // default to entry
	}
}
