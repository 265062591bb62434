package photo

import "strings"

// Filter narrows a listing. Zero value matches everything.
type Filter struct {
	// Keyword, if non-empty, matches photos carrying the keyword.
	Keyword string
	// MinRating, if non-zero, matches photos rated at or above it.
	MinRating int
	// Query, if non-empty, substring-matches the photo path,
	// case-insensitively.
	Query string
}

// FromFields builds a filter from the string fields a view state carries.
func FromFields(fields map[string]string) Filter {
	f := Filter{
		Keyword: fields["keyword"],
		Query:   fields["query"],
	}
	switch fields["rating"] {
	case "1":
		f.MinRating = 1
	case "2":
		f.MinRating = 2
	case "3":
		f.MinRating = 3
	case "4":
		f.MinRating = 4
	case "5":
		f.MinRating = 5
	}
	return f
}

func (f Filter) match(p *Photo) bool {
	if f.Keyword != "" && !p.HasKeyword(f.Keyword) {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Path), strings.ToLower(f.Query)) {
		return false
	}
	return true
}
