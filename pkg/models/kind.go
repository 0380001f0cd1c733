package models

import "strings"

// Kind names one of the entity collections. Its value doubles as the graph
// label, so it must only ever come from this closed set.
type Kind string

const (
	KindBook      Kind = "Book"
	KindAuthor    Kind = "Author"
	KindPublisher Kind = "Publisher"
	KindGenre     Kind = "Genre"
	KindBorrower  Kind = "Borrower"
)

// ParseKind maps a label to a Kind, ignoring case. "Books" is accepted for
// books, matching what the frontend sends.
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Books") {
		return KindBook, true
	}
	for _, k := range []Kind{KindBook, KindAuthor, KindPublisher, KindGenre, KindBorrower} {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Table is the relational table holding this kind.
func (k Kind) Table() string {
	switch k {
	case KindBook:
		return "books"
	case KindAuthor:
		return "authors"
	case KindPublisher:
		return "publishers"
	case KindGenre:
		return "genres"
	case KindBorrower:
		return "borrowers"
	}
	return ""
}

// NameField is the property used to look an entity up by name.
func (k Kind) NameField() string {
	if k == KindBook {
		return "title"
	}
	return "name"
}

// Describable reports whether entities of this kind carry a description.
func (k Kind) Describable() bool {
	switch k {
	case KindBook, KindAuthor, KindPublisher, KindGenre:
		return true
	}
	return false
}
