package books

type ListBooksQuery struct {
	ID *int `query:"id" json:"id,omitempty"`
}
