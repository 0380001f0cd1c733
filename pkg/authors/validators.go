package authors

type ListAuthorsQuery struct {
	ID *int `query:"id" json:"id,omitempty"`
}
