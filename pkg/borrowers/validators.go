package borrowers

type ListBorrowersQuery struct {
	Name *string `query:"name" json:"name,omitempty"`
}
