package genres

type ListGenresQuery struct {
	ID *int `query:"id" json:"id,omitempty"`
}
