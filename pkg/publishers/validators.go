package publishers

type ListPublishersQuery struct {
	ID *int `query:"id" json:"id,omitempty"`
}
