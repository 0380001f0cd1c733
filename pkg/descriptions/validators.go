package descriptions

type GetDescriptionQuery struct {
	Type string `query:"type" json:"type" validate:"required"`
	Name string `query:"name" json:"name" mod:"trim" validate:"required"`
}
