package authors

type ListAuthorsQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=150"`
}
