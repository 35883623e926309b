package entity

const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

type PaginationInput struct {
	Limit  int
	Offset int
}

func NewPaginationInput(limit int, offset int) *PaginationInput {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &PaginationInput{
		Limit:  limit,
		Offset: offset,
	}
}
