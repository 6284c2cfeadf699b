package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrEmptyCatalog = errors.New("catalog is empty")
)

type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
	Brand int     `json:"marca"`
	Line  int     `json:"linea"`
}

// Fields is the mutable part of a product, as supplied on create and update.
type Fields struct {
	Name  string
	Price float64
	Brand int
	Line  int
}

func (f Fields) apply(p *Product) {
	p.Name = f.Name
	p.Price = f.Price
	p.Brand = f.Brand
	p.Line = f.Line
}

// Store is the ordered product collection. Lookups return slices because ids
// are only enforced unique at create time; an empty slice is not an error.
type Store interface {
	Ping(ctx context.Context) error
	Len() int

	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) ([]Product, error)
	GetByBrand(ctx context.Context, brand int) ([]Product, error)
	GetByLine(ctx context.Context, line int) ([]Product, error)

	Create(ctx context.Context, f Fields) (Product, error)
	Update(ctx context.Context, id int, f Fields) (Product, error)
	Delete(ctx context.Context, id int) error
}

func Seed() []Product {
	return []Product{
		{ID: 1, Name: "playera eternal", Price: 300, Brand: 1, Line: 3},
		{ID: 2, Name: "sudadera invencible", Price: 400, Brand: 1, Line: 3},
		{ID: 3, Name: "total 90", Price: 550, Brand: 1, Line: 3},
	}
}
