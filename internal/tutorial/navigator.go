package tutorial

import (
	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/usertype"
)

// Navigator switches the host to a route. The engine calls it when a step
// with a NavigationDestination becomes current.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(destination string)

func (f NavigatorFunc) Navigate(destination string) { f(destination) }

// Catalog supplies flows. *catalog.Registry satisfies it.
type Catalog interface {
	Flow(t usertype.Type) (catalog.Flow, bool)
	ByID(id string) (catalog.Flow, bool)
}

var _ Catalog = (*catalog.Registry)(nil)
