package contracts

import "github.com/julienschmidt/httprouter"

// Handler is what a service's HTTP layer exposes to the application
// bootstrap: the ability to mount its routes on a shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
