package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}

	// WithInstrumentation envolve todas as rotas com um middleware que recebe
	// o padrão da rota, como a coleta de métricas
	WithInstrumentation = func(instrument func(path string) func(http.Handler) http.Handler) ConfigRouter {
		return func(router *Router) {
			router.instrument = instrument
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Lista de middlewares específicos para esta rota
}

type Router struct {
	router     *httprouter.Router
	routes     []Route
	instrument func(path string) func(http.Handler) http.Handler
}

type ConfigRouter func(router *Router)

// New aplica as configurações e só então registra as rotas, para que a
// instrumentação valha para todas independente da ordem das configs
func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	// respostas de erro seguem o mesmo formato {code, message} do resto da API
	router.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Route not found", nil)
	})
	router.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Method not allowed", nil)
	})

	for _, config := range configs {
		config(router)
	}

	for _, route := range router.routes {
		router.register(route)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes acumula as rotas; o registro acontece no fim de New
func (r *Router) AddRoutes(routes ...Route) {
	r.routes = append(r.routes, routes...)
}

// Routes lista as rotas registradas
func (r Router) Routes() []Route {
	return r.routes
}

func (r *Router) register(route Route) {
	var handler http.Handler = route.Handler

	// Aplicar middlewares específicos da rota, do último para o primeiro
	for i := len(route.Middlewares) - 1; i >= 0; i-- {
		handler = route.Middlewares[i](handler)
	}

	if r.instrument != nil {
		handler = r.instrument(route.Path)(handler)
	}

	r.router.Handler(route.Method, route.Path, handler)
}
