package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, events, debug) that knows how to mount
// its own routes.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under the shared /api group.
type Registry struct {
	Engine *gin.Engine
	API    *gin.RouterGroup

	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use adds middleware applied to every module's routes.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.shared = append(r.shared, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts the shared middleware and then every module, in the
// order they were added.
func (r *Registry) RegisterAll() {
	if len(r.shared) > 0 {
		r.API.Use(r.shared...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
