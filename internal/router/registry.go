package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Registry collects modules and mounts them onto a router group.
type Registry struct {
	modules []Module
	logger  *logrus.Logger
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{logger: logger}
}

func (r *Registry) Add(m Module) *Registry {
	r.modules = append(r.modules, m)
	return r
}

func (r *Registry) Mount(rg *gin.RouterGroup) {
	for _, m := range r.modules {
		m.Register(rg)
		r.logger.WithField("module", m.Name()).Debug("routes registered")
	}
}
