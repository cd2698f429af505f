package modkit

import (
	"ideaguard/internal/modkit/module"
	phttp "ideaguard/internal/platform/net/http"
)

// Router is the platform router seam modules mount on
type Router = phttp.Router

// Module is the contract every API module satisfies, see module.Module
type Module = module.Module

// Builder is the constructor shape modules expose as New
type Builder func(Deps, ...Option) Module
