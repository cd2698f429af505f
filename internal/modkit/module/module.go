// Package module defines the contract API modules satisfy and how they share ports
package module

import (
	phttp "ideaguard/internal/platform/net/http"
)

// Module can mount its routes and exposes a port set for other modules
// it lives apart from modkit so a module package can import it without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() PortSet
	Name() string
}

// PortSet is whatever a module chooses to expose, usually a struct of interfaces
type PortSet = any
