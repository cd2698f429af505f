package module

import (
	"ideaguard/internal/services/analyze/domain"
)

// Ports are what analyze exposes to other modules
type Ports struct {
	Service domain.ServicePort
	Corpus  domain.CorpusPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
