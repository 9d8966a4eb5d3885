package catalog

import (
	"context"
	"log"

	"github.com/serenitymassage/clinic-scheduler/internal/models"
)

// Source is the authoritative catalog tier, ordered by creation time.
type Source interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

// Provider resolves the effective catalog from two tiers: the compiled-in
// default and the store-backed authoritative list. Override policy is full
// replace-if-nonempty; there is no field-level merge. A failed or empty fetch
// is logged and the built-in tier stands.
type Provider struct {
	source Source
}

func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

func (p *Provider) List(ctx context.Context) []models.Service {
	if p.source == nil {
		return Builtin()
	}

	services, err := p.source.ListServices(ctx)
	if err != nil {
		log.Printf("catalog: authoritative fetch failed, keeping built-in tier: %v", err)
		return Builtin()
	}
	if len(services) == 0 {
		return Builtin()
	}
	return services
}
