package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// DefaultServices is the list a store starts with when nothing was persisted.
func DefaultServices() []models.Service {
	return []models.Service{
		{ID: 1, Title: "Desenvolvimento Web", Description: "Criação de sites modernos e responsivos para sua empresa", Category: "Tecnologia", Icon: "💻"},
		{ID: 2, Title: "Marketing Digital", Description: "Estratégias de marketing para impulsionar seu negócio online", Category: "Marketing", Icon: "📱"},
		{ID: 3, Title: "Consultoria Empresarial", Description: "Assessoria especializada para o crescimento do seu negócio", Category: "Consultoria", Icon: "📊"},
		{ID: 4, Title: "Design Gráfico", Description: "Criação de identidade visual e materiais gráficos profissionais", Category: "Design", Icon: "🎨"},
		{ID: 5, Title: "Fotografia Profissional", Description: "Registro profissional de eventos e produtos", Category: "Mídia", Icon: "📸"},
		{ID: 6, Title: "Assessoria Jurídica", Description: "Orientação jurídica especializada para empresas", Category: "Jurídico", Icon: "⚖️"},
	}
}

type seedFile struct {
	Services []models.Service `yaml:"services"`
}

// LoadSeedFile reads a YAML list of services:
//
//	services:
//	  - title: Desenvolvimento Web
//	    description: ...
//	    category: Tecnologia
//	    icon: "💻"
//
// Missing ids are numbered after the highest explicit id.
func LoadSeedFile(path string) ([]models.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	next := nextID(f.Services)
	seen := make(map[int]bool, len(f.Services))
	for i := range f.Services {
		svc := &f.Services[i]
		if svc.ID == 0 {
			svc.ID = next
			next++
		}
		if svc.ID < 0 || seen[svc.ID] {
			return nil, fmt.Errorf("seed service %d: invalid or duplicate id %d", i, svc.ID)
		}
		seen[svc.ID] = true
		if !svc.Fields().Complete() {
			return nil, fmt.Errorf("seed service %d: title, description and category are required", i)
		}
		if svc.Icon == "" {
			svc.Icon = models.DefaultServiceIcon
		}
	}
	return f.Services, nil
}

// LoadSeedOrDefault returns the seed file contents, or DefaultServices when
// path is empty.
func LoadSeedOrDefault(path string) ([]models.Service, error) {
	if path == "" {
		return DefaultServices(), nil
	}
	return LoadSeedFile(path)
}
