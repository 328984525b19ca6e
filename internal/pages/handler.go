package pages

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// Catalog is the read side of the backend API.
type Catalog interface {
	Produtos(ctx context.Context) ([]models.Produto, error)
	Posts(ctx context.Context) ([]models.Post, error)
	AdminSummary(ctx context.Context) (models.AdminSummary, error)
}

// ServiceStore is what the Serviços and Admin pages need from the services store.
type ServiceStore interface {
	Services() []models.Service
	Get(id int) (models.Service, bool)
	Add(ctx context.Context, fields models.ServiceFields) (models.Service, error)
	Update(ctx context.Context, id int, patch models.ServicePatch) (models.Service, bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Handler renders the portal pages.
type Handler struct {
	catalog  Catalog
	services ServiceStore
	tmpl     *template.Template
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewHandler parses the embedded templates.
func NewHandler(catalog Catalog, services ServiceStore, log logrus.FieldLogger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		catalog:  catalog,
		services: services,
		tmpl:     tmpl,
		log:      log,
		now:      time.Now,
	}, nil
}

type page struct {
	Title string
	Year  int
}

func (h *Handler) page(title string) page {
	return page{Title: title, Year: h.now().Year()}
}

// aborted logs a load whose request went away; nothing is written back.
func (h *Handler) aborted(r *http.Request, name string) {
	h.log.WithFields(logrus.Fields{"page": name, "path": r.URL.Path}).Debug("request gone before data arrived")
}

var productPlaceholders = []string{
	"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop",
	"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
	"https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=400&h=400&fit=crop",
	"https://images.unsplash.com/photo-1560343090-f0409e92791a?w=400&h=400&fit=crop",
	"https://images.unsplash.com/photo-1491553895911-0055eca6402d?w=400&h=400&fit=crop",
	"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=400&fit=crop",
}

var postPlaceholders = []string{
	"https://images.unsplash.com/photo-1499750310107-5fef28a66643?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=800&h=400&fit=crop",
}

type productCard struct {
	ID        int64
	Nome      string
	Descricao string
	Preco     string
	Image     string
}

func toProductCard(i int, p models.Produto) productCard {
	image := productPlaceholders[i%len(productPlaceholders)]
	if p.ImagemURL != nil && *p.ImagemURL != "" {
		image = *p.ImagemURL
	}
	return productCard{
		ID:        p.ID,
		Nome:      p.Nome,
		Descricao: p.Descricao,
		Preco:     FormatPrice(p.Preco),
		Image:     image,
	}
}

type lojaPage struct {
	page
	View ListView[productCard]
}

// Loja handles GET /loja
func (h *Handler) Loja(w http.ResponseWriter, r *http.Request) {
	view := LoadList(r.Context(), h.catalog.Produtos, "Não foi possível carregar os produtos.")
	if view.Aborted {
		h.aborted(r, "loja")
		return
	}
	h.render(w, http.StatusOK, "loja", lojaPage{
		page: h.page("Loja"),
		View: MapList(view, toProductCard),
	})
}

type postCard struct {
	ID      int64
	Titulo  string
	Excerpt string
	Data    string
	Autor   string
	Image   string
}

func toPostCard(i int, p models.Post) postCard {
	card := postCard{
		ID:      p.ID,
		Titulo:  p.Titulo,
		Excerpt: Excerpt(p.Conteudo, ExcerptLength),
		Data:    FormatDate(p.DataPublicacao),
		Image:   postPlaceholders[i%len(postPlaceholders)],
	}
	if p.AutorNome != nil {
		card.Autor = *p.AutorNome
	}
	return card
}

type blogPage struct {
	page
	View ListView[postCard]
}

// Blog handles GET /blog
func (h *Handler) Blog(w http.ResponseWriter, r *http.Request) {
	view := LoadList(r.Context(), h.catalog.Posts, "Não foi possível carregar os posts.")
	if view.Aborted {
		h.aborted(r, "blog")
		return
	}
	h.render(w, http.StatusOK, "blog", blogPage{
		page: h.page("Blog"),
		View: MapList(view, toPostCard),
	})
}

type servicosPage struct {
	page
	View ListView[models.Service]
}

// Servicos handles GET /servicos
func (h *Handler) Servicos(w http.ResponseWriter, r *http.Request) {
	view := LoadList(r.Context(), func(context.Context) ([]models.Service, error) {
		return h.services.Services(), nil
	}, "Não foi possível carregar os serviços.")
	if view.Aborted {
		h.aborted(r, "servicos")
		return
	}
	h.render(w, http.StatusOK, "servicos", servicosPage{
		page: h.page("Serviços"),
		View: view,
	})
}
