package pages

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// Placeholder is shown for every summary value that could not be loaded.
const Placeholder = "—"

type notice struct {
	Kind    string
	Message string
}

// Notices are passed through the redirect as a short code.
var notices = map[string]notice{
	"adicionado":     {Kind: "success", Message: "Serviço adicionado!"},
	"atualizado":     {Kind: "success", Message: "Serviço atualizado!"},
	"excluido":       {Kind: "success", Message: "Serviço excluído!"},
	"campos":         {Kind: "error", Message: "Preencha todos os campos!"},
	"nao-encontrado": {Kind: "error", Message: "Serviço não encontrado."},
	"erro":           {Kind: "error", Message: "Não foi possível salvar as alterações."},
}

type adminModule struct {
	Icon        string
	Title       string
	Description string
	Stats       string
}

type adminTotals struct {
	Usuarios string
	Produtos string
	Posts    string
}

type serviceForm struct {
	Editing bool
	Action  string
	Fields  models.ServiceFields
}

type adminPage struct {
	page
	Summary  ValueView[models.AdminSummary]
	Modules  []adminModule
	Totals   adminTotals
	Services []models.Service
	Form     *serviceForm
	Notice   *notice
}

func summaryModules(s *models.AdminSummary) []adminModule {
	stat := func(n func(models.AdminSummary) int64, unit string) string {
		if s == nil {
			return Placeholder
		}
		return fmt.Sprintf("%d %s", n(*s), unit)
	}
	return []adminModule{
		{Icon: "👥", Title: "Usuários", Description: "Gerenciar contas e permissões de usuários",
			Stats: stat(func(a models.AdminSummary) int64 { return a.TotalUsuarios }, "usuário(s)")},
		{Icon: "📦", Title: "Produtos", Description: "CRUD básico de produtos da loja",
			Stats: stat(func(a models.AdminSummary) int64 { return a.TotalProdutos }, "produto(s)")},
		{Icon: "📊", Title: "Blog", Description: "Publicações e conteúdo editorial",
			Stats: stat(func(a models.AdminSummary) int64 { return a.TotalPosts }, "post(s)")},
	}
}

func summaryTotals(s *models.AdminSummary) adminTotals {
	if s == nil {
		return adminTotals{Usuarios: Placeholder, Produtos: Placeholder, Posts: Placeholder}
	}
	return adminTotals{
		Usuarios: cast.ToString(s.TotalUsuarios),
		Produtos: cast.ToString(s.TotalProdutos),
		Posts:    cast.ToString(s.TotalPosts),
	}
}

func newServiceForm() *serviceForm {
	return &serviceForm{
		Action: "/admin/servicos",
		Fields: models.ServiceFields{Icon: models.DefaultServiceIcon},
	}
}

func editServiceForm(svc models.Service) *serviceForm {
	return &serviceForm{
		Editing: true,
		Action:  fmt.Sprintf("/admin/servicos/%d", svc.ID),
		Fields:  svc.Fields(),
	}
}

// Admin handles GET /admin. ?novo=1 opens an empty form, ?editar={id} opens the
// form for that service and ?aviso={code} shows a one-off notice.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var form *serviceForm
	if id, ok := models.ParseServiceID(q.Get("editar")); ok {
		if svc, ok := h.services.Get(id); ok {
			form = editServiceForm(svc)
		}
	} else if q.Get("novo") != "" {
		form = newServiceForm()
	}
	var n *notice
	if found, ok := notices[q.Get("aviso")]; ok {
		n = &found
	}
	h.renderAdmin(w, r, http.StatusOK, form, n)
}

func (h *Handler) renderAdmin(w http.ResponseWriter, r *http.Request, status int, form *serviceForm, n *notice) {
	summary := LoadValue(r.Context(), h.catalog.AdminSummary, "Não foi possível carregar os indicadores.")
	if summary.Aborted {
		h.aborted(r, "admin")
		return
	}
	h.render(w, status, "admin", adminPage{
		page:     h.page("Admin"),
		Summary:  summary,
		Modules:  summaryModules(summary.Value),
		Totals:   summaryTotals(summary.Value),
		Services: h.services.Services(),
		Form:     form,
		Notice:   n,
	})
}

func redirectAdmin(w http.ResponseWriter, r *http.Request, code string) {
	target := "/admin?" + url.Values{"aviso": {code}}.Encode() + "#servicos"
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func formFields(r *http.Request) models.ServiceFields {
	icon := r.PostFormValue("icon")
	if icon == "" {
		icon = models.DefaultServiceIcon
	}
	return models.ServiceFields{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		Icon:        icon,
	}
}

// SaveService handles POST /admin/servicos (create) and
// POST /admin/servicos/{id} (update). Incomplete forms are shown again with
// the typed values and nothing is stored.
func (h *Handler) SaveService(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	fields := formFields(r)

	rawID, editing := mux.Vars(r)["id"]
	id := 0
	if editing {
		var ok bool
		if id, ok = models.ParseServiceID(rawID); !ok {
			redirectAdmin(w, r, "nao-encontrado")
			return
		}
	}

	if !fields.Complete() {
		form := newServiceForm()
		if editing {
			form = editServiceForm(models.Service{ID: id})
		}
		form.Fields = fields
		n := notices["campos"]
		h.renderAdmin(w, r, http.StatusUnprocessableEntity, form, &n)
		return
	}

	log := h.log.WithFields(logrus.Fields{"service_id": id, "editing": editing})
	if editing {
		_, found, err := h.services.Update(r.Context(), id, fields.Patch())
		switch {
		case err != nil:
			log.WithError(err).Error("update service failed")
			redirectAdmin(w, r, "erro")
		case !found:
			redirectAdmin(w, r, "nao-encontrado")
		default:
			redirectAdmin(w, r, "atualizado")
		}
		return
	}

	if _, err := h.services.Add(r.Context(), fields); err != nil {
		log.WithError(err).Error("add service failed")
		redirectAdmin(w, r, "erro")
		return
	}
	redirectAdmin(w, r, "adicionado")
}

// DeleteService handles POST /admin/servicos/{id}/excluir
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := models.ParseServiceID(mux.Vars(r)["id"])
	if !ok {
		redirectAdmin(w, r, "nao-encontrado")
		return
	}
	found, err := h.services.Delete(r.Context(), id)
	switch {
	case err != nil:
		h.log.WithError(err).WithField("service_id", id).Error("delete service failed")
		redirectAdmin(w, r, "erro")
	case !found:
		redirectAdmin(w, r, "nao-encontrado")
	default:
		redirectAdmin(w, r, "excluido")
	}
}
