package pages

import "net/http"

// InstagramHandle is linked under the mocked feed.
const InstagramHandle = "@vitrinesorocabana"

type instagramPost struct {
	ID      int
	Image   string
	Likes   int
	Caption string
}

// The feed is mocked; there is no Instagram integration.
var instagramFeed = []instagramPost{
	{ID: 1, Image: "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=400&h=400&fit=crop", Likes: 245, Caption: "Novidades na loja! 🛍️"},
	{ID: 2, Image: "https://images.unsplash.com/photo-1472851294608-062f824d29cc?w=400&h=400&fit=crop", Likes: 189, Caption: "Produtos locais de Sorocaba ❤️"},
	{ID: 3, Image: "https://images.unsplash.com/photo-1516762689617-e1cffcef479d?w=400&h=400&fit=crop", Likes: 312, Caption: "Confira nosso blog! 📰"},
	{ID: 4, Image: "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=400&h=400&fit=crop", Likes: 278, Caption: "Visite nossa loja física! 🏪"},
}

type homeSection struct {
	Icon        string
	Title       string
	Description string
	Href        string
	Action      string
}

var homeSections = []homeSection{
	{Icon: "🏪", Title: "Loja", Description: "Explore nosso catálogo de produtos locais", Href: "/loja", Action: "Visitar Loja 🛍️"},
	{Icon: "📖", Title: "Blog", Description: "Notícias e conteúdos sobre Sorocaba", Href: "/blog", Action: "Ler Artigos 📰"},
	{Icon: "⚙️", Title: "Admin", Description: "Painel administrativo do portal", Href: "/admin", Action: "Acessar Painel 🛠️"},
}

type homePage struct {
	page
	Sections []homeSection
	Feed     []instagramPost
	Handle   string
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", homePage{
		page:     h.page("Início"),
		Sections: homeSections,
		Feed:     instagramFeed,
		Handle:   InstagramHandle,
	})
}
