package models

// Produto represents a store product as returned by the backend.
// Optional attributes stay nil when the backend omits them or sends null.
type Produto struct {
	ID        int64    `json:"id" validate:"required"`
	Nome      string   `json:"nome" validate:"required"`
	Descricao string   `json:"descricao"`
	Preco     *float64 `json:"preco"`
	ImagemURL *string  `json:"imagemUrl,omitempty"`
	Estoque   *int     `json:"estoque,omitempty"`
	Ativo     *bool    `json:"ativo,omitempty"`
}

// Post represents a blog article as returned by the backend.
type Post struct {
	ID             int64   `json:"id" validate:"required"`
	Titulo         string  `json:"titulo" validate:"required"`
	Conteudo       string  `json:"conteudo"`
	AutorID        *int64  `json:"autorId,omitempty"`
	AutorNome      *string `json:"autorNome,omitempty"`
	Publicado      *bool   `json:"publicado,omitempty"`
	DataPublicacao *string `json:"dataPublicacao,omitempty"`
}

// AdminSummary holds the dashboard counters.
type AdminSummary struct {
	TotalUsuarios int64 `json:"totalUsuarios" validate:"gte=0"`
	TotalProdutos int64 `json:"totalProdutos" validate:"gte=0"`
	TotalPosts    int64 `json:"totalPosts" validate:"gte=0"`
}
