package apiclient

import (
	"context"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// Backend paths.
const (
	PathProdutos     = "/api/produtos"
	PathPosts        = "/api/posts"
	PathAdminSummary = "/api/admin/summary"
)

// Produtos lists the store catalog.
func (c *Client) Produtos(ctx context.Context) ([]models.Produto, error) {
	return FetchJSON[[]models.Produto](ctx, c, PathProdutos)
}

// Posts lists published blog posts.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	return FetchJSON[[]models.Post](ctx, c, PathPosts)
}

// AdminSummary fetches the dashboard counters.
func (c *Client) AdminSummary(ctx context.Context) (models.AdminSummary, error) {
	return FetchJSON[models.AdminSummary](ctx, c, PathAdminSummary)
}
