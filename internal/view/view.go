// Package view renders products and the session header for the terminal.
// Rendering is a pure mapping; the affordances shown for admins are decided by
// the caller and are cosmetic only.
package view

import (
	"fmt"
	"strings"

	"productmanager/internal/models"
)

const lowStockThreshold = 10

// RenderCard formats one product. Index is the position shown to the user so
// edit/delete commands can reference it.
func RenderCard(index int, p models.Product, isAdmin bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %s  (%s)\n", index, p.Name, p.Category)
	fmt.Fprintf(&b, "    %s\n", p.Description)
	fmt.Fprintf(&b, "    $%.2f  stock: %d", p.Price, p.Stock)
	if p.Stock <= lowStockThreshold {
		b.WriteString("  (low)")
	}
	b.WriteString("\n")
	if isAdmin {
		fmt.Fprintf(&b, "    actions: edit %d | delete %d\n", index, index)
	}

	return b.String()
}

func RenderList(products []models.Product, query string, isAdmin bool) string {
	if len(products) == 0 {
		if query != "" {
			return "No products found matching your search.\n"
		}
		return "No products available yet.\n"
	}

	var b strings.Builder
	for i, p := range products {
		b.WriteString(RenderCard(i+1, p, isAdmin))
	}
	return b.String()
}

func RenderHeader(sess *models.Session) string {
	if sess == nil {
		return "Product Manager\n"
	}
	return fmt.Sprintf("Product Manager | %s [%s]\n", sess.Email, sess.Role)
}
