package repository

import (
	"context"
	"fmt"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

// seedProducts is the demo catalog of luxury sneakers.
var seedProducts = []domain.Product{
	{
		Name:        "Midnight Gold Edition",
		Description: "Limited edition luxury sneaker featuring premium black leather with gold accents. Handcrafted for the discerning collector.",
		Price:       399.99,
		Colors:      []string{"Black", "Gold"},
		Images: []string{
			"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800&q=80",
			"https://images.unsplash.com/photo-1460353581641-37baddab0fa2?w=800&q=80",
		},
		Category: "Premium Collection",
		Featured: true,
		Stock:    25,
	},
	{
		Name:        "Crimson Royale",
		Description: "Bold deep red statement piece with black trim. Exudes sophistication and power in every step.",
		Price:       449.99,
		Colors:      []string{"Deep Red", "Black"},
		Images: []string{
			"https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=800&q=80",
			"https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?w=800&q=80",
		},
		Category: "Signature Series",
		Featured: true,
		Stock:    18,
	},
	{
		Name:        "Obsidian Luxe",
		Description: "Pure black perfection. Minimalist design meets maximum luxury in this timeless masterpiece.",
		Price:       379.99,
		Colors:      []string{"Black"},
		Images: []string{
			"https://images.unsplash.com/photo-1549298916-b41d501d3772?w=800&q=80",
			"https://images.unsplash.com/photo-1515955656352-a1fa3ffcd111?w=800&q=80",
		},
		Category: "Classic Line",
		Featured: true,
		Stock:    30,
	},
	{
		Name:        "Golden Era",
		Description: "Opulent gold finish that commands attention. For those who refuse to blend in with the crowd.",
		Price:       499.99,
		Colors:      []string{"Gold", "Black"},
		Images: []string{
			"https://images.unsplash.com/photo-1551107696-a4b0c5a0d9a2?w=800&q=80",
			"https://images.unsplash.com/photo-1600185365483-26d7a4cc7519?w=800&q=80",
		},
		Category: "Exclusive Collection",
		Featured: true,
		Stock:    12,
	},
	{
		Name:        "Shadow Elite",
		Description: "Stealth luxury with subtle gold highlights. Understated elegance for the refined taste.",
		Price:       359.99,
		Colors:      []string{"Black", "Gold", "Gray"},
		Images: []string{
			"https://images.unsplash.com/photo-1608231387042-66d1773070a5?w=800&q=80",
			"https://images.unsplash.com/photo-1543508282-6319a3e2621f?w=800&q=80",
		},
		Category: "Urban Elite",
		Stock:    40,
	},
	{
		Name:        "Burgundy Prestige",
		Description: "Deep red wine-inspired luxury sneaker. Sophisticated color palette for the connoisseur.",
		Price:       429.99,
		Colors:      []string{"Deep Red", "Black", "Gold"},
		Images: []string{
			"https://images.unsplash.com/photo-1514989940723-e8e51635b782?w=800&q=80",
			"https://images.unsplash.com/photo-1539185441755-769473a23570?w=800&q=80",
		},
		Category: "Heritage Collection",
		Stock:    22,
	},
	{
		Name:        "Platinum Monolith",
		Description: "Sleek white and gold combination. Clean lines and premium materials define this modern classic.",
		Price:       389.99,
		Colors:      []string{"White", "Gold"},
		Images: []string{
			"https://images.unsplash.com/photo-1600269452121-4f2416e55c28?w=800&q=80",
			"https://images.unsplash.com/photo-1587563871167-1ee9c731aefb?w=800&q=80",
		},
		Category: "Contemporary Line",
		Stock:    35,
	},
	{
		Name:        "Carbon Fiber Pro",
		Description: "High-tech materials meet luxury design. Black and gray masterpiece for the modern athlete.",
		Price:       469.99,
		Colors:      []string{"Black", "Gray"},
		Images: []string{
			"https://images.unsplash.com/photo-1606890737304-57a1ca8a5b62?w=800&q=80",
		},
		Category: "Performance Luxury",
		Stock:    28,
	},
}

// Seed loads the demo catalog when the products table is empty. Re-running it
// against a populated database is a no-op.
func (r *Repository) Seed(ctx context.Context) error {
	count, err := r.CountProducts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range seedProducts {
		p := seedProducts[i]
		if err := r.CreateProduct(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}
	return nil
}
