package catalog

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

type supply struct {
	name     string
	category models.Category
	price    string
}

// paperSupplies is the full product line. Paper types are priced per sheet,
// products and large-format items per unit.
var paperSupplies = []supply{
	{"A4 paper", models.CategoryPaper, "0.05"},
	{"Letter-sized paper", models.CategoryPaper, "0.06"},
	{"Cardstock", models.CategoryPaper, "0.15"},
	{"Colored paper", models.CategoryPaper, "0.10"},
	{"Glossy paper", models.CategoryPaper, "0.20"},
	{"Matte paper", models.CategoryPaper, "0.18"},
	{"Recycled paper", models.CategoryPaper, "0.08"},
	{"Eco-friendly paper", models.CategoryPaper, "0.12"},
	{"Poster paper", models.CategoryPaper, "0.25"},
	{"Banner paper", models.CategoryPaper, "0.30"},
	{"Kraft paper", models.CategoryPaper, "0.10"},
	{"Construction paper", models.CategoryPaper, "0.07"},
	{"Wrapping paper", models.CategoryPaper, "0.15"},
	{"Glitter paper", models.CategoryPaper, "0.22"},
	{"Decorative paper", models.CategoryPaper, "0.18"},
	{"Letterhead paper", models.CategoryPaper, "0.12"},
	{"Legal-size paper", models.CategoryPaper, "0.08"},
	{"Crepe paper", models.CategoryPaper, "0.05"},
	{"Photo paper", models.CategoryPaper, "0.25"},
	{"Uncoated paper", models.CategoryPaper, "0.06"},
	{"Butcher paper", models.CategoryPaper, "0.10"},
	{"Heavyweight paper", models.CategoryPaper, "0.20"},
	{"Standard copy paper", models.CategoryPaper, "0.04"},
	{"Bright-colored paper", models.CategoryPaper, "0.12"},
	{"Patterned paper", models.CategoryPaper, "0.15"},
	{"Paper plates", models.CategoryProduct, "0.10"},
	{"Paper cups", models.CategoryProduct, "0.08"},
	{"Paper napkins", models.CategoryProduct, "0.02"},
	{"Disposable cups", models.CategoryProduct, "0.10"},
	{"Table covers", models.CategoryProduct, "1.50"},
	{"Envelopes", models.CategoryProduct, "0.05"},
	{"Sticky notes", models.CategoryProduct, "0.03"},
	{"Notepads", models.CategoryProduct, "2.00"},
	{"Invitation cards", models.CategoryProduct, "0.50"},
	{"Flyers", models.CategoryProduct, "0.15"},
	{"Party streamers", models.CategoryProduct, "0.05"},
	{"Decorative adhesive tape (washi tape)", models.CategoryProduct, "0.20"},
	{"Paper party bags", models.CategoryProduct, "0.25"},
	{"Name tags with lanyards", models.CategoryProduct, "0.75"},
	{"Presentation folders", models.CategoryProduct, "0.50"},
	{"Large poster paper (24x36 inches)", models.CategoryLargeFormat, "1.00"},
	{"Rolls of banner paper (36-inch width)", models.CategoryLargeFormat, "2.50"},
	{"100 lb cover stock", models.CategorySpecialty, "0.50"},
	{"80 lb text paper", models.CategorySpecialty, "0.40"},
	{"250 gsm cardstock", models.CategorySpecialty, "0.30"},
	{"220 gsm poster paper", models.CategorySpecialty, "0.35"},
}

// Supplies returns the full product line as catalog rows without minimum
// stock levels assigned.
func Supplies() []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(paperSupplies))
	for _, s := range paperSupplies {
		items = append(items, models.InventoryItem{
			ItemName:  s.name,
			Category:  s.category,
			UnitPrice: decimal.RequireFromString(s.price),
		})
	}
	return items
}

// SeededItem pairs a catalog row with its randomly assigned opening stock.
type SeededItem struct {
	models.InventoryItem
	InitialStock int
}

// SampleInventory selects coverage x N items from the product line and
// assigns each a stock quantity in [200,800) and a minimum stock level in
// [50,150). The seed makes selection and levels reproducible.
func SampleInventory(coverage float64, seed int64) []SeededItem {
	rng := rand.New(rand.NewSource(seed))

	all := Supplies()
	count := int(float64(len(all)) * coverage)
	if count > len(all) {
		count = len(all)
	}

	selected := rng.Perm(len(all))[:count]

	items := make([]SeededItem, 0, count)
	for _, idx := range selected {
		item := all[idx]
		item.MinStockLevel = 50 + rng.Intn(100)
		items = append(items, SeededItem{
			InventoryItem: item,
			InitialStock:  200 + rng.Intn(600),
		})
	}
	return items
}
