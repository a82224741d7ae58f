package catalog

import "github.com/shopspring/decimal"

// Fallback returns the built-in catalog used to seed an empty store when the
// upstream fetch fails, so first-run clients without connectivity still see
// products. Prices are CLP.
func Fallback() []Product {
	return []Product{
		{ID: 1, Code: "TC001", Category: "Tortas Cuadradas", Name: "Torta Cuadrada de Chocolate", Price: clp(45000), Image: "tc001.jpg"},
		{ID: 2, Code: "TC002", Category: "Tortas Cuadradas", Name: "Torta Cuadrada de Frutas", Price: clp(50000), Image: "tc002.jpg"},
		{ID: 3, Code: "TT001", Category: "Tortas Circulares", Name: "Torta Circular de Vainilla", Price: clp(40000), Image: "tt001.jpg"},
		{ID: 4, Code: "TT002", Category: "Tortas Circulares", Name: "Torta Circular de Manjar", Price: clp(42000), Image: "tt002.jpg"},
		{ID: 5, Code: "PI001", Category: "Postres Individuales", Name: "Mousse de Chocolate", Price: clp(5000), Image: "pi001.jpg"},
		{ID: 6, Code: "PI002", Category: "Postres Individuales", Name: "Tiramisú Clásico", Price: clp(5500), Image: "pi002.jpg"},
		{ID: 7, Code: "PSA001", Category: "Productos Sin Azúcar", Name: "Torta Sin Azúcar de Naranja", Price: clp(48000), Image: "psa001.jpg"},
		{ID: 8, Code: "PSA002", Category: "Productos Sin Azúcar", Name: "Cheesecake Sin Azúcar", Price: clp(47000), Image: "psa002.jpg"},
		{ID: 9, Code: "PT001", Category: "Pastelería Tradicional", Name: "Empanada de Manzana", Price: clp(3000), Image: "pt001.jpg"},
		{ID: 10, Code: "PT002", Category: "Pastelería Tradicional", Name: "Tarta de Santiago", Price: clp(6000), Image: "pt002.jpg"},
		{ID: 11, Code: "PG001", Category: "Productos Sin Gluten", Name: "Brownie Sin Gluten", Price: clp(4000), Image: "pg001.jpg"},
		{ID: 12, Code: "PG002", Category: "Productos Sin Gluten", Name: "Pan Sin Gluten", Price: clp(3500), Image: "pg002.jpg"},
		{ID: 13, Code: "PV001", Category: "Productos Vegana", Name: "Torta Vegana de Chocolate", Price: clp(50000), Image: "pv001.jpg"},
		{ID: 14, Code: "PV002", Category: "Productos Vegana", Name: "Galletas Veganas de Avena", Price: clp(4500), Image: "pv002.jpg"},
		{ID: 15, Code: "TE001", Category: "Tortas Especiales", Name: "Torta Especial de Cumpleaños", Price: clp(55000), Image: "te001.jpg", OnSale: true},
		{ID: 16, Code: "TE002", Category: "Tortas Especiales", Name: "Torta Especial de Boda", Price: clp(60000), Image: "te002.jpg"},
	}
}

func clp(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
