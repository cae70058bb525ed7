package domain

// CatalogEntry is the read-only reference data for one skin: its composed
// display name ("weapon | finish") and an image reference.
type CatalogEntry struct {
	SkinID   string
	Name     string
	ImageURL string
}

// Catalog indexes catalog entries by skin identifier.
type Catalog map[string]CatalogEntry
