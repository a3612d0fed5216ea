package handlers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/listing"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

func NewSectorHandler(db *gorm.DB) *Resource[models.Sector] {
	return &Resource[models.Sector]{
		DB: db,
		Listing: listing.Options{
			Filterable:   []string{"id", "name", "number", "inactive"},
			SearchColumn: "name",
			DefaultOrder: "id desc",
		},
		Validate: func(s *models.Sector) validation.Violations {
			v := validation.Violations{}
			validation.Required("name", s.Name, v)
			return v
		},
	}
}

func NewTableHandler(db *gorm.DB) *Resource[models.Table] {
	return &Resource[models.Table]{
		DB: db,
		Listing: listing.Options{
			Filterable:   []string{"id", "number", "type", "capacity", "sector_id", "inactive"},
			SearchColumn: "number",
			DefaultOrder: "id desc",
			Preloads:     []string{"Sector"},
		},
		Validate: func(t *models.Table) validation.Violations {
			v := validation.Violations{}
			validation.PositiveInt("capacity", t.Capacity, v)
			validation.PositiveID("sector_id", t.SectorID, v)
			if t.SectorID != 0 {
				var sector models.Sector
				err := db.First(&sector, t.SectorID).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					v["sector_id"] = "not_found"
				case err == nil && sector.Inactive:
					v["sector_id"] = "inactive"
				}
			}
			return v
		},
	}
}

func NewProductHandler(db *gorm.DB) *Resource[models.Product] {
	return &Resource[models.Product]{
		DB: db,
		Listing: listing.Options{
			Filterable:   []string{"id", "name", "type", "unit_price", "inactive"},
			SearchColumn: "name",
			DefaultOrder: "id desc",
		},
		Validate: func(p *models.Product) validation.Violations {
			v := validation.Violations{}
			validation.Required("name", p.Name, v)
			validation.PositiveFloat("unit_price", p.UnitPrice, v)
			return v
		},
	}
}

func NewMenuCardHandler(db *gorm.DB) *Resource[models.MenuCard] {
	return &Resource[models.MenuCard]{
		DB: db,
		Listing: listing.Options{
			Filterable:   []string{"id", "name", "inactive"},
			SearchColumn: "name",
			DefaultOrder: "id desc",
		},
		Validate: func(m *models.MenuCard) validation.Violations {
			v := validation.Violations{}
			validation.Required("name", m.Name, v)
			return v
		},
	}
}
