package handlers

import (
	"gorm.io/gorm"

	"github.com/Bikutah/ingenieria-3-grupo-2/internal/listing"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/models"
	"github.com/Bikutah/ingenieria-3-grupo-2/internal/validation"
)

// NewWaiterHandler serves /waiters. The staff code is derived on insert by
// the model hook, so creation never asks for one.
func NewWaiterHandler(db *gorm.DB) *Resource[models.Waiter] {
	return &Resource[models.Waiter]{
		DB: db,
		Listing: listing.Options{
			Filterable:   []string{"id", "staff_code", "dni", "first_name", "last_name", "inactive"},
			SearchColumn: "last_name",
			DefaultOrder: "id desc",
		},
		Validate: func(wt *models.Waiter) validation.Violations {
			v := validation.Violations{}
			validation.Required("dni", wt.DNI, v)
			validation.Required("first_name", wt.FirstName, v)
			validation.Required("last_name", wt.LastName, v)
			return v
		},
	}
}

func NewClientHandler(db *gorm.DB) *Resource[models.Client] {
	return &Resource[models.Client]{
		DB: db,
		Listing: listing.Options{
			Filterable:   []string{"id", "dni", "first_name", "last_name", "phone", "inactive"},
			SearchColumn: "last_name",
			DefaultOrder: "id desc",
		},
		Validate: func(c *models.Client) validation.Violations {
			v := validation.Violations{}
			validation.Required("first_name", c.FirstName, v)
			validation.Required("last_name", c.LastName, v)
			return v
		},
	}
}
