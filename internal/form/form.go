// Package form holds the raw text a user typed into the product form and
// turns it into a Product, rejecting bad input before anything touches the
// network.
package form

import (
	"strconv"
	"strings"

	"productmanager/internal/apierr"
	"productmanager/internal/models"
)

// Fields mirrors the form inputs as entered, all strings.
type Fields struct {
	Name        string
	Description string
	Price       string
	Stock       string
	Category    string
}

// Seed pre-fills the form from an existing product for editing.
func Seed(p models.Product) Fields {
	return Fields{
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(p.Stock),
		Category:    p.Category,
	}
}

// Validate checks every field and returns the parsed product together with
// one Validation error per offending field. The product is only meaningful
// when the error slice is empty.
func (f Fields) Validate() (models.Product, []*apierr.Error) {
	var errs []*apierr.Error

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs = append(errs, apierr.Validation("name", "is required"))
	}
	description := strings.TrimSpace(f.Description)
	if description == "" {
		errs = append(errs, apierr.Validation("description", "is required"))
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		errs = append(errs, apierr.Validation("category", "is required"))
	}

	var price float64
	if strings.TrimSpace(f.Price) == "" {
		errs = append(errs, apierr.Validation("price", "is required"))
	} else {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
		switch {
		case err != nil:
			errs = append(errs, apierr.Validation("price", "must be a number"))
		case v < 0:
			errs = append(errs, apierr.Validation("price", "must not be negative"))
		default:
			price = v
		}
	}

	var stock int
	if strings.TrimSpace(f.Stock) == "" {
		errs = append(errs, apierr.Validation("stock", "is required"))
	} else {
		v, err := strconv.Atoi(strings.TrimSpace(f.Stock))
		switch {
		case err != nil:
			errs = append(errs, apierr.Validation("stock", "must be a whole number"))
		case v < 0:
			errs = append(errs, apierr.Validation("stock", "must not be negative"))
		default:
			stock = v
		}
	}

	if len(errs) > 0 {
		return models.Product{}, errs
	}

	return models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
	}, nil
}
