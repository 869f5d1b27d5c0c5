// internal/catalog/catalog.go

// Package catalog holds the static mapping from business category to the
// ordered list of search query templates probed for that category. The
// catalog is built once at startup and shared read-only across requests.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// CityToken is the placeholder substituted with the requested city when a
// template is rendered. Each template contains it exactly once.
const CityToken = "{city}"

var ErrUnknownCategory = errors.New("UNKNOWN_CATEGORY")

// categoryOrder fixes the order categories are reported to clients.
var categoryOrder = []string{
	"Medical & Clinics",
	"Law & Consulting",
	"Real Estate & Construction",
	"Finance & Accounting",
	"Education & Training",
	"Marketing & Media",
	"Beauty & Wellness",
	"IT & Software",
	"Logistics & Transport",
	"Hospitality & Food",
	"Retail & Showrooms",
	"Automotive",
	"Solar & Green Energy",
	"E-commerce & Boutiques",
	"Insurance Agencies",
	"Travel & Tourism",
	"Industrial & Factories",
	"Event Planning & Venues",
	"Interior Design",
	"Pet Care & Vets",
}

var defaultTemplates = map[string][]string{
	"Medical & Clinics": {
		"private medical clinic {city}",
		"specialist doctor clinic {city}",
		"dental clinic {city}",
		"pediatrician {city}",
		"diagnostic center {city}",
	},
	"Law & Consulting": {
		"law office {city}",
		"legal consultancy {city}",
		"corporate lawyer {city}",
		"notary public {city}",
		"tax attorney {city}",
	},
	"Real Estate & Construction": {
		"real estate brokerage {city}",
		"architecture office {city}",
		"construction company {city}",
		"interior design studio {city}",
		"property management {city}",
	},
	"Finance & Accounting": {
		"accounting firm {city}",
		"tax consultancy {city}",
		"audit firm {city}",
		"wealth management {city}",
		"insurance broker {city}",
	},
	"Education & Training": {
		"private school {city}",
		"training center {city}",
		"language institute {city}",
		"music school {city}",
		"vocational college {city}",
	},
	"Marketing & Media": {
		"digital marketing agency {city}",
		"advertising agency {city}",
		"branding consultancy {city}",
		"video production studio {city}",
		"social media agency {city}",
	},
	"Beauty & Wellness": {
		"beauty salon {city}",
		"spa {city}",
		"fitness center {city}",
		"yoga studio {city}",
		"hair transplant clinic {city}",
	},
	"IT & Software": {
		"software development company {city}",
		"web development agency {city}",
		"tech startup {city}",
		"cybersecurity firm {city}",
		"it support services {city}",
	},
	"Logistics & Transport": {
		"logistics company {city}",
		"freight forwarder {city}",
		"courier service {city}",
		"warehouse facility {city}",
		"moving company {city}",
	},
	"Hospitality & Food": {
		"restaurant {city}",
		"cafe {city}",
		"catering service {city}",
		"hotel {city}",
		"bakery {city}",
	},
	"Retail & Showrooms": {
		"furniture showroom {city}",
		"clothing boutique {city}",
		"jewelry store {city}",
		"electronics shop {city}",
		"optical shop {city}",
	},
	"Automotive": {
		"car dealership {city}",
		"auto repair shop {city}",
		"car rental agency {city}",
		"tire center {city}",
		"car detailing studio {city}",
	},
	"Solar & Green Energy": {
		"solar panel company {city}",
		"renewable energy firm {city}",
		"solar installation services {city}",
		"green energy solutions {city}",
		"solar inverter supplier {city}",
	},
	"E-commerce & Boutiques": {
		"online store {city}",
		"ecommerce business {city}",
		"fashion boutique {city}",
		"instagram shop {city}",
		"retail startup {city}",
	},
	"Insurance Agencies": {
		"insurance agency {city}",
		"life insurance office {city}",
		"car insurance broker {city}",
		"health insurance company {city}",
		"insurance consultancy {city}",
	},
	"Travel & Tourism": {
		"travel agency {city}",
		"tour operator {city}",
		"tourism office {city}",
		"holiday planner {city}",
		"visa services {city}",
	},
	"Industrial & Factories": {
		"manufacturing factory {city}",
		"industrial company {city}",
		"production plant {city}",
		"packaging factory {city}",
		"metal works factory {city}",
	},
	"Event Planning & Venues": {
		"event planning company {city}",
		"wedding venue {city}",
		"banquet hall {city}",
		"conference center {city}",
		"event organizer {city}",
	},
	"Interior Design": {
		"interior design studio {city}",
		"home decor company {city}",
		"office fitout firm {city}",
		"furniture design studio {city}",
		"space planning service {city}",
	},
	"Pet Care & Vets": {
		"veterinary clinic {city}",
		"pet shop {city}",
		"animal hospital {city}",
		"pet grooming salon {city}",
		"pet boarding service {city}",
	},
}

// Catalog is an immutable category → templates mapping.
type Catalog struct {
	names     []string
	templates map[string][]string
}

// Default returns the built-in production catalog.
func Default() *Catalog {
	return &Catalog{names: categoryOrder, templates: defaultTemplates}
}

// New builds a catalog from an explicit mapping. Category order follows the
// names slice; names without templates are rejected.
func New(names []string, templates map[string][]string) (*Catalog, error) {
	for _, name := range names {
		if len(templates[name]) == 0 {
			return nil, fmt.Errorf("category %q has no templates", name)
		}
	}
	return &Catalog{names: names, templates: templates}, nil
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether the category exists.
func (c *Catalog) Has(category string) bool {
	_, ok := c.templates[category]
	return ok
}

// TemplatesFor returns the ordered query templates for a category.
func (c *Catalog) TemplatesFor(category string) ([]string, error) {
	templates, ok := c.templates[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	out := make([]string, len(templates))
	copy(out, templates)
	return out, nil
}

// Render substitutes the city token in a template. Substitution is a single
// non-recursive pass and the city is inserted verbatim; callers own any
// sanitization of the city value.
func Render(template, city string) string {
	return strings.ReplaceAll(template, CityToken, city)
}

// RenderAll returns the fully rendered query strings for a category.
func (c *Catalog) RenderAll(category, city string) ([]string, error) {
	templates, err := c.TemplatesFor(category)
	if err != nil {
		return nil, err
	}
	queries := make([]string, len(templates))
	for i, t := range templates {
		queries[i] = Render(t, city)
	}
	return queries, nil
}
