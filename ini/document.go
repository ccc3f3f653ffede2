package ini

import (
	"slices"

	"github.com/ardnew/iconf/log"
)

// Items maps item names to their values.
type Items map[string]string

// Document is the parsed form of one source.
//
// When Sectioned is true, items are grouped under Sections and Items is nil.
// Otherwise every item is in Items and Sections is nil.
type Document struct {
	Source    string
	Sectioned bool
	Sections  map[string]Items
	Items     Items

	sectionOrder []string
	itemOrder    map[string][]string // keyed by section, "" when flat

	logger log.Logger
}

// Option configures parsing behavior.
type Option func(*Document)

// WithSections returns an option that controls whether section headers
// group items. When disabled, headers are recognized and ignored.
// Sections are enabled by default.
func WithSections(enable bool) Option {
	return func(d *Document) { d.Sectioned = enable }
}

// WithLogger returns an option that sets the logger used while parsing.
func WithLogger(logger log.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

func newDocument(source string, opts ...Option) *Document {
	d := &Document{
		Source:    source,
		Sectioned: true,
		itemOrder: make(map[string][]string),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.Sectioned {
		d.Sections = make(map[string]Items)
	} else {
		d.Items = make(Items)
	}

	return d
}

// openSection starts section name. A repeated name discards the items
// collected under its earlier header but keeps its original position.
func (d *Document) openSection(name string) {
	if _, ok := d.Sections[name]; !ok {
		d.sectionOrder = append(d.sectionOrder, name)
	}

	d.Sections[name] = make(Items)
	d.itemOrder[name] = nil
}

// setItem records name = value in section (ignored when flat).
// A repeated name keeps its first position and takes the latest value.
func (d *Document) setItem(section, name, value string) {
	items := d.Items
	if d.Sectioned {
		items = d.Sections[section]
	} else {
		section = ""
	}

	if _, ok := items[name]; !ok {
		d.itemOrder[section] = append(d.itemOrder[section], name)
	}

	items[name] = value
}

// SectionNames returns the section names in the order they first appeared.
func (d *Document) SectionNames() []string {
	return slices.Clone(d.sectionOrder)
}

// ItemNames returns the item names of section in the order they first
// appeared. The section argument is ignored for flat documents.
func (d *Document) ItemNames(section string) []string {
	if !d.Sectioned {
		section = ""
	}

	return slices.Clone(d.itemOrder[section])
}

// Len returns the number of items in the document.
func (d *Document) Len() int {
	if !d.Sectioned {
		return len(d.Items)
	}

	n := 0
	for _, items := range d.Sections {
		n += len(items)
	}

	return n
}

// Map returns the document as a fresh tree: section → item → value when
// sectioned, or item → value when flat.
func (d *Document) Map() map[string]any {
	if !d.Sectioned {
		return itemsMap(d.Items)
	}

	m := make(map[string]any, len(d.Sections))
	for name, items := range d.Sections {
		m[name] = itemsMap(items)
	}

	return m
}

func itemsMap(items Items) map[string]any {
	m := make(map[string]any, len(items))
	for k, v := range items {
		m[k] = v
	}

	return m
}
