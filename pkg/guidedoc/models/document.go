package models

// MainContent is the subcategory label used for rows whose subcategory cell
// is empty.
const MainContent = "Main Content"

// Subcategory holds the content lines of one subcategory in source order.
type Subcategory struct {
	// Name is the subcategory label, MainContent when the source cell is empty.
	Name string `json:"name"`
	// Lines contains guideline strings; duplicates are kept.
	Lines []string `json:"lines"`
}

// IsMainContent reports whether the subcategory is the MainContent sentinel.
func (s Subcategory) IsMainContent() bool {
	return s.Name == MainContent
}

// Category holds the subcategories of one category in first-seen order.
type Category struct {
	// Name is the category label.
	Name string `json:"name"`
	// Subcategories contains subcategories in first-seen order.
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory returns the subcategory with the given name.
func (c *Category) Subcategory(name string) (*Subcategory, bool) {
	for i := range c.Subcategories {
		if c.Subcategories[i].Name == name {
			return &c.Subcategories[i], true
		}
	}
	return nil, false
}

// Lines returns every content line of the category, subcategory by
// subcategory.
func (c *Category) Lines() []string {
	var lines []string
	for _, sub := range c.Subcategories {
		lines = append(lines, sub.Lines...)
	}
	return lines
}

// OrganizedDocument is the ordered category -> subcategory -> lines hierarchy
// of a single component.
type OrganizedDocument struct {
	// Component is the requested component name (trimmed).
	Component string `json:"component"`
	// Categories contains categories in first-seen order.
	Categories []Category `json:"categories"`
}

// Empty reports whether no category was found for the component.
func (d *OrganizedDocument) Empty() bool {
	return d == nil || len(d.Categories) == 0
}

// Category returns the category with the given name.
func (d *OrganizedDocument) Category(name string) (*Category, bool) {
	for i := range d.Categories {
		if d.Categories[i].Name == name {
			return &d.Categories[i], true
		}
	}
	return nil, false
}

// CategoryNames returns category labels in document order.
func (d *OrganizedDocument) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		names = append(names, c.Name)
	}
	return names
}
