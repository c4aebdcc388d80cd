package notion

import "strings"

type selectOption struct {
	Name string `json:"name"`
}

// Property is one typed page property value. Only the field matching Type
// is populated.
type Property struct {
	Type        string         `json:"type"`
	Title       []richText     `json:"title,omitempty"`
	RichText    []richText     `json:"rich_text,omitempty"`
	Select      *selectOption  `json:"select,omitempty"`
	MultiSelect []selectOption `json:"multi_select,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Checkbox    bool           `json:"checkbox,omitempty"`
}

// Page is a database row.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// Title returns the plain text of a title property.
func (p Page) Title(name string) string {
	return plain(p.Properties[name].Title)
}

// Text returns the plain text of a rich_text property.
func (p Page) Text(name string) string {
	return plain(p.Properties[name].RichText)
}

// Select returns the selected option name, or "" when unset.
func (p Page) Select(name string) string {
	if sel := p.Properties[name].Select; sel != nil {
		return sel.Name
	}
	return ""
}

// MultiSelect returns the selected option names in order.
func (p Page) MultiSelect(name string) []string {
	items := p.Properties[name].MultiSelect
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

// URL returns a url property, or "" when unset.
func (p Page) URL(name string) string {
	if u := p.Properties[name].URL; u != nil {
		return strings.TrimSpace(*u)
	}
	return ""
}

// Checkbox returns a checkbox property.
func (p Page) Checkbox(name string) bool {
	return p.Properties[name].Checkbox
}

// SelectValue builds the update payload for a select property.
func SelectValue(option string) map[string]any {
	return map[string]any{"select": map[string]any{"name": option}}
}

// CheckboxValue builds the update payload for a checkbox property.
func CheckboxValue(checked bool) map[string]any {
	return map[string]any{"checkbox": checked}
}

// SelectEquals builds a database filter matching a select option.
func SelectEquals(property, option string) map[string]any {
	return map[string]any{
		"property": property,
		"select":   map[string]any{"equals": option},
	}
}
