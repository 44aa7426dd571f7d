package collection

// IconMap maps a bin category, exactly as the council labels it, to an icon
// identifier.
type IconMap map[string]string

// Lookup returns the icon of a category, or "" if the category is not in the
// map. Categories are matched exactly.
func (m IconMap) Lookup(category string) string {
	return m[category]
}
