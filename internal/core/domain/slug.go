package domain

// =============================================================================
// Slug Generation
// =============================================================================

// Slugify converts a deck name to a URL-safe slug.
//
// Lowercase letters, digits, and hyphens pass through; uppercase letters are
// lowered; spaces become hyphens; everything else is dropped. Pure function.
//
// Example:
//
//	Slugify("Brotherhood Rush")  // returns "brotherhood-rush"
//	Slugify("Anti 7-Mission!")   // returns "anti-7-mission"
func Slugify(name string) string {
	slug := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			slug = append(slug, r)
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+32)
		case r == ' ':
			slug = append(slug, '-')
		}
	}
	return string(slug)
}
