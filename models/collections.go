package models

// Collection pairs a collection name with an empty value of its record type.
type Collection struct {
	Name  string
	Model any
}

// Collections lists every persisted collection in a stable order.
func Collections() []Collection {
	return []Collection{
		{"user", &User{}},
		{"menucategory", &MenuCategory{}},
		{"menuitem", &MenuItem{}},
		{"order", &Order{}},
		{"reservation", &Reservation{}},
		{"eventinquiry", &EventInquiry{}},
		{"blogpost", &BlogPost{}},
		{"galleryimage", &GalleryImage{}},
		{"subscriber", &Subscriber{}},
		{"sitesetting", &SiteSetting{}},
	}
}

// CollectionNames returns the names reported by the schema endpoint. Order items
// are embedded in their order but are still listed as a logical collection.
func CollectionNames() []string {
	names := []string{}
	for _, c := range Collections() {
		names = append(names, c.Name)
		if c.Name == "order" {
			names = append(names, "orderitem")
		}
	}
	return names
}
