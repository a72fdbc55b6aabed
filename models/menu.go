package models

type MenuCategory struct {
	Record
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:191;not null"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"is_active"`
}

func (MenuCategory) TableName() string { return "menucategory" }

type MenuItem struct {
	Record
	Title        string   `json:"title" gorm:"not null"`
	Slug         string   `json:"slug" gorm:"uniqueIndex;size:191;not null"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" gorm:"not null"`
	Currency     string   `json:"currency" gorm:"size:3"`
	CategorySlug string   `json:"category_slug" gorm:"index;size:191"`
	ImageURL     string   `json:"image_url"`
	Tags         []string `json:"tags" gorm:"serializer:json;type:text"`
	Allergens    []string `json:"allergens" gorm:"serializer:json;type:text"`
	IsActive     bool     `json:"is_active"`
}

func (MenuItem) TableName() string { return "menuitem" }

// HasTag reports whether the item is labelled with tag.
func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
