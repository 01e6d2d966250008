package garment

import (
	"strings"
)

// Type is the closed set of garment shapes the builder knows.
type Type int

const (
	Unknown Type = iota
	TShirt
	Shirt
	Blouse
	Sweater
	Pants
	Jeans
	Trousers
	Skirt
	Jacket
	Shorts
)

var typeNames = map[string]Type{
	"t-shirt":  TShirt,
	"tshirt":   TShirt,
	"shirt":    Shirt,
	"blouse":   Blouse,
	"sweater":  Sweater,
	"pants":    Pants,
	"jeans":    Jeans,
	"trousers": Trousers,
	"skirt":    Skirt,
	"jacket":   Jacket,
	"shorts":   Shorts,
}

func (t Type) String() string {
	switch t {
	case TShirt:
		return "t-shirt"
	case Shirt:
		return "shirt"
	case Blouse:
		return "blouse"
	case Sweater:
		return "sweater"
	case Pants:
		return "pants"
	case Jeans:
		return "jeans"
	case Trousers:
		return "trousers"
	case Skirt:
		return "skirt"
	case Jacket:
		return "jacket"
	case Shorts:
		return "shorts"
	default:
		return "unknown"
	}
}

// Kind is a parsed garment type that remembers the original string, so
// unsupported types can be reported as they were written.
type Kind struct {
	Type Type
	Raw  string
}

// ParseType maps a garment type string (case-insensitive) to its Kind.
// Unrecognized strings yield Unknown with Raw preserved.
func ParseType(s string) Kind {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Kind{Type: Unknown, Raw: s}
	}
	return Kind{Type: t, Raw: s}
}

func (k Kind) String() string {
	if k.Type == Unknown {
		return k.Raw
	}
	return k.Type.String()
}

// Category is the closet section of an item. Each category is one selection
// slot: at most one item per category is worn at a time.
type Category string

const (
	Tops        Category = "tops"
	Bottoms     Category = "bottoms"
	Outerwear   Category = "outerwear"
	Accessories Category = "accessories"
)

// DefaultCategory is the category implied by a garment type.
func DefaultCategory(t Type) Category {
	switch t {
	case TShirt, Shirt, Blouse, Sweater:
		return Tops
	case Pants, Jeans, Trousers, Skirt, Shorts:
		return Bottoms
	case Jacket:
		return Outerwear
	default:
		return Accessories
	}
}

// Images are the 2D thumbnails of an item. They are not used for 3D rendering.
type Images struct {
	Front string `yaml:"front,omitempty" json:"front,omitempty"`
	Back  string `yaml:"back,omitempty" json:"back,omitempty"`
	Side  string `yaml:"side,omitempty" json:"side,omitempty"`
}

// Item is one piece of clothing from the closet.
type Item struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Type          string   `yaml:"type" json:"type"`
	Category      Category `yaml:"category,omitempty" json:"category,omitempty"`
	Color         string   `yaml:"color,omitempty" json:"color,omitempty"`
	CustomTexture string   `yaml:"custom_texture,omitempty" json:"custom_texture,omitempty"`
	Images        Images   `yaml:"images,omitempty" json:"images,omitempty"`
}

// Kind parses the item's garment type.
func (it *Item) Kind() Kind {
	return ParseType(it.Type)
}

// Slot returns the item's category, falling back to the type's default.
func (it *Item) Slot() Category {
	if it.Category != "" {
		return it.Category
	}
	return DefaultCategory(it.Kind().Type)
}
