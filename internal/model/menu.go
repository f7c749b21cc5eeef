package model

import "time"

// CollectionMenus holds one document per menu type; the document id is the type.
const CollectionMenus = "menus"

// MenuType identifies one of the fixed menus.
type MenuType string

const (
	MenuFood     MenuType = "food"
	MenuDrinks   MenuType = "drinks"
	MenuIceCream MenuType = "ice-cream"
	MenuSpecials MenuType = "specials"
)

// MenuTypes lists every known menu type in display order.
var MenuTypes = []MenuType{MenuFood, MenuDrinks, MenuIceCream, MenuSpecials}

// Valid reports whether t is one of MenuTypes.
func (t MenuType) Valid() bool {
	for _, known := range MenuTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FileTypePDF is the content type of PDF menus.
const FileTypePDF = "application/pdf"

// Menu is the current menu file for one MenuType.
type Menu struct {
	URL        string    `json:"url" bson:"url" validate:"required,url"`
	Filename   string    `json:"filename" bson:"filename" validate:"required"`
	Path       string    `json:"path" bson:"path" validate:"required"`
	UploadDate time.Time `json:"uploadDate" bson:"uploadDate"`
	Type       MenuType  `json:"type" bson:"type" validate:"required,oneof=food drinks ice-cream specials"`
	FileType   string    `json:"fileType" bson:"fileType"`
}

// IsPDF reports whether the menu file is a PDF document.
func (m Menu) IsPDF() bool {
	return m.FileType == FileTypePDF
}
