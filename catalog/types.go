/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package catalog

// Category classifies a book or a requirement.
type Category string

const (
	CategoryFiction    Category = "fiksi"
	CategoryNonFiction Category = "non_fiksi"
	CategoryBiography  Category = "biografi"
	CategoryHistory    Category = "sejarah"
	CategoryScience    Category = "sains"
	CategoryTechnology Category = "teknologi"
	CategoryBusiness   Category = "bisnis"
	CategorySelfHelp   Category = "self_help"
	CategoryRomance    Category = "romance"
	CategoryMystery    Category = "mystery"
	CategoryFantasy    Category = "fantasy"
	CategoryHorror     Category = "horror"
	CategoryComedy     Category = "komedi"
	CategoryDrama      Category = "drama"
	CategoryAdventure  Category = "petualangan"
	CategoryReligion   Category = "agama"
	CategoryChildren   Category = "anak"
	CategoryCulinary   Category = "kuliner"
	CategoryArt        Category = "seni"
	CategoryOther      Category = "lainnya"
)

var categories = map[Category]bool{
	CategoryFiction: true, CategoryNonFiction: true, CategoryBiography: true,
	CategoryHistory: true, CategoryScience: true, CategoryTechnology: true,
	CategoryBusiness: true, CategorySelfHelp: true, CategoryRomance: true,
	CategoryMystery: true, CategoryFantasy: true, CategoryHorror: true,
	CategoryComedy: true, CategoryDrama: true, CategoryAdventure: true,
	CategoryReligion: true, CategoryChildren: true, CategoryCulinary: true,
	CategoryArt: true, CategoryOther: true,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return categories[c] }

// Condition is the physical state of a copy.
type Condition string

const (
	ConditionNew         Condition = "baru"
	ConditionGood        Condition = "baik"
	ConditionLightDamage Condition = "rusak_ringan"
	ConditionHeavyDamage Condition = "rusak_berat"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionLightDamage, ConditionHeavyDamage:
		return true
	}
	return false
}

// ReadingStatus tracks where the owner is with a book.
type ReadingStatus string

const (
	StatusUnread     ReadingStatus = "belum_dibaca"
	StatusWantToRead ReadingStatus = "ingin_dibaca"
	StatusReading    ReadingStatus = "sedang_dibaca"
	StatusRead       ReadingStatus = "sudah_dibaca"
)

// Valid reports whether s is a known reading status.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusWantToRead, StatusReading, StatusRead:
		return true
	}
	return false
}

// Priority ranks an acquisition requirement.
type Priority string

const (
	PriorityLow    Priority = "rendah"
	PriorityMedium Priority = "sedang"
	PriorityHigh   Priority = "tinggi"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// RequirementStatus is the procurement state of a requirement.
type RequirementStatus string

const (
	RequirementPending   RequirementStatus = "pending"
	RequirementOrdered   RequirementStatus = "ordered"
	RequirementReceived  RequirementStatus = "received"
	RequirementCancelled RequirementStatus = "cancelled"
)

// Valid reports whether s is a known requirement status.
func (s RequirementStatus) Valid() bool {
	switch s {
	case RequirementPending, RequirementOrdered, RequirementReceived, RequirementCancelled:
		return true
	}
	return false
}
