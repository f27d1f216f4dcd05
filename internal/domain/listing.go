package domain

import (
	"strings"
	"time"
)

const (
	// AnonymousOwnerID is stored when a listing is created without any identity.
	AnonymousOwnerID = "anonymous"
	// AnonymousOwnerName is the display name paired with AnonymousOwnerID.
	AnonymousOwnerName = "Anonymous User"
)

// QuantityUnit is the unit a listing quantity is expressed in.
type QuantityUnit string

const (
	UnitKg  QuantityUnit = "kg"
	UnitTon QuantityUnit = "ton"
)

// IsValid reports whether u is accepted on write.
func (u QuantityUnit) IsValid() bool {
	return u == UnitKg || u == UnitTon
}

// IsTon reports whether u denotes metric tons. Read paths also accept "tons" and "t".
func (u QuantityUnit) IsTon() bool {
	switch strings.ToLower(strings.TrimSpace(string(u))) {
	case "ton", "tons", "t":
		return true
	}
	return false
}

type MoistureLevel string

const (
	MoistureLow    MoistureLevel = "Low"
	MoistureMedium MoistureLevel = "Medium"
	MoistureHigh   MoistureLevel = "High"
)

func (m MoistureLevel) IsValid() bool {
	switch m {
	case MoistureLow, MoistureMedium, MoistureHigh:
		return true
	}
	return false
}

type WasteAge string

const (
	AgeFresh        WasteAge = "Fresh"
	AgeOneTwoWeeks  WasteAge = "1-2 weeks"
	AgeTwoFourWeeks WasteAge = "2-4 weeks"
	AgeOneTwoMonths WasteAge = "1-2 months"
	AgeTwoPlusMonth WasteAge = "2+ months"
)

func (a WasteAge) IsValid() bool {
	switch a {
	case AgeFresh, AgeOneTwoWeeks, AgeTwoFourWeeks, AgeOneTwoMonths, AgeTwoPlusMonth:
		return true
	}
	return false
}

// ListingStatus is open-ended: this service only ever writes StatusPending,
// StatusCompleted is set by the fulfillment process that owns the sale.
type ListingStatus string

const (
	StatusPending   ListingStatus = "pending"
	StatusCompleted ListingStatus = "completed"
)

// Listing is a farmer-submitted quantity of agricultural waste offered for sale.
type Listing struct {
	ID               string
	OwnerID          string
	OwnerDisplayName string
	CropType         string
	WasteDescription string
	Quantity         float64
	QuantityUnit     QuantityUnit
	MoistureLevel    MoistureLevel
	AgeOfWaste       WasteAge
	Location         string
	IntendedUse      string
	AdditionalNotes  string
	Classification   *Classification
	ImageURL         string
	ImageName        string
	Status           ListingStatus
	CreatedAt        time.Time
	LastUpdated      time.Time
}

// EstimatedValue is the classifier's price per ton, 0 when unknown.
func (l *Listing) EstimatedValue() float64 {
	if l == nil || l.Classification == nil {
		return 0
	}
	return l.Classification.EstimatedValue
}

// WasteType is the classifier's waste type, empty when unknown.
func (l *Listing) WasteType() string {
	if l == nil || l.Classification == nil {
		return ""
	}
	return l.Classification.WasteType
}

// ListingForm is the farmer-editable part of a listing as received from a client.
type ListingForm struct {
	CropType         string        `json:"cropType"`
	WasteDescription string        `json:"wasteDescription"`
	Quantity         float64       `json:"quantity"`
	QuantityUnit     QuantityUnit  `json:"quantityUnit"`
	MoistureLevel    MoistureLevel `json:"moistureLevel"`
	AgeOfWaste       WasteAge      `json:"ageOfWaste"`
	Location         string        `json:"location,omitempty"`
	IntendedUse      string        `json:"intendedUse,omitempty"`
	AdditionalNotes  string        `json:"additionalNotes,omitempty"`
}

// Validate checks the required fields and enum membership.
func (f ListingForm) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(f.CropType) == "" {
		verr.Add("cropType", "is required")
	}
	if strings.TrimSpace(f.WasteDescription) == "" {
		verr.Add("wasteDescription", "is required")
	}
	if !(f.Quantity > 0) {
		verr.Add("quantity", "must be a positive number")
	}
	if !f.QuantityUnit.IsValid() {
		verr.Add("quantityUnit", "must be one of kg, ton")
	}
	if !f.MoistureLevel.IsValid() {
		verr.Add("moistureLevel", "must be one of Low, Medium, High")
	}
	if !f.AgeOfWaste.IsValid() {
		verr.Add("ageOfWaste", "must be one of Fresh, 1-2 weeks, 2-4 weeks, 1-2 months, 2+ months")
	}
	return verr.OrNil()
}

// NewListing builds a pending listing owned by ownerID from a validated form.
func NewListing(form ListingForm, ownerID, ownerName string, classification *Classification) *Listing {
	if strings.TrimSpace(ownerID) == "" {
		ownerID = AnonymousOwnerID
	}
	if strings.TrimSpace(ownerName) == "" {
		ownerName = AnonymousOwnerName
	}
	return &Listing{
		OwnerID:          ownerID,
		OwnerDisplayName: ownerName,
		CropType:         strings.TrimSpace(form.CropType),
		WasteDescription: strings.TrimSpace(form.WasteDescription),
		Quantity:         form.Quantity,
		QuantityUnit:     form.QuantityUnit,
		MoistureLevel:    form.MoistureLevel,
		AgeOfWaste:       form.AgeOfWaste,
		Location:         form.Location,
		IntendedUse:      form.IntendedUse,
		AdditionalNotes:  form.AdditionalNotes,
		Classification:   classification,
		Status:           StatusPending,
	}
}

// ListingPatch carries the owner-editable fields of an update. Nil fields are left untouched.
// Owner, status and classification cannot be patched.
type ListingPatch struct {
	CropType         *string        `json:"cropType,omitempty"`
	WasteDescription *string        `json:"wasteDescription,omitempty"`
	Quantity         *float64       `json:"quantity,omitempty"`
	QuantityUnit     *QuantityUnit  `json:"quantityUnit,omitempty"`
	MoistureLevel    *MoistureLevel `json:"moistureLevel,omitempty"`
	AgeOfWaste       *WasteAge      `json:"ageOfWaste,omitempty"`
	Location         *string        `json:"location,omitempty"`
	IntendedUse      *string        `json:"intendedUse,omitempty"`
	AdditionalNotes  *string        `json:"additionalNotes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ListingPatch) IsEmpty() bool {
	return p.CropType == nil && p.WasteDescription == nil && p.Quantity == nil &&
		p.QuantityUnit == nil && p.MoistureLevel == nil && p.AgeOfWaste == nil &&
		p.Location == nil && p.IntendedUse == nil && p.AdditionalNotes == nil
}

func (p ListingPatch) Validate() error {
	verr := &ValidationError{}
	if p.IsEmpty() {
		verr.Add("patch", "at least one field must be provided")
		return verr
	}
	if p.CropType != nil && strings.TrimSpace(*p.CropType) == "" {
		verr.Add("cropType", "cannot be empty")
	}
	if p.WasteDescription != nil && strings.TrimSpace(*p.WasteDescription) == "" {
		verr.Add("wasteDescription", "cannot be empty")
	}
	if p.Quantity != nil && !(*p.Quantity > 0) {
		verr.Add("quantity", "must be a positive number")
	}
	if p.QuantityUnit != nil && !p.QuantityUnit.IsValid() {
		verr.Add("quantityUnit", "must be one of kg, ton")
	}
	if p.MoistureLevel != nil && !p.MoistureLevel.IsValid() {
		verr.Add("moistureLevel", "must be one of Low, Medium, High")
	}
	if p.AgeOfWaste != nil && !p.AgeOfWaste.IsValid() {
		verr.Add("ageOfWaste", "must be one of Fresh, 1-2 weeks, 2-4 weeks, 1-2 months, 2+ months")
	}
	return verr.OrNil()
}

// StoredImage is the result of a successful image upload.
type StoredImage struct {
	ImageName string
	ImageURL  string
}
