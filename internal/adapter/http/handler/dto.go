package handler

import (
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
)

// listingResponse mirrors the stored document field names.
type listingResponse struct {
	ID                   string                 `json:"_id"`
	UserID               string                 `json:"userId"`
	UserName             string                 `json:"userName"`
	CropType             string                 `json:"cropType"`
	WasteDescription     string                 `json:"wasteDescription"`
	Quantity             float64                `json:"quantity"`
	QuantityUnit         domain.QuantityUnit    `json:"quantityUnit"`
	MoistureLevel        domain.MoistureLevel   `json:"moistureLevel,omitempty"`
	AgeOfWaste           domain.WasteAge        `json:"ageOfWaste,omitempty"`
	Location             string                 `json:"location,omitempty"`
	IntendedUse          string                 `json:"intendedUse,omitempty"`
	AdditionalNotes      string                 `json:"additionalNotes,omitempty"`
	ClassificationResult *domain.Classification `json:"classificationResult,omitempty"`
	ImageURL             string                 `json:"imageUrl,omitempty"`
	ImageName            string                 `json:"imageName,omitempty"`
	Status               domain.ListingStatus   `json:"status"`
	CreatedAt            time.Time              `json:"createdAt"`
	LastUpdated          time.Time              `json:"lastUpdated"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:                   l.ID,
		UserID:               l.OwnerID,
		UserName:             l.OwnerDisplayName,
		CropType:             l.CropType,
		WasteDescription:     l.WasteDescription,
		Quantity:             l.Quantity,
		QuantityUnit:         l.QuantityUnit,
		MoistureLevel:        l.MoistureLevel,
		AgeOfWaste:           l.AgeOfWaste,
		Location:             l.Location,
		IntendedUse:          l.IntendedUse,
		AdditionalNotes:      l.AdditionalNotes,
		ClassificationResult: l.Classification,
		ImageURL:             l.ImageURL,
		ImageName:            l.ImageName,
		Status:               l.Status,
		CreatedAt:            l.CreatedAt,
		LastUpdated:          l.LastUpdated,
	}
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		if l != nil {
			out = append(out, toListingResponse(l))
		}
	}
	return out
}

type submitListingRequest struct {
	ClassificationResult *domain.Classification `json:"classificationResult"`
	FormData             domain.ListingForm     `json:"formData"`
	ImageBase64          string                 `json:"imageBase64,omitempty"`
	UserID               string                 `json:"userId,omitempty"`
	UserName             string                 `json:"userName,omitempty"`
}

type updateListingRequest struct {
	UserID string `json:"userId,omitempty"`
	domain.ListingPatch
}

type deleteListingRequest struct {
	UserID string `json:"userId,omitempty"`
}

type portfolioResponse struct {
	Stats insights.Portfolio `json:"stats"`
	Sales []listingResponse  `json:"sales"`
}

type walletResponse struct {
	Wallet       insights.Wallet        `json:"wallet"`
	Transactions []insights.Transaction `json:"transactions"`
}

type tendersResponse struct {
	Tenders []*domain.Tender `json:"tenders"`
	Count   int              `json:"count"`
}

// listingQuery reads q, status, sort and order.
func listingQuery(get func(string) string) insights.Query {
	return insights.Query{
		Search: get("q"),
		Status: domain.ListingStatus(strings.ToLower(get("status"))),
		SortBy: get("sort"),
		Asc:    strings.EqualFold(get("order"), "asc"),
	}
}

// tenderQuery reads q, wasteType, status and sort.
func tenderQuery(get func(string) string) insights.TenderQuery {
	return insights.TenderQuery{
		Search:    get("q"),
		WasteType: get("wasteType"),
		Status:    get("status"),
		SortBy:    get("sort"),
	}
}
