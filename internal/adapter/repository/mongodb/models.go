package mongodb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type listingDocument struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	UserID               string             `bson:"userId"`
	UserName             string             `bson:"userName"`
	CropType             string             `bson:"cropType"`
	WasteDescription     string             `bson:"wasteDescription"`
	Quantity             interface{}        `bson:"quantity"`
	QuantityUnit         string             `bson:"quantityUnit"`
	MoistureLevel        string             `bson:"moistureLevel,omitempty"`
	AgeOfWaste           string             `bson:"ageOfWaste,omitempty"`
	Location             string             `bson:"location,omitempty"`
	IntendedUse          string             `bson:"intendedUse,omitempty"`
	AdditionalNotes      string             `bson:"additionalNotes,omitempty"`
	ClassificationResult bson.M             `bson:"classificationResult,omitempty"`
	ImageURL             string             `bson:"imageUrl,omitempty"`
	ImageName            string             `bson:"imageName,omitempty"`
	Status               string             `bson:"status"`
	CreatedAt            time.Time          `bson:"createdAt"`
	LastUpdated          time.Time          `bson:"lastUpdated"`
}

func fromDomainListing(l *domain.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		UserID:           l.OwnerID,
		UserName:         l.OwnerDisplayName,
		CropType:         l.CropType,
		WasteDescription: l.WasteDescription,
		Quantity:         l.Quantity,
		QuantityUnit:     string(l.QuantityUnit),
		MoistureLevel:    string(l.MoistureLevel),
		AgeOfWaste:       string(l.AgeOfWaste),
		Location:         l.Location,
		IntendedUse:      l.IntendedUse,
		AdditionalNotes:  l.AdditionalNotes,
		ImageURL:         l.ImageURL,
		ImageName:        l.ImageName,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
		LastUpdated:      l.LastUpdated,
	}
	if l.ID != "" {
		oid, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing id %q: %w", l.ID, err)
		}
		doc.ID = oid
	}
	if l.Classification != nil {
		m, err := classificationToBSON(l.Classification)
		if err != nil {
			return nil, err
		}
		doc.ClassificationResult = m
	}
	return doc, nil
}

func (d *listingDocument) toDomainListing() *domain.Listing {
	l := &domain.Listing{
		ID:               d.ID.Hex(),
		OwnerID:          d.UserID,
		OwnerDisplayName: d.UserName,
		CropType:         d.CropType,
		WasteDescription: d.WasteDescription,
		Quantity:         toFloat(d.Quantity),
		QuantityUnit:     domain.QuantityUnit(d.QuantityUnit),
		MoistureLevel:    domain.MoistureLevel(d.MoistureLevel),
		AgeOfWaste:       domain.WasteAge(d.AgeOfWaste),
		Location:         d.Location,
		IntendedUse:      d.IntendedUse,
		AdditionalNotes:  d.AdditionalNotes,
		ImageURL:         d.ImageURL,
		ImageName:        d.ImageName,
		Status:           domain.ListingStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		LastUpdated:      d.LastUpdated,
	}
	if len(d.ClassificationResult) > 0 {
		// A stored result that no longer decodes is dropped rather than failing the whole read.
		if c, err := classificationFromBSON(d.ClassificationResult); err == nil {
			l.Classification = c
		}
	}
	return l
}

// classificationToBSON stores typed fields and preserved extras side by side.
func classificationToBSON(c *domain.Classification) (bson.M, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal classification: %w", err)
	}
	var m bson.M
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}
	return m, nil
}

func classificationFromBSON(m bson.M) (*domain.Classification, error) {
	raw, err := json.Marshal(normalizeBSON(m))
	if err != nil {
		return nil, err
	}
	var c domain.Classification
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalizeBSON turns driver container types into plain maps and slices for JSON.
func normalizeBSON(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeBSON(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeBSON(val)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeBSON(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeBSON(val)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return domain.ParseLooseNumber(t.String())
	default:
		return t
	}
}

// toFloat reads numbers written by any client. Non-numeric values count as 0.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case primitive.Decimal128:
		return domain.ParseLooseNumber(n.String())
	case string:
		return domain.ParseLooseNumber(n)
	default:
		return 0
	}
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case primitive.ObjectID:
		return s.Hex()
	case primitive.DateTime:
		return s.Time().UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(s)
	}
}

type tenderDocument struct {
	MongoID     interface{} `bson:"_id"`
	ID          interface{} `bson:"id,omitempty"`
	Title       string      `bson:"title"`
	Company     string      `bson:"company"`
	WasteType   string      `bson:"wasteType"`
	Quantity    interface{} `bson:"quantity"`
	Unit        string      `bson:"unit"`
	PricePerTon interface{} `bson:"pricePerTon"`
	Location    string      `bson:"location"`
	Deadline    interface{} `bson:"deadline"`
	Status      string      `bson:"status"`
	Description string      `bson:"description"`
}

func (d *tenderDocument) toDomainTender() *domain.Tender {
	id := toString(d.ID)
	if id == "" {
		id = toString(d.MongoID)
	}
	return &domain.Tender{
		ID:          id,
		Title:       d.Title,
		Company:     d.Company,
		WasteType:   d.WasteType,
		Quantity:    toFloat(d.Quantity),
		Unit:        d.Unit,
		PricePerTon: toFloat(d.PricePerTon),
		Location:    d.Location,
		Deadline:    toString(d.Deadline),
		Status:      d.Status,
		Description: d.Description,
	}
}
