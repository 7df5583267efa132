package booking

import (
	"context"
	"math"
	"sort"

	serviceRepo "salonbook/database/repository/service"
	staffRepo "salonbook/database/repository/staff"
	vendorRepo "salonbook/database/repository/vendor"
	"salonbook/models"
)

// VendorSearchRequest filters the vendor directory geographically.
type VendorSearchRequest struct {
	Location  models.GeoPoint
	RadiusKm  float64
	Category  string
	ServiceID string
}

// VendorDTO is the directory view of a vendor.
type VendorDTO struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Rating               float64         `json:"rating,omitempty"`
	LocationGeo          models.GeoPoint `json:"locationGeo"`
	Proximity            float64         `json:"proximity,omitempty"` // meters
	HomeServiceAvailable bool            `json:"homeServiceAvailable"`
}

// VendorDirectory answers the read-only vendor/service/staff listings used
// by the UI layer before a booking flow starts.
type VendorDirectory interface {
	SearchVendors(ctx context.Context, req VendorSearchRequest) ([]VendorDTO, error)
	ListServices(ctx context.Context, vendorID string) ([]models.Service, error)
	ListStaff(ctx context.Context, vendorID, serviceID string) ([]models.StaffMember, error)
}

// DefaultVendorDirectory implements VendorDirectory.
type DefaultVendorDirectory struct {
	VendorRepo  vendorRepo.Repository
	StaffRepo   staffRepo.Repository
	ServiceRepo serviceRepo.Repository
}

// SearchVendors matches vendors by proximity, category and (optionally) an
// offered service, ranked by a proximity/rating score.
func (d *DefaultVendorDirectory) SearchVendors(ctx context.Context, req VendorSearchRequest) ([]VendorDTO, error) {
	criteria := vendorRepo.SearchCriteria{
		LocationGeo:   req.Location,
		MaxDistanceKm: req.RadiusKm,
		Category:      req.Category,
	}
	if criteria.MaxDistanceKm <= 0 {
		criteria.MaxDistanceKm = 10
	}
	if req.ServiceID != "" {
		svc, err := d.ServiceRepo.GetByID(ctx, req.ServiceID)
		if err != nil {
			if err == serviceRepo.ErrNotFound {
				return nil, NewError(CodeUnknownResource, "service %s not found", req.ServiceID)
			}
			return nil, err
		}
		criteria.VendorIDs = []string{svc.VendorID}
	}

	vendors, err := d.VendorRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	var centerLat, centerLon float64
	hasCenter := len(req.Location.Coordinates) >= 2
	if hasCenter {
		centerLon = req.Location.Coordinates[0]
		centerLat = req.Location.Coordinates[1]
	}

	type scored struct {
		dto   VendorDTO
		score float64
	}
	var results []scored
	for _, v := range vendors {
		dto := VendorDTO{
			ID:                   v.ID,
			Name:                 v.Name,
			Category:             v.Category,
			Rating:               v.Rating,
			LocationGeo:          v.LocationGeo,
			HomeServiceAvailable: v.HomeServiceAvailable,
		}
		score := (v.Rating / 5) * 15
		if hasCenter && len(v.LocationGeo.Coordinates) >= 2 {
			distanceKm := haversine(centerLat, centerLon, v.LocationGeo.Coordinates[1], v.LocationGeo.Coordinates[0])
			dto.Proximity = distanceKm * 1000
			if distanceKm < criteria.MaxDistanceKm {
				score += 45 * (1 - distanceKm/criteria.MaxDistanceKm)
			}
		}
		results = append(results, scored{dto: dto, score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	dtos := make([]VendorDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, r.dto)
	}
	return dtos, nil
}

// ListServices returns a vendor's catalogue.
func (d *DefaultVendorDirectory) ListServices(ctx context.Context, vendorID string) ([]models.Service, error) {
	if _, err := d.VendorRepo.GetByID(ctx, vendorID); err != nil {
		if err == vendorRepo.ErrNotFound {
			return nil, NewError(CodeUnknownResource, "vendor %s not found", vendorID)
		}
		return nil, err
	}
	return d.ServiceRepo.ListByVendor(ctx, vendorID)
}

// ListStaff returns a vendor's staff, optionally filtered to the members
// eligible for one service.
func (d *DefaultVendorDirectory) ListStaff(ctx context.Context, vendorID, serviceID string) ([]models.StaffMember, error) {
	staff, err := d.StaffRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if serviceID == "" {
		return staff, nil
	}

	svc, err := d.ServiceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if err == serviceRepo.ErrNotFound {
			return nil, NewError(CodeUnknownResource, "service %s not found", serviceID)
		}
		return nil, err
	}
	var eligible []models.StaffMember
	for _, member := range staff {
		if svc.EligibleFor(member.ID) {
			eligible = append(eligible, member)
		}
	}
	return eligible, nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
