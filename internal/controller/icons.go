package controller

import (
	"servicemap/internal/models"
	"servicemap/pkg/mapview"
)

// IconSet maps a service type to its icon, with a generic icon for anything unknown.
type IconSet struct {
	byType   map[string]mapview.Icon
	fallback mapview.Icon
	user     mapview.Icon
}

// DefaultIcons is the hospital/hostel/taxi set plus the generic and "you are here" icons.
func DefaultIcons() IconSet {
	return IconSet{
		byType: map[string]mapview.Icon{
			models.Hospital: mapview.DivIcon("custom-icon hospital-icon", "fa-hospital"),
			models.Hostel:   mapview.DivIcon("custom-icon hostel-icon", "fa-bed"),
			models.Taxi:     mapview.DivIcon("custom-icon taxi-icon", "fa-taxi"),
		},
		fallback: mapview.DivIcon("custom-icon", "fa-map-marker-alt"),
		user:     mapview.DivIcon("custom-icon user-icon", "fa-user"),
	}
}

// For returns the icon for serviceType. Matching is exact.
func (s IconSet) For(serviceType string) mapview.Icon {
	if icon, ok := s.byType[serviceType]; ok {
		return icon
	}
	return s.fallback
}

// With returns a copy of the set with icon registered for serviceType.
func (s IconSet) With(serviceType string, icon mapview.Icon) IconSet {
	byType := make(map[string]mapview.Icon, len(s.byType)+1)
	for k, v := range s.byType {
		byType[k] = v
	}
	byType[serviceType] = icon
	s.byType = byType
	return s
}

func (s IconSet) Fallback() mapview.Icon { return s.fallback }
func (s IconSet) User() mapview.Icon     { return s.user }
