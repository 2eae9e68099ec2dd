package models

// FallbackServices returns the embedded dataset used when the configured
// source cannot be loaded. Each call returns a fresh slice.
func FallbackServices() []ServiceRecord {
	return []ServiceRecord{
		{
			ID:      "1",
			Name:    "Jigjiga General Hospital",
			Type:    Hospital,
			Phone:   "+251900000001",
			Lat:     9.3501,
			Lng:     42.8001,
			Address: "Main Road, Jigjiga",
		},
		{
			ID:      "2",
			Name:    "Peace Hostel",
			Type:    Hostel,
			Phone:   "+251900000002",
			Lat:     9.3512,
			Lng:     42.8032,
			Address: "Near University, Jigjiga",
		},
		{
			ID:      "3",
			Name:    "Taxi Station A",
			Type:    Taxi,
			Phone:   "+251900000003",
			Lat:     9.3530,
			Lng:     42.7978,
			Address: "City Center, Jigjiga",
		},
		{
			ID:      "4",
			Name:    "Regional Hospital",
			Type:    Hospital,
			Phone:   "+251900000004",
			Lat:     9.3550,
			Lng:     42.8050,
			Address: "Airport Road, Jigjiga",
		},
		{
			ID:      "5",
			Name:    "Student Hostel",
			Type:    Hostel,
			Phone:   "+251900000005",
			Lat:     9.3480,
			Lng:     42.8020,
			Address: "Near College, Jigjiga",
		},
		{
			ID:      "6",
			Name:    "City Taxi Service",
			Type:    Taxi,
			Phone:   "+251900000006",
			Lat:     9.3520,
			Lng:     42.7950,
			Address: "Market Area, Jigjiga",
		},
	}
}
