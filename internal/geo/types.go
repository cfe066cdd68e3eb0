package geo

import "context"

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Geocoder interface {
	Geocode(ctx context.Context, location string) (Point, error)
}
