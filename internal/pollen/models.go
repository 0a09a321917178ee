package pollen

import (
	"errors"
	"fmt"

	"github.com/healthguardian/healthguardian/pkg/colormap"
)

// Pollen errors.
var (
	ErrProviderUnavailable = errors.New("pollen provider unavailable")
	ErrNoDataForRegion     = errors.New("no pollen data for region")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Document is the raw pollen forecast payload as returned by the
// provider. Field names follow the Google Pollen API.
type Document struct {
	RegionCode string      `json:"regionCode,omitempty"`
	DailyInfo  []DailyInfo `json:"dailyInfo,omitempty"`
}

// DailyInfo is a single forecast day.
type DailyInfo struct {
	Date       Date       `json:"date"`
	PollenType []TypeInfo `json:"pollenTypeInfo,omitempty"`
}

// Date is a calendar date as the provider encodes it.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// TypeInfo is a pollen type entry (grass, tree, weed) for one day.
type TypeInfo struct {
	Code                  string     `json:"code,omitempty"`
	DisplayName           string     `json:"displayName,omitempty"`
	InSeason              bool       `json:"inSeason,omitempty"`
	IndexInfo             *IndexInfo `json:"indexInfo,omitempty"`
	HealthRecommendations []string   `json:"healthRecommendations,omitempty"`
}

// IndexInfo is the Universal Pollen Index reading for a type.
type IndexInfo struct {
	Value    int            `json:"value,omitempty"`
	Category string         `json:"category,omitempty"`
	Color    *ColorChannels `json:"color,omitempty"`
}

// ColorChannels holds RGB channels as floats in [0, 1].
type ColorChannels struct {
	Red   float64 `json:"red,omitempty"`
	Green float64 `json:"green,omitempty"`
	Blue  float64 `json:"blue,omitempty"`
}

// Snapshot is the normalized pollen forecast used by the rest of the
// application. Available is false when the provider returned no
// forecast days, which is a valid outcome for unsupported regions.
type Snapshot struct {
	Available  bool
	RegionCode string
	Days       []Day
}

// Day is a normalized forecast day.
type Day struct {
	Date  Date
	Types []TypeReading
}

// TypeReading is a normalized pollen type reading.
type TypeReading struct {
	Code     string
	Name     string
	InSeason bool

	// Index is the Universal Pollen Index value. HasIndex is false when
	// the provider reported the type without an index (out of season).
	Index    int
	HasIndex bool
	Category string
	Color    *colormap.Color

	Recommendations []string
}

// Normalize converts a raw forecast document into a Snapshot.
func Normalize(doc *Document) *Snapshot {
	if doc == nil {
		return &Snapshot{}
	}

	snap := &Snapshot{
		Available:  len(doc.DailyInfo) > 0,
		RegionCode: doc.RegionCode,
	}

	for _, day := range doc.DailyInfo {
		out := Day{Date: day.Date}
		for _, info := range day.PollenType {
			reading := TypeReading{
				Code:            info.Code,
				Name:            info.DisplayName,
				InSeason:        info.InSeason,
				Recommendations: append([]string(nil), info.HealthRecommendations...),
			}
			if info.IndexInfo != nil {
				reading.HasIndex = true
				reading.Index = info.IndexInfo.Value
				reading.Category = info.IndexInfo.Category
				if info.IndexInfo.Color != nil {
					c := colormap.FromChannels(info.IndexInfo.Color.Red, info.IndexInfo.Color.Green, info.IndexInfo.Color.Blue)
					reading.Color = &c
				}
			}
			out.Types = append(out.Types, reading)
		}
		snap.Days = append(snap.Days, out)
	}

	return snap
}

// Document reconstructs a canonical provider document from the
// snapshot. Normalizing the result yields an equal snapshot.
func (s *Snapshot) Document() *Document {
	doc := &Document{RegionCode: s.RegionCode}

	for _, day := range s.Days {
		info := DailyInfo{Date: day.Date}
		for _, reading := range day.Types {
			t := TypeInfo{
				Code:                  reading.Code,
				DisplayName:           reading.Name,
				InSeason:              reading.InSeason,
				HealthRecommendations: append([]string(nil), reading.Recommendations...),
			}
			if reading.HasIndex {
				idx := &IndexInfo{
					Value:    reading.Index,
					Category: reading.Category,
				}
				if reading.Color != nil {
					idx.Color = &ColorChannels{
						Red:   float64(reading.Color.R) / 255,
						Green: float64(reading.Color.G) / 255,
						Blue:  float64(reading.Color.B) / 255,
					}
				}
				t.IndexInfo = idx
			}
			info.PollenType = append(info.PollenType, t)
		}
		doc.DailyInfo = append(doc.DailyInfo, info)
	}

	return doc
}

// Today returns the first forecast day, or nil when unavailable.
func (s *Snapshot) Today() *Day {
	if len(s.Days) == 0 {
		return nil
	}
	return &s.Days[0]
}
