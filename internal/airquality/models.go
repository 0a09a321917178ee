package airquality

import (
	"errors"
	"strings"

	"github.com/healthguardian/healthguardian/pkg/colormap"
)

// Air quality errors.
var (
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// UniversalIndexCode is the provider-neutral universal AQI code.
const UniversalIndexCode = "uaqi"

// Document is the raw current-conditions payload as returned by the
// provider. Field names follow the Google Air Quality API; the legacy
// flat fields (AQI, Index, Category, DominantPollutant at top level)
// cover older response shapes that some deployments still emit.
type Document struct {
	DateTime   string      `json:"dateTime,omitempty"`
	RegionCode string      `json:"regionCode,omitempty"`
	Indexes    []Index     `json:"indexes,omitempty"`
	Pollutants []Pollutant `json:"pollutants,omitempty"`

	// HealthRecommendations maps population groups to advice text.
	HealthRecommendations map[string]string `json:"healthRecommendations,omitempty"`

	// Legacy flat shape: a bare AQI value at the top level.
	AQI *float64 `json:"aqi,omitempty"`

	// Legacy nested shape: a single index object.
	Index *Index `json:"index,omitempty"`

	Category          string `json:"category,omitempty"`
	DominantPollutant string `json:"dominantPollutant,omitempty"`
}

// Index is a single air quality index reading.
type Index struct {
	Code              string         `json:"code,omitempty"`
	DisplayName       string         `json:"displayName,omitempty"`
	AQI               float64        `json:"aqi,omitempty"`
	AQIDisplay        string         `json:"aqiDisplay,omitempty"`
	Category          string         `json:"category,omitempty"`
	DominantPollutant string         `json:"dominantPollutant,omitempty"`
	Color             *ColorChannels `json:"color,omitempty"`
}

// ColorChannels holds RGB channels as floats in [0, 1]. Missing
// channels decode as zero.
type ColorChannels struct {
	Red   float64 `json:"red,omitempty"`
	Green float64 `json:"green,omitempty"`
	Blue  float64 `json:"blue,omitempty"`
}

// Pollutant is a single pollutant reading.
type Pollutant struct {
	Code          string         `json:"code,omitempty"`
	DisplayName   string         `json:"displayName,omitempty"`
	FullName      string         `json:"fullName,omitempty"`
	Concentration *Concentration `json:"concentration,omitempty"`
}

// Concentration is a pollutant concentration measurement.
type Concentration struct {
	Value *float64 `json:"value,omitempty"`
	Units string   `json:"units,omitempty"`
}

// Snapshot is the normalized air quality view used by the rest of the
// application. It is derived from a Document via Normalize.
type Snapshot struct {
	// Available is false when the document carried no usable index.
	Available bool

	// IndexCode identifies the index the snapshot was built from
	// ("usa_epa", "uaqi", ...). Empty for legacy documents without one.
	IndexCode string

	AQI               float64
	AQIDisplay        string
	Category          string
	DominantPollutant string

	// Color is the provider-reported index color, if any.
	Color *colormap.Color

	Pollutants []PollutantLevel

	HealthRecommendations map[string]string
}

// PollutantLevel is a normalized pollutant reading.
type PollutantLevel struct {
	Code  string
	Name  string
	Value float64
	Unit  string

	// Known is false when the provider omitted the concentration.
	Known bool
}

// Normalize converts a raw provider document into a Snapshot.
//
// Index preference order: a national index (any code other than the
// universal one) first, then the universal index, then the legacy flat
// and nested shapes. A document with none of these yields an
// unavailable snapshot.
func Normalize(doc *Document) *Snapshot {
	if doc == nil {
		return &Snapshot{}
	}

	snap := &Snapshot{
		Pollutants:            normalizePollutants(doc.Pollutants),
		HealthRecommendations: copyRecommendations(doc.HealthRecommendations),
	}

	if idx := pickIndex(doc.Indexes); idx != nil {
		snap.Available = true
		snap.IndexCode = idx.Code
		snap.AQI = idx.AQI
		snap.AQIDisplay = idx.AQIDisplay
		snap.Category = idx.Category
		snap.DominantPollutant = idx.DominantPollutant
		if idx.Color != nil {
			c := colormap.FromChannels(idx.Color.Red, idx.Color.Green, idx.Color.Blue)
			snap.Color = &c
		}
		return snap
	}

	// Legacy flat shape: a bare AQI at the top level.
	if doc.AQI != nil {
		snap.Available = true
		snap.AQI = *doc.AQI
		snap.Category = doc.Category
		snap.DominantPollutant = doc.DominantPollutant
		return snap
	}

	// Legacy nested shape: a single index object.
	if doc.Index != nil {
		snap.Available = true
		snap.IndexCode = doc.Index.Code
		snap.AQI = doc.Index.AQI
		snap.AQIDisplay = doc.Index.AQIDisplay
		snap.Category = doc.Index.Category
		snap.DominantPollutant = doc.Index.DominantPollutant
		if doc.Index.Color != nil {
			c := colormap.FromChannels(doc.Index.Color.Red, doc.Index.Color.Green, doc.Index.Color.Blue)
			snap.Color = &c
		}
		return snap
	}

	return snap
}

// pickIndex selects the preferred index: national first, universal second.
func pickIndex(indexes []Index) *Index {
	for i := range indexes {
		if indexes[i].Code != "" && indexes[i].Code != UniversalIndexCode {
			return &indexes[i]
		}
	}
	for i := range indexes {
		if indexes[i].Code == UniversalIndexCode {
			return &indexes[i]
		}
	}
	return nil
}

func normalizePollutants(pollutants []Pollutant) []PollutantLevel {
	if len(pollutants) == 0 {
		return nil
	}

	levels := make([]PollutantLevel, 0, len(pollutants))
	for _, p := range pollutants {
		level := PollutantLevel{
			Code: p.Code,
			Name: p.DisplayName,
		}
		if level.Name == "" {
			level.Name = strings.ToUpper(p.Code)
		}
		if p.Concentration != nil && p.Concentration.Value != nil {
			level.Known = true
			level.Value = *p.Concentration.Value
			level.Unit = unitLabel(p.Concentration.Units)
		}
		levels = append(levels, level)
	}

	return levels
}

func copyRecommendations(recs map[string]string) map[string]string {
	if len(recs) == 0 {
		return nil
	}
	out := make(map[string]string, len(recs))
	for k, v := range recs {
		out[k] = v
	}
	return out
}

// unitLabel maps provider unit enums to display labels.
func unitLabel(units string) string {
	switch units {
	case "PARTS_PER_BILLION":
		return "ppb"
	case "MICROGRAMS_PER_CUBIC_METER":
		return "μg/m³"
	default:
		return units
	}
}

// unitEnum is the inverse of unitLabel.
func unitEnum(label string) string {
	switch label {
	case "ppb":
		return "PARTS_PER_BILLION"
	case "μg/m³":
		return "MICROGRAMS_PER_CUBIC_METER"
	default:
		return label
	}
}

// DisplayColor returns the hex color for the snapshot, falling back to
// a category-based color when the provider sent none.
func (s *Snapshot) DisplayColor() string {
	if s.Color != nil {
		return s.Color.Hex()
	}
	return colormap.ForCategory(s.Category)
}

// Document reconstructs a canonical provider document from the
// snapshot. Normalizing the result yields an equal snapshot.
func (s *Snapshot) Document() *Document {
	doc := &Document{
		HealthRecommendations: copyRecommendations(s.HealthRecommendations),
	}

	for _, level := range s.Pollutants {
		p := Pollutant{
			Code:        level.Code,
			DisplayName: level.Name,
		}
		if level.Known {
			value := level.Value
			p.Concentration = &Concentration{
				Value: &value,
				Units: unitEnum(level.Unit),
			}
		}
		doc.Pollutants = append(doc.Pollutants, p)
	}

	if !s.Available {
		return doc
	}

	if s.IndexCode == "" && s.AQIDisplay == "" && s.Color == nil {
		aqi := s.AQI
		doc.AQI = &aqi
		doc.Category = s.Category
		doc.DominantPollutant = s.DominantPollutant
		return doc
	}

	idx := Index{
		Code:              s.IndexCode,
		AQI:               s.AQI,
		AQIDisplay:        s.AQIDisplay,
		Category:          s.Category,
		DominantPollutant: s.DominantPollutant,
	}
	if s.Color != nil {
		idx.Color = &ColorChannels{
			Red:   float64(s.Color.R) / 255,
			Green: float64(s.Color.G) / 255,
			Blue:  float64(s.Color.B) / 255,
		}
	}
	if idx.Code == "" {
		doc.Index = &idx
	} else {
		doc.Indexes = []Index{idx}
	}

	return doc
}
