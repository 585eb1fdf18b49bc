package visualcrossing

// Snapshot is the subset of the timeline response the widget reads
type Snapshot struct {
	Address           string             `json:"address"`
	ResolvedAddress   string             `json:"resolvedAddress,omitempty"`
	Timezone          string             `json:"timezone,omitempty"`
	CurrentConditions *CurrentConditions `json:"currentConditions"`
	Days              []Day              `json:"days"`
}

// CurrentConditions is the "current" block requested with include=current
type CurrentConditions struct {
	Conditions string  `json:"conditions"`
	Temp       float64 `json:"temp"`
	FeelsLike  float64 `json:"feelslike"`
	Humidity   float64 `json:"humidity"`
	WindSpeed  float64 `json:"windspeed"`
	Sunrise    string  `json:"sunrise"`
	Sunset     string  `json:"sunset"`
	Visibility float64 `json:"visibility"`
	Pressure   float64 `json:"pressure"`
}

// Day is one daily record; days[0] is today
type Day struct {
	Datetime   string  `json:"datetime"` // YYYY-MM-DD in the location's timezone
	TempMax    float64 `json:"tempmax"`
	TempMin    float64 `json:"tempmin"`
	Conditions string  `json:"conditions"`
	PrecipProb float64 `json:"precipprob"` // null in the payload decodes as 0
}

// Today returns days[0], if present
func (s *Snapshot) Today() (Day, bool) {
	if s == nil || len(s.Days) == 0 {
		return Day{}, false
	}
	return s.Days[0], true
}

// Label is the location label shown and copied by the widget
func (s *Snapshot) Label() string {
	if s == nil {
		return ""
	}
	if s.Address != "" {
		return s.Address
	}
	return s.ResolvedAddress
}
