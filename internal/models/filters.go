package models

// TimeOfDay buckets a plan can target. More than one may be selected.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// Environment preference for the itinerary.
type Environment string

const (
	EnvIndoor  Environment = "indoor"
	EnvOutdoor Environment = "outdoor"
	EnvMixed   Environment = "mixed"
)

// GroupSize the plan is for.
type GroupSize string

const (
	GroupSolo  GroupSize = "solo"
	GroupDuo   GroupSize = "duo"
	GroupSmall GroupSize = "small"
	GroupLarge GroupSize = "large"
)

// PriceRange applies to food stops only.
type PriceRange string

const (
	PriceBudget   PriceRange = "budget"
	PriceModerate PriceRange = "moderate"
	PriceUpscale  PriceRange = "upscale"
)

// SpecialOption is the single "special mode" a plan may carry.
type SpecialOption string

const (
	SpecialNone       SpecialOption = "none"
	SpecialDate       SpecialOption = "date"
	SpecialFamily     SpecialOption = "family"
	SpecialTourist    SpecialOption = "tourist"
	SpecialAccessible SpecialOption = "accessible"
)

// Filters is the fixed-shape filter payload attached to a search.
// PriceRange is only meaningful when PlanFood is set.
type Filters struct {
	TimesOfDay    []TimeOfDay   `json:"timesOfDay"`
	Environment   Environment   `json:"environment"`
	GroupSize     GroupSize     `json:"groupSize"`
	PlanTransit   bool          `json:"planTransit"`
	PlanFood      bool          `json:"planFood"`
	PriceRange    PriceRange    `json:"priceRange,omitempty"`
	SpecialOption SpecialOption `json:"specialOption"`
}

// Normalize clears fields that carry no meaning for the current toggles.
func (f *Filters) Normalize() {
	if !f.PlanFood {
		f.PriceRange = ""
	}
	if f.Environment == "" {
		f.Environment = EnvMixed
	}
	if f.GroupSize == "" {
		f.GroupSize = GroupSolo
	}
	if f.SpecialOption == "" {
		f.SpecialOption = SpecialNone
	}
}

// SearchData is the query plus filter set that produced a session. Immutable
// once the session is created.
type SearchData struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters"`
}
