package ranking

// Profile selects which weight set and scorers are active. The two profiles
// serve different corpora: text-backed documents with OCR output and
// embeddings, versus label-only documents where metadata is all there is.
type Profile string

const (
	// ProfileText is the canonical profile for OCR-backed corpora:
	// semantic + text + label signals with an additive popularity boost.
	ProfileText Profile = "text"
	// ProfileLabel is the metadata-only profile: labels dominate, with a
	// filename exact-match bonus instead of the semantic signal.
	ProfileLabel Profile = "label"
)

// Config holds all weights and thresholds for the ranking engine. Values are
// fixed policy constants surfaced here so they stay documented and testable.
type Config struct {
	Profile Profile `yaml:"profile"`

	// ProfileText weights (sum to 1.0) plus the popularity boost cap.
	SemanticWeight     float64 `yaml:"semantic_weight"`      // default: 0.4
	TextMatchWeight    float64 `yaml:"text_match_weight"`    // default: 0.3
	LabelMatchWeight   float64 `yaml:"label_match_weight"`   // default: 0.3
	PopularityBoostCap float64 `yaml:"popularity_boost_cap"` // default: 0.1

	// ProfileLabel weights.
	LabelOnlyLabelWeight float64 `yaml:"label_only_label_weight"` // default: 0.6
	LabelOnlyTextWeight  float64 `yaml:"label_only_text_weight"`  // default: 0.3
	FilenameBonus        float64 `yaml:"filename_bonus"`          // default: 0.1

	// Popularity sub-score budget (sum to 1.0).
	RatingWeight  float64 `yaml:"rating_weight"`  // default: 0.5
	RecencyWeight float64 `yaml:"recency_weight"` // default: 0.3
	ViewsWeight   float64 `yaml:"views_weight"`   // default: 0.2

	// RecencyWindowDays is the linear decay window for the recency boost.
	RecencyWindowDays int `yaml:"recency_window_days"` // default: 30
	// ViewSaturation is the view count at which the view boost saturates.
	ViewSaturation int `yaml:"view_saturation"` // default: 50

	// MinScore is the search-mode relevance cutoff: documents with a
	// combined score at or below it are excluded. Suggestion mode ignores it.
	MinScore float64 `yaml:"min_score"` // default: 0.1
}

// DefaultConfig returns the canonical ranking configuration.
func DefaultConfig() *Config {
	return &Config{
		Profile:              ProfileText,
		SemanticWeight:       0.4,
		TextMatchWeight:      0.3,
		LabelMatchWeight:     0.3,
		PopularityBoostCap:   0.1,
		LabelOnlyLabelWeight: 0.6,
		LabelOnlyTextWeight:  0.3,
		FilenameBonus:        0.1,
		RatingWeight:         0.5,
		RecencyWeight:        0.3,
		ViewsWeight:          0.2,
		RecencyWindowDays:    30,
		ViewSaturation:       50,
		MinScore:             0.1,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Profile == "" {
		c.Profile = d.Profile
	}
	if c.SemanticWeight == 0 {
		c.SemanticWeight = d.SemanticWeight
	}
	if c.TextMatchWeight == 0 {
		c.TextMatchWeight = d.TextMatchWeight
	}
	if c.LabelMatchWeight == 0 {
		c.LabelMatchWeight = d.LabelMatchWeight
	}
	if c.PopularityBoostCap == 0 {
		c.PopularityBoostCap = d.PopularityBoostCap
	}
	if c.LabelOnlyLabelWeight == 0 {
		c.LabelOnlyLabelWeight = d.LabelOnlyLabelWeight
	}
	if c.LabelOnlyTextWeight == 0 {
		c.LabelOnlyTextWeight = d.LabelOnlyTextWeight
	}
	if c.FilenameBonus == 0 {
		c.FilenameBonus = d.FilenameBonus
	}
	if c.RatingWeight == 0 {
		c.RatingWeight = d.RatingWeight
	}
	if c.RecencyWeight == 0 {
		c.RecencyWeight = d.RecencyWeight
	}
	if c.ViewsWeight == 0 {
		c.ViewsWeight = d.ViewsWeight
	}
	if c.RecencyWindowDays == 0 {
		c.RecencyWindowDays = d.RecencyWindowDays
	}
	if c.ViewSaturation == 0 {
		c.ViewSaturation = d.ViewSaturation
	}
	if c.MinScore == 0 {
		c.MinScore = d.MinScore
	}
}
