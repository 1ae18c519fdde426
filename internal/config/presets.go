package config

// Presets holds named overrides per field. Only non-zero fields of a
// preset are applied by Apply.
var Presets = map[string]map[string]*Config{
	"linear": {
		"origin": {Field: "linear", Dt: 0.05, Marker: MarkerConfig{X: 0, Y: 0}},
		"below":  {Field: "linear", Dt: 0.05, Marker: MarkerConfig{X: -4, Y: -4}},
		"coarse": {Field: "linear", Dt: 0.2, Marker: MarkerConfig{X: -4, Y: 3}},
	},
	"logistic": {
		"growth":  {Field: "logistic", Dt: 0.05, Marker: MarkerConfig{X: -5, Y: 0.1}},
		"decline": {Field: "logistic", Dt: 0.02, Marker: MarkerConfig{X: -5, Y: 1.8}},
	},
	"sine": {
		"forced": {Field: "sine", Dt: 0.05, Marker: MarkerConfig{X: -5, Y: 2}},
	},
	"decay": {
		"settle": {Field: "decay", Dt: 0.05, Marker: MarkerConfig{X: -5, Y: 4}},
	},
	"quadratic": {
		"steep": {Field: "quadratic", Dt: 0.01, Threshold: 1.0, Marker: MarkerConfig{X: -3, Y: 0}},
	},
}

func GetPreset(field, preset string) *Config {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	cfg, ok := fieldPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(field string) []string {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fieldPresets))
	for name := range fieldPresets {
		names = append(names, name)
	}
	return names
}

// Apply copies the preset's field, step, threshold and start position
// into c. Zero values in the preset are ignored, except the start
// position which is always taken.
func (c *Config) Apply(p *Config) {
	if p == nil {
		return
	}
	if p.Field != "" {
		c.Field = p.Field
	}
	if p.Dt > 0 {
		c.Dt = p.Dt
	}
	if p.Threshold > 0 {
		c.Threshold = p.Threshold
	}
	c.Marker.X = p.Marker.X
	c.Marker.Y = p.Marker.Y
	c.Marker.Z = p.Marker.Z
}
