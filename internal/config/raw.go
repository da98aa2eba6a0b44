package config

type RawWindowDefaults struct {
	Title       *string `yaml:"title"`
	Width       *int    `yaml:"width"`
	Height      *int    `yaml:"height"`
	Resizable   *bool   `yaml:"resizable"`
	Decorations *bool   `yaml:"decorations"`
	Visible     *bool   `yaml:"visible"`
	AlwaysOnTop *bool   `yaml:"always_on_top"`
}

type RawLogging struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

type RawConfig struct {
	Backend *string            `yaml:"backend"`
	Logging *RawLogging        `yaml:"logging"`
	Window  *RawWindowDefaults `yaml:"window"`
}

// apply overlays the present raw fields onto cfg in place. Absent fields
// leave cfg untouched.
func (r RawConfig) apply(cfg *Config) {
	if r.Backend != nil {
		cfg.Backend = *r.Backend
	}
	if r.Logging != nil {
		if r.Logging.Level != nil {
			cfg.Logging.Level = *r.Logging.Level
		}
		if r.Logging.Format != nil {
			cfg.Logging.Format = *r.Logging.Format
		}
	}
	if r.Window != nil {
		if r.Window.Title != nil {
			cfg.Window.Title = *r.Window.Title
		}
		if r.Window.Width != nil {
			cfg.Window.Width = *r.Window.Width
		}
		if r.Window.Height != nil {
			cfg.Window.Height = *r.Window.Height
		}
		if r.Window.Resizable != nil {
			cfg.Window.Resizable = *r.Window.Resizable
		}
		if r.Window.Decorations != nil {
			cfg.Window.Decorations = *r.Window.Decorations
		}
		if r.Window.Visible != nil {
			cfg.Window.Visible = *r.Window.Visible
		}
		if r.Window.AlwaysOnTop != nil {
			cfg.Window.AlwaysOnTop = *r.Window.AlwaysOnTop
		}
	}
}
