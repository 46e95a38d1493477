// Package config handles run configuration loading and management.
// Authored scene parameters (camera, lighting, interpolation) are
// compiled into the scene variants; config covers run ambience only.
package config

// Config holds all run settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig selects which compiled-in scene to render.
type SceneConfig struct {
	Name     string `yaml:"name"`
	AssetDir string `yaml:"asset_dir"`
}

// OutputConfig holds frame output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Format is png, tga or bmp.
	Format string `yaml:"format"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	// ShadowPass enables the depth pre-pass from the light's view.
	ShadowPass bool `yaml:"shadow_pass"`
	// ShadowMapSize is the shadow map edge length when ShadowPass is on.
	ShadowMapSize int `yaml:"shadow_map_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Name:     "eagle",
			AssetDir: "assets",
		},
		Output: OutputConfig{
			Dir:    "out",
			Format: "tga",
		},
		Render: RenderConfig{
			ShadowPass:    false,
			ShadowMapSize: 1024,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
