package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"DarkForest/internal/controls"
	"DarkForest/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	fileName  = "darkforest"
	envPrefix = "DARKFOREST"
)

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	X      int    `mapstructure:"x"`
	Y      int    `mapstructure:"y"`
}

type PlayerConfig struct {
	WalkingSpeed   float32    `mapstructure:"walkingSpeed"`
	TurningSpeed   float32    `mapstructure:"turningSpeed"`
	TargetRadius   float32    `mapstructure:"targetRadius"`
	DirectionAngle float32    `mapstructure:"directionAngle"`
	StartPosition  [3]float32 `mapstructure:"startPosition"`
}

type RenderConfig struct {
	TickRate       int  `mapstructure:"tickRate"` // redraws per second
	FrustumCulling bool `mapstructure:"frustumCulling"`
}

type LightsConfig struct {
	Ambient          [3]float32 `mapstructure:"ambient"`
	DirectionalColor [3]float32 `mapstructure:"directionalColor"`
	Direction        [3]float32 `mapstructure:"direction"`
}

type FogConfig struct {
	Near  float32    `mapstructure:"near"`
	Far   float32    `mapstructure:"far"`
	Color [3]float32 `mapstructure:"color"`
}

type SceneConfig struct {
	File string `mapstructure:"file"` // optional layout override
	Seed int64  `mapstructure:"seed"`
}

// Config is the decoded application configuration.
type Config struct {
	LogLevel string              `mapstructure:"logLevel"`
	Window   WindowConfig        `mapstructure:"window"`
	Player   PlayerConfig        `mapstructure:"player"`
	Keys     map[string][]string `mapstructure:"keys"`
	Render   RenderConfig        `mapstructure:"render"`
	Lights   LightsConfig        `mapstructure:"lights"`
	Fog      FogConfig           `mapstructure:"fog"`
	Scene    SceneConfig         `mapstructure:"scene"`

	v *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 704)
	v.SetDefault("window.height", 480)
	v.SetDefault("window.title", "Dark Forest")
	v.SetDefault("window.x", -1)
	v.SetDefault("window.y", -1)

	v.SetDefault("player.walkingSpeed", 0.2)
	v.SetDefault("player.turningSpeed", 0.1)
	v.SetDefault("player.targetRadius", 40)
	v.SetDefault("player.directionAngle", 1.5707963267948966)
	v.SetDefault("player.startPosition", []float64{0, 3, -7})

	v.SetDefault("keys.forward", []string{"W", "UP"})
	v.SetDefault("keys.backward", []string{"S", "DOWN"})
	v.SetDefault("keys.left", []string{"A", "LEFT"})
	v.SetDefault("keys.right", []string{"D", "RIGHT"})

	v.SetDefault("render.tickRate", 60)
	v.SetDefault("render.frustumCulling", true)

	v.SetDefault("lights.ambient", []float64{0.2, 0.2, 0.2})
	v.SetDefault("lights.directionalColor", []float64{0.8, 0.8, 0.8})
	v.SetDefault("lights.direction", []float64{-2, -5, -7})

	v.SetDefault("fog.near", 2)
	v.SetDefault("fog.far", 60)
	v.SetDefault("fog.color", []float64{0.3, 0, 0})

	v.SetDefault("scene.file", "")
	v.SetDefault("scene.seed", 1337)
}

// Load reads darkforest.yaml from dir (or the working directory) on top of
// the defaults. A missing file is not an error. DARKFOREST_* environment
// variables override both, e.g. DARKFOREST_FOG_FAR=80.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the engine cannot run without.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.TickRate <= 0 {
		return fmt.Errorf("invalid tick rate %d", c.Render.TickRate)
	}
	if c.Fog.Far <= c.Fog.Near {
		return fmt.Errorf("fog far (%g) must be greater than near (%g)", c.Fog.Far, c.Fog.Near)
	}
	if _, err := c.KeyMap(); err != nil {
		return fmt.Errorf("invalid key table: %w", err)
	}
	return nil
}

// File returns the config file in use, or "" when running on defaults.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

func (c *Config) KeyMap() (controls.KeyMap, error) {
	return controls.ParseKeyMap(c.Keys)
}

func (c *Config) Heading() controls.HeadingState {
	p := c.Player
	return controls.NewHeadingState(p.DirectionAngle, p.TurningSpeed, p.WalkingSpeed, p.TargetRadius)
}

// TickInterval is the redraw period derived from the tick rate.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Render.TickRate)
}

// Watch reloads the file when it changes and hands the new config to
// onChange. Invalid edits are logged and skipped. It does nothing when no
// config file was found.
func (c *Config) Watch(onChange func(*Config)) {
	if c.File() == "" {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(c.v)
		if err != nil {
			logger.Log.Warn("Ignoring config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		logger.Log.Info("Config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		onChange(next)
	})
	c.v.WatchConfig()
}
