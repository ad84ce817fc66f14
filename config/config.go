// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/jjtimmons/synbio/internal/assembly"
	"github.com/jjtimmons/synbio/internal/protocol"
)

// ReagentConfig is a reagent's name and concentration
type ReagentConfig struct {
	Name          string `mapstructure:"name"`
	Concentration string `mapstructure:"concentration"`
}

func (r ReagentConfig) reagent() protocol.Reagent {
	return protocol.Reagent{Name: r.Name, Concentration: r.Concentration}
}

// HomologyConfig is how parts are checked for overlapping ends
type HomologyConfig struct {
	// the shortest overlap between neighboring parts
	MinOverlap int `mapstructure:"min-overlap"`

	// the longest overlap between neighboring parts
	MaxOverlap int `mapstructure:"max-overlap"`

	// the number of mismatched bp allowed in an overlap
	MaxMismatch int `mapstructure:"max-mismatch"`
}

// LigationConfig is how parts are digested
type LigationConfig struct {
	// names of the restriction enzymes
	Enzymes []string `mapstructure:"enzymes"`

	// keep only products with a feature matching one of these
	Include []string `mapstructure:"include"`

	// the fewest parts in a product, zero for all of them
	MinCount int `mapstructure:"min-count"`
}

// TransformConfig is for the transformation at the end of every assembly
type TransformConfig struct {
	Cells       ReagentConfig `mapstructure:"cells"`
	CellVolume  float64       `mapstructure:"cell-volume"`
	Volume      float64       `mapstructure:"volume"`
	Media       ReagentConfig `mapstructure:"media"`
	MediaVolume float64       `mapstructure:"media-volume"`
	Temperature float64       `mapstructure:"temperature"`
	Duration    time.Duration `mapstructure:"duration"`
}

// GibsonConfig is for Gibson Assembly
type GibsonConfig struct {
	MasterMix       ReagentConfig `mapstructure:"master-mix"`
	MasterMixVolume float64       `mapstructure:"master-mix-volume"`
	PartVolume      float64       `mapstructure:"part-volume"`
	Temperature     float64       `mapstructure:"temperature"`
	Duration        time.Duration `mapstructure:"duration"`
}

// GoldenGateConfig is for one-pot Golden Gate Assembly
type GoldenGateConfig struct {
	Ligation                LigationConfig `mapstructure:"ligation"`
	EnzymeConcentration     string         `mapstructure:"enzyme-concentration"`
	EnzymeVolume            float64        `mapstructure:"enzyme-volume"`
	Ligase                  ReagentConfig  `mapstructure:"ligase"`
	LigaseVolume            float64        `mapstructure:"ligase-volume"`
	Buffer                  ReagentConfig  `mapstructure:"buffer"`
	BufferVolume            float64        `mapstructure:"buffer-volume"`
	PartVolume              float64        `mapstructure:"part-volume"`
	Cycles                  int            `mapstructure:"cycles"`
	DigestTemperature       float64        `mapstructure:"digest-temperature"`
	LigationTemperature     float64        `mapstructure:"ligation-temperature"`
	CycleDuration           time.Duration  `mapstructure:"cycle-duration"`
	InactivationTemperature float64        `mapstructure:"inactivation-temperature"`
	InactivationDuration    time.Duration  `mapstructure:"inactivation-duration"`
}

// CloneConfig is for a restriction digest and ligation
type CloneConfig struct {
	Ligation                LigationConfig `mapstructure:"ligation"`
	EnzymeConcentration     string         `mapstructure:"enzyme-concentration"`
	EnzymeVolume            float64        `mapstructure:"enzyme-volume"`
	DigestBuffer            ReagentConfig  `mapstructure:"digest-buffer"`
	DigestBufferVolume      float64        `mapstructure:"digest-buffer-volume"`
	PartVolume              float64        `mapstructure:"part-volume"`
	DigestTemperature       float64        `mapstructure:"digest-temperature"`
	DigestDuration          time.Duration  `mapstructure:"digest-duration"`
	Ligase                  ReagentConfig  `mapstructure:"ligase"`
	LigaseVolume            float64        `mapstructure:"ligase-volume"`
	LigaseBuffer            ReagentConfig  `mapstructure:"ligase-buffer"`
	LigaseBufferVolume      float64        `mapstructure:"ligase-buffer-volume"`
	LigationTemperature     float64        `mapstructure:"ligation-temperature"`
	LigationDuration        time.Duration  `mapstructure:"ligation-duration"`
	InactivationTemperature float64        `mapstructure:"inactivation-temperature"`
	InactivationDuration    time.Duration  `mapstructure:"inactivation-duration"`
}

// PicklistConfig is for liquid handler pick-lists
type PicklistConfig struct {
	// the liquid handler, one of picklist.Platforms()
	Platform string `mapstructure:"platform"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	// whether to log progress to stderr
	Verbose bool `mapstructure:"verbose"`

	// path to an optional settings YAML
	Settings string `mapstructure:"settings"`

	Homology   HomologyConfig   `mapstructure:"homology"`
	Transform  TransformConfig  `mapstructure:"transform"`
	Gibson     GibsonConfig     `mapstructure:"gibson"`
	GoldenGate GoldenGateConfig `mapstructure:"goldengate"`
	Clone      CloneConfig      `mapstructure:"clone"`
	Picklist   PicklistConfig   `mapstructure:"picklist"`
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults sets every setting's default on a viper instance. The defaults
// are those of the protocol package's blocks.
func SetDefaults(v *viper.Viper) {
	gibson := protocol.DefaultGibsonConfig()
	v.SetDefault("homology.min-overlap", gibson.Homology.MinOverlap)
	v.SetDefault("homology.max-overlap", gibson.Homology.MaxOverlap)
	v.SetDefault("homology.max-mismatch", gibson.Homology.MaxMismatch)

	transform := protocol.DefaultTransformConfig()
	setReagent(v, "transform.cells", transform.Cells)
	v.SetDefault("transform.cell-volume", transform.CellVolume)
	v.SetDefault("transform.volume", transform.Volume)
	setReagent(v, "transform.media", transform.Media)
	v.SetDefault("transform.media-volume", transform.MediaVolume)
	v.SetDefault("transform.temperature", transform.Temperature)
	v.SetDefault("transform.duration", transform.Duration)

	setReagent(v, "gibson.master-mix", gibson.MasterMix)
	v.SetDefault("gibson.master-mix-volume", gibson.MasterMixVolume)
	v.SetDefault("gibson.part-volume", gibson.PartVolume)
	v.SetDefault("gibson.temperature", gibson.Temperature)
	v.SetDefault("gibson.duration", gibson.Duration)

	gg := protocol.DefaultGoldenGateConfig()
	v.SetDefault("goldengate.ligation.enzymes", gg.Ligation.Enzymes)
	v.SetDefault("goldengate.ligation.include", []string{})
	v.SetDefault("goldengate.ligation.min-count", gg.Ligation.MinCount)
	v.SetDefault("goldengate.enzyme-concentration", gg.EnzymeConcentration)
	v.SetDefault("goldengate.enzyme-volume", gg.EnzymeVolume)
	setReagent(v, "goldengate.ligase", gg.Ligase)
	v.SetDefault("goldengate.ligase-volume", gg.LigaseVolume)
	setReagent(v, "goldengate.buffer", gg.Buffer)
	v.SetDefault("goldengate.buffer-volume", gg.BufferVolume)
	v.SetDefault("goldengate.part-volume", gg.PartVolume)
	v.SetDefault("goldengate.cycles", gg.Cycles)
	v.SetDefault("goldengate.digest-temperature", gg.DigestTemperature)
	v.SetDefault("goldengate.ligation-temperature", gg.LigationTemperature)
	v.SetDefault("goldengate.cycle-duration", gg.CycleDuration)
	v.SetDefault("goldengate.inactivation-temperature", gg.InactivationTemperature)
	v.SetDefault("goldengate.inactivation-duration", gg.InactivationDuration)

	clone := protocol.DefaultCloneConfig()
	v.SetDefault("clone.ligation.enzymes", []string{})
	v.SetDefault("clone.ligation.include", []string{})
	v.SetDefault("clone.ligation.min-count", clone.Ligation.MinCount)
	v.SetDefault("clone.enzyme-concentration", clone.EnzymeConcentration)
	v.SetDefault("clone.enzyme-volume", clone.EnzymeVolume)
	setReagent(v, "clone.digest-buffer", clone.DigestBuffer)
	v.SetDefault("clone.digest-buffer-volume", clone.DigestBufferVolume)
	v.SetDefault("clone.part-volume", clone.PartVolume)
	v.SetDefault("clone.digest-temperature", clone.DigestTemperature)
	v.SetDefault("clone.digest-duration", clone.DigestDuration)
	setReagent(v, "clone.ligase", clone.Ligase)
	v.SetDefault("clone.ligase-volume", clone.LigaseVolume)
	setReagent(v, "clone.ligase-buffer", clone.LigaseBuffer)
	v.SetDefault("clone.ligase-buffer-volume", clone.LigaseBufferVolume)
	v.SetDefault("clone.ligation-temperature", clone.LigationTemperature)
	v.SetDefault("clone.ligation-duration", clone.LigationDuration)
	v.SetDefault("clone.inactivation-temperature", clone.InactivationTemperature)
	v.SetDefault("clone.inactivation-duration", clone.InactivationDuration)

	v.SetDefault("picklist.platform", "csv")
}

func setReagent(v *viper.Viper, key string, r protocol.Reagent) {
	v.SetDefault(key+".name", r.Name)
	v.SetDefault(key+".concentration", r.Concentration)
}

// New returns a new Config struct populated by
// Viper settings (either from the settings file)
// and/or command line arguments
func New() *Config {
	c, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	return c
}

// Load merges the settings file, if one is set, into a viper instance
// and decodes its settings.
func Load(v *viper.Viper) (*Config, error) {
	if settings := v.GetString("settings"); settings != "" {
		v.SetConfigFile(settings)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settings, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GibsonProtocol is the Gibson Assembly block configuration.
func (c *Config) GibsonProtocol() protocol.GibsonConfig {
	return protocol.GibsonConfig{
		Homology: assembly.Homology{
			MinOverlap:  c.Homology.MinOverlap,
			MaxOverlap:  c.Homology.MaxOverlap,
			MaxMismatch: c.Homology.MaxMismatch,
		},
		MasterMix:       c.Gibson.MasterMix.reagent(),
		MasterMixVolume: c.Gibson.MasterMixVolume,
		PartVolume:      c.Gibson.PartVolume,
		Temperature:     c.Gibson.Temperature,
		Duration:        c.Gibson.Duration,
		Transform:       c.transform(),
	}
}

// GoldenGateProtocol is the Golden Gate Assembly block configuration.
func (c *Config) GoldenGateProtocol() protocol.GoldenGateConfig {
	g := c.GoldenGate
	return protocol.GoldenGateConfig{
		Ligation:                g.Ligation.ligation(),
		EnzymeConcentration:     g.EnzymeConcentration,
		EnzymeVolume:            g.EnzymeVolume,
		Ligase:                  g.Ligase.reagent(),
		LigaseVolume:            g.LigaseVolume,
		Buffer:                  g.Buffer.reagent(),
		BufferVolume:            g.BufferVolume,
		PartVolume:              g.PartVolume,
		Cycles:                  g.Cycles,
		DigestTemperature:       g.DigestTemperature,
		LigationTemperature:     g.LigationTemperature,
		CycleDuration:           g.CycleDuration,
		InactivationTemperature: g.InactivationTemperature,
		InactivationDuration:    g.InactivationDuration,
		Transform:               c.transform(),
	}
}

// CloneProtocol is the restriction cloning block configuration.
func (c *Config) CloneProtocol() protocol.CloneConfig {
	cl := c.Clone
	return protocol.CloneConfig{
		Ligation:                cl.Ligation.ligation(),
		EnzymeConcentration:     cl.EnzymeConcentration,
		EnzymeVolume:            cl.EnzymeVolume,
		DigestBuffer:            cl.DigestBuffer.reagent(),
		DigestBufferVolume:      cl.DigestBufferVolume,
		PartVolume:              cl.PartVolume,
		DigestTemperature:       cl.DigestTemperature,
		DigestDuration:          cl.DigestDuration,
		Ligase:                  cl.Ligase.reagent(),
		LigaseVolume:            cl.LigaseVolume,
		LigaseBuffer:            cl.LigaseBuffer.reagent(),
		LigaseBufferVolume:      cl.LigaseBufferVolume,
		LigationTemperature:     cl.LigationTemperature,
		LigationDuration:        cl.LigationDuration,
		InactivationTemperature: cl.InactivationTemperature,
		InactivationDuration:    cl.InactivationDuration,
		Transform:               c.transform(),
	}
}

func (c *Config) transform() protocol.TransformConfig {
	t := c.Transform
	return protocol.TransformConfig{
		Cells:       t.Cells.reagent(),
		CellVolume:  t.CellVolume,
		Volume:      t.Volume,
		Media:       t.Media.reagent(),
		MediaVolume: t.MediaVolume,
		Temperature: t.Temperature,
		Duration:    t.Duration,
	}
}

func (l LigationConfig) ligation() protocol.LigationConfig {
	return protocol.LigationConfig{
		Enzymes:  append([]string(nil), l.Enzymes...),
		Include:  append([]string(nil), l.Include...),
		MinCount: l.MinCount,
	}
}
