package config

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjtimmons/synbio/internal/protocol"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := Load(v)
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"gibson", c.GibsonProtocol(), protocol.DefaultGibsonConfig()},
		{"golden gate", c.GoldenGateProtocol(), protocol.DefaultGoldenGateConfig()},
		{"clone", c.CloneProtocol(), protocol.DefaultCloneConfig()},
		{"picklist", c.Picklist.Platform, "csv"},
		{"verbose", c.Verbose, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("Load() %s = %+v, want %+v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_Settings(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("settings", filepath.Join("testdata", "settings.yaml"))

	c, err := Load(v)
	require.NoError(t, err)

	assert.True(t, c.Verbose)
	assert.Equal(t, "tecan", c.Picklist.Platform)

	gibson := c.GibsonProtocol()
	assert.Equal(t, 20, gibson.Homology.MinOverlap)
	assert.Equal(t, 120, gibson.Homology.MaxOverlap)
	assert.Equal(t, "NEBuilder HiFi master mix", gibson.MasterMix.Name)
	assert.Equal(t, "2X", gibson.MasterMix.Concentration)
	assert.Equal(t, 15*time.Minute, gibson.Duration)

	assert.Equal(t, []string{"EcoRI", "XbaI"}, c.CloneProtocol().Ligation.Enzymes)
	assert.Equal(t, []string{"BsaI", "BpiI"}, c.GoldenGateProtocol().Ligation.Enzymes)
}

func TestLoad_MissingSettings(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("settings", filepath.Join("testdata", "missing.yaml"))

	_, err := Load(v)
	assert.Error(t, err)
}
