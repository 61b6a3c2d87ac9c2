// Package settings holds the server-side configuration CSP negotiates
// from: supported protocol versions, mandatory/forbidden flags, and the
// per-interface descriptors a GetSettings reply advertises (spec §6).
// Loaded via spf13/viper the way the teacher's pkg/config package loads
// YAML + environment configuration, trimmed to the knobs this protocol
// core actually needs.
package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/framing"
	"github.com/marmos91/csp/pkg/wire"
)

// InterfaceDescriptor is one entry of the GetSettings reply (spec §6):
// a struct id, its current interface version, and the data flags it
// mandates or forbids.
type InterfaceDescriptor struct {
	ID                 wire.StructID
	CurrentVersion     uint32
	MandatoryDataFlags ctx.DataFlags
	ForbiddenDataFlags ctx.DataFlags
}

// Config is the server's negotiable policy plus listener configuration.
type Config struct {
	ListenAddr                string                `mapstructure:"listen_addr"`
	SupportedProtocolVersions []uint8               `mapstructure:"supported_protocol_versions"`
	MandatoryCommonFlags      uint16                `mapstructure:"mandatory_common_flags"`
	ForbiddenCommonFlags      uint16                `mapstructure:"forbidden_common_flags"`
	BumpRegionBytes           int                    `mapstructure:"bump_region_bytes"`
	LogLevel                  string                `mapstructure:"log_level"`
	LogFormat                 string                `mapstructure:"log_format"`
	Interfaces                []InterfaceDescriptor `mapstructure:"-"`
}

// Defaults mirrors the teacher's pkg/config layered-defaults approach: a
// fully populated Config a caller can override field-by-field rather than
// hand-assembling one from scratch.
func Defaults() Config {
	return Config{
		ListenAddr:                "127.0.0.1:9190",
		SupportedProtocolVersions: []uint8{2, 1},
		MandatoryCommonFlags:      0,
		ForbiddenCommonFlags:      0,
		BumpRegionBytes:           1 << 20,
		LogLevel:                  "INFO",
		LogFormat:                 "text",
	}
}

// Load reads configuration from path (if non-empty) and the environment
// (CSP_ prefix), falling back to Defaults for anything unset — the same
// viper-based layering the teacher's pkg/config.Load performs.
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetEnvPrefix("CSP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("supported_protocol_versions", cfg.SupportedProtocolVersions)
	v.SetDefault("mandatory_common_flags", cfg.MandatoryCommonFlags)
	v.SetDefault("forbidden_common_flags", cfg.ForbiddenCommonFlags)
	v.SetDefault("bump_region_bytes", cfg.BumpRegionBytes)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Policy projects Config into the framing.Policy the dispatcher checks
// common-flag compatibility against.
func (c Config) Policy() framing.Policy {
	return framing.Policy{
		SupportedProtocolVersions: c.SupportedProtocolVersions,
		MandatoryCommonFlags:      ctx.CommonFlags(c.MandatoryCommonFlags),
		ForbiddenCommonFlags:      ctx.CommonFlags(c.ForbiddenCommonFlags),
	}
}

// Encode writes the GetSettings reply body: supported protocol versions,
// mandatory/forbidden common flags, then each interface descriptor (spec
// §6: "Settings message").
func (c Config) Encode(sink *wire.Sink, bigEndian bool) error {
	if len(c.SupportedProtocolVersions) > 255 {
		return fmt.Errorf("too many supported protocol versions")
	}
	if err := sink.WriteByte(byte(len(c.SupportedProtocolVersions))); err != nil {
		return err
	}
	for _, v := range c.SupportedProtocolVersions {
		if err := sink.WriteByte(v); err != nil {
			return err
		}
	}
	if err := wire.WriteFixed(sink, c.MandatoryCommonFlags, bigEndian); err != nil {
		return err
	}
	if err := wire.WriteFixed(sink, c.ForbiddenCommonFlags, bigEndian); err != nil {
		return err
	}
	if err := wire.WriteFixed(sink, uint32(len(c.Interfaces)), bigEndian); err != nil {
		return err
	}
	for _, iface := range c.Interfaces {
		if err := wire.WriteBytes(sink, iface.ID[:]); err != nil {
			return err
		}
		if err := wire.WriteFixed(sink, iface.CurrentVersion, bigEndian); err != nil {
			return err
		}
		if err := wire.WriteFixed(sink, uint16(iface.MandatoryDataFlags), bigEndian); err != nil {
			return err
		}
		if err := wire.WriteFixed(sink, uint16(iface.ForbiddenDataFlags), bigEndian); err != nil {
			return err
		}
	}
	return nil
}

// Decode is the dual of Encode, used by cspctl to print a server's
// advertised settings.
func Decode(src *wire.Source, bigEndian bool) (Config, error) {
	var c Config
	count, err := src.ReadByte()
	if err != nil {
		return c, err
	}
	c.SupportedProtocolVersions = make([]uint8, count)
	for i := range c.SupportedProtocolVersions {
		v, err := src.ReadByte()
		if err != nil {
			return c, err
		}
		c.SupportedProtocolVersions[i] = v
	}
	mand, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return c, err
	}
	forb, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return c, err
	}
	c.MandatoryCommonFlags = mand
	c.ForbiddenCommonFlags = forb

	n, err := wire.ReadFixed[uint32](src, bigEndian)
	if err != nil {
		return c, err
	}
	c.Interfaces = make([]InterfaceDescriptor, n)
	for i := range c.Interfaces {
		idBytes, err := wire.ReadBytes(src, 16)
		if err != nil {
			return c, err
		}
		copy(c.Interfaces[i].ID[:], idBytes)
		ver, err := wire.ReadFixed[uint32](src, bigEndian)
		if err != nil {
			return c, err
		}
		mandDF, err := wire.ReadFixed[uint16](src, bigEndian)
		if err != nil {
			return c, err
		}
		forbDF, err := wire.ReadFixed[uint16](src, bigEndian)
		if err != nil {
			return c, err
		}
		c.Interfaces[i].CurrentVersion = ver
		c.Interfaces[i].MandatoryDataFlags = ctx.DataFlags(mandDF)
		c.Interfaces[i].ForbiddenDataFlags = ctx.DataFlags(forbDF)
	}
	return c, nil
}
