package hcscrgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Registry holds the machine profiles that can be selected by identifier.
type Registry struct {
	profiles []*MachineProfile
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry with the built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []*MachineProfile{C64Profile, KC87Profile, SharpMZProfile, Z1013Profile} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a profile. Identifiers must be unique.
func (r *Registry) Register(p *MachineProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, existing := range r.profiles {
		if existing.Identifier == p.Identifier {
			return fmt.Errorf("profile %q already registered", p.Identifier)
		}
	}
	r.profiles = append(r.profiles, p)
	return nil
}

// Lookup returns the profile with the given identifier or an
// *UnknownProfileError listing every known identifier.
func (r *Registry) Lookup(identifier string) (*MachineProfile, error) {
	for _, p := range r.profiles {
		if p.Identifier == identifier {
			return p, nil
		}
	}
	return nil, &UnknownProfileError{Identifier: identifier, Known: r.Identifiers()}
}

// Identifiers returns the registered identifiers in registration order.
func (r *Registry) Identifiers() []string {
	ids := make([]string, len(r.profiles))
	for i, p := range r.profiles {
		ids[i] = p.Identifier
	}
	return ids
}

// Profiles returns the registered profiles in registration order.
func (r *Registry) Profiles() []*MachineProfile {
	return append([]*MachineProfile(nil), r.profiles...)
}

type profileFile struct {
	Profiles []profileConfig `toml:"profile"`
}

type layoutConfig struct {
	Order             string `toml:"order"`
	GlyphWidth        int    `toml:"glyph_width"`
	GlyphHeight       int    `toml:"glyph_height"`
	OffsetLeft        int    `toml:"offset_left"`
	OffsetTop         int    `toml:"offset_top"`
	SpacingHorizontal int    `toml:"spacing_horizontal"`
	SpacingVertical   int    `toml:"spacing_vertical"`
}

type profileConfig struct {
	Identifier  string       `toml:"identifier"`
	Description string       `toml:"description"`
	Lines       int          `toml:"lines"`
	Columns     int          `toml:"columns"`
	Layout      layoutConfig `toml:"layout"`
	Charsets    []string     `toml:"charsets"`
	// Per-charset bit masks or'ed into the code. Defaults to the plain code.
	CharacterRAM []int `toml:"character_ram"`
	// Per-charset color RAM values. Empty for machines without color RAM.
	ColorRAM            []int  `toml:"color_ram"`
	CharacterRAMAddress uint16 `toml:"character_ram_address"`
	ColorRAMAddress     uint16 `toml:"color_ram_address"`
}

// ParseProfiles reads machine profiles from TOML:
//
//	[[profile]]
//	identifier = "cpc"
//	lines = 25
//	columns = 40
//	charsets = ["cpc/font.png"]
//	color_ram = [0x01]
//	[profile.layout]
//	order = "row"
//	glyph_width = 8
//	glyph_height = 8
func ParseProfiles(data string) ([]*MachineProfile, error) {
	var f profileFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown profile keys: %s", strings.Join(keys, ", "))
	}

	profiles := make([]*MachineProfile, 0, len(f.Profiles))
	for _, pc := range f.Profiles {
		p, err := pc.build()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// LoadProfiles reads machine profiles from a TOML file.
func LoadProfiles(path string) ([]*MachineProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	profiles, err := ParseProfiles(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

func (pc profileConfig) build() (*MachineProfile, error) {
	order := RowInLowNibble
	if pc.Layout.Order != "" {
		var err error
		if order, err = ParseNibbleOrder(pc.Layout.Order); err != nil {
			return nil, fmt.Errorf("profile %s: %w", pc.Identifier, err)
		}
	}

	p := &MachineProfile{
		Identifier:  pc.Identifier,
		Description: pc.Description,
		Lines:       pc.Lines,
		Columns:     pc.Columns,
		Layout: Layout{
			Order:             order,
			GlyphWidth:        pc.Layout.GlyphWidth,
			GlyphHeight:       pc.Layout.GlyphHeight,
			OffsetLeft:        pc.Layout.OffsetLeft,
			OffsetTop:         pc.Layout.OffsetTop,
			SpacingHorizontal: pc.Layout.SpacingHorizontal,
			SpacingVertical:   pc.Layout.SpacingVertical,
		},
		Charsets:            pc.Charsets,
		CharacterRAM:        CodeMapping,
		CharacterRAMAddress: pc.CharacterRAMAddress,
		ColorRAMAddress:     pc.ColorRAMAddress,
	}

	if len(pc.CharacterRAM) > 0 {
		masks, err := ramTable(pc.Identifier, "character_ram", pc.CharacterRAM, len(pc.Charsets))
		if err != nil {
			return nil, err
		}
		p.CharacterRAM = CharsetOrMapping(masks...)
	}
	if len(pc.ColorRAM) > 0 {
		values, err := ramTable(pc.Identifier, "color_ram", pc.ColorRAM, len(pc.Charsets))
		if err != nil {
			return nil, err
		}
		p.ColorRAM = CharsetTableMapping(values...)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ramTable checks a per-charset byte table. A single value applies to
// every charset.
func ramTable(identifier, key string, values []int, charsets int) ([]byte, error) {
	if len(values) != 1 && len(values) != charsets {
		return nil, fmt.Errorf("profile %s: %s has %d entries for %d charsets",
			identifier, key, len(values), charsets)
	}
	table := make([]byte, charsets)
	for i := range table {
		v := values[0]
		if len(values) > 1 {
			v = values[i]
		}
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("profile %s: %s value %d out of byte range", identifier, key, v)
		}
		table[i] = byte(v)
	}
	return table, nil
}
