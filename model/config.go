package model

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchemaSrc string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaSrc)

// GameConfig is the first frame the engine sends. Only the unit table is
// used; the rest of the document is ignored.
type GameConfig struct {
	UnitInformation []UnitInfo `json:"unitInformation"`
}

// UnitInfo is one entry of unitInformation. Engine versions disagree on
// field names, so both the legacy single-cost/damage fields and the split
// cost1/cost2, attackDamage* fields are accepted.
type UnitInfo struct {
	Shorthand          string   `json:"shorthand"`
	Display            string   `json:"display,omitempty"`
	Cost               float64  `json:"cost,omitempty"`
	Cost1              *float64 `json:"cost1,omitempty"`
	Cost2              *float64 `json:"cost2,omitempty"`
	Damage             float64  `json:"damage,omitempty"`
	DamageI            float64  `json:"damageI,omitempty"`
	AttackDamageWalker float64  `json:"attackDamageWalker,omitempty"`
	Range              float64  `json:"range,omitempty"`
	AttackRange        float64  `json:"attackRange,omitempty"`
	Stability          float64  `json:"stability,omitempty"`
	StartHealth        float64  `json:"startHealth,omitempty"`
	Speed              float64  `json:"speed,omitempty"`
}

// ConfigTable is the read-only unit table resolved once at game start.
type ConfigTable struct {
	units       [len(unitKindOrder)]UnitInfo
	byShorthand map[string]UnitKind
}

var unitKindOrder = [...]UnitKind{Wall, Support, Turret, FastAttacker, SplashAttacker, DebuffAttacker}

// ParseConfig validates the raw config frame against the embedded schema and
// builds the unit table from it.
func ParseConfig(data []byte) (*ConfigTable, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := configSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return NewConfigTable(cfg)
}

// NewConfigTable maps the first six unitInformation entries onto the unit
// kinds. Later entries (the engine's "remove" pseudo-unit) are ignored.
func NewConfigTable(cfg GameConfig) (*ConfigTable, error) {
	if len(cfg.UnitInformation) < len(unitKindOrder) {
		return nil, fmt.Errorf("config lists %d unit types, want at least %d", len(cfg.UnitInformation), len(unitKindOrder))
	}
	t := &ConfigTable{byShorthand: make(map[string]UnitKind, len(unitKindOrder))}
	for _, k := range unitKindOrder {
		info := cfg.UnitInformation[k]
		if info.Shorthand == "" {
			return nil, fmt.Errorf("unit %s has no shorthand", k)
		}
		if prev, dup := t.byShorthand[info.Shorthand]; dup {
			return nil, fmt.Errorf("shorthand %q used by both %s and %s", info.Shorthand, prev, k)
		}
		t.units[k] = info
		t.byShorthand[info.Shorthand] = k
	}
	return t, nil
}

// Info returns the raw config entry for k.
func (t *ConfigTable) Info(k UnitKind) UnitInfo { return t.units[k] }

// Shorthand is the code the engine expects in spawn commands.
func (t *ConfigTable) Shorthand(k UnitKind) string { return t.units[k].Shorthand }

// Kind resolves an engine shorthand back to a unit kind.
func (t *ConfigTable) Kind(shorthand string) (UnitKind, bool) {
	k, ok := t.byShorthand[shorthand]
	return k, ok
}

// Cost returns the price of one unit of k, indexed by ResourcePool.
// Legacy configs carry a single cost, paid in Matter for structures and
// Tempo for attackers.
func (t *ConfigTable) Cost(k UnitKind) [2]float64 {
	info := t.units[k]
	if info.Cost1 != nil || info.Cost2 != nil {
		var c [2]float64
		if info.Cost1 != nil {
			c[Matter] = *info.Cost1
		}
		if info.Cost2 != nil {
			c[Tempo] = *info.Cost2
		}
		return c
	}
	if k.Stationary() {
		return [2]float64{Matter: info.Cost}
	}
	return [2]float64{Tempo: info.Cost}
}

// Damage is the per-hit damage k deals to mobile units.
func (t *ConfigTable) Damage(k UnitKind) float64 {
	info := t.units[k]
	switch {
	case info.AttackDamageWalker > 0:
		return info.AttackDamageWalker
	case info.DamageI > 0:
		return info.DamageI
	}
	return info.Damage
}

// Range is how far k can attack, in cells.
func (t *ConfigTable) Range(k UnitKind) float64 {
	info := t.units[k]
	if info.AttackRange > 0 {
		return info.AttackRange
	}
	return info.Range
}
