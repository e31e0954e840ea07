package config

import (
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// YardConfig describes the yard geometry and the size segregation table
type YardConfig struct {
	Zones                []string         `mapstructure:"zones" validate:"required,min=1,dive,required"`
	Rows                 int              `mapstructure:"rows" validate:"min=1"`
	Bays                 int              `mapstructure:"bays" validate:"min=1"`
	Tiers                int              `mapstructure:"tiers" validate:"min=1"`
	SubSlots             []string         `mapstructure:"sub_slots" validate:"required,min=1"`
	PreferredStackHeight int              `mapstructure:"preferred_stack_height" validate:"min=1,ltefield=Tiers"`
	SizeRules            []SizeRuleConfig `mapstructure:"size_rules" validate:"required,dive"`
}

// SizeRuleConfig is one row of the segregation table, e.g.
//
//	size_rules:
//	  - {size: 20, rows: [6, 7, 8, 9, 10], sub_slots: [A, B]}
type SizeRuleConfig struct {
	Size     int      `mapstructure:"size" validate:"oneof=20 40 45"`
	Rows     []int    `mapstructure:"rows" validate:"required,min=1"`
	SubSlots []string `mapstructure:"sub_slots" validate:"required,min=1"`
}

// ToLayout converts the configuration into a validated domain layout
func (c YardConfig) ToLayout() (yard.Layout, error) {
	layout := yard.Layout{
		Zones:                c.Zones,
		Rows:                 c.Rows,
		Bays:                 c.Bays,
		Tiers:                c.Tiers,
		SubSlots:             c.SubSlots,
		PreferredStackHeight: c.PreferredStackHeight,
	}
	for _, r := range c.SizeRules {
		layout.SizeRules = append(layout.SizeRules, yard.SizeRule{
			Size:     yard.SizeClass(r.Size),
			Rows:     r.Rows,
			SubSlots: r.SubSlots,
		})
	}
	if err := layout.Validate(); err != nil {
		return yard.Layout{}, fmt.Errorf("invalid yard layout: %w", err)
	}
	return layout, nil
}

// yardConfigFromLayout is used to fill defaults from the reference layout
func yardConfigFromLayout(l yard.Layout) YardConfig {
	cfg := YardConfig{
		Zones:                l.Zones,
		Rows:                 l.Rows,
		Bays:                 l.Bays,
		Tiers:                l.Tiers,
		SubSlots:             l.SubSlots,
		PreferredStackHeight: l.PreferredStackHeight,
	}
	for _, r := range l.SizeRules {
		cfg.SizeRules = append(cfg.SizeRules, SizeRuleConfig{
			Size:     int(r.Size),
			Rows:     r.Rows,
			SubSlots: r.SubSlots,
		})
	}
	return cfg
}
