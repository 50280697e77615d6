package effects

import (
	"fmt"

	"github.com/san-kum/ledfx/internal/config"
	"github.com/san-kum/ledfx/internal/effect"
)

// Fallback is the effect chosen for demo numbers with no alias.
const Fallback = "pulse"

// NewRegistry returns a registry holding every effect. The numeric aliases
// keep the numbering of the classic LED matrix demos.
func NewRegistry() *effect.Registry {
	r := effect.NewRegistry()

	r.Register("fire", "particle flames rising from the bottom row", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		return NewParticles("fire", cfg.Fire, w, h, cfg.Seed)
	})
	r.Register("spin", "particles launched from a rotating spout, bouncing off the edges", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		return NewParticles("spin", cfg.Spin, w, h, cfg.Seed)
	}, "3")
	r.Register("block", "rotating gradient square", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		return NewBlock(), nil
	}, "0")
	r.Register("scroller", "horizontally scrolling image", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		img, err := LoadImage(cfg.Scroller.Image)
		if err != nil {
			return nil, fmt.Errorf("scroller: %w", err)
		}
		return NewScroller(img)
	}, "1")
	r.Register("square", "static edge and diagonal test pattern", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		return NewSquare(), nil
	}, "2")
	r.Register("plasma", "sum of sines color plasma", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		return NewPlasma(), nil
	}, "4")
	r.Register("pulse", "whole display pulsing through six colors", func(cfg *config.Config, w, h int) (effect.Effect, error) {
		return NewPulse(), nil
	})

	return r
}
