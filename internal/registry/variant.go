package registry

import (
	"fmt"

	"github.com/vovakirdan/procgen-arcade/internal/config"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
)

// Variant enumerates the game-rule variants. Each one is a registered game
// that also implements Env.
type Variant int

const (
	VariantBigFish Variant = iota
	VariantMiner
)

var variantIDs = [...]string{
	VariantBigFish: "bigfish",
	VariantMiner:   "miner",
}

// Variants returns every variant in declaration order.
func Variants() []Variant {
	return []Variant{VariantBigFish, VariantMiner}
}

// String returns the registry ID of the variant.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantIDs) {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantIDs[v]
}

// ParseVariant looks a variant up by its registry ID.
func ParseVariant(id string) (Variant, error) {
	for i, name := range variantIDs {
		if name == id {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("registry: unknown variant %q", id)
}

// Env is the capability set shared by the game-rule variants.
// It is driven one simulation step at a time, independent of any UI clock.
type Env interface {
	Variant() Variant

	// ResetSeed builds a fresh level from seed.
	ResetSeed(seed int64) error

	// Act applies one movement intent and advances exactly one simulation step.
	// The returned episode carries the reward of this step only.
	Act(m engine.Move) engine.Episode

	// Episode returns the current episode bookkeeping.
	Episode() engine.Episode

	// Save serializes the complete simulation state.
	Save() ([]byte, error)

	// Load restores state produced by Save on the same variant.
	Load(data []byte) error

	// Assets lists the image names used to draw a tag. Transient tags map
	// to the images of their resting form.
	Assets(t engine.Tag) []string

	// Board renders the world as plain text, one rune per cell, top row first.
	Board() string
}

// CreateEnv instantiates a variant by its ID.
func CreateEnv(id string) (Env, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	env, ok := g.(Env)
	if !ok {
		return nil, fmt.Errorf("registry: game %q is not a rule variant", id)
	}
	return env, nil
}

// ModeSetter is implemented by games whose level distribution can be
// chosen per instance. The mode applies from the next reset.
type ModeSetter interface {
	SetMode(mode config.DistributionMode)
}

// CreateWithMode instantiates a game and selects its distribution mode
// when the game supports one.
func CreateWithMode(id string, mode config.DistributionMode) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if ms, ok := g.(ModeSetter); ok {
		ms.SetMode(mode)
	}
	return g, nil
}
