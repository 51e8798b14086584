package config

import (
	"fmt"
	"strings"
)

// DistributionMode selects the level distribution a game draws from.
type DistributionMode string

const (
	ModeEasy   DistributionMode = "easy"
	ModeHard   DistributionMode = "hard"
	ModeMemory DistributionMode = "memory"
)

// Modes lists the supported distribution modes in menu order.
var Modes = []DistributionMode{ModeEasy, ModeHard, ModeMemory}

// ParseMode converts a flag value to a DistributionMode.
// An empty string selects hard, the default distribution.
func ParseMode(s string) (DistributionMode, error) {
	switch DistributionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeHard:
		return ModeHard, nil
	case ModeEasy:
		return ModeEasy, nil
	case ModeMemory:
		return ModeMemory, nil
	default:
		return "", fmt.Errorf("config: unknown distribution mode %q (want easy, hard or memory)", s)
	}
}

// ApplyMinerPreset sets the board size for the given mode.
// Modes missing from the config leave the board untouched.
func ApplyMinerPreset(cfg *MinerConfig, mode DistributionMode) {
	if p, ok := cfg.Modes[string(mode)]; ok && p.Width > 0 && p.Height > 0 {
		cfg.Board.Width = p.Width
		cfg.Board.Height = p.Height
	}
}

// ApplyBigFishPreset sets the starting radius for the given mode.
func ApplyBigFishPreset(cfg *BigFishConfig, mode DistributionMode) {
	if p, ok := cfg.Modes[string(mode)]; ok && p.StartRadius > 0 {
		cfg.Agent.StartRadius = p.StartRadius
	}
}

// Validate reports the first setting that would make the game unplayable.
func (c MinerConfig) Validate() error {
	switch {
	case c.Board.Width < 3 || c.Board.Height < 2:
		return fmt.Errorf("config: miner board %dx%d is too small", c.Board.Width, c.Board.Height)
	case c.Placement.DiamondsPer400 < 0 || c.Placement.BouldersPer400 < 0:
		return fmt.Errorf("config: miner placement densities must not be negative")
	case c.Placement.DiamondsPer400+c.Placement.BouldersPer400 >= 400:
		return fmt.Errorf("config: miner placement leaves no room for dirt")
	case c.Episode.Timeout <= 0:
		return fmt.Errorf("config: miner timeout must be positive")
	}
	return nil
}

// Validate reports the first setting that would make the game unplayable.
func (c BigFishConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: bigfish world %.1fx%.1f is empty", c.World.Width, c.World.Height)
	case c.Quota <= 0:
		return fmt.Errorf("config: bigfish quota must be positive")
	case c.Agent.StartRadius <= 0 || c.Agent.StartRadius >= c.Fish.MaxRadius:
		return fmt.Errorf("config: bigfish start radius %.2f must be in (0, %.2f)", c.Agent.StartRadius, c.Fish.MaxRadius)
	case c.Fish.MinRadius <= 0 || c.Fish.MinRadius > c.Fish.MaxRadius:
		return fmt.Errorf("config: bigfish fish radius range [%.2f, %.2f] is invalid", c.Fish.MinRadius, c.Fish.MaxRadius)
	case c.Fish.SpawnOneIn <= 0 || c.Fish.Themes <= 0:
		return fmt.Errorf("config: bigfish spawn_one_in and themes must be positive")
	case c.Episode.Timeout <= 0:
		return fmt.Errorf("config: bigfish timeout must be positive")
	}
	return nil
}
