// Package config provides YAML-based game configuration loading and
// distribution-mode presets for the arcade platform.
package config

// MinerConfig contains all configuration for the Miner game.
type MinerConfig struct {
	Board     MinerBoard                 `yaml:"board"`
	Placement MinerPlacement             `yaml:"placement"`
	Rewards   Rewards                    `yaml:"rewards"`
	Episode   EpisodeConfig              `yaml:"episode"`
	Pacing    PacingConfig               `yaml:"pacing"`
	Modes     map[string]MinerModePreset `yaml:"modes"`
}

// MinerBoard defines the playfield size in cells.
type MinerBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MinerPlacement defines object density as a count per 400 cells of board area.
type MinerPlacement struct {
	DiamondsPer400 int `yaml:"diamonds_per_400"`
	BouldersPer400 int `yaml:"boulders_per_400"`

	// BuildAttempts bounds how many seeds Reset tries when a layout has no exit candidate.
	BuildAttempts int `yaml:"build_attempts"`
}

// MinerModePreset is the board size used by one distribution mode.
type MinerModePreset struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BigFishConfig contains all configuration for the BigFish game.
type BigFishConfig struct {
	World   BigFishWorld                 `yaml:"world"`
	Agent   BigFishAgent                 `yaml:"agent"`
	Fish    BigFishSpawn                 `yaml:"fish"`
	Quota   int                          `yaml:"quota"`
	Rewards Rewards                      `yaml:"rewards"`
	Episode EpisodeConfig                `yaml:"episode"`
	Pacing  PacingConfig                 `yaml:"pacing"`
	Modes   map[string]BigFishModePreset `yaml:"modes"`
}

// BigFishWorld defines the water area in world units.
type BigFishWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BigFishAgent defines the player fish.
type BigFishAgent struct {
	StartRadius float64 `yaml:"start_radius"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MixRate     float64 `yaml:"mix_rate"` // weight of the new action in the velocity blend
}

// BigFishSpawn defines how other fish appear.
type BigFishSpawn struct {
	SpawnOneIn   int     `yaml:"spawn_one_in"`
	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
	SizeExponent float64 `yaml:"size_exponent"`
	MinSpeed     float64 `yaml:"min_speed"`
	SpeedRange   float64 `yaml:"speed_range"`
	Themes       int     `yaml:"themes"`
}

// BigFishModePreset is the starting size used by one distribution mode.
type BigFishModePreset struct {
	StartRadius float64 `yaml:"start_radius"`
}

// Rewards shared by the variants.
type Rewards struct {
	Collect    float64 `yaml:"collect"`    // diamond picked up or fish eaten
	Completion float64 `yaml:"completion"` // level finished
}

// EpisodeConfig holds the step budget.
type EpisodeConfig struct {
	Timeout int `yaml:"timeout"`
}

// PacingConfig ties simulation steps to the UI tick rate.
// One simulation step runs every TicksPerStep UI ticks.
type PacingConfig struct {
	TicksPerStep int `yaml:"ticks_per_step"`
}
