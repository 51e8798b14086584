package config

import (
	_ "embed"
)

//go:embed defaults/miner.yaml
var defaultMinerYAML []byte

//go:embed defaults/bigfish.yaml
var defaultBigFishYAML []byte

// DefaultMinerConfig returns the default Miner configuration (hard mode board).
func DefaultMinerConfig() MinerConfig {
	return MinerConfig{
		Board: MinerBoard{
			Width:  20,
			Height: 20,
		},
		Placement: MinerPlacement{
			DiamondsPer400: 12,
			BouldersPer400: 80,
			BuildAttempts:  100,
		},
		Rewards: Rewards{
			Collect:    1,
			Completion: 10,
		},
		Episode: EpisodeConfig{
			Timeout: 1000,
		},
		Pacing: PacingConfig{
			TicksPerStep: 8,
		},
		Modes: map[string]MinerModePreset{
			string(ModeEasy):   {Width: 10, Height: 10},
			string(ModeHard):   {Width: 20, Height: 20},
			string(ModeMemory): {Width: 35, Height: 35},
		},
	}
}

// DefaultBigFishConfig returns the default BigFish configuration.
func DefaultBigFishConfig() BigFishConfig {
	return BigFishConfig{
		World: BigFishWorld{
			Width:  20,
			Height: 20,
		},
		Agent: BigFishAgent{
			StartRadius: 0.5,
			MaxSpeed:    0.5,
			MixRate:     0.5,
		},
		Fish: BigFishSpawn{
			SpawnOneIn:   10,
			MinRadius:    0.25,
			MaxRadius:    2,
			SizeExponent: 1.4,
			MinSpeed:     0.15,
			SpeedRange:   0.25,
			Themes:       3,
		},
		Quota: 30,
		Rewards: Rewards{
			Collect:    1,
			Completion: 10,
		},
		Episode: EpisodeConfig{
			Timeout: 6000,
		},
		Pacing: PacingConfig{
			TicksPerStep: 4,
		},
		Modes: map[string]BigFishModePreset{
			string(ModeEasy):   {StartRadius: 1},
			string(ModeHard):   {StartRadius: 0.5},
			string(ModeMemory): {StartRadius: 0.5},
		},
	}
}
