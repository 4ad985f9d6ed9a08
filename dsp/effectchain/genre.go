package effectchain

import "strings"

// Stage roles inside a chain. Metal runs two EQ stages with independent
// filter memory, so the pre and post positions are distinct roles backed
// by distinct instances.
const (
	RoleDistortion = "distortion"
	RoleChorus     = "chorus"
	RoleCompressor = "compressor"
	RoleDelay      = "delay"
	RoleReverb     = "reverb"
	RoleEQ         = "eq"
	RoleEQPre      = "eq_pre"
	RoleEQPost     = "eq_post"
	RoleNoiseGate  = "noise_gate"
)

// Genre names accepted by SetGenre.
const (
	GenreRockCountry = "Rock/Country"
	GenreJazzBlues   = "Jazz/Blues"
	GenrePop         = "Pop"
	GenreClean       = "Clean"
	GenreMetal       = "Metal"
)

// DefaultGenre is the profile used when a requested genre is unknown.
const DefaultGenre = GenrePop

// Profile is one genre's immutable chain description: the ordered stage
// roles, the parameter set pushed into each, and the output gain applied
// after the last stage.
type Profile struct {
	Name       string
	Stages     []string
	Params     map[string]Params
	OutputGain float64
}

var genreProfiles = []*Profile{
	{
		Name:   GenreRockCountry,
		Stages: []string{RoleDistortion, RoleEQ, RoleReverb},
		Params: map[string]Params{
			RoleDistortion: {
				Num: map[string]float64{"gain": 11.5, "mix": 1.0},
				Str: map[string]string{"mode": "tanh"},
			},
			RoleEQ: {
				Str: map[string]string{"preset": "metal"},
			},
			RoleReverb: {
				Num: map[string]float64{"roomSize": 0.1, "damping": 0.2, "mix": 0.10},
			},
		},
		OutputGain: 0.1,
	},
	{
		Name:   GenreJazzBlues,
		Stages: []string{RoleChorus, RoleCompressor, RoleEQ, RoleReverb},
		Params: map[string]Params{
			RoleChorus: {
				Num: map[string]float64{"rate": 1.2, "depth": 0.003, "mix": 0.4},
			},
			RoleCompressor: {
				Num: map[string]float64{"threshold": -18, "ratio": 3, "makeupGain": 1.2},
			},
			RoleEQ: {
				Str: map[string]string{"preset": "warm"},
			},
			RoleReverb: {
				Num: map[string]float64{"roomSize": 0.4, "damping": 0.4, "mix": 0.25},
			},
		},
		OutputGain: 1.05,
	},
	{
		Name:   GenrePop,
		Stages: []string{RoleDelay, RoleEQ, RoleReverb},
		Params: map[string]Params{
			RoleDelay: {
				Num: map[string]float64{"delayTime": 0.25, "feedback": 0.3, "mix": 0.25},
			},
			RoleEQ: {
				Str: map[string]string{"preset": "bright"},
			},
			RoleReverb: {
				Num: map[string]float64{"roomSize": 0.3, "damping": 0.4, "mix": 0.25},
			},
		},
		OutputGain: 1.1,
	},
	{
		Name:       GenreClean,
		OutputGain: 1.1,
	},
	{
		Name: GenreMetal,
		Stages: []string{
			RoleNoiseGate, RoleEQPre, RoleDistortion, RoleEQPost, RoleDelay, RoleCompressor,
		},
		Params: map[string]Params{
			RoleNoiseGate: {
				Num: map[string]float64{"threshold": -45, "attack": 0.001, "release": 0.08},
			},
			RoleEQPre: {
				Str: map[string]string{"preset": "metal_pre"},
			},
			RoleDistortion: {
				Num: map[string]float64{"gain": 50, "mix": 1.0},
				Str: map[string]string{"mode": "asymmetric"},
			},
			RoleEQPost: {
				Str: map[string]string{"preset": "metal_post"},
			},
			RoleDelay: {
				Num: map[string]float64{"delayTime": 0.33, "feedback": 0.4, "mix": 0.3},
			},
			RoleCompressor: {
				Num: map[string]float64{"threshold": -15, "ratio": 2, "makeupGain": 1.3},
			},
		},
		OutputGain: 0.1,
	},
}

func normalizeGenre(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func lookupProfile(name string) (*Profile, bool) {
	key := normalizeGenre(name)
	for _, p := range genreProfiles {
		if normalizeGenre(p.Name) == key {
			return p, true
		}
	}

	return nil, false
}

// Genres lists the known genre names in definition order.
func Genres() []string {
	names := make([]string, len(genreProfiles))
	for i, p := range genreProfiles {
		names[i] = p.Name
	}

	return names
}
