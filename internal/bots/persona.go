// Package bots implements the Bot Scheduler (C6): persona-driven decision
// strategies plus human-like, cancellable think-delay scheduling, grounded
// on holdem/npc (persona.go's PersonalityProfile/NPCPersona, rule_brain.go's
// noise-injected decision logic, manager.go's per-instance think-delay
// scheduling), re-themed from poker betting decisions to Liap Tui's redeal,
// declaration, and play decisions.
package bots

// Persona tunes a RuleBrain's decisions, re-themed from
// holdem/npc.PersonalityProfile (aggression/tightness/bluffing/positional/
// randomness) into the three decision points this game actually has.
type Persona struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	RedealEagerness       float64 `json:"redealEagerness"`       // 0..1: likelihood of accepting an optional redeal
	DeclarationConfidence float64 `json:"declarationConfidence"` // 0..1: how close to true hand strength the declare value tracks
	PlayAggressiveness    float64 `json:"playAggressiveness"`    // 0..1: tendency to lead/play high value pieces
	Randomness            float64 `json:"randomness"`            // 0..1: decision noise
}

// Baseline is the zero-config default persona: accepts redeals when
// strictly weak, declares near its true hand strength, plays moderately.
// Spec.md §4.6 only requires "a baseline [strategy]" — this is it.
var Baseline = Persona{
	ID:                    "baseline",
	Name:                  "Baseline",
	RedealEagerness:       0.9,
	DeclarationConfidence: 0.8,
	PlayAggressiveness:    0.5,
	Randomness:            0.1,
}
