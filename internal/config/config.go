// Package config centralizes the room-tunable knobs, read from the
// environment the same way apps/server/main.go and ledger.NewServiceFromEnv
// read theirs in the teacher repo: os.Getenv + strings.TrimSpace + a
// hardcoded default, no config file format.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RoomConfig holds the per-room policy knobs named across spec.md §4 and §9.
type RoomConfig struct {
	WinThreshold          int
	WeakHandThreshold     int
	MaxRedealMultiplier   int // 0 = uncapped
	RedealMode            RedealMode
	BotThinkDelayMin      time.Duration
	BotThinkDelayMax      time.Duration
	ReconnectGrace        time.Duration
	RoomIdleEvictAfter    time.Duration
	ActionQueueCapacity   int
	TurnResultsAutoAdvance time.Duration
}

// RedealMode selects between sequential (one weak seat decides at a time)
// and simultaneous (all weak seats decide concurrently) PREPARATION modes.
type RedealMode string

const (
	RedealSequential   RedealMode = "sequential"
	RedealSimultaneous RedealMode = "simultaneous"
)

// Default returns the baseline configuration: 50-point win threshold,
// weak-hand threshold 9, uncapped redeal multiplier, sequential redeal.
func Default() RoomConfig {
	return RoomConfig{
		WinThreshold:           50,
		WeakHandThreshold:      9,
		MaxRedealMultiplier:    0,
		RedealMode:             RedealSequential,
		BotThinkDelayMin:       800 * time.Millisecond,
		BotThinkDelayMax:       2500 * time.Millisecond,
		ReconnectGrace:         30 * time.Second,
		RoomIdleEvictAfter:     10 * time.Minute,
		ActionQueueCapacity:    256,
		TurnResultsAutoAdvance: 3 * time.Second,
	}
}

// FromEnv overlays Default() with any LIAP_* environment variables present,
// mirroring the teacher's NewServiceFromEnv env-driven selection pattern.
func FromEnv() RoomConfig {
	cfg := Default()
	if v := envInt("LIAP_WIN_THRESHOLD"); v != nil {
		cfg.WinThreshold = *v
	}
	if v := envInt("LIAP_WEAK_HAND_THRESHOLD"); v != nil {
		cfg.WeakHandThreshold = *v
	}
	if v := envInt("LIAP_MAX_REDEAL_MULTIPLIER"); v != nil {
		cfg.MaxRedealMultiplier = *v
	}
	if mode := strings.TrimSpace(os.Getenv("LIAP_REDEAL_MODE")); mode == string(RedealSimultaneous) {
		cfg.RedealMode = RedealSimultaneous
	}
	if v := envInt("LIAP_BOT_THINK_DELAY_MIN_MS"); v != nil {
		cfg.BotThinkDelayMin = time.Duration(*v) * time.Millisecond
	}
	if v := envInt("LIAP_BOT_THINK_DELAY_MAX_MS"); v != nil {
		cfg.BotThinkDelayMax = time.Duration(*v) * time.Millisecond
	}
	if v := envInt("LIAP_RECONNECT_GRACE_MS"); v != nil {
		cfg.ReconnectGrace = time.Duration(*v) * time.Millisecond
	}
	if v := envInt("LIAP_ROOM_IDLE_EVICT_MS"); v != nil {
		cfg.RoomIdleEvictAfter = time.Duration(*v) * time.Millisecond
	}
	if v := envInt("LIAP_ACTION_QUEUE_CAPACITY"); v != nil {
		cfg.ActionQueueCapacity = *v
	}
	return cfg
}

// ServerAddr returns SERVER_ADDR or the ":18080"-style teacher default,
// rethemed to this server's default port.
func ServerAddr() string {
	addr := strings.TrimSpace(os.Getenv("SERVER_ADDR"))
	if addr == "" {
		addr = ":19080"
	}
	return addr
}

func envInt(name string) *int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
