// Command server runs the Liap Tui room server: one process hosting the
// Room Registry, Journal store, bot manager, and WebSocket dispatcher,
// wired in the same order as the teacher's apps/server/main.go (config,
// persistence, NPC registry, lobby, gateway, http.ListenAndServe).
package main

import (
	"log"

	"liap-tui-server/internal/bots"
	"liap-tui-server/internal/config"
	"liap-tui-server/internal/journal"
	"liap-tui-server/internal/registry"
	"liap-tui-server/internal/wire"
)

func main() {
	cfg := config.FromEnv()

	store, storeKind, err := journal.NewStoreFromEnv()
	if err != nil {
		log.Fatalf("journal store: %v", err)
	}
	log.Printf("journal store: %s", storeKind)
	defer store.Close()

	personas := bots.NewRegistry()
	if err := personas.LoadFromFile("personas.json"); err != nil {
		log.Printf("bot personas: using baseline only (%v)", err)
	}
	botMgr := bots.NewManager(personas)

	reg := registry.New(cfg, store, botMgr)
	defer reg.Stop()

	srv := wire.NewServer(reg, cfg)
	if err := srv.ListenAndServe(config.ServerAddr()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
