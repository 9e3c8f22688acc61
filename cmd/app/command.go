package main

import (
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aqeel98/sidequest-travel-app-sub000/migration"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/ws"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"
)

const notificationChannel = "notifications"

func (s *srv) runMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	return migration.AutoMigrate(s.ctx)
}

func (s *srv) runSync(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadEndpoint()
	s.loadDatabase()
	s.loadStorage()
	s.loadSession()
	s.loadRepos()
	s.loadPublisher()
	s.loadDomains()
	s.loadSynchronizer()
	s.loadSubscriber()
	s.loadWsHub()

	go s.hub.Run(s.ctx)
	go s.forwardNotifications()

	if err := s.synchronizer.Run(s.ctx); err != nil {
		xcontext.Logger(s.ctx).Errorf("Boot finished with error: %v", err)
	}

	go s.serveWs()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return s.synchronizer.Stop(s.ctx)
}

// forwardNotifications drains the store's toast stream onto the websocket
// hub, where the UI shell listens.
func (s *srv) forwardNotifications() {
	for n := range s.store.Notifications() {
		b, err := json.Marshal(n)
		if err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot marshal notification: %v", err)
			continue
		}

		s.hub.BroadcastByChannel(notificationChannel, b)
	}
}

func (s *srv) serveWs() {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(*http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot upgrade websocket: %v", err)
			return
		}

		ws.NewClient(s.hub, conn, notificationChannel).Start()
	})

	addr := s.cfg.WsServer.Host + ":" + s.cfg.WsServer.Port
	xcontext.Logger(s.ctx).Infof("Websocket server listens on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		xcontext.Logger(s.ctx).Errorf("Websocket server stopped: %v", err)
	}
}
