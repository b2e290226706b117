package bootstrap

import (
	"quipvid/front"
	"quipvid/logger"
	"quipvid/web"
)

// Runtime owns the running servers so they can be restarted together.
type Runtime struct {
	App         *App
	WebServer   *web.Server
	FrontServer *front.Server
}

func NewRuntime(app *App) *Runtime {
	return &Runtime{
		App: app,
	}
}

// StartWebServer starts the metadata API and operator panel.
func (r *Runtime) StartWebServer() error {
	r.WebServer = web.NewServer(
		r.App.SettingService,
		r.App.UserService,
		r.App.VideoService,
		r.App.IngestService,
		r.App.ServerService,
	)
	return r.WebServer.Start()
}

// StartFrontServer starts the public library front end.
func (r *Runtime) StartFrontServer() error {
	r.FrontServer = front.NewServer(nil)
	return r.FrontServer.Start()
}

// StopAll shuts both servers down.
func (r *Runtime) StopAll() {
	if r.WebServer != nil {
		if err := r.WebServer.Stop(); err != nil {
			logger.Warning("stop web server failed:", err)
		}
		r.WebServer = nil
	}
	if r.FrontServer != nil {
		if err := r.FrontServer.Stop(); err != nil {
			logger.Warning("stop front server failed:", err)
		}
		r.FrontServer = nil
	}
}

// Restart tears the servers down and brings them back up, picking up
// changed settings.
func (r *Runtime) Restart() error {
	r.StopAll()
	if err := r.StartWebServer(); err != nil {
		return err
	}
	return r.StartFrontServer()
}
