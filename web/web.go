package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	cron "github.com/robfig/cron/v3"

	"quipvid/config"
	"quipvid/logger"
	"quipvid/util/common"
	"quipvid/web/controller"
	"quipvid/web/job"
	"quipvid/web/middleware"
	"quipvid/web/security"
	"quipvid/web/service"
)

//go:embed html/*
var htmlFS embed.FS

// keepAliveListener sets TCP keep-alive on every accepted connection.
type keepAliveListener struct {
	*net.TCPListener
	KeepAlivePeriod time.Duration
}

func (l keepAliveListener) Accept() (net.Conn, error) {
	tc, err := l.TCPListener.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err := tc.SetKeepAlive(true); err != nil {
		logger.Warning("set keep-alive failed:", err)
	}
	if err := tc.SetKeepAlivePeriod(l.KeepAlivePeriod); err != nil {
		logger.Warning("set keep-alive period failed:", err)
	}
	return tc, nil
}

// Server is the public API plus the operator panel, one HTTP listener.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index  *controller.IndexController
	videos *controller.VideoController
	panel  *controller.PanelController
	docs   *controller.DocsController

	settingService *service.SettingService
	userService    *service.UserService
	videoService   *service.VideoService
	ingestService  *service.IngestService
	serverService  *service.ServerService

	jobManager *job.Manager
	cron       *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(
	settingService *service.SettingService,
	userService *service.UserService,
	videoService *service.VideoService,
	ingestService *service.IngestService,
	serverService *service.ServerService,
) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		settingService: settingService,
		userService:    userService,
		videoService:   videoService,
		ingestService:  ingestService,
		serverService:  serverService,
		jobManager:     job.NewManager(),
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		b, err := htmlFS.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(path, "html/")
		_, err = t.New(name).Parse(string(b))
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}
	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}

	if domain := config.GetAPIDomain(); domain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(domain))
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{basePath + "panel/api/"})))

	store := cookie.NewStore(secret)
	engine.Use(sessions.Sessions(config.GetName(), store))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.RedirectMiddleware(basePath))

	tmpl, err := s.getHtmlTemplate(engine.FuncMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	// The metadata API stays at the root regardless of the panel base path.
	api := engine.Group("/")
	s.videos = controller.NewVideoController(api, s.videoService)
	s.docs = controller.NewDocsController(api)

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g, s.settingService, s.userService)
	s.panel = controller.NewPanelController(g.Group("panel"),
		s.serverService, s.ingestService, s.settingService, s.userService)

	return engine, nil
}

func (s *Server) startTask() {
	schedule := config.GetIngestSchedule()
	if schedule != "" {
		if _, err := s.cron.AddJob(schedule, job.NewQuipSyncJob(s.ingestService)); err != nil {
			logger.Errorf("schedule quip sync (%s) failed: %v", schedule, err)
		} else {
			logger.Infof("quip sync scheduled: %s", schedule)
		}
	}

	s.jobManager.Register(job.NewStatsJob(s.serverService))
	s.jobManager.StartAll()
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetAPIListen(), strconv.Itoa(config.GetAPIPort()))
	baseListener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	var listener net.Listener = baseListener
	if tcpListener, ok := baseListener.(*net.TCPListener); ok {
		listener = keepAliveListener{
			TCPListener:     tcpListener,
			KeepAlivePeriod: 30 * time.Second,
		}
	}
	listener = security.NewRateLimitListener(listener, nil)
	s.listener = listener

	logger.Info("api server running on", listener.Addr())

	s.httpServer = &http.Server{
		Handler:      engine,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.jobManager != nil {
		s.jobManager.StopAll()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

func (s *Server) GetCtx() context.Context {
	return s.ctx
}
