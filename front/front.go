package front

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
	"github.com/gin-gonic/gin"

	"quipvid/config"
	"quipvid/logger"
	"quipvid/util/common"
)

//go:embed html/*
var htmlFS embed.FS

// dict builds a map inside templates, used to pass section data around.
func dict(pairs ...any) map[string]any {
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		m[key] = pairs[i+1]
	}
	return m
}

// Server is the public library front end. It has no database access and
// talks to the metadata API over HTTP.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	controller *Controller
	provider   VideoProvider

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(provider VideoProvider) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	if provider == nil {
		provider = NewAPIClient(config.GetFrontAPIBase())
	}
	return &Server{
		provider: provider,
		ctx:      ctx,
		cancel:   cancel,
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
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.SetFuncMap(template.FuncMap{
		"dict": dict,
	})
	tmpl, err := s.getHtmlTemplate(engine.FuncMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	s.controller = NewController(engine.Group("/"), s.provider)

	return engine, nil
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetFrontListen(), strconv.Itoa(config.GetFrontPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	logger.Info("front server running on", listener.Addr())

	s.httpServer = &http.Server{
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	return nil
}

func (s *Server) Stop() error {
	s.cancel()
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
