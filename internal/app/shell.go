package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"learnhub_client/internal/controller"
	"learnhub_client/pkg/configwatcher"
	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const prompt = "learnhub> "

// RunShell reads one command per line until EOF or "exit". While it runs, edits to config.yaml are
// applied and /metrics is served on metrics.addr when configured.
func (a *App) RunShell(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, err := os.Stat(a.configFile()); err == nil {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.configFile(), a.applyConfig); err != nil {
				logger.Log.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	if a.Config.Metrics.Addr != "" {
		srv := a.metricsServer(a.Config.Metrics.Addr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		args, err := splitArgs(scanner.Text())
		if err != nil {
			controller.NewContext(ctx, "", nil, out).BadRequest(err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		a.Execute(ctx, args[0], args[1:], out)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func (a *App) metricsServer(addr string) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "api": a.Client.BaseURL()})
	})
	return &http.Server{Addr: addr, Handler: router}
}

// splitArgs splits a shell line on spaces, honouring single quotes, double quotes and backslash escapes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
