package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/fileutil"
	"github.com/jason7337/go-cvpdf/internal/hints"
	"github.com/jason7337/go-cvpdf/internal/logger"
	"github.com/jason7337/go-cvpdf/internal/resume"
	"github.com/jason7337/go-cvpdf/internal/server"
)

// runServe serves the site until ctx is cancelled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrInvalidFlag, positional[0])
	}

	s, err := loadSettings(flags.common, flags.content, flags.render, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		s.cfg.Server.Addr = flags.addr
	}
	if flags.dist != "" {
		s.cfg.Server.DistDir = flags.dist
	}

	log, err := logger.New(s.cfg.Log.Mode, s.level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if strings.EqualFold(s.cfg.Log.Mode, logger.ModeProduction) {
		gin.SetMode(gin.ReleaseMode)
	}

	dist := s.cfg.Server.DistDir
	if !fileutil.DirExists(dist) {
		log.Warn("site directory missing, only /health and /api/cv will work",
			zap.String("dist", dist),
			zap.String("hint", strings.TrimPrefix(hints.ForDistDir(dist), "\n  hint: ")),
		)
	}

	pool := cvpdf.NewGeneratorPool(cvpdf.ResolvePoolSize(s.workers), s.generatorOptions(log, s.photoEnabled(log), env)...)
	defer pool.Close()

	svc := resume.NewService(s.catalog, s.profile, pool, resume.WithClock(env.Now))
	srv, err := server.New(server.Config{
		Addr:            s.cfg.Server.Addr,
		DistDir:         dist,
		Name:            s.profile.Creator,
		ShutdownTimeout: s.cfg.ShutdownTimeout(),
		Catalog:         s.catalog,
		Generator:       svc,
		Logger:          log,
		Now:             env.Now,
	})
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}
