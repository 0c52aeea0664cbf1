package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/fileutil"
	"github.com/jason7337/go-cvpdf/internal/logger"
	"github.com/jason7337/go-cvpdf/internal/resume"
)

// generateResult holds the outcome of one language.
type generateResult struct {
	Lang       string
	OutputPath string
	Pages      int
	Err        error
	Duration   time.Duration
}

// runGenerate writes one résumé per requested language.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
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
	log, err := logger.NewWriter(env.Stderr, s.level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	langs, err := s.resolveLanguages(flags.lang)
	if err != nil {
		return err
	}

	outDir := flags.output
	if outDir == "" {
		outDir = s.cfg.Output.Dir
	}
	if outDir == "" {
		outDir = "."
	}

	poolSize := min(cvpdf.ResolvePoolSize(s.workers), len(langs))
	log.Debug("starting generation",
		zap.Strings("languages", langs),
		zap.Int("pool_size", poolSize),
		zap.String("renderer", s.cfg.Output.Renderer),
	)

	pool := cvpdf.NewGeneratorPool(poolSize, s.generatorOptions(log, s.photoEnabled(log), env)...)
	defer pool.Close()

	svc := resume.NewService(s.catalog, s.profile, pool, resume.WithClock(env.Now))
	results := generateAll(ctx, svc, langs, outDir, poolSize)

	failed := printResults(results, flags.common, env)
	if failed > 0 {
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("%d of %d résumé(s) failed: %w", failed, len(results), r.Err)
			}
		}
	}
	return nil
}

// generateAll runs every language with at most limit in flight. A failed
// language does not cancel the others.
func generateAll(ctx context.Context, svc *resume.Service, langs []string, outDir string, limit int) []generateResult {
	results := make([]generateResult, len(langs))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i, lang := range langs {
		g.Go(func() error {
			results[i] = generateOne(ctx, svc, lang, outDir)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// generateOne renders lang and writes it into outDir.
func generateOne(ctx context.Context, svc *resume.Service, lang, outDir string) generateResult {
	start := time.Now()
	result := generateResult{Lang: lang}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	res, err := svc.Generate(ctx, lang)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	path, err := fileutil.WriteOutput(outDir, res.Filename, res.Data)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.OutputPath = path
	result.Pages = res.Document.PageCount()
	result.Duration = time.Since(start)
	return result
}

// printResults outputs generation results and returns the failure count.
func printResults(results []generateResult, common commonFlags, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Lang, r.Err, hintFor(r.Err))
			continue
		}

		succeeded++
		if common.quiet {
			continue
		}

		if common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d page(s), %v)\n", r.Lang, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
