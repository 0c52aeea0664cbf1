package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// langAll selects every configured language.
const langAll = "all"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// contentFlags select what goes into the résumé.
type contentFlags struct {
	profile      string
	image        string
	noImage      bool
	imageTimeout string
}

// renderFlags select how the résumé is rendered.
type renderFlags struct {
	renderer string
	timeout  string
	workers  int
	dpi      float64
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common  commonFlags
	content contentFlags
	render  renderFlags
	lang    string
	output  string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common  commonFlags
	content contentFlags
	render  renderFlags
	addr    string
	dist    string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file to load (default: .env if present)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addContentFlags adds profile and photo flags to a FlagSet.
func addContentFlags(fs *flag.FlagSet, f *contentFlags) {
	fs.StringVar(&f.profile, "profile", "", "profile YAML replacing the built-in profile")
	fs.StringVar(&f.image, "image", "", "profile photo path or URL")
	fs.BoolVar(&f.noImage, "no-image", false, "omit the profile photo")
	fs.StringVar(&f.imageTimeout, "image-timeout", "", "photo fetch timeout (e.g., 5s)")
}

// addRenderFlags adds renderer flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.renderer, "renderer", "r", "", "renderer: pdf, chrome, png")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generation timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel generators (0 = auto)")
	fs.Float64Var(&f.dpi, "dpi", 0, "png renderer density (default: 96)")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	fs.StringVarP(&f.lang, "lang", "l", langAll, "language code, or \"all\"")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")

	addCommonFlags(fs, &f.common)
	addContentFlags(fs, &f.content)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default: :3000, or :$PORT)")
	fs.StringVarP(&f.dist, "dist", "d", "", "built site directory (default: dist)")

	addCommonFlags(fs, &f.common)
	addContentFlags(fs, &f.content)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
