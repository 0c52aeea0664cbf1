package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Write the résumé for one or all languages")
	fmt.Fprintln(w, "  serve      Serve the portfolio site and /api/cv")
	fmt.Fprintln(w, "  doctor     Check the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cvpdf help <command>' for details on a specific command.")
}

// printContentUsage prints flags shared by generate and serve.
func printContentUsage(w io.Writer) {
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --profile <path>      Profile YAML replacing the built-in profile")
	fmt.Fprintln(w, "      --image <src>         Profile photo path or URL")
	fmt.Fprintln(w, "      --no-image            Omit the profile photo")
	fmt.Fprintln(w, "      --image-timeout <d>   Photo fetch timeout (default: 5s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -r, --renderer <name>     pdf (default), chrome, png")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generation timeout (default: 30s)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel generators (0 = auto)")
	fmt.Fprintln(w, "      --dpi <f>             PNG density (default: 96)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file (default: .env if present)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write <Name>_CV_<LANG>_<year>.<ext> for each requested language.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -l, --lang <code>         Language code or \"all\" (default: all)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: current)")
	fmt.Fprintln(w)
	printContentUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the built portfolio site and generate résumés at /api/cv?lang=<code>.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default: :3000, or :$PORT)")
	fmt.Fprintln(w, "  -d, --dist <dir>          Built site directory (default: dist)")
	fmt.Fprintln(w)
	printContentUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdGenerate:
		printGenerateUsage(env.Stdout)
	case cmdServe:
		printServeUsage(env.Stdout)
	case cmdDoctor:
		fmt.Fprintln(env.Stdout, "Usage: cvpdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, the site build and the temp directory.")
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: cvpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: cvpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
