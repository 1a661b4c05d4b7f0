package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/intent-solutions-io/intent-blueprint-docs/internal/cli"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/errors"
	"github.com/intent-solutions-io/intent-blueprint-docs/internal/service"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`blueprint - Declarative document template compiler

USAGE:
    blueprint [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize a new template library
    --library <dir> Load a template library manifest before the command
    --verbose       Include error codes and causes in error output

COMMANDS:
    list, ls           List registered templates
    search <query>     Fuzzy-search templates
    show, get <id>     Show a specific template
    validate <path>    Validate a template document
    vars <id>          Show a template's effective variables
    compile <id>       Compile a template to its JSON tree
    render <id>        Compile and render a template to markdown
    import <dir>       Import template documents from a directory
    help               Show CLI command help

EXAMPLES:
    blueprint --init                                  # Initialize the library
    blueprint import ./templates                      # Load template documents
    blueprint list --format table                     # List templates
    blueprint vars product-requirements               # Inspect variables
    blueprint render product-requirements --var projectName=Atlas
    blueprint render product-requirements -i --pretty # Interactive + styled
    blueprint compile product-requirements --context vars.yaml

STORAGE:
    Default directory: ~/.blueprints
    Override with: BLUEPRINT_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var libraryPath string
	var verbose bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new template library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.StringVar(&libraryPath, "library", "", "Library manifest to load before running the command")
	flag.BoolVar(&verbose, "verbose", false, "Verbose error output")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("blueprint version %s\n", version)
		os.Exit(0)
	}

	errorHandler := errors.NewCLIErrorHandler(verbose)

	svc, err := service.NewService()
	if err != nil {
		errorHandler.HandleError(err)
		os.Exit(1)
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			errorHandler.HandleError(err)
			os.Exit(1)
		}
		fmt.Println("Initialized blueprint library")
		return
	}

	if libraryPath != "" {
		if _, err := svc.LoadLibrary(libraryPath); err != nil {
			errorHandler.HandleError(err)
			os.Exit(1)
		}
	} else {
		// Best effort: a missing or empty default library is not an error
		svc.LoadDefaultLibrary()
	}

	args := flag.Args()
	if len(args) == 0 {
		printHelp()
		return
	}

	cliHandler := cli.NewCLI(svc)
	if err := cliHandler.ExecuteCommand(args); err != nil {
		errorHandler.HandleError(err)
		os.Exit(1)
	}
}
