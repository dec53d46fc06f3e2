package main

import (
	"fmt"
	"os"

	"github.com/ajithraghavan/qmd/internal/commands"
	"github.com/ajithraghavan/qmd/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "to-omd", "m2o":
		commands.ToOMD(os.Args[2:])
	case "to-md", "o2m":
		commands.ToMarkdown(os.Args[2:])
	case "check":
		commands.Check(os.Args[2:])
	case "batch":
		commands.Batch(os.Args[2:])
	case "status":
		commands.Status()
	case "preview":
		commands.Preview(os.Args[2:])
	case "rules":
		commands.Rules()
	case "version", "-v", "--version":
		fmt.Printf("qmd v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`qmd - Compact OMD notation for markdown

Usage:
  qmd <command> [options]

Commands:
  to-omd, m2o   Convert markdown to OMD (file or stdin, --out to write a file)
  to-md, o2m    Convert OMD to markdown (file or stdin, --out to write a file)
  check         Round-trip a markdown file and show what changed (--plain for raw diff)
  batch         Convert every file under a directory (--reverse, --dry-run, --force)
  status        Show the last batch run
  preview       Interactive Markdown / OMD / diff viewer
  rules         List the conversion rules in order
  version       Show version information
  help          Show this help message

Examples:
  qmd to-omd README.md
  cat notes.omd | qmd to-md --out notes.md
  qmd check README.md
  qmd batch ~/notes --dry-run
  qmd batch ~/notes --reverse
  qmd preview README.md

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
