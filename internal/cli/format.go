package cli

import (
	"flag"
	"fmt"
	"io"

	"cram/internal/format"
)

// runFormat builds the handler for the format command.
func runFormat(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .cram/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "expected exactly one input file")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		env, err := loadEnvironment(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}

		inputPath := env.path(flags.Arg(0))
		outputPath, stats, err := format.ConvertFile(inputPath, env.templatesDir())
		if err != nil {
			fmt.Fprintf(stderr, "convert: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Converted %s\n", inputPath)
		fmt.Fprintf(stdout, "Rows processed: %d\n", stats.TotalRows)
		fmt.Fprintf(stdout, "True/False converted: %d\n", stats.TrueFalse)
		fmt.Fprintf(stdout, "Fill-in-blank converted: %d\n", stats.FillInBlank)
		fmt.Fprintf(stdout, "Already formatted: %d\n", stats.AlreadyFormatted)
		fmt.Fprintf(stdout, "Skipped: %d\n", stats.Skipped)
		fmt.Fprintf(stdout, "Output saved to %s\n", outputPath)
		return ExitOK
	}
}
