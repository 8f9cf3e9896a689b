package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"placement/config"
	"placement/pkg/question/importer"
	"placement/pkg/question/serviceImp"
	"placement/store"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "seeder",
		Usage:  "Bulk-load the question bank",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Ingest questions from a .json or .xlsx file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the questions file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sheet",
						Usage: "Worksheet to read from an .xlsx file (default: first sheet)",
					},
				},
			},
			{
				Name:   "companies",
				Usage:  "Print every known company name",
				Action: companiesCommand,
			},
		},
	}
}

func importCommand(c *cli.Context) error {
	items, err := importer.LoadFile(c.String("file"), c.String("sheet"))
	if err != nil {
		return fmt.Errorf("load %s: %w", c.String("file"), err)
	}

	ctx := c.Context
	st, err := store.Open(ctx, config.Load())
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	svc := serviceImp.New(st.Questions, st.Companies, slog.Default())
	res, err := svc.AddQuestions(ctx, items)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "created: %d, failed: %d\n", len(res.Created), len(res.Failures))
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  #%d [%s] %s: %s\n", f.Index, f.Kind, f.Question, f.Message)
	}
	return nil
}

func companiesCommand(c *cli.Context) error {
	st, err := store.Open(c.Context, config.Load())
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	svc := serviceImp.New(st.Questions, st.Companies, slog.Default())
	names, err := svc.CompanyNames(c.Context)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(c.App.Writer, n)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
