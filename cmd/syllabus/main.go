package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alexanderramin/syllabus/internal/cli"
	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/intelligence"
	"github.com/alexanderramin/syllabus/internal/llm"
	"github.com/alexanderramin/syllabus/internal/lms"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; the environment alone is enough.
	_ = godotenv.Load()

	dbPath, err := db.ResolvePath()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	deps := service.OutlineDeps{
		Runs:        repository.NewSQLiteRunRepo(database),
		Submissions: repository.NewSQLiteSubmissionRepo(database),
		UoW:         db.NewSQLiteUnitOfWork(database),
	}

	// LLM drafting (only when enabled)
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client, err := llm.NewClient(llmCfg, observer)
		if err != nil {
			return fmt.Errorf("configuring LLM: %w", err)
		}
		deps.LLM = client
		deps.Drafter = intelligence.NewOutlineDraftService(client)
	}

	// LMS access (only when enabled)
	lmsCfg := lms.LoadConfig()
	if lmsCfg.Enabled {
		var observer lms.Observer = lms.NoopObserver{}
		if lmsCfg.LogCalls {
			observer = lms.NewLogObserver(os.Stderr)
		}
		client, err := lms.NewClient(lmsCfg, observer)
		if err != nil {
			return fmt.Errorf("configuring LMS: %w", err)
		}
		deps.LMS = client
		deps.SubmitInterval = lmsCfg.SubmitInterval()
	}

	var observers []service.UseCaseObserver
	if on, _ := strconv.ParseBool(os.Getenv("SYLLABUS_LOG_USE_CASES")); on {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Outlines: service.NewOutlineService(deps, observers...),
		IsInteractive: func() bool {
			in, out := os.Stdin.Fd(), os.Stdout.Fd()
			return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
				(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
