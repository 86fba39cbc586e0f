// cmd/promptpad/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"promptpad/internal/backend"
	"promptpad/internal/common/config"
	httpclient "promptpad/internal/common/http"
	"promptpad/internal/common/logger"
	"promptpad/internal/common/observability"
	"promptpad/internal/console"
	"promptpad/internal/settings"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (overrides the default lookup)")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	obs := observability.New("promptpad")
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				log.Warn("Metrics listener stopped", map[string]interface{}{
					"address": cfg.Metrics.Address,
					"error":   err.Error(),
				})
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := settings.Probe(ctx, cfg.Storage, log)
	client := backend.NewClient(
		httpclient.NewClient(config.GetDuration(cfg.Backend.RequestTimeout)),
		log,
	)

	ctrl := console.New(console.Dependencies{
		Store:         store,
		Client:        client,
		Backend:       cfg.Backend,
		Clipboard:     console.DetectClipboard(),
		Logger:        log,
		Observability: obs,
	})
	defer ctrl.Close()

	ctrl.Start(ctx)

	fmt.Println("promptpad — brand prompt generator client")
	fmt.Println(`Type "help" for commands.`)
	runLoop(ctx, ctrl)
}

func runLoop(ctx context.Context, ctrl *console.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptLine(ctrl))
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, " ", 3)
		switch parts[0] {
		case "help":
			printHelp()
		case "fields":
			for _, f := range console.Fields {
				fmt.Println("  " + string(f))
			}
		case "show":
			renderView(ctrl)
		case "tab":
			if len(parts) < 2 {
				fmt.Println("usage: tab <prompt-config|brand-guidance|results>")
				continue
			}
			if err := ctrl.SelectView(console.View(parts[1])); err != nil {
				fmt.Println(err)
				continue
			}
			renderView(ctrl)
		case "set":
			if len(parts) < 2 {
				fmt.Println("usage: set <field> [value]")
				continue
			}
			field, err := console.ParseField(parts[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			value := ""
			if len(parts) == 3 {
				value = parts[2]
			}
			ctrl.Edit(console.EditAction{Field: field, Value: value})
		case "save":
			ctrl.Save(ctx)
			fmt.Println("Settings saved.")
		case "check":
			status := ctrl.CheckBackend(ctx)
			fmt.Println("Backend: " + status.String())
		case "generate":
			fmt.Println("Generating...")
			ctrl.Generate(ctx)
			renderView(ctrl)
		case "copy":
			fmt.Println(ctrl.CopyPrompt())
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, type \"help\"\n", parts[0])
		}
	}
}

func promptLine(ctrl *console.Controller) string {
	marker := ""
	if ctrl.Dirty() {
		marker = "*"
	}
	return fmt.Sprintf("[%s%s] > ", ctrl.ActiveView(), marker)
}

func printHelp() {
	fmt.Println(`commands:
  show                 render the active view
  tab <view>           switch view (prompt-config, brand-guidance, results)
  set <field> [value]  edit a settings field (see "fields")
  fields               list editable fields
  save                 persist settings
  check                check backend connectivity
  generate             generate a marketing prompt
  copy                 copy the generated prompt to the clipboard
  quit                 exit`)
}

func renderView(ctrl *console.Controller) {
	s := ctrl.Settings()
	switch ctrl.ActiveView() {
	case console.ViewPromptConfig:
		fmt.Println("-- prompt config --")
		fmt.Printf("  backendBaseUrl: %s\n", s.BackendBaseURL)
		fmt.Printf("  orientation:    %s\n", s.Orientation)
		fmt.Printf("  platform:       %s\n", s.Platform)
		fmt.Printf("  objective:      %s\n", s.Objective)
		fmt.Printf("  audience:       %s\n", s.Audience)
		fmt.Printf("  topic:          %s\n", s.Topic)
		fmt.Printf("  context:        %s\n", s.Context)
		fmt.Printf("  backend:        %s\n", ctrl.LastBackendStatus())
	case console.ViewBrandGuidance:
		fmt.Println("-- brand guidance --")
		fmt.Printf("  brandName:  %s\n", s.BrandName)
		fmt.Printf("  brandVoice: %s\n", s.BrandVoice)
		fmt.Printf("  brandDo:    %s\n", s.BrandDo)
		fmt.Printf("  brandDont:  %s\n", s.BrandDont)
		fmt.Printf("  keywords:   %s\n", s.Keywords)
	case console.ViewResults:
		fmt.Println("-- results --")
		gen := ctrl.Generation()
		switch gen.Phase {
		case console.PhaseIdle:
			fmt.Println("  no generation yet")
		case console.PhaseInProgress:
			fmt.Println("  generation in progress")
		case console.PhaseSuccess:
			fmt.Println(gen.Prompt)
			if len(gen.Metadata) > 0 {
				fmt.Printf("  metadata: %v\n", gen.Metadata)
			}
		case console.PhaseFailure:
			fmt.Printf("  generation failed: %s\n", gen.Message)
		}
	}
}
