package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/ivlev/deckplay/internal/config"
	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/host"
	"github.com/ivlev/deckplay/internal/logging"
	"github.com/ivlev/deckplay/internal/navigator"
	"github.com/ivlev/deckplay/internal/renderer"
	"github.com/ivlev/deckplay/internal/system"
	"github.com/ivlev/deckplay/internal/viewport"
)

// BuildVersion задается при сборке: -ldflags "-X main.BuildVersion=..."
var BuildVersion = "dev"

func main() {
	configPtr := flag.String("config", "", "Путь к YAML-конфигу (необязательно)")
	deckPtr := flag.String("deck", "", "Путь к презентации (по умолчанию: самый свежий файл в input/decks/)")
	startPtr := flag.Int("start", 0, "Номер начального слайда (с нуля)")
	rendererPtr := flag.String("renderer", "text", "Вывод: text, snapshot, both, none")
	snapshotDirPtr := flag.String("snapshot-dir", "output/frames", "Папка для PNG-снимков")
	samplesPtr := flag.Int("samples", 1, "Кадров на шаг с анимацией")
	widthPtr := flag.Int("width", 1280, "Ширина окна просмотра")
	heightPtr := flag.Int("height", 720, "Высота окна просмотра")
	logLevelPtr := flag.String("log-level", "info", "Уровень логов: trace, debug, info, warn, error")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	scriptPtr := flag.String("script", "", "Сценарий без клавиатуры, например: advance,advance,retreat,exit")
	pacePtr := flag.Duration("pace", 750*time.Millisecond, "Пауза между шагами сценария")

	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}
	cfg.BuildVersion = BuildVersion

	// флаги, заданные явно, важнее файла и окружения
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "deck":
			cfg.DeckPath = *deckPtr
		case "start":
			cfg.StartSlide = *startPtr
		case "renderer":
			cfg.Renderer = *rendererPtr
		case "snapshot-dir":
			cfg.Snapshot.Dir = *snapshotDirPtr
		case "samples":
			cfg.Snapshot.Samples = *samplesPtr
		case "width":
			cfg.Viewport.Width = *widthPtr
		case "height":
			cfg.Viewport.Height = *heightPtr
		case "log-level":
			cfg.LogLevel = *logLevelPtr
		case "stats":
			cfg.Stats = *statsPtr
		case "script":
			cfg.Script = *scriptPtr
		case "pace":
			cfg.Pace = *pacePtr
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(os.Stderr, level)

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("[-] Ошибка показа")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	// Создаем нужные директории, если их нет
	if err := system.EnsureDirs(cfg.Input.Dir); err != nil {
		return err
	}

	deckPath := cfg.DeckPath
	if deckPath == "" {
		latest, err := system.FindLatestDeck(cfg.Input.Dir)
		if err != nil {
			return fmt.Errorf("%w. Положите .yaml в %s/", err, cfg.Input.Dir)
		}
		deckPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", deckPath)
	}

	d, err := deck.ReadDeck(deckPath)
	if err != nil {
		return err
	}
	fmt.Printf("[*] Презентация: %q | Слайдов: %d\n", d.Title, d.Len())

	interactive := cfg.Script == "" && term.IsTerminal(int(os.Stdin.Fd()))

	var renderers renderer.Multi
	if cfg.WantsText() {
		text := renderer.NewText(os.Stdout)
		text.CR = interactive
		renderers = append(renderers, text)
	}
	var snap *renderer.Snapshot
	if cfg.WantsSnapshots() {
		snap, err = renderer.NewSnapshot(cfg.Snapshot.Dir)
		if err != nil {
			return err
		}
		snap.Samples = cfg.Snapshot.Samples
		renderers = append(renderers, snap)
		fmt.Printf("[*] Снимки кадров: %s\n", cfg.Snapshot.Dir)
	}

	frames := 0
	counted := renderer.Func(func(ctx context.Context, rd navigator.RenderDirective) error {
		frames++
		return renderers.Render(ctx, rd)
	})

	view := viewport.Size{W: float64(cfg.Viewport.Width), H: float64(cfg.Viewport.Height)}

	var listeners []host.Listener
	switch {
	case cfg.Script != "":
		events, err := host.ParseScript(cfg.Script)
		if err != nil {
			return err
		}
		listeners = append(listeners, closeAfter(host.Script{Events: events, Pace: cfg.Pace}))
	case interactive:
		fmt.Println("[*] Управление: →/пробел вперед, ← назад, Home/End, номер + Enter, q выход")
		listeners = append(listeners,
			host.KeyReader{In: os.Stdin},
			host.ResizeWatcher{Fd: int(os.Stdout.Fd())},
		)
	default:
		// ввод из канала: клавиши читаются до EOF, затем показ завершается
		listeners = append(listeners, closeAfter(host.KeyReader{In: os.Stdin}))
	}

	h, err := host.New(d, counted,
		host.WithLogger(logging.New(logger)),
		host.WithStart(cfg.StartSlide),
		host.WithViewport(view),
		host.WithListeners(listeners...),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	err = h.Run(ctx)
	if interactive {
		fmt.Println()
	}
	if err != nil {
		return err
	}

	if cfg.Stats {
		report := system.Report{
			Build:    cfg.BuildVersion,
			Deck:     deckPath,
			Slides:   d.Len(),
			Frames:   frames,
			Duration: time.Since(startTime),
		}
		usage, err := system.SampleUsage()
		if err != nil {
			fmt.Printf("[!] Не удалось получить статистику процесса: %v\n", err)
		}
		report.Usage = usage

		if err := report.Write(os.Stdout); err != nil {
			return err
		}
		if err := report.AppendLog("benchmark.log", time.Now()); err != nil {
			fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}

	if snap != nil {
		fmt.Printf("[+++] Показ завершен. Снимков: %d в %s\n", snap.Frames(), cfg.Snapshot.Dir)
	} else {
		fmt.Println("[+++] Показ завершен")
	}
	return nil
}

// closeAfter ends the session once a finite input source is exhausted
func closeAfter(l host.Listener) host.Listener {
	return host.ListenerFunc(func(ctx context.Context, sink host.Sink) error {
		if err := l.Listen(ctx, sink); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		return sink.Post(ctx, host.InputEvent{Kind: host.Close})
	})
}
