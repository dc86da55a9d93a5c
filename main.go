package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tebogen/bot"
	"tebogen/bot/chat"
	"tebogen/flow"
	"tebogen/impl/core"
	"tebogen/internal/config"
	repository "tebogen/internal/database"
	"tebogen/internal/http-server/api"
	"tebogen/internal/lib/logger"
	"tebogen/internal/lib/sl"
	"tebogen/internal/service/export"
	"tebogen/specfile"
	"tebogen/validate"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting tebogen bot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	// Load the authored spec and build the validator registry:
	// built-ins first, then the validators the spec declares.
	doc, err := specfile.Load(conf.Spec.Path)
	if err != nil {
		lg.Error("loading spec document", sl.Err(err))
		os.Exit(1)
	}
	registry := validate.Builtin()
	if err := doc.RegisterValidators(registry); err != nil {
		lg.Error("registering spec validators", sl.Err(err))
		os.Exit(1)
	}

	// Compile. Hard errors block generation entirely, listed together;
	// warnings are kept visible but do not stop the bot.
	graph, diags := flow.Compile(doc.Spec(), registry)
	var warnings []flow.CompileError
	for _, d := range diags {
		if d.Warning {
			warnings = append(warnings, d)
			lg.Warn("spec warning", slog.String("diagnostic", d.Error()))
			continue
		}
		lg.Error("spec error", slog.String("diagnostic", d.Error()))
	}
	if graph == nil {
		lg.Error("spec does not compile", slog.Int("errors", len(diags)-len(warnings)))
		os.Exit(1)
	}
	lg.With(
		slog.String("flow", graph.Name),
		slog.Int("steps", len(graph.Nodes)),
	).Info("flow compiled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetCompileWarnings(warnings)
	handler.SetValidatorNames(registry.Names())

	// Session storage: Mongo when enabled, in-process otherwise.
	var store chat.SessionStore
	var archive chat.ArchiveReader
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
		os.Exit(1)
	}
	if db != nil {
		if err := db.EnsureIndexes(context.Background()); err != nil {
			lg.Error("mongo indexes", sl.Err(err))
			os.Exit(1)
		}
		mongoStorage := chat.NewMongoSessionStorage(db)
		store, archive = mongoStorage, mongoStorage
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		memoryStore := chat.NewMemoryStore()
		store, archive = memoryStore, memoryStore
		lg.Info("using in-memory session store")
	}

	engine := chat.NewEngine(graph, store, lg)
	if conf.Export.Path != "" {
		engine.SetExporter(export.NewFileExporter(conf.Export.Path, lg))
		lg.Info("answer export enabled", slog.String("path", conf.Export.Path))
	}
	handler.SetEngine(engine)
	handler.SetArchiveReader(archive)

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			tgBot.SetEngine(engine)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
