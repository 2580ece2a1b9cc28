// Package cli описывает команды armor-vision.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"armor-vision/config"
	"armor-vision/internal/domain/entity"
	"armor-vision/internal/logger"
)

// Version версия приложения.
const Version = "1.0.0"

// globalOptions флаги, общие для всех команд.
type globalOptions struct {
	enemyColor   string
	templateDir  string
	paramsFile   string
	dbURL        string
	logLevel     string
	disjoint     bool
	scaleToFrame bool
}

// session конфигурация и журнал, подготовленные перед запуском команды.
type session struct {
	opts globalOptions
	cfg  *config.Config
	log  *slog.Logger
}

// NewRootCommand собирает дерево команд.
func NewRootCommand() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "armor-vision",
		Short:         "Armor plate detection and digit recognition",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.prepare(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	bindGlobalFlags(root.PersistentFlags(), &s.opts)

	root.AddCommand(
		newRunCommand(s),
		newImageCommand(s),
		newBotCommand(s),
		newTemplatesCommand(s),
	)
	return root
}

func bindGlobalFlags(f *pflag.FlagSet, o *globalOptions) {
	f.StringVar(&o.enemyColor, "enemy-color", "", "Enemy light bar color: red or blue (default red)")
	f.StringVar(&o.templateDir, "templates", "", "Directory with digit templates <n>.png (default data/templates)")
	f.StringVar(&o.paramsFile, "params", "", "YAML file overriding detection thresholds")
	f.StringVar(&o.dbURL, "db", "", "PostgreSQL connection string for the detection log (default: in memory)")
	f.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.BoolVar(&o.disjoint, "disjoint", false, "Allow each light bar in at most one armor")
	f.BoolVar(&o.scaleToFrame, "scale-to-frame", false, "Derive clip bounds and area limits from the frame size")
}

// prepare загружает конфигурацию и накладывает явно заданные флаги.
func (s *session) prepare(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("params") {
		cfg.ParamsFile = s.opts.paramsFile
		if err := cfg.LoadParamsFile(cfg.ParamsFile); err != nil {
			return err
		}
	}
	if flags.Changed("enemy-color") {
		cfg.EnemyColor = s.opts.enemyColor
	}
	if flags.Changed("templates") {
		cfg.Tuning.Digit.TemplateDir = s.opts.templateDir
	}
	if flags.Changed("db") {
		cfg.DatabaseURL = s.opts.dbURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = s.opts.logLevel
	}
	if flags.Changed("disjoint") {
		cfg.Tuning.Armor.Pair.DisjointPairs = s.opts.disjoint
	}
	if flags.Changed("scale-to-frame") {
		cfg.Tuning.Armor.ScaleToFrame = s.opts.scaleToFrame
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg
	s.log = logger.NewWithWriter(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel))
	return nil
}

// color возвращает цвет противника; неизвестное значение заменяется красным с предупреждением.
func (s *session) color() entity.EnemyColor {
	color, ok := s.cfg.Color()
	if !ok {
		s.log.Warn("enemy color must be red or blue, using red", "value", s.cfg.EnemyColor)
	}
	return color
}

// Execute запускает CLI с контекстом, отменяемым по Ctrl+C и SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}
