package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"tidywarn.dev/pkg/tidywarn/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "tidywarn"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	dryRunFlagName       = "dry-run"
	summaryFlagName      = "summary"
	reportFlagName       = "report"
	backupSuffixFlagName = "backup-suffix"
	excludeFlagName      = "exclude"
	extensionsFlagName   = "ext"
	verboseFlagName      = "verbose"
	logFileFlagName      = "log-file"

	dryRunConfigKey     = "run.dry_run"
	summaryConfigKey    = "run.summary"
	reportConfigKey     = "run.report"
	backupSuffixKey     = "backup.suffix"
	excludeConfigKey    = "paths.exclude"
	extensionsConfigKey = "strip.extensions"

	defaultDryRun  = false
	defaultSummary = false
	defaultReport  = ""

	envPrefix = "TIDYWARN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ""
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	setConfigDefaults()

	configErr = readConfig()
}

func setConfigDefaults() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(dryRunConfigKey, defaultDryRun)
	viper.SetDefault(summaryConfigKey, defaultSummary)
	viper.SetDefault(reportConfigKey, defaultReport)
	viper.SetDefault(backupSuffixKey, domain.DefaultBackupSuffix)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(extensionsConfigKey, domain.DefaultHeaderExtensions)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// configErr holds a config file problem found at startup. It is reported by
// the first command that runs.
var configErr error

func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to read %s: %w", viper.ConfigFileUsed(), err)
}

var slogLevelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseSlogLevel accepts a level name or a numeric slog level such as -4.
func parseSlogLevel(value string, fallback slog.Level) slog.Level {
	name := strings.ToLower(strings.TrimSpace(value))

	if level, ok := slogLevelNames[name]; ok {
		return level
	}

	if n, err := strconv.Atoi(name); err == nil {
		return slog.Level(n)
	}

	return fallback
}

// logSettings is the log.* section of the configuration.
type logSettings struct {
	Filename   string
	Level      slog.Level
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func loadLogSettings(filename string, verbose bool) logSettings {
	settings := logSettings{
		Filename:   strings.TrimSpace(filename),
		Level:      parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo),
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	if verbose {
		settings.Level = slog.LevelDebug
	}

	return settings
}

// configureLogger sends slog output to a rotating log file, or discards it
// when no file is configured. Console output goes through the controller,
// never through slog.
func configureLogger(filename string, verbose bool) {
	settings := loadLogSettings(filename, verbose)

	if settings.Filename == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	}

	writer := &lumberjack.Logger{
		Filename:   settings.Filename,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   settings.Compress,
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: true,
		Level:     settings.Level,
	})))
}
