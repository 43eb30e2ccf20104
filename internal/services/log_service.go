package services

import (
	"Cruder/internal/config"
	"fmt"
	"github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type LogService struct {
	Log *logrus.Logger
}

func NewLogService(configuration *config.Configuration) (LogService, error) {
	log := logrus.New()
	if err := setLogOutputType(configuration, log); err != nil {
		return LogService{}, err
	}
	setLogLevel(configuration, log)
	setLogFormatter(configuration, log)
	return LogService{
		Log: log,
	}, nil
}

func setLogFormatter(configuration *config.Configuration, log *logrus.Logger) {
	switch configuration.Server.LogConfig.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(configuration *config.Configuration, log *logrus.Logger) {
	level, err := logrus.ParseLevel(strings.ToLower(configuration.Server.LogConfig.Level))
	if err != nil {
		return
	}
	log.SetLevel(level)
}

func setLogOutputType(configuration *config.Configuration, log *logrus.Logger) error {
	switch configuration.Server.LogConfig.Output {
	case "stdout", "":
		log.SetOutput(os.Stdout)
	case "stderr":
		log.SetOutput(os.Stderr)
	case "file":
		if configuration.Server.LogConfig.LogPath == "" {
			return fmt.Errorf("file output requires logPath to be set")
		}
		logFolder := strings.TrimRight(configuration.Server.LogConfig.LogPath, "/")
		logName := fmt.Sprintf("%s-%s.log", "cruder", time.Now().Format("2006-01-02"))
		file, err := os.OpenFile(filepath.Join(logFolder, logName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		log.SetOutput(file)
	default:
		return fmt.Errorf("unknown log output %q", configuration.Server.LogConfig.Output)
	}
	return nil
}
