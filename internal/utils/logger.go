package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const DefaultLogFile = "./logs/app.log"

// NewLogWriter returns a rotating writer for the application log, mirrored to stdout,
// and points the fiber logger at it.
func NewLogWriter() (io.Writer, error) {
	path := GetConfigOr("LOG_FILE", DefaultLogFile)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	w := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(w)
	return w, nil
}
