package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tailscale/hujson"
)

type Http struct {
	HttpPort            int    `json:"http_port"`
	UsingProxy          bool   `json:"using_proxy"`
	Production          bool   `json:"production"`
	PublicDir           string `json:"public_dir"`
	MaxBodyBytes        int64  `json:"max_body_bytes"`
	ShutdownTimeoutMs   int    `json:"shutdown_timeout_ms"`
	ReadHeaderTimeoutMs int    `json:"read_header_timeout_ms"`
}

type Storage struct {
	FilePath       string `json:"file_path"`
	RetentionHours int    `json:"retention_hours"`
}

type Logs struct {
	Path           string `json:"path"`
	AccessLog      string `json:"access_log"`
	PerformanceLog string `json:"performance_log"`
	ErrorLog       string `json:"error_log"`
}

type Config struct {
	Http    Http    `json:"http"`
	Storage Storage `json:"storage"`
	Logs    Logs    `json:"logs"`
}

const PortEnvName = "PORT"

func Default() (conf Config) {
	conf.Http.HttpPort = 3000
	conf.Http.UsingProxy = false
	conf.Http.Production = true
	conf.Http.PublicDir = "public"
	conf.Http.MaxBodyBytes = 10 * 1024 * 1024
	conf.Http.ShutdownTimeoutMs = 5000
	conf.Http.ReadHeaderTimeoutMs = 10000

	conf.Storage.FilePath = "data.json"
	conf.Storage.RetentionHours = 24

	conf.Logs.Path = "logs"
	conf.Logs.AccessLog = "access.log"
	conf.Logs.PerformanceLog = "performance.log"
	conf.Logs.ErrorLog = "error.log"
	return
}

// LoadFromFile reads the config file on top of the defaults. The file may
// contain comments and trailing commas. A missing file is created with the
// defaults. The PORT environment variable overrides http.http_port.
func LoadFromFile(filePath string) (conf Config, err error) {
	conf = Default()

	var fi os.FileInfo
	var bs []byte
	fi, err = os.Stat(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return
		}
		err = nil

		// write config to file for user convenience if the file is not exist
		bs, _ = json.MarshalIndent(conf, "", " ")
		_ = os.WriteFile(filePath, bs, 0660) // it is just helper. ignore errors

	} else {
		if fi.IsDir() {
			err = errors.New("config.json is directory")
			return
		}
		bs, err = os.ReadFile(filePath)
		if err != nil {
			return
		}
		bs, err = hujson.Standardize(bs)
		if err != nil {
			err = fmt.Errorf("config %s: %w", filePath, err)
			return
		}
		err = json.Unmarshal(bs, &conf)
		if err != nil {
			err = fmt.Errorf("config %s: %w", filePath, err)
			return
		}
	}

	err = applyEnv(&conf)
	if err != nil {
		return
	}

	err = conf.Validate()
	return
}

func applyEnv(conf *Config) error {
	port := os.Getenv(PortEnvName)
	if len(port) == 0 {
		return nil
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("wrong %s environment variable: %w", PortEnvName, err)
	}
	conf.Http.HttpPort = p
	return nil
}

func (c Config) Validate() error {
	if c.Http.HttpPort < 1 || c.Http.HttpPort > 65535 {
		return errors.New("wrong conf.Http.HttpPort")
	}
	if c.Http.MaxBodyBytes < 1 {
		return errors.New("wrong conf.Http.MaxBodyBytes")
	}
	if c.Http.ShutdownTimeoutMs < 0 || c.Http.ShutdownTimeoutMs > 600000 {
		return errors.New("wrong conf.Http.ShutdownTimeoutMs (0..600000)")
	}
	if c.Http.ReadHeaderTimeoutMs < 1 || c.Http.ReadHeaderTimeoutMs > 600000 {
		return errors.New("wrong conf.Http.ReadHeaderTimeoutMs (1..600000)")
	}
	if len(c.Http.PublicDir) == 0 {
		return errors.New("wrong conf.Http.PublicDir")
	}
	if len(c.Storage.FilePath) == 0 {
		return errors.New("wrong conf.Storage.FilePath")
	}
	if c.Storage.RetentionHours < 1 || c.Storage.RetentionHours > 24*365 {
		return errors.New("wrong conf.Storage.RetentionHours (1..8760)")
	}
	if len(c.Logs.Path) == 0 || len(c.Logs.AccessLog) == 0 || len(c.Logs.PerformanceLog) == 0 || len(c.Logs.ErrorLog) == 0 {
		return errors.New("wrong conf.Logs")
	}
	return nil
}
