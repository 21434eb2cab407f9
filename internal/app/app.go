package app

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ipoluianov/jsonstore/internal/config"
	"github.com/ipoluianov/jsonstore/internal/core"
	"github.com/ipoluianov/jsonstore/internal/http_server"
	"github.com/ipoluianov/jsonstore/internal/logger"
	"github.com/ipoluianov/jsonstore/internal/storage"
	"github.com/kardianos/osext"
	"github.com/kardianos/service"
)

var server *http_server.HttpServer
var shutdownTimeout time.Duration

var ServiceName string
var ServiceDisplayName string
var ServiceDescription string
var ServiceRunFunc func() error
var ServiceStopFunc func()

const ConfigFileName = "config.json"

func SetAppPath() {
	exePath, _ := osext.ExecutableFolder()
	err := os.Chdir(exePath)
	if err != nil {
		return
	}
}

func TryService() bool {
	serviceFlagPtr := flag.Bool("service", false, "Run as service")
	installFlagPtr := flag.Bool("install", false, "Install service")
	uninstallFlagPtr := flag.Bool("uninstall", false, "Uninstall service")
	startFlagPtr := flag.Bool("start", false, "Start service")
	stopFlagPtr := flag.Bool("stop", false, "Stop service")
	urlFlagPtr := flag.String("url", "http://localhost:3000", "Server URL for -put and -get")
	putFlagPtr := flag.String("put", "", "Store JSON from file (- for stdin)")
	keyFlagPtr := flag.String("key", "", "Key for -put (random when empty)")
	getFlagPtr := flag.String("get", "", "Print the data stored under key")

	flag.Parse()

	if *serviceFlagPtr {
		runService()
		return true
	}

	if *installFlagPtr {
		InstallService()
		return true
	}

	if *uninstallFlagPtr {
		UninstallService()
		return true
	}

	if *startFlagPtr {
		StartService()
		return true
	}

	if *stopFlagPtr {
		StopService()
		return true
	}

	if len(*putFlagPtr) > 0 || len(*getFlagPtr) > 0 {
		err := RunClient(context.Background(), os.Stdout, ClientParams{
			URL:     *urlFlagPtr,
			PutFile: *putFlagPtr,
			Key:     *keyFlagPtr,
			GetID:   *getFlagPtr,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return true
	}

	return false
}

func NewSvcConfig() *service.Config {
	var SvcConfig = &service.Config{
		Name:        ServiceName,
		DisplayName: ServiceDisplayName,
		Description: ServiceDescription,
	}
	SvcConfig.Arguments = append(SvcConfig.Arguments, "-service")
	return SvcConfig
}

func newService() service.Service {
	s, err := service.New(&program{}, NewSvcConfig())
	if err != nil {
		log.Fatal(err)
	}
	return s
}

func InstallService() {
	fmt.Println("Service installing")
	if err := newService().Install(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Service installed")
}

func UninstallService() {
	fmt.Println("Service uninstalling")
	if err := newService().Uninstall(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Service uninstalled")
}

func StartService() {
	fmt.Println("Service starting")
	if err := newService().Start(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Service started")
}

func StopService() {
	fmt.Println("Service stopping")
	if err := newService().Stop(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Service stopped")
}

func runService() {
	if err := newService().Run(); err != nil {
		logger.Error("[app]", err)
	}
}

type program struct{}

func (p *program) Start(_ service.Service) error {
	return ServiceRunFunc()
}

func (p *program) Stop(_ service.Service) error {
	ServiceStopFunc()
	return nil
}

/////////////////////////////

func Start() error {
	SetAppPath()

	conf, err := config.LoadFromFile(ConfigFileName)
	if err != nil {
		return fmt.Errorf("load %s: %w", ConfigFileName, err)
	}

	logger.Init(conf.Logs.Path)
	logger.SetErrorLog(conf.Logs.ErrorLog)
	logger.Println("[app]", "Application Started")
	TuneFDs()

	store := storage.NewStore(conf.Storage.FilePath)
	if _, err = store.Load(); err != nil {
		return err
	}
	c := core.NewCore(store, time.Duration(conf.Storage.RetentionHours)*time.Hour)

	shutdownTimeout = time.Duration(conf.Http.ShutdownTimeoutMs) * time.Millisecond
	server = http_server.NewHttpServer(conf, c)
	return server.Start()
}

func Stop() {
	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := server.Stop(ctx)
	if err != nil {
		logger.Error("[app]", "shutdown:", err)
	}
	logger.Println("[app]", "Application Stopped")
}

func RunConsole() {
	logger.Println("[app]", "Running as console application")
	err := Start()
	if err != nil {
		logger.Error("[app]", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Println("[app]", "shutting down")
	Stop()
	logger.Println("[app]", "Console application exit")
}

func RunAsServiceF() error {
	return Start()
}

func StopServiceF() {
	Stop()
}
