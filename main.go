package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"quipvid/bootstrap"
	"quipvid/config"
	"quipvid/logger"
)

func runServers() {
	app, err := bootstrap.Initialize()
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}

	runtime := bootstrap.NewRuntime(app)

	if err := runtime.StartWebServer(); err != nil {
		log.Fatalf("Error starting api server: %v", err)
	}
	if err := runtime.StartFrontServer(); err != nil {
		log.Fatalf("Error starting front server: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	setupSignalHandler(sigCh)

	for {
		sig := <-sigCh

		if handleCustomSignal(sig, runtime) {
			continue
		}

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting servers")
			if err := runtime.Restart(); err != nil {
				log.Fatalf("Error restarting: %v", err)
			}

		default:
			runtime.StopAll()
			log.Println("Shutting down servers.")
			return
		}
	}
}

func main() {
	if len(os.Args) < 2 {
		runServers()
		return
	}

	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "show version")

	runCmd := flag.NewFlagSet("run", flag.ExitOnError)

	settingCmd := flag.NewFlagSet("setting", flag.ExitOnError)
	var username string
	var password string
	var webBasePath string
	var reset bool
	var show bool
	var resetTwoFactor bool
	settingCmd.BoolVar(&reset, "reset", false, "Reset all settings")
	settingCmd.BoolVar(&show, "show", false, "Display current settings")
	settingCmd.StringVar(&username, "username", "", "Set login username")
	settingCmd.StringVar(&password, "password", "", "Set login password")
	settingCmd.StringVar(&webBasePath, "webBasePath", "", "Set base path for the panel")
	settingCmd.BoolVar(&resetTwoFactor, "resetTwoFactor", false, "Reset two-factor authentication settings")

	oldUsage := flag.Usage
	flag.Usage = func() {
		oldUsage()
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("    run            run api and front servers")
		fmt.Println("    ingest         fetch the quips feed once and exit")
		fmt.Println("    setting        set settings")
	}

	flag.Parse()
	if showVersion {
		fmt.Println(config.GetVersion())
		return
	}

	switch os.Args[1] {
	case "run":
		if err := runCmd.Parse(os.Args[2:]); err != nil {
			fmt.Println(err)
			return
		}
		runServers()
	case "ingest":
		runIngest()
	case "setting":
		if err := settingCmd.Parse(os.Args[2:]); err != nil {
			fmt.Println(err)
			return
		}
		if reset {
			resetSetting()
		} else {
			updateSetting(username, password, webBasePath, resetTwoFactor)
		}
		if show {
			showSetting()
		}
	default:
		fmt.Println("Invalid subcommand")
		fmt.Println()
		runCmd.Usage()
		fmt.Println()
		settingCmd.Usage()
	}
}
