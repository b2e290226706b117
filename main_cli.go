package main

import (
	"fmt"

	"quipvid/bootstrap"
	"quipvid/config"
	"quipvid/database"
	"quipvid/util/crypto"
	"quipvid/web/service"
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
)

func initDBForCLI() error {
	target := config.GetDatabaseURL()
	if target == "" {
		target = config.GetDBPath()
	}
	return database.InitDB(target)
}

func resetSetting() {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	if err := settingService.ResetSettings(); err != nil {
		fmt.Println("Failed to reset settings:", err)
	} else {
		fmt.Println("Settings successfully reset.")
	}
}

func showSetting() {
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}
	webBasePath, err := settingService.GetBasePath()
	if err != nil {
		fmt.Println("get webBasePath failed:", err)
	}

	userService := service.UserService{}
	userModel, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user info failed:", err)
		return
	}

	fmt.Println("")
	fmt.Println(Green + "Current panel settings:" + Reset)
	fmt.Println("")
	hasDefaultCredential := userModel.Username == "admin" && crypto.CheckPasswordHash(userModel.Password, "admin")
	if hasDefaultCredential {
		fmt.Println(Red + "------>> WARNING: the default admin/admin credentials are still active" + Reset)
	} else {
		fmt.Println(Green + "------>> Non-default credentials are set" + Reset)
	}
	fmt.Println("")
	fmt.Println(Green + fmt.Sprintf("api port: %d", config.GetAPIPort()) + Reset)
	fmt.Println(Green + fmt.Sprintf("front port: %d", config.GetFrontPort()) + Reset)
	fmt.Println(Green + fmt.Sprintf("webBasePath: %s", webBasePath) + Reset)
	fmt.Println(Yellow + "Credentials are not displayed. Use 'setting -username -password' to change them." + Reset)
	fmt.Println("")
}

func updateSetting(username string, password string, webBasePath string, resetTwoFactor bool) {
	if username == "" && password == "" && webBasePath == "" && !resetTwoFactor {
		return
	}
	if err := initDBForCLI(); err != nil {
		fmt.Println("Failed to initialize database:", err)
		return
	}

	settingService := service.SettingService{}

	if username != "" || password != "" {
		if username == "" || password == "" {
			fmt.Println("Both -username and -password are required to change credentials.")
		} else {
			userService := service.UserService{}
			if err := userService.UpdateFirstUser(username, password); err != nil {
				fmt.Println("Failed to update credentials:", err)
			} else {
				fmt.Println("Credentials updated.")
			}
		}
	}

	if webBasePath != "" {
		if err := settingService.SetBasePath(webBasePath); err != nil {
			fmt.Println("Failed to set base path:", err)
		} else {
			fmt.Println("Base path updated.")
		}
	}

	if resetTwoFactor {
		if err := settingService.DisableTwoFactor(); err != nil {
			fmt.Println("Failed to reset two-factor settings:", err)
		} else {
			fmt.Println("Two-factor authentication disabled.")
		}
	}
}

// runIngest performs a single feed synchronisation, for cron or manual use.
func runIngest() {
	app, err := bootstrap.Initialize()
	if err != nil {
		fmt.Println("Failed to initialize application:", err)
		return
	}

	result, err := app.IngestService.Sync()
	if err != nil {
		fmt.Println("Ingest failed:", err)
		return
	}
	fmt.Printf("Ingest done: fetched %d, upserted %d, skipped %d\n",
		result.Fetched, result.Upserted, result.Skipped)
}
