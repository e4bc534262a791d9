package main

import (
	"flag"
	"os"

	"dugun.link/configs"
	"dugun.link/configs/configsdatabase"
	"dugun.link/configs/configslog"
	"dugun.link/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Migrasyonları çalıştır")
	seedFlag := flag.Bool("seed", false, "Varsayılan temaları ve demo kullanıcıyı ekle")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configslog.SyncLogger()
		configsdatabase.CloseDB()
		os.Exit(1)
	}
}
