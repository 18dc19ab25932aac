// @title Impetus Registration API
// @version 1.0
// @description Backend API for fest event registration and coordinator exports
package main

import (
	_ "github.com/JITENDRA0811/impetus9-backend/docs"

	"github.com/JITENDRA0811/impetus9-backend/api"
	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
