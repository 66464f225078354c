// Package config loads typed configuration structs from the process
// environment and optional .env files.
//
// Structs declare their variables with github.com/caarlos0/env/v11 tags.
// Values are resolved in this order: process environment, then .env files
// in the order given (the first file that defines a key wins). Load returns
// the populated value; callers pass it down explicitly instead of reading
// the environment again.
//
// # Usage
//
//	type Config struct {
//		StaffEmail string `env:"STAFF_EMAIL,required"`
//		Port       string `env:"PORT" envDefault:"8080"`
//	}
//
//	cfg, err := config.Load[Config]()
//	if err != nil {
//		return err
//	}
//
// Tests can pass a fixed environment with WithEnvironment so nothing leaks
// between parallel cases.
package config
