package config

import (
	"fmt"
	"os"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

type Settings struct {
	ENVPrefix string
	Debug     bool
	Verbose   bool
}

type Config struct {
	*Settings
}

// New initialize a Config
func New(settings *Settings) *Config {
	if settings == nil {
		settings = &Settings{}
	}

	if os.Getenv("CONFIG_DEBUG_MODE") != "" {
		settings.Debug = true
	}
	if os.Getenv("CONFIG_VERBOSE_MODE") != "" {
		settings.Verbose = true
	}

	return &Config{Settings: settings}
}

// Load will unmarshal configurations to struct from the files that you
// provide, then apply ENVPREFIX_FIELDNAME environment overrides. Missing
// files are skipped so that defaults plus environment are enough to run.
func (c *Config) Load(cfg interface{}, files ...string) error {
	defaultValue := reflect.Indirect(reflect.ValueOf(cfg))
	if !defaultValue.CanAddr() {
		return fmt.Errorf("config %v should be addressable", cfg)
	}

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || !info.Mode().IsRegular() {
			if c.Verbose {
				fmt.Printf("Failed to find configuration %v\n", file)
			}
			continue
		}
		if err := processFile(cfg, file); err != nil {
			return err
		}
	}

	return processEnv(cfg, c.getENVPrefix())
}

func (c *Config) getENVPrefix() string {
	if c.Settings.ENVPrefix == "" {
		if prefix := os.Getenv("CONFIG_ENV_PREFIX"); prefix != "" {
			return prefix
		}
		return "CONFIG"
	}
	return c.Settings.ENVPrefix
}

func processFile(cfg interface{}, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	switch path.Ext(file) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file format: %v", file)
	}
}

// processEnv walks the struct fields and overrides them from environment
// variables named PREFIX_FIELDNAME (nested structs extend the prefix).
// String slices are comma separated.
func processEnv(cfg interface{}, prefix string) error {
	value := reflect.Indirect(reflect.ValueOf(cfg))
	if value.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() {
			continue
		}

		name := prefix + "_" + strings.ToUpper(value.Type().Field(i).Name)

		if field.Kind() == reflect.Struct {
			if err := processEnv(field.Addr().Interface(), name); err != nil {
				return err
			}
			continue
		}

		env, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(env)
		case reflect.Bool:
			b, err := strconv.ParseBool(env)
			if err != nil {
				return fmt.Errorf("parse %v: %w", name, err)
			}
			field.SetBool(b)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(env, 10, 64)
			if err != nil {
				return fmt.Errorf("parse %v: %w", name, err)
			}
			field.SetInt(n)
		case reflect.Float32, reflect.Float64:
			f, err := strconv.ParseFloat(env, 64)
			if err != nil {
				return fmt.Errorf("parse %v: %w", name, err)
			}
			field.SetFloat(f)
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				continue
			}
			parts := strings.Split(env, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			field.Set(reflect.ValueOf(out))
		}
	}
	return nil
}
