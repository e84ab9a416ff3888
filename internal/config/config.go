package config

import (
	"flag"
	"os"
	"path"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nestjam/yap-sequencer/internal/numeral"
)

// Config описывает конфигурацию сервера последовательностей.
type Config struct {
	ServerAddress   string `yaml:"server_address"`    // адрес HTTP сервера
	GRPCAddress     string `yaml:"grpc_address"`      // адрес gRPC сервера
	FileStoragePath string `yaml:"file_storage_path"` // путь к файловому хранилищу последовательностей
	DataSourceName  string `yaml:"database_dsn"`      // строка подключения к БД хранилища последовательностей
	EnableHTTPS     bool   `yaml:"enable_https"`      // включить HTTPS
	TrustedSubnet   string `yaml:"trusted_subnet"`    // доверенная подсеть для внутренних запросов
	LogLevel        string `yaml:"log_level"`         // уровень логирования
	SecretKey       string `yaml:"secret_key"`        // ключ подписи токенов
	TakeMaxCount    int    `yaml:"take_max_count"`    // наибольшее число идентификаторов за один запрос
	DefaultSymbols  string `yaml:"default_alphabet"`  // алфавит новых последовательностей по умолчанию
	ConfigFile      string `yaml:"-"`                 // путь к файлу конфигурации
}

const (
	defaultServerAddr   = ":8080"
	defaultGRPCAddr     = ":3200"
	defaultLogLevel     = "info"
	defaultSecretKey    = "supersecretkey"
	defaultTakeMaxCount = 1000
)

var defaultFileStoragePath string = path.Join(os.TempDir(), "lightid-sequences.json")

// Environment определяет доступ к переменным среды.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// New создает экземпляр конфигурации с настройками по умолчанию.
func New() Config {
	return Config{
		ServerAddress:   defaultServerAddr,
		GRPCAddress:     defaultGRPCAddr,
		FileStoragePath: defaultFileStoragePath,
		LogLevel:        defaultLogLevel,
		SecretKey:       defaultSecretKey,
		TakeMaxCount:    defaultTakeMaxCount,
		DefaultSymbols:  numeral.DefaultSymbols,
	}
}

// Load собирает конфигурацию в порядке возрастания приоритета:
// значения по умолчанию, файл конфигурации, аргументы командной строки, переменные среды.
func Load(args []string, env Environment) (Config, error) {
	const op = "load config"

	located := New().FromArgs(args).FromEnv(env)

	conf := New()
	if located.ConfigFile != "" {
		var err error
		conf, err = conf.FromFile(located.ConfigFile)
		if err != nil {
			return Config{}, errors.Wrap(err, op)
		}
	}

	return conf.FromArgs(args).FromEnv(env), nil
}

// FromFile заполняет параметры конфигурации из YAML файла. Отсутствующие в файле параметры не меняются.
func (conf Config) FromFile(name string) (Config, error) {
	const op = "read config file"

	data, err := os.ReadFile(name)
	if err != nil {
		return conf, errors.Wrap(err, op)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrap(err, op)
	}

	conf.ConfigFile = name
	return conf, nil
}

// FromArgs заполняет параметры конфигурации из аргументов командной строки.
func (conf Config) FromArgs(args []string) Config {
	flagSet := flag.NewFlagSet("", flag.PanicOnError)
	flagSet.StringVar(&conf.ServerAddress, "a", conf.ServerAddress, "server address")
	flagSet.StringVar(&conf.GRPCAddress, "g", conf.GRPCAddress, "gRPC server address")
	flagSet.StringVar(&conf.FileStoragePath, "f", conf.FileStoragePath, "file storage path")
	flagSet.StringVar(&conf.DataSourceName, "d", conf.DataSourceName, "data source name")
	flagSet.BoolVar(&conf.EnableHTTPS, "s", conf.EnableHTTPS, "enable HTTPS")
	flagSet.StringVar(&conf.TrustedSubnet, "t", conf.TrustedSubnet, "trusted subnet")
	flagSet.StringVar(&conf.LogLevel, "l", conf.LogLevel, "log level")
	flagSet.StringVar(&conf.SecretKey, "k", conf.SecretKey, "token secret key")
	flagSet.IntVar(&conf.TakeMaxCount, "n", conf.TakeMaxCount, "max number of ids per request")
	flagSet.StringVar(&conf.DefaultSymbols, "alphabet", conf.DefaultSymbols, "default alphabet")
	flagSet.StringVar(&conf.ConfigFile, "c", conf.ConfigFile, "config file")
	flagSet.StringVar(&conf.ConfigFile, "config", conf.ConfigFile, "config file")

	_ = flagSet.Parse(args[1:]) // exclude command name
	return conf
}

// FromEnv заполняет параметры конфигурации из переменных среды.
// Значения, которые не удалось разобрать, игнорируются.
func (conf Config) FromEnv(env Environment) Config {
	if servAddr, ok := env.LookupEnv("SERVER_ADDRESS"); ok {
		conf.ServerAddress = servAddr
	}

	if grpcAddr, ok := env.LookupEnv("GRPC_ADDRESS"); ok {
		conf.GRPCAddress = grpcAddr
	}

	if path, ok := env.LookupEnv("FILE_STORAGE_PATH"); ok {
		conf.FileStoragePath = path
	}

	if dsn, ok := env.LookupEnv("DATABASE_DSN"); ok {
		conf.DataSourceName = dsn
	}

	if value, ok := env.LookupEnv("ENABLE_HTTPS"); ok {
		if enable, err := strconv.ParseBool(value); err == nil {
			conf.EnableHTTPS = enable
		}
	}

	if subnet, ok := env.LookupEnv("TRUSTED_SUBNET"); ok {
		conf.TrustedSubnet = subnet
	}

	if level, ok := env.LookupEnv("LOG_LEVEL"); ok {
		conf.LogLevel = level
	}

	if key, ok := env.LookupEnv("SECRET_KEY"); ok {
		conf.SecretKey = key
	}

	if value, ok := env.LookupEnv("TAKE_MAX_COUNT"); ok {
		if n, err := strconv.Atoi(value); err == nil {
			conf.TakeMaxCount = n
		}
	}

	if symbols, ok := env.LookupEnv("DEFAULT_ALPHABET"); ok {
		conf.DefaultSymbols = symbols
	}

	if file, ok := env.LookupEnv("CONFIG"); ok {
		conf.ConfigFile = file
	}

	return conf
}
