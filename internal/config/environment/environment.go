// Package environment предоставляет источники переменных среды для конфигурации.
package environment

import "os"

// Environment читает переменные среды процесса.
type Environment struct{}

// New создает экземпляр Environment.
func New() Environment {
	return Environment{}
}

// LookupEnv возвращает значение переменной среды по ключу, если переменная существует.
func (Environment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map хранит переменные среды в памяти. Применяется, когда окружение процесса не должно влиять на конфигурацию.
type Map map[string]string

// LookupEnv возвращает значение переменной по ключу, если переменная задана.
func (m Map) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
